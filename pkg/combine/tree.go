// File: pkg/combine/tree.go
package combine

import (
	"fmt"
	"strings"

	"cppmerge/pkg/merge"
)

// RenderTree renders the local include graph of a resolved merge as a tree.
// Files reached a second time are listed but not expanded again.
func RenderTree(res *merge.Result) string {
	var treeBuilder strings.Builder
	project := res.Project

	treeBuilder.WriteString(project.Label(project.Entry) + "\n")
	expanded := map[string]bool{project.Entry: true}
	if subtree := generateTreeRecursively(res.Graph, project.Entry, "", expanded); subtree != "" {
		treeBuilder.WriteString(subtree)
		treeBuilder.WriteString("\n")
	}
	return treeBuilder.String()
}

// generateTreeRecursively builds the subtree below path.
func generateTreeRecursively(g *merge.Graph, path, prefix string, expanded map[string]bool) string {
	var output []string

	deps := g.Dependencies(path)
	for i, dep := range deps {
		connector := "├── "
		extension := "│   "
		if i == len(deps)-1 {
			connector = "└── "
			extension = "    "
		}

		label := g.Project.Label(dep)
		if expanded[dep] {
			output = append(output, fmt.Sprintf("%s%s%s (merged above)", prefix, connector, label))
			continue
		}
		expanded[dep] = true

		output = append(output, prefix+connector+label)
		if subtree := generateTreeRecursively(g, dep, prefix+extension, expanded); subtree != "" {
			output = append(output, subtree)
		}
	}

	return strings.Join(output, "\n")
}

// RenderFlat lists every file of the include graph in depth-first order with
// the number of standard includes, using lines and followed local includes
// it declares.
func RenderFlat(res *merge.Result) string {
	var b strings.Builder
	for _, path := range res.Graph.Files() {
		unit, ok := res.Units[path]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s\tstd=%d using=%d local=%d\n",
			res.Project.Label(path),
			len(unit.StandardIncludes),
			len(unit.Usings),
			len(unit.LocalIncludes))
	}
	return b.String()
}
