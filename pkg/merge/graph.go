// File: pkg/merge/graph.go
package merge

// Graph is the local include graph discovered by one merge run. Edges keep
// the order in which includes appear in the including file.
type Graph struct {
	Project Project
	edges   map[string][]string
}

func newGraph(project Project) *Graph {
	return &Graph{Project: project, edges: make(map[string][]string)}
}

func (g *Graph) addEdge(from, to string) {
	for _, existing := range g.edges[from] {
		if existing == to {
			return
		}
	}
	g.edges[from] = append(g.edges[from], to)
}

// Dependencies returns the files directly included by path.
func (g *Graph) Dependencies(path string) []string {
	return g.edges[path]
}

// Files returns every file reachable from the entry, the entry first,
// in depth-first pre-order.
func (g *Graph) Files() []string {
	seen := map[string]bool{}
	var out []string
	var walk func(string)
	walk = func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		out = append(out, path)
		for _, dep := range g.edges[path] {
			walk(dep)
		}
	}
	walk(g.Project.Entry)
	return out
}
