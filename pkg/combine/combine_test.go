package combine

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cppmerge/pkg/merge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// writeTree creates files under a fresh temporary root and returns the root.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

var sampleProject = map[string]string{
	"main/main.cpp": "#include <iostream>\n#include \"../lib/util.h\"\nusing namespace std;\nint main(){ util(); }\n",
	"lib/util.h":    "#include <vector>\nvoid util(){}\n",
}

const sampleMerged = "#include <iostream>\n#include <vector>\n\nusing namespace std;\n\n// === lib/util.h ===\nvoid util(){}\n\n// === Main Code ===\nint main(){ util(); }\n"

func TestRunMerge_WritesOutput(t *testing.T) {
	root := writeTree(t, sampleProject)
	var out bytes.Buffer

	err := RunMerge(Arguments{Paths: []string{filepath.Join(root, "main", "main.cpp")}}, &out, zap.NewNop())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "output", "main.cpp"))
	require.NoError(t, err)
	assert.Equal(t, sampleMerged, string(data))
	assert.Contains(t, out.String(), "merged ")
}

func TestRunMerge_SkipsUnchangedOutput(t *testing.T) {
	root := writeTree(t, sampleProject)
	args := Arguments{Paths: []string{filepath.Join(root, "main", "main.cpp")}}

	require.NoError(t, RunMerge(args, &bytes.Buffer{}, zap.NewNop()))

	var out bytes.Buffer
	require.NoError(t, RunMerge(args, &out, zap.NewNop()))
	assert.Contains(t, out.String(), "unchanged ")

	args.Force = true
	out.Reset()
	require.NoError(t, RunMerge(args, &out, zap.NewNop()))
	assert.Contains(t, out.String(), "merged ")
}

func TestRunMerge_Stdout(t *testing.T) {
	root := writeTree(t, sampleProject)
	var out bytes.Buffer

	err := RunMerge(Arguments{Paths: []string{filepath.Join(root, "main", "main.cpp")}, Stdout: true}, &out, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, sampleMerged, out.String())
	assert.NoDirExists(t, filepath.Join(root, "output"))
}

func TestRunMerge_StdoutNeedsSingleEntry(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main/a.cpp": "int main(){}\n",
		"main/b.cpp": "int main(){}\n",
		"lib/x.h":    "int x;\n",
	})

	err := RunMerge(Arguments{Paths: []string{filepath.Join(root, "main")}, Stdout: true}, &bytes.Buffer{}, zap.NewNop())
	assert.ErrorContains(t, err, "exactly one entry")
}

func TestRunMerge_CycleError(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main/m.cpp": "#include \"../lib/a.h\"\nint main(){}\n",
		"lib/a.h":    "#include \"b.h\"\n",
		"lib/b.h":    "#include \"a.h\"\n",
	})

	err := RunMerge(Arguments{Paths: []string{filepath.Join(root, "main", "m.cpp")}}, &bytes.Buffer{}, zap.NewNop())
	var cycleErr *merge.CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []string{"lib/a.h", "lib/b.h", "lib/a.h"}, cycleErr.Chain)
	assert.NoFileExists(t, filepath.Join(root, "output", "m.cpp"))
}

func TestRunMerge_Directory(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main/a.cpp":       "#include \"../lib/x.h\"\nint main(){ return x; }\n",
		"main/b.cpp":       "#include \"../lib/a.h\"\nint main(){}\n",
		"main/skip.cpp":    "int main(){}\n",
		"main/notes.txt":   "not an entry\n",
		"lib/x.h":          "int x;\n",
		"lib/a.h":          "#include \"a.h\"\n",
		"output/stale.cpp": "int main(){}\n",
		IgnoreFileName:     "skip.cpp\n",
	})

	var out bytes.Buffer
	err := RunMerge(Arguments{Paths: []string{root}, MaxWorkers: 2}, &out, zap.NewNop())
	assert.ErrorContains(t, err, "1 of 2 entries failed")

	// a.cpp still merged although b.cpp has a cycle.
	data, readErr := os.ReadFile(filepath.Join(root, "output", "a.cpp"))
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "// === lib/x.h ===\nint x;\n")
	assert.NoFileExists(t, filepath.Join(root, "output", "skip.cpp"))
	assert.NoFileExists(t, filepath.Join(root, "output", "b.cpp"))
}

func TestRunMerge_RejectsNonCppEntry(t *testing.T) {
	root := writeTree(t, map[string]string{"main/a.h": "int a;\n"})

	err := RunMerge(Arguments{Paths: []string{filepath.Join(root, "main", "a.h")}}, &bytes.Buffer{}, zap.NewNop())
	assert.ErrorContains(t, err, "is not a .cpp file")
}

func TestRunMerge_IgnorePatternsDropHeaders(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main/m.cpp":   "#include \"../lib/debug.h\"\nint main(){}\n",
		"lib/debug.h":  "void dbg(){}\n",
		ConfigFileName: "ignore:\n  - debug.h\n",
	})
	var out bytes.Buffer

	err := RunMerge(Arguments{Paths: []string{filepath.Join(root, "main", "m.cpp")}, Stdout: true}, &out, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "// === Main Code ===\nint main(){}\n", out.String())
}

func TestRunMerge_OutputDirOverride(t *testing.T) {
	root := writeTree(t, sampleProject)
	outDir := filepath.Join(t.TempDir(), "submit")

	err := RunMerge(Arguments{Paths: []string{filepath.Join(root, "main", "main.cpp")}, OutputDir: outDir}, &bytes.Buffer{}, zap.NewNop())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "main.cpp"))
}

func TestRunMerge_RequireLayout(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/m.cpp":    "int main(){}\n",
		ConfigFileName: "require_layout: true\n",
	})

	err := RunMerge(Arguments{Paths: []string{filepath.Join(root, "src", "m.cpp")}}, &bytes.Buffer{}, zap.NewNop())
	assert.ErrorContains(t, err, "project structure is incorrect")
}

func TestRunDeps(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main/m.cpp": "#include \"../lib/a.h\"\n#include \"../lib/c.h\"\n#include \"../lib/missing.h\"\nint main(){}\n",
		"lib/a.h":    "#include \"b.h\"\n",
		"lib/b.h":    "int b;\n",
		"lib/c.h":    "#include \"b.h\"\n",
	})
	var out bytes.Buffer

	require.NoError(t, RunDeps(Arguments{Paths: []string{filepath.Join(root, "main", "m.cpp")}}, &out, zap.NewNop()))

	expected := "main/m.cpp\n" +
		"├── lib/a.h\n" +
		"│   └── lib/b.h\n" +
		"└── lib/c.h\n" +
		"    └── lib/b.h (merged above)\n"
	assert.Equal(t, expected, out.String())
}

func TestMergeConcurrently_PreservesOrder(t *testing.T) {
	files := map[string]string{"lib/x.h": "int x;\n"}
	names := []string{"a", "b", "c", "d", "e", "f"}
	for _, n := range names {
		files["main/"+n+".cpp"] = "#include \"../lib/x.h\"\nint " + n + ";\n"
	}
	root := writeTree(t, files)

	projects := newProjectSet(Arguments{}, zap.NewNop())
	entries, err := CollectEntries([]string{filepath.Join(root, "main")}, projects, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, entries, len(names))

	outcomes := MergeConcurrently(entries, 3, false, false, zap.NewNop())
	require.Len(t, outcomes, len(names))
	for i, o := range outcomes {
		require.NoError(t, o.Err)
		assert.Equal(t, filepath.Join(root, "main", names[i]+".cpp"), o.Entry)
		assert.Contains(t, o.Content, "int "+names[i]+";")
		assert.Empty(t, o.Output)
		assert.NotZero(t, o.Fingerprint)
	}
}

func TestRunMerge_DuplicateOutputName(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main/a/sol.cpp": "int A(){}\n",
		"main/b/sol.cpp": "int B(){}\n",
		"lib/x.h":        "int x;\n",
	})
	var out bytes.Buffer

	err := RunMerge(Arguments{Paths: []string{filepath.Join(root, "main")}}, &out, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), filepath.Join(root, "main", "a", "sol.cpp"))
	assert.Contains(t, err.Error(), filepath.Join(root, "main", "b", "sol.cpp"))
	assert.Contains(t, err.Error(), "both merge to")
	assert.NoFileExists(t, filepath.Join(root, "output", "sol.cpp"))
	assert.Empty(t, out.String())
}

func TestRunMerge_DuplicateOutputNameAllowedWithDistinctRoots(t *testing.T) {
	first := writeTree(t, map[string]string{ConfigFileName: "", "sol.cpp": "int A(){}\n"})
	second := writeTree(t, map[string]string{ConfigFileName: "", "sol.cpp": "int B(){}\n"})

	err := RunMerge(Arguments{Paths: []string{
		filepath.Join(first, "sol.cpp"),
		filepath.Join(second, "sol.cpp"),
	}}, &bytes.Buffer{}, zap.NewNop())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(first, "output", "sol.cpp"))
	assert.FileExists(t, filepath.Join(second, "output", "sol.cpp"))
}

func TestConfiguredWorkers(t *testing.T) {
	entries := []Entry{
		{Path: "a.cpp", Project: &Project{Config: Config{Workers: 2}}},
		{Path: "b.cpp", Project: &Project{Config: Config{Workers: 5}}},
		{Path: "c.cpp", Project: &Project{Config: Config{}}},
	}
	assert.Equal(t, 5, configuredWorkers(entries))
	assert.Equal(t, 0, configuredWorkers(entries[2:]))
}

func TestRunDeps_Flat(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main/m.cpp": "#include <cstdio>\n#include \"../lib/a.h\"\n#include \"../lib/gone.h\"\nusing namespace std;\nint main(){}\n",
		"lib/a.h":    "#include <vector>\n#include <map>\n#include \"b.h\"\n",
		"lib/b.h":    "using ll = long long;\n",
	})
	var out bytes.Buffer

	err := RunDeps(Arguments{Paths: []string{filepath.Join(root, "main", "m.cpp")}, Flat: true}, &out, zap.NewNop())
	require.NoError(t, err)

	expected := "main/m.cpp\tstd=1 using=1 local=1\n" +
		"lib/a.h\tstd=2 using=0 local=1\n" +
		"lib/b.h\tstd=0 using=1 local=0\n"
	assert.Equal(t, expected, out.String())
}
