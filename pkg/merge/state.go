package merge

// state is the mutable bookkeeping of a single Merge call. It is created
// fresh for every call and threaded explicitly through the traversal.
type state struct {
	project  Project
	visited  map[string]bool
	missing  map[string]bool
	stack    []string
	standard map[string]struct{}
	usings   map[string]struct{}
	sections []Section
	units    map[string]*SourceUnit
	graph    *Graph
}

func newState(project Project) *state {
	return &state{
		project:  project,
		visited:  make(map[string]bool),
		missing:  make(map[string]bool),
		standard: make(map[string]struct{}),
		usings:   make(map[string]struct{}),
		units:    make(map[string]*SourceUnit),
		graph:    newGraph(project),
	}
}

func (s *state) push(path string) { s.stack = append(s.stack, path) }

func (s *state) pop() { s.stack = s.stack[:len(s.stack)-1] }

// stackIndex returns the position of path on the recursion stack, or -1.
func (s *state) stackIndex(path string) int {
	for i, p := range s.stack {
		if p == path {
			return i
		}
	}
	return -1
}

// cycle builds the error for a repeated path found at stack position i.
func (s *state) cycle(i int, path string) *CycleError {
	chain := make([]string, 0, len(s.stack)-i+1)
	for _, p := range s.stack[i:] {
		chain = append(chain, s.project.Label(p))
	}
	chain = append(chain, s.project.Label(path))
	return &CycleError{Chain: chain}
}
