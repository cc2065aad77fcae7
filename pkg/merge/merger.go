// Package merge flattens a C++ entry file and the local headers it includes,
// directly or transitively, into a single self-contained source file.
package merge

import (
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// PathMatcher reports whether a root-relative path is excluded from merging.
type PathMatcher interface {
	MatchesPath(path string) bool
}

// Merger resolves local includes and assembles merged output. A Merger holds
// no per-run state and may be shared between goroutines.
type Merger struct {
	loader Loader
	ignore PathMatcher
	logger *zap.Logger
}

// Option configures a Merger.
type Option func(*Merger)

// WithLoader sets the loader used for include targets.
func WithLoader(loader Loader) Option {
	return func(m *Merger) { m.loader = loader }
}

// WithIgnore drops local includes whose root-relative path matches.
func WithIgnore(matcher PathMatcher) Option {
	return func(m *Merger) { m.ignore = matcher }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Merger) { m.logger = logger }
}

// New creates a Merger. Without WithLoader, include targets are read from the
// local filesystem through afs.
func New(opts ...Option) *Merger {
	m := &Merger{}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.loader == nil {
		m.loader = NewFileLoader(nil, m.logger)
	}
	return m
}

// Result is the resolved form of a merge before rendering.
type Result struct {
	Project          Project
	StandardIncludes []string // Sorted, distinct.
	Usings           []string // Sorted, distinct.
	Sections         []Section
	MainCode         string
	Units            map[string]*SourceUnit
	Graph            *Graph
}

// Merge returns the merged text for the entry file. The only error it
// returns is a *CycleError.
func (m *Merger) Merge(entryPath, entryContent, projectRoot string) (string, error) {
	res, err := m.Resolve(entryPath, entryContent, projectRoot)
	if err != nil {
		return "", err
	}
	return res.Render(), nil
}

// Resolve walks the include graph of the entry file and collects everything
// needed to render the merged output.
func (m *Merger) Resolve(entryPath, entryContent, projectRoot string) (*Result, error) {
	project := Project{
		Root:  normalize(projectRoot),
		Entry: normalize(entryPath),
	}
	logger := m.logger.With(zap.String("entry", project.Entry))
	logger.Debug("Starting merge", zap.String("root", project.Root))

	st := newState(project)
	st.visited[project.Entry] = true
	if err := m.visit(st, project.Entry, entryContent); err != nil {
		logger.Debug("Merge aborted", zap.Error(err))
		return nil, err
	}

	res := &Result{
		Project:          project,
		StandardIncludes: sortedKeys(st.standard),
		Usings:           sortedKeys(st.usings),
		Sections:         st.sections,
		MainCode:         StripDirectives(entryContent),
		Units:            st.units,
		Graph:            st.graph,
	}
	logger.Debug("Merge resolved",
		zap.Int("standardIncludes", len(res.StandardIncludes)),
		zap.Int("usings", len(res.Usings)),
		zap.Int("sections", len(res.Sections)),
		zap.Int("files", len(st.visited)))
	return res, nil
}

// visit scans one file, recursing into each local include as it is met, and
// appends the file's section once all of its dependencies are done.
func (m *Merger) visit(st *state, path, content string) error {
	st.push(path)
	defer st.pop()

	unit := &SourceUnit{Path: path, Content: content}
	st.units[path] = unit

	var body strings.Builder
	hasContent := false
	for _, line := range splitLines(content) {
		kind, value := classifyLine(line)
		switch kind {
		case kindStandardInclude:
			st.standard[value] = struct{}{}
			unit.StandardIncludes = append(unit.StandardIncludes, value)
		case kindUsing:
			st.usings[value] = struct{}{}
			unit.Usings = append(unit.Usings, value)
		case kindLocalInclude:
			target := resolveInclude(path, value)
			followed, err := m.include(st, path, target)
			if err != nil {
				return err
			}
			if followed {
				unit.LocalIncludes = append(unit.LocalIncludes, target)
			}
		default:
			if strings.TrimSpace(line) != "" {
				hasContent = true
				body.WriteString(line)
				body.WriteByte('\n')
			} else if hasContent {
				body.WriteByte('\n')
			}
		}
	}
	unit.Body = body.String()

	if path == st.project.Entry {
		return nil
	}
	if trimmed := strings.TrimSpace(unit.Body); trimmed != "" {
		st.sections = append(st.sections, Section{
			Path:  path,
			Label: st.project.Label(path),
			Body:  trimmed,
		})
	}
	return nil
}

// include handles one local include of from. followed is false when the
// target was dropped.
func (m *Merger) include(st *state, from, target string) (bool, error) {
	if i := st.stackIndex(target); i >= 0 {
		return false, st.cycle(i, target)
	}
	if st.visited[target] {
		st.graph.addEdge(from, target)
		return true, nil
	}
	if st.missing[target] {
		return false, nil
	}

	label := st.project.Label(target)
	if m.ignore != nil && m.ignore.MatchesPath(label) {
		m.logger.Debug("Skipping ignored include", zap.String("include", label), zap.String("from", st.project.Label(from)))
		st.missing[target] = true
		return false, nil
	}

	content, ok := m.loader.Load(target)
	if !ok {
		m.logger.Debug("Skipping unresolved include", zap.String("include", label), zap.String("from", st.project.Label(from)))
		st.missing[target] = true
		return false, nil
	}

	st.visited[target] = true
	st.graph.addEdge(from, target)
	return true, m.visit(st, target, content)
}

// normalize makes path absolute and clean. Abs only fails when the working
// directory is unknown, in which case the cleaned path is used.
func normalize(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
