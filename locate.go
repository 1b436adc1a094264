package texta

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// DefaultSearchVar names the environment variable holding the custom
	// search path.
	DefaultSearchVar = "TextA"

	// DefaultPathVar names the system search path variable.
	DefaultPathVar = "PATH"

	// DefaultPathListSeparator separates entries of both search variables.
	// Note that it is used for PATH too, regardless of the host convention;
	// see WithPathListSeparator.
	DefaultPathListSeparator = ";"
)

// A FinderOpt changes how a Finder searches for files.
type FinderOpt func(f *Finder)

// WithSearchVar sets the environment variable consulted after the working
// directory.
func WithSearchVar(name string) FinderOpt {
	return func(f *Finder) {
		f.searchVar = name
	}
}

// WithPathVar sets the environment variable consulted last.
func WithPathVar(name string) FinderOpt {
	return func(f *Finder) {
		f.pathVar = name
	}
}

// WithPathListSeparator sets the separator used to split both variables.
// Pass string(os.PathListSeparator) to follow the host convention.
func WithPathListSeparator(sep string) FinderOpt {
	return func(f *Finder) {
		if sep != "" {
			f.separator = sep
		}
	}
}

// WithWorkDir sets the directory searched first. Matches found there are
// returned as workDir + "/" + filename.
func WithWorkDir(dir string) FinderOpt {
	return func(f *Finder) {
		if dir != "" {
			f.workDir = dir
		}
	}
}

// WithEnv replaces os.LookupEnv as the source of environment variables.
func WithEnv(lookup func(string) (string, bool)) FinderOpt {
	return func(f *Finder) {
		if lookup != nil {
			f.lookupEnv = lookup
		}
	}
}

// WithFinderLogger sets the logger used to report skipped directories.
func WithFinderLogger(logger *slog.Logger) FinderOpt {
	return func(f *Finder) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Finder locates files by name across the working directory, the custom
// search path and the system path, in that order.
type Finder struct {
	workDir   string
	searchVar string
	pathVar   string
	separator string
	lookupEnv func(string) (string, bool)
	logger    *slog.Logger
}

// NewFinder returns a Finder configured by opts.
func NewFinder(opts ...FinderOpt) *Finder {
	f := &Finder{
		workDir:   ".",
		searchVar: DefaultSearchVar,
		pathVar:   DefaultPathVar,
		separator: DefaultPathListSeparator,
		lookupEnv: os.LookupEnv,
		logger:    discardLogger(),
	}
	for _, applyOpt := range opts {
		applyOpt(f)
	}
	return f
}

// FindFile looks up filename with a default Finder.
func FindFile(filename string) string {
	return NewFinder().Find(filename)
}

// Find returns the path of the first directory entry named filename, or ""
// when no searched directory contains it. Directories that cannot be listed
// are skipped.
func (f *Finder) Find(filename string) string {
	if f.contains(f.workDir, filename) {
		return f.workDir + "/" + filename
	}
	for _, dir := range f.varDirs(f.searchVar) {
		if f.contains(dir, filename) {
			return dir + "/" + filename
		}
	}
	for _, dir := range f.varDirs(f.pathVar) {
		if f.contains(dir, filename) {
			return dir + "/" + filename
		}
	}
	return ""
}

// SearchPath returns the directories Find would probe, in order.
func (f *Finder) SearchPath() []string {
	dirs := []string{f.workDir}
	dirs = append(dirs, f.varDirs(f.searchVar)...)
	return append(dirs, f.varDirs(f.pathVar)...)
}

func (f *Finder) varDirs(name string) []string {
	value, ok := f.lookupEnv(name)
	if !ok {
		return nil
	}
	return SplitSearchPath(value, f.separator)
}

func (f *Finder) contains(dir, filename string) bool {
	names, err := listDir(dir)
	if err != nil {
		f.logger.Debug("finder.skip", "dir", dir, "err", err)
		return false
	}
	_, found := names[filename]
	return found
}

// listDir returns the entry names of dir.
func listDir(dir string) (map[string]struct{}, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &OpError{
			Op:   "finder.listdir",
			Kind: fsErrorKind(err),
			Path: dir,
			Err:  err,
		}
	}
	names := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		names[e.Name()] = struct{}{}
	}
	return names, nil
}

// SplitSearchPath splits value on sep and trims each element. Elements that
// are empty after trimming are dropped.
func SplitSearchPath(value, sep string) []string {
	var dirs []string
	for _, part := range strings.Split(value, sep) {
		if dir := strings.TrimSpace(part); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
