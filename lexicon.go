package texta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sort"
	"strings"
	"sync"
)

// CustomLexiconFilename is the file NewCustomLexicon searches for.
const CustomLexiconFilename = "CUSTOMLEXICON.MDF"

// A LexiconEntry pairs a word with its part-of-speech tags, most likely first.
type LexiconEntry struct {
	Word string
	Tags []string
}

// LexiconOpt configures a CustomLexicon.
type LexiconOpt func(cl *CustomLexicon)

// UsingFinder sets the Finder used to locate the lexicon file.
func UsingFinder(finder *Finder) LexiconOpt {
	return func(cl *CustomLexicon) {
		if finder != nil {
			cl.finder = finder
		}
	}
}

// UsingLexiconFilename overrides CustomLexiconFilename.
func UsingLexiconFilename(name string) LexiconOpt {
	return func(cl *CustomLexicon) {
		if name != "" {
			cl.filename = name
		}
	}
}

// WithLexiconLogger sets the logger for load notices.
func WithLexiconLogger(logger *slog.Logger) LexiconOpt {
	return func(cl *CustomLexicon) {
		if logger != nil {
			cl.logger = logger
		}
	}
}

// CustomLexicon maps words to part-of-speech tags. It augments the tagger's
// own dictionary: entries found here win over model predictions.
type CustomLexicon struct {
	words    map[string][]string
	path     string
	filename string
	finder   *Finder
	logger   *slog.Logger
	mutex    sync.RWMutex
}

func newCustomLexicon(opts ...LexiconOpt) *CustomLexicon {
	cl := &CustomLexicon{
		words:    make(map[string][]string),
		filename: CustomLexiconFilename,
		logger:   discardLogger(),
	}
	for _, applyOpt := range opts {
		applyOpt(cl)
	}
	if cl.finder == nil {
		cl.finder = NewFinder(WithFinderLogger(cl.logger))
	}
	return cl
}

// NewEmptyLexicon returns a lexicon that has not been seeded from disk.
func NewEmptyLexicon(opts ...LexiconOpt) *CustomLexicon {
	return newCustomLexicon(opts...)
}

// NewCustomLexicon returns a lexicon seeded from the custom lexicon file, if
// one can be found. A missing or unreadable file leaves the lexicon empty.
func NewCustomLexicon(opts ...LexiconOpt) *CustomLexicon {
	cl := newCustomLexicon(opts...)
	if err := cl.LoadCustomLexicon(); err != nil {
		cl.logger.Warn("lexicon.load_failed", "file", cl.filename, "err", err)
	}
	return cl
}

// Get returns the tags stored for word, or def when the word is unknown.
func (cl *CustomLexicon) Get(word string, def []string) []string {
	cl.mutex.RLock()
	defer cl.mutex.RUnlock()

	if tags, found := cl.words[word]; found {
		return slices.Clone(tags)
	}
	return def
}

// SetWord stores tags for word, replacing any previous entry.
func (cl *CustomLexicon) SetWord(word string, tags []string) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	cl.words[word] = slices.Clone(tags)
}

// Len returns the number of entries.
func (cl *CustomLexicon) Len() int {
	cl.mutex.RLock()
	defer cl.mutex.RUnlock()
	return len(cl.words)
}

// Words returns the stored words in sorted order.
func (cl *CustomLexicon) Words() []string {
	cl.mutex.RLock()
	defer cl.mutex.RUnlock()

	words := make([]string, 0, len(cl.words))
	for w := range cl.words {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Path returns the file the lexicon was loaded from, or "".
func (cl *CustomLexicon) Path() string {
	cl.mutex.RLock()
	defer cl.mutex.RUnlock()
	return cl.path
}

// LoadCustomLexicon locates the custom lexicon file and merges its entries.
// Not finding the file is not an error.
func (cl *CustomLexicon) LoadCustomLexicon() error {
	path := cl.finder.Find(cl.filename)
	if path == "" {
		cl.logger.Debug("lexicon.not_found", "file", cl.filename)
		return nil
	}

	cl.logger.Info("custom lexicon found, loading", "path", path)
	return cl.LoadFile(path)
}

// LoadFile merges the entries of the lexicon file at path.
func (cl *CustomLexicon) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &OpError{
			Op:   "lexicon.load",
			Kind: fsErrorKind(err),
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	if err := cl.Load(f); err != nil {
		return &OpError{
			Op:   "lexicon.load",
			Kind: KindIO,
			Path: path,
			Err:  err,
		}
	}

	cl.mutex.Lock()
	cl.path = path
	cl.mutex.Unlock()
	return nil
}

// Load merges entries read from r. Each line holds a word followed by one or
// more tags; lines with fewer than two fields are ignored. Later lines for
// the same word replace earlier ones.
func (cl *CustomLexicon) Load(r io.Reader) error {
	entries, err := parseLexicon(r)
	if err != nil {
		return err
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	for _, entry := range entries {
		cl.words[entry.Word] = entry.Tags
	}
	return nil
}

// WriteTo writes the lexicon in the same line format Load reads, sorted by
// word.
func (cl *CustomLexicon) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, word := range cl.Words() {
		n, err := fmt.Fprintf(w, "%s %s\n", word, strings.Join(cl.Get(word, nil), " "))
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("error writing lexicon: %w", err)
		}
	}
	return written, nil
}

func parseLexicon(r io.Reader) ([]LexiconEntry, error) {
	var entries []LexiconEntry

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if fields := strings.FieldsFunc(line, isASCIISpace); len(fields) >= 2 {
			entries = append(entries, LexiconEntry{Word: fields[0], Tags: fields[1:]})
		}
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("error reading lexicon: %w", err)
		}
	}
}

// isASCIISpace reports whether r separates fields in a lexicon line. Other
// Unicode spaces, such as U+00A0, are part of a word or tag.
func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
