package texta

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// lexiconIn writes contents as the custom lexicon file in a fresh directory
// and returns a Finder that only searches that directory.
func lexiconIn(t *testing.T, contents string) *Finder {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, CustomLexiconFilename)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write lexicon: %v", err)
	}
	return NewFinder(WithWorkDir(dir), WithEnv(envMap(nil)))
}

func TestLoadLastWriteWins(t *testing.T) {
	finder := lexiconIn(t, "run VB VBP\nrun NN\n")
	lex := NewCustomLexicon(UsingFinder(finder))

	got := lex.Get("run", []string{})
	if !reflect.DeepEqual(got, []string{"NN"}) {
		t.Errorf("Get(run) = %v, want [NN]", got)
	}
}

func TestLoadIgnoresShortLines(t *testing.T) {
	contents := strings.Join([]string{
		"",
		"foo",
		"   ",
		"  walk   VB  NN ",
		"\tcolour\tNN",
		"bar",
	}, "\n")
	finder := lexiconIn(t, contents)
	lex := NewCustomLexicon(UsingFinder(finder))

	if lex.Len() != 2 {
		t.Errorf("expected 2 entries, got %d: %v", lex.Len(), lex.Words())
	}
	for _, word := range []string{"foo", "bar", ""} {
		if got := lex.Get(word, nil); got != nil {
			t.Errorf("Get(%q) = %v, want nil", word, got)
		}
	}
	if got := lex.Get("walk", nil); !reflect.DeepEqual(got, []string{"VB", "NN"}) {
		t.Errorf("Get(walk) = %v, want [VB NN]", got)
	}
	if got := lex.Get("colour", nil); !reflect.DeepEqual(got, []string{"NN"}) {
		t.Errorf("Get(colour) = %v, want [NN]", got)
	}
}

func TestLoadIsCaseSensitive(t *testing.T) {
	finder := lexiconIn(t, "Apple NNP\napple NN\n")
	lex := NewCustomLexicon(UsingFinder(finder))

	if got := lex.Get("Apple", nil); !reflect.DeepEqual(got, []string{"NNP"}) {
		t.Errorf("Get(Apple) = %v, want [NNP]", got)
	}
	if got := lex.Get("APPLE", nil); got != nil {
		t.Errorf("Get(APPLE) = %v, want nil", got)
	}
}

func TestGetReturnsDefaultUnchanged(t *testing.T) {
	lex := NewEmptyLexicon()
	def := []string{"NN", "VB"}

	got := lex.Get("unknown", def)
	if &got[0] != &def[0] {
		t.Errorf("expected the default slice itself to be returned")
	}
	if got := lex.Get("unknown", nil); got != nil {
		t.Errorf("Get with nil default = %v, want nil", got)
	}
}

func TestSetWordOverwrites(t *testing.T) {
	lex := NewEmptyLexicon()
	tags := []string{"VB", "VBP"}
	lex.SetWord("run", tags)
	tags[0] = "XX"

	if got := lex.Get("run", nil); !reflect.DeepEqual(got, []string{"VB", "VBP"}) {
		t.Errorf("Get(run) = %v, want [VB VBP]", got)
	}

	lex.SetWord("run", []string{"NN"})
	if got := lex.Get("run", nil); !reflect.DeepEqual(got, []string{"NN"}) {
		t.Errorf("Get(run) after overwrite = %v, want [NN]", got)
	}

	got := lex.Get("run", nil)
	got[0] = "JJ"
	if again := lex.Get("run", nil); again[0] != "NN" {
		t.Errorf("mutating the result of Get changed the lexicon: %v", again)
	}
}

func TestNewCustomLexiconMissingFile(t *testing.T) {
	finder := NewFinder(WithWorkDir(t.TempDir()), WithEnv(envMap(nil)))
	lex := NewCustomLexicon(UsingFinder(finder))

	if lex.Len() != 0 {
		t.Errorf("expected empty lexicon, got %d entries", lex.Len())
	}
	if lex.Path() != "" {
		t.Errorf("expected no path, got %q", lex.Path())
	}
	if err := lex.LoadCustomLexicon(); err != nil {
		t.Errorf("LoadCustomLexicon on missing file: %v", err)
	}
}

func TestNewCustomLexiconFromSearchPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "MY.MDF"), []byte("texta NNP\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	finder := NewFinder(
		WithWorkDir(t.TempDir()),
		WithEnv(envMap(map[string]string{"TextA": dir})),
	)

	lex := NewCustomLexicon(UsingFinder(finder), UsingLexiconFilename("MY.MDF"))
	if got := lex.Get("texta", nil); !reflect.DeepEqual(got, []string{"NNP"}) {
		t.Errorf("Get(texta) = %v, want [NNP]", got)
	}
	if want := dir + "/MY.MDF"; lex.Path() != want {
		t.Errorf("Path() = %q, want %q", lex.Path(), want)
	}
}

func TestLoadFileMissing(t *testing.T) {
	lex := NewEmptyLexicon()
	err := lex.LoadFile(filepath.Join(t.TempDir(), "nope.mdf"))
	if !IsKind(err, KindNotFound) {
		t.Errorf("expected KindNotFound, got %v", err)
	}
}

func TestLoadMergesIntoExisting(t *testing.T) {
	lex := NewEmptyLexicon()
	lex.SetWord("keep", []string{"VB"})
	lex.SetWord("run", []string{"VB"})

	if err := lex.Load(strings.NewReader("run NN\nnew JJ\n")); err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := map[string][]string{
		"keep": {"VB"},
		"run":  {"NN"},
		"new":  {"JJ"},
	}
	for word, tags := range want {
		if got := lex.Get(word, nil); !reflect.DeepEqual(got, tags) {
			t.Errorf("Get(%q) = %v, want %v", word, got, tags)
		}
	}
}

func TestWriteTo(t *testing.T) {
	lex := NewEmptyLexicon()
	lex.SetWord("zebra", []string{"NN"})
	lex.SetWord("run", []string{"VB", "NN"})

	var buf bytes.Buffer
	n, err := lex.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	want := "run VB NN\nzebra NN\n"
	if buf.String() != want {
		t.Errorf("WriteTo wrote %q, want %q", buf.String(), want)
	}
	if n != int64(len(want)) {
		t.Errorf("WriteTo returned %d, want %d", n, len(want))
	}

	reloaded := NewEmptyLexicon()
	if err := reloaded.Load(&buf); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(reloaded.Words(), lex.Words()) {
		t.Errorf("reloaded words %v, want %v", reloaded.Words(), lex.Words())
	}
}

func TestStats(t *testing.T) {
	empty := NewEmptyLexicon().Stats()
	if empty != (LexiconStats{}) {
		t.Errorf("empty stats = %+v", empty)
	}

	lex := NewEmptyLexicon()
	lex.SetWord("zebra", []string{"VB", "NN", "VBP"})
	lex.SetWord("cat", []string{"NN"})
	lex.SetWord("purple", []string{"JJ", "RB"})
	lex.SetWord("the", []string{"DT"})
	lex.SetWord(".", []string{"."})

	s := lex.Stats()
	if s.Entries != 5 {
		t.Errorf("Entries = %d, want 5", s.Entries)
	}
	if s.DistinctTags != 7 {
		t.Errorf("DistinctTags = %d, want 7", s.DistinctTags)
	}
	if s.MeanTags != 1.6 {
		t.Errorf("MeanTags = %v, want 1.6", s.MeanTags)
	}
	if s.MaxTags != 3 {
		t.Errorf("MaxTags = %d, want 3", s.MaxTags)
	}
	if s.Ambiguous != 2 {
		t.Errorf("Ambiguous = %d, want 2", s.Ambiguous)
	}
	if s.StopWords != 1 {
		t.Errorf("StopWords = %d, want 1", s.StopWords)
	}
}

func TestLoadLongLine(t *testing.T) {
	long := strings.Repeat("x", 2<<20)
	finder := lexiconIn(t, "run VB\n"+long+" NN\nwalk VB\n")
	lex := NewCustomLexicon(UsingFinder(finder))

	if lex.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", lex.Len())
	}
	if got := lex.Get("run", nil); !reflect.DeepEqual(got, []string{"VB"}) {
		t.Errorf("Get(run) = %v, want [VB]", got)
	}
	if got := lex.Get("walk", nil); !reflect.DeepEqual(got, []string{"VB"}) {
		t.Errorf("Get(walk) = %v, want [VB]", got)
	}
	if got := lex.Get(long, nil); !reflect.DeepEqual(got, []string{"NN"}) {
		t.Errorf("Get(long word) = %v, want [NN]", got)
	}
}

func TestLoadSplitsOnASCIISpaceOnly(t *testing.T) {
	lex := NewEmptyLexicon()
	contents := "caf\u00a0au\u00a0lait NN\r\nlone\u00a0word\nrun\vVB\fNN\n"
	if err := lex.Load(strings.NewReader(contents)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := lex.Get("caf\u00a0au\u00a0lait", nil); !reflect.DeepEqual(got, []string{"NN"}) {
		t.Errorf("Get(caf au lait) = %v, want [NN]", got)
	}
	if got := lex.Get("lone", nil); got != nil {
		t.Errorf("Get(lone) = %v, want nil", got)
	}
	if got := lex.Get("run", nil); !reflect.DeepEqual(got, []string{"VB", "NN"}) {
		t.Errorf("Get(run) = %v, want [VB NN]", got)
	}
	if lex.Len() != 2 {
		t.Errorf("expected 2 entries, got %d: %q", lex.Len(), lex.Words())
	}
}

func TestNewCustomLexiconLogsWhenFound(t *testing.T) {
	const notice = "custom lexicon found, loading"

	tests := []struct {
		name   string
		finder *Finder
		want   bool
	}{
		{"found", lexiconIn(t, "run NN\n"), true},
		{"missing", NewFinder(WithWorkDir(t.TempDir()), WithEnv(envMap(nil))), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

			NewCustomLexicon(UsingFinder(tt.finder), WithLexiconLogger(logger))

			if got := strings.Contains(buf.String(), notice); got != tt.want {
				t.Errorf("notice logged = %v, want %v; log:\n%s", got, tt.want, buf.String())
			}
		})
	}
}
