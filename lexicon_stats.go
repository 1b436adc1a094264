package texta

import (
	"strings"
	"unicode"

	"github.com/bbalet/stopwords"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LexiconStats summarizes a CustomLexicon.
type LexiconStats struct {
	Entries      int     // Number of words
	DistinctTags int     // Number of distinct tags across all entries
	MeanTags     float64 // Mean number of tags per word
	MaxTags      int     // Largest number of tags on a single word
	Ambiguous    int     // Words with more than one tag
	StopWords    int     // Entries overriding an English stop word
}

// Stats computes summary statistics over the lexicon's entries.
func (cl *CustomLexicon) Stats() LexiconStats {
	cl.mutex.RLock()
	defer cl.mutex.RUnlock()

	stats := LexiconStats{Entries: len(cl.words)}
	if stats.Entries == 0 {
		return stats
	}

	counts := make([]float64, 0, len(cl.words))
	tags := make(map[string]bool)
	for word, wordTags := range cl.words {
		if isStopWord(word) {
			stats.StopWords++
		}
		counts = append(counts, float64(len(wordTags)))
		if len(wordTags) > 1 {
			stats.Ambiguous++
		}
		for _, tag := range wordTags {
			tags[tag] = true
		}
	}

	stats.DistinctTags = len(tags)
	stats.MeanTags = stat.Mean(counts, nil)
	stats.MaxTags = int(floats.Max(counts))
	return stats
}

// isStopWord reports whether word is an English stop word. The stopwords
// package only exposes filtering, so a word counts when filtering removes
// it. Filtering also drops non-letters, hence the letter check.
func isStopWord(word string) bool {
	if strings.IndexFunc(word, unicode.IsLetter) < 0 {
		return false
	}
	cleaned := stopwords.CleanString(word, "en", false)
	return strings.TrimSpace(cleaned) == ""
}
