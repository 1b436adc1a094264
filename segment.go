package texta

import (
	"fmt"
	"strings"

	"gopkg.in/neurosnap/sentences.v1/english"
)

// punktSentenceTokenizer segments text with the Punkt model trained on
// English.
type punktSentenceTokenizer struct {
	segment func(text string) []Sentence
}

func newPunktSentenceTokenizer() (*punktSentenceTokenizer, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("error loading punkt model: %w", err)
	}

	return &punktSentenceTokenizer{
		segment: func(text string) []Sentence {
			var sents []Sentence
			for _, s := range tokenizer.Tokenize(text) {
				trimmed := strings.TrimSpace(s.Text)
				if trimmed == "" {
					continue
				}
				sents = append(sents, Sentence{Text: trimmed, Start: s.Start, End: s.End})
			}
			return sents
		},
	}, nil
}

// segmentWithOffsets returns the sentences of text, skipping empty ones.
func (p *punktSentenceTokenizer) segmentWithOffsets(text string) []Sentence {
	return p.segment(text)
}
