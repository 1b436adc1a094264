package texta

import "strings"

// A Token represents an individual token of text such as a word or punctuation
// symbol.
type Token struct {
	Tag   string // The token's part-of-speech tag.
	Text  string // The token's actual content.
	Start int    // Start position in the sanitized sentence
	End   int    // End position in the sanitized sentence
}

// String renders the token in word/TAG notation, or just the word when it
// has not been tagged.
func (t Token) String() string {
	if t.Tag == "" {
		return t.Text
	}
	return t.Text + "/" + t.Tag
}

// A Sentence represents a segmented portion of text.
type Sentence struct {
	Text  string // The sentence's text.
	Start int    // Start position in original text
	End   int    // End position in original text
}

// String returns the text content of the sentence
func (s Sentence) String() string {
	return s.Text
}

// joinTokens renders tokens separated by single spaces.
func joinTokens(tokens []*Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}
