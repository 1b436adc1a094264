package texta

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenTester reports whether a token satisfies some condition.
type TokenTester func(string) bool

// A Tokenizer splits a sentence into tokens.
type Tokenizer interface {
	Tokenize(string) []*Token
}

// iterTokenizer splits a sentence into words by peeling prefixes, suffixes
// and contractions off each whitespace-delimited span.
type iterTokenizer struct {
	specialRE      *regexp.Regexp
	sanitizer      *strings.Replacer
	contractions   []string
	splitCases     []string
	suffixes       []string
	prefixes       []string
	emoticons      map[string]bool
	isUnsplittable TokenTester
}

// TokenizerOptFunc configures the iterTokenizer.
type TokenizerOptFunc func(*iterTokenizer)

// UsingIsUnsplittable gives a function that tests whether a token must be
// kept whole.
func UsingIsUnsplittable(x TokenTester) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.isUnsplittable = x
	}
}

// UsingSpecialRE replaces the regexp matching abbreviations such as "U.S.".
func UsingSpecialRE(x *regexp.Regexp) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.specialRE = x
	}
}

// UsingSuffixes replaces the trailing characters split off a token.
func UsingSuffixes(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.suffixes = x
	}
}

// UsingPrefixes replaces the leading characters split off a token.
func UsingPrefixes(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.prefixes = x
	}
}

// UsingContractions replaces the contraction endings split off a token.
func UsingContractions(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.contractions = x
	}
}

// NewIterTokenizer returns the default rule-based tokenizer.
func NewIterTokenizer(opts ...TokenizerOptFunc) *iterTokenizer {
	tok := &iterTokenizer{
		contractions:   contractions,
		emoticons:      emoticons,
		isUnsplittable: func(_ string) bool { return false },
		prefixes:       prefixes,
		sanitizer:      sanitizer,
		specialRE:      internalRE,
		suffixes:       suffixes,
	}
	for _, applyOpt := range opts {
		applyOpt(tok)
	}
	tok.splitCases = append(tok.splitCases, tok.contractions...)
	return tok
}

func (t *iterTokenizer) isSpecial(token string) bool {
	return t.emoticons[token] || t.specialRE.MatchString(token) || t.isUnsplittable(token)
}

// split breaks one whitespace-free span, starting at byte offset base, into
// tokens.
func (t *iterTokenizer) split(span string, base int) []*Token {
	var head, tail []*Token

	emit := func(text string, at int) {
		if strings.TrimSpace(text) != "" {
			head = append(head, &Token{Text: text, Start: at, End: at + len(text)})
		}
	}

	last := 0
	for span != "" && utf8.RuneCountInString(span) != last {
		if t.isSpecial(span) {
			emit(span, base)
			break
		}
		last = utf8.RuneCountInString(span)

		if hasAnyPrefix(span, t.prefixes) {
			// $100 -> [$, 100]
			emit(span[:1], base)
			span, base = span[1:], base+1
		} else if idx := hasAnyIndex(strings.ToLower(span), t.splitCases); idx > -1 {
			// they'll -> [they, 'll], don't -> [do, n't]
			emit(span[:idx], base)
			span, base = span[idx:], base+idx
		} else if hasAnySuffix(span, t.suffixes) {
			// Well) -> [Well, )]
			end := base + len(span) - 1
			tail = append([]*Token{{Text: span[len(span)-1:], Start: end, End: end + 1}}, tail...)
			span = span[:len(span)-1]
		} else {
			emit(span, base)
			break
		}
	}

	return append(head, tail...)
}

// Tokenize splits a sentence into tokens, recording each token's byte
// offsets in the sanitized text.
func (t *iterTokenizer) Tokenize(text string) []*Token {
	var tokens []*Token

	clean := t.sanitizer.Replace(text)
	start := -1
	for i, r := range clean {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, t.split(clean[start:i], start)...)
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, t.split(clean[start:], start)...)
	}

	return tokens
}

func hasAnyPrefix(s string, prefixes []string) bool {
	n := len(s)
	for _, prefix := range prefixes {
		if n > len(prefix) && strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	n := len(s)
	for _, suffix := range suffixes {
		if n > len(suffix) && strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// hasAnyIndex returns the position of the first split case found in s, or
// -1. A case at position 0 does not count since there would be nothing to
// split off.
func hasAnyIndex(s string, cases []string) int {
	for _, c := range cases {
		if idx := strings.Index(s, c); idx > 0 {
			return idx
		}
	}
	return -1
}

var internalRE = regexp.MustCompile(`^(?:[A-Za-z]\.){2,}$|^[A-Z][a-z]{1,2}\.$`)
var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'")
var contractions = []string{"'ll", "'s", "'re", "'m", "n't"}
var suffixes = []string{",", ")", `"`, "]", "!", ";", ".", "?", ":", "'"}
var prefixes = []string{"$", "(", `"`, "["}
var emoticons = map[string]bool{
	"(-8": true, "(-;": true, "(:": true, "(=": true, "-__-": true,
	"8-)": true, "8-D": true, ":(": true, ":-)": true, ":-(": true,
	":-/": true, ":-P": true, ":-p": true, ":-|": true, ":)": true,
	":D": true, ":P": true, ":]": true, ":o": true, ";)": true,
	";-)": true, "=(": true, "=)": true, "=D": true, "O_o": true,
	"o_O": true, "xD": true, "^_^": true, "¯\\(ツ)/¯": true,
}
