package texta

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/jdkato/prose/tag"
)

// A ToolkitOpt configures a Toolkit.
type ToolkitOpt func(tk *Toolkit)

// UsingLexicon sets the custom lexicon consulted before the tagger model.
func UsingLexicon(lexicon *CustomLexicon) ToolkitOpt {
	return func(tk *Toolkit) {
		tk.lexicon = lexicon
	}
}

// UsingTokenizer specifies the Tokenizer to use.
func UsingTokenizer(tokenizer Tokenizer) ToolkitOpt {
	return func(tk *Toolkit) {
		tk.tokenizer = tokenizer
	}
}

// WithBackend sets the processor that handles chunking, lemmatisation and
// predicate extraction.
func WithBackend(backend Processor) ToolkitOpt {
	return func(tk *Toolkit) {
		tk.backend = backend
	}
}

// WithToolkitLogger sets the toolkit's logger.
func WithToolkitLogger(logger *slog.Logger) ToolkitOpt {
	return func(tk *Toolkit) {
		if logger != nil {
			tk.logger = logger
		}
	}
}

// Toolkit is the in-process Processor. It segments, tokenizes and tags text
// itself and forwards the remaining stages to an optional backend.
type Toolkit struct {
	segmenter *punktSentenceTokenizer
	tokenizer Tokenizer
	lexicon   *CustomLexicon
	backend   Processor
	logger    *slog.Logger

	taggerOnce sync.Once
	tagger     *tag.PerceptronTagger
}

var _ Processor = (*Toolkit)(nil)

// NewToolkit creates a Toolkit. Unless UsingLexicon is given, the custom
// lexicon is located and loaded the way NewCustomLexicon does.
func NewToolkit(opts ...ToolkitOpt) (*Toolkit, error) {
	segmenter, err := newPunktSentenceTokenizer()
	if err != nil {
		return nil, &OpError{Op: "toolkit.new", Kind: KindInvalidConfig, Err: err}
	}

	tk := &Toolkit{
		segmenter: segmenter,
		tokenizer: NewIterTokenizer(),
		logger:    discardLogger(),
	}
	for _, applyOpt := range opts {
		applyOpt(tk)
	}
	if tk.lexicon == nil {
		tk.lexicon = NewCustomLexicon(WithLexiconLogger(tk.logger))
	}
	return tk, nil
}

// Lexicon returns the custom lexicon the toolkit tags with.
func (tk *Toolkit) Lexicon() *CustomLexicon {
	return tk.lexicon
}

// SplitSentences segments text into trimmed, non-empty sentences.
func (tk *Toolkit) SplitSentences(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sents := tk.segmenter.segmentWithOffsets(text)
	out := make([]string, len(sents))
	for i, s := range sents {
		out[i] = s.Text
	}
	return out, nil
}

// Tokenize returns the sentence's tokens separated by single spaces.
func (tk *Toolkit) Tokenize(ctx context.Context, sentence string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return joinTokens(tk.tokenizer.Tokenize(sentence)), nil
}

// TagTokenized tags space-separated tokens, returning word/TAG pairs. Words
// present in the custom lexicon take their first listed tag; all others are
// tagged by the averaged perceptron model.
func (tk *Toolkit) TagTokenized(ctx context.Context, tokenized string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	words := strings.Fields(tokenized)
	if len(words) == 0 {
		return "", nil
	}

	predicted := tk.perceptron().Tag(words)
	tokens := make([]*Token, len(words))
	for i, word := range words {
		tok := &Token{Text: word}
		if i < len(predicted) {
			tok.Tag = predicted[i].Tag
		}
		if tags := tk.lexicon.Get(word, nil); len(tags) > 0 {
			tok.Tag = tags[0]
		}
		tokens[i] = tok
	}
	return joinTokens(tokens), nil
}

// ChunkTagged forwards to the backend.
func (tk *Toolkit) ChunkTagged(ctx context.Context, tagged string) (string, error) {
	if tk.backend == nil {
		return "", unsupported("toolkit.chunk_tagged")
	}
	return tk.backend.ChunkTagged(ctx, tagged)
}

// LemmatiseTagged forwards to the backend.
func (tk *Toolkit) LemmatiseTagged(ctx context.Context, tagged string) (string, error) {
	if tk.backend == nil {
		return "", unsupported("toolkit.lemmatise_tagged")
	}
	return tk.backend.LemmatiseTagged(ctx, tagged)
}

// JistPredicates forwards to the backend.
func (tk *Toolkit) JistPredicates(ctx context.Context, text string) ([][]string, error) {
	if tk.backend == nil {
		return nil, unsupported("toolkit.jist_predicates")
	}
	return tk.backend.JistPredicates(ctx, text)
}

// perceptron loads the tagger model on first use.
func (tk *Toolkit) perceptron() *tag.PerceptronTagger {
	tk.taggerOnce.Do(func() {
		tk.logger.Debug("toolkit.load_tagger")
		tk.tagger = tag.NewPerceptronTagger()
	})
	return tk.tagger
}
