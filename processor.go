package texta

import "context"

// A Processor is a linguistic toolkit. Texta only formats what a Processor
// produces; it never tags, chunks or lemmatises text itself.
//
// Tokenized, tagged, chunked and lemmatised sentences travel as single
// strings in the toolkit's own notation (for example "These/DT/These
// sentences/NNS/sentence" for lemmatised text).
type Processor interface {
	// SplitSentences segments raw text into sentences.
	SplitSentences(ctx context.Context, text string) ([]string, error)

	// Tokenize splits a sentence into space-separated tokens.
	Tokenize(ctx context.Context, sentence string) (string, error)

	// TagTokenized attaches a Penn Treebank tag to every token.
	TagTokenized(ctx context.Context, tokenized string) (string, error)

	// ChunkTagged groups tagged tokens into adjective, noun and verb chunks.
	ChunkTagged(ctx context.Context, tagged string) (string, error)

	// LemmatiseTagged appends the lemma to every tagged token.
	LemmatiseTagged(ctx context.Context, tagged string) (string, error)

	// JistPredicates returns, for each sentence of text, its
	// predicate-argument structures such as ("verb" "subject" "obj1").
	JistPredicates(ctx context.Context, text string) ([][]string, error)
}

func unsupported(op string) error {
	return &OpError{Op: op, Kind: KindUnsupported, Err: ErrUnsupported}
}
