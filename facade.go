package texta

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// A FacadeOpt represents a setting that changes how a Facade processes text.
//
// For example, it might shorten the per-call timeout:
//
//	f := texta.NewFacade(toolkit, texta.WithTimeout(5*time.Second))
type FacadeOpt func(opts *FacadeOpts)

// FacadeOpts controls Facade processing.
type FacadeOpts struct {
	Timeout          time.Duration          // Per-call processing timeout
	ProgressCallback func(progress float64) // Progress reporting callback
}

// WithTimeout sets a timeout for each Facade call. Zero disables it.
func WithTimeout(timeout time.Duration) FacadeOpt {
	return func(opts *FacadeOpts) {
		opts.Timeout = timeout
	}
}

// WithProgressCallback sets a callback receiving the fraction of sentences
// processed so far.
func WithProgressCallback(callback func(float64)) FacadeOpt {
	return func(opts *FacadeOpts) {
		opts.ProgressCallback = callback
	}
}

var defaultFacadeOpts = FacadeOpts{
	Timeout: 30 * time.Second,
}

// Facade turns raw text into newline-delimited toolkit output. Every
// operation splits the text into sentences, then tokenizes and tags each
// sentence before any further stage.
type Facade struct {
	proc Processor
	opts FacadeOpts
}

// NewFacade creates a Facade over proc.
//
// For example,
//
//	tk, err := texta.NewToolkit()
//	if err != nil {
//		return err
//	}
//	f := texta.NewFacade(tk)
//	tagged, err := f.TagText(ctx, "The cat sat. It purred.")
func NewFacade(proc Processor, opts ...FacadeOpt) *Facade {
	base := defaultFacadeOpts
	for _, applyOpt := range opts {
		applyOpt(&base)
	}
	return &Facade{proc: proc, opts: base}
}

// TagText returns one tagged sentence per line.
func (f *Facade) TagText(ctx context.Context, text string) (string, error) {
	return f.eachSentence(ctx, "facade.tag_text", text, nil)
}

// ChunkText returns one chunked sentence per line.
func (f *Facade) ChunkText(ctx context.Context, text string) (string, error) {
	return f.eachSentence(ctx, "facade.chunk_text", text, f.proc.ChunkTagged)
}

// LemmatiseText returns one lemmatised sentence per line.
func (f *Facade) LemmatiseText(ctx context.Context, text string) (string, error) {
	return f.eachSentence(ctx, "facade.lemmatise_text", text, f.proc.LemmatiseTagged)
}

// JistPredicates returns one predicate-argument structure per line, with a
// blank line between the structures of consecutive sentences.
func (f *Facade) JistPredicates(ctx context.Context, text string) (string, error) {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	preds, err := f.proc.JistPredicates(ctx, text)
	if err != nil {
		return "", fmt.Errorf("facade.jist_predicates: %w", err)
	}

	blocks := make([]string, len(preds))
	for i, sentence := range preds {
		blocks[i] = strings.Join(sentence, "\n")
	}
	f.reportProgress(1.0)
	return strings.Join(blocks, "\n\n"), nil
}

type stageFunc func(ctx context.Context, input string) (string, error)

// eachSentence runs split, tokenize, tag and then the optional final stage
// over every sentence of text.
func (f *Facade) eachSentence(ctx context.Context, op, text string, final stageFunc) (string, error) {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	sentences, err := f.proc.SplitSentences(ctx, text)
	if err != nil {
		return "", fmt.Errorf("%s: split sentences: %w", op, err)
	}

	stages := []stageFunc{f.proc.Tokenize, f.proc.TagTokenized}
	if final != nil {
		stages = append(stages, final)
	}

	lines := make([]string, 0, len(sentences))
	for i, sentence := range sentences {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%s: %w", op, ctx.Err())
		default:
		}

		out := sentence
		for _, stage := range stages {
			if out, err = stage(ctx, out); err != nil {
				return "", fmt.Errorf("%s: sentence %d: %w", op, i+1, err)
			}
		}
		lines = append(lines, out)
		f.reportProgress(float64(i+1) / float64(len(sentences)))
	}

	return strings.Join(lines, "\n"), nil
}

func (f *Facade) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if f.opts.Timeout > 0 {
		return context.WithTimeout(ctx, f.opts.Timeout)
	}
	return context.WithCancel(ctx)
}

func (f *Facade) reportProgress(p float64) {
	if f.opts.ProgressCallback != nil {
		f.opts.ProgressCallback(p)
	}
}
