package texta

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Operation names passed as the last argument to an external toolkit.
const (
	OpSplitSentences  = "split_sentences"
	OpTokenize        = "tokenize"
	OpTagTokenized    = "tag_tokenized"
	OpChunkTagged     = "chunk_tagged"
	OpLemmatiseTagged = "lemmatise_tagged"
	OpJistPredicates  = "jist_predicates"
)

// CommandOpt configures a CommandProcessor.
type CommandOpt func(cp *CommandProcessor)

// WithCommandTimeout bounds every invocation. Zero disables the bound.
func WithCommandTimeout(d time.Duration) CommandOpt {
	return func(cp *CommandProcessor) {
		cp.timeout = d
	}
}

// WithCommandEnv sets extra KEY=VALUE pairs for the child process.
func WithCommandEnv(env []string) CommandOpt {
	return func(cp *CommandProcessor) {
		cp.env = env
	}
}

// WithCommandLogger sets the logger used to trace invocations.
func WithCommandLogger(logger *slog.Logger) CommandOpt {
	return func(cp *CommandProcessor) {
		if logger != nil {
			cp.logger = logger
		}
	}
}

// CommandProcessor is a Processor backed by an external toolkit program.
// Each operation runs the program once as `name args... <operation>`,
// writing the input to its stdin and reading the result from its stdout.
type CommandProcessor struct {
	name    string
	args    []string
	env     []string
	timeout time.Duration
	logger  *slog.Logger
}

var _ Processor = (*CommandProcessor)(nil)

// NewCommandProcessor returns a CommandProcessor for command, which holds
// the program followed by any fixed arguments.
func NewCommandProcessor(command []string, opts ...CommandOpt) (*CommandProcessor, error) {
	if len(command) == 0 || strings.TrimSpace(command[0]) == "" {
		return nil, &OpError{
			Op:   "command.new",
			Kind: KindInvalidConfig,
			Err:  errors.New("toolkit command is empty"),
		}
	}

	cp := &CommandProcessor{
		name:    command[0],
		args:    append([]string(nil), command[1:]...),
		timeout: 30 * time.Second,
		logger:  discardLogger(),
	}
	for _, applyOpt := range opts {
		applyOpt(cp)
	}
	return cp, nil
}

// SplitSentences returns each non-empty output line as a sentence.
func (cp *CommandProcessor) SplitSentences(ctx context.Context, text string) ([]string, error) {
	out, err := cp.run(ctx, OpSplitSentences, text)
	if err != nil {
		return nil, err
	}

	var sents []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			sents = append(sents, line)
		}
	}
	return sents, nil
}

func (cp *CommandProcessor) Tokenize(ctx context.Context, sentence string) (string, error) {
	return cp.runTrimmed(ctx, OpTokenize, sentence)
}

func (cp *CommandProcessor) TagTokenized(ctx context.Context, tokenized string) (string, error) {
	return cp.runTrimmed(ctx, OpTagTokenized, tokenized)
}

func (cp *CommandProcessor) ChunkTagged(ctx context.Context, tagged string) (string, error) {
	return cp.runTrimmed(ctx, OpChunkTagged, tagged)
}

func (cp *CommandProcessor) LemmatiseTagged(ctx context.Context, tagged string) (string, error) {
	return cp.runTrimmed(ctx, OpLemmatiseTagged, tagged)
}

// JistPredicates reads blank-line separated blocks, one per sentence, with
// one predicate structure per line.
func (cp *CommandProcessor) JistPredicates(ctx context.Context, text string) ([][]string, error) {
	out, err := cp.run(ctx, OpJistPredicates, text)
	if err != nil {
		return nil, err
	}
	return parseBlocks(out), nil
}

func (cp *CommandProcessor) runTrimmed(ctx context.Context, op, input string) (string, error) {
	out, err := cp.run(ctx, op, input)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (cp *CommandProcessor) run(ctx context.Context, op, input string) (string, error) {
	if cp.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cp.timeout)
		defer cancel()
	}

	args := append(append([]string(nil), cp.args...), op)
	cmd := exec.CommandContext(ctx, cp.name, args...)
	cmd.Stdin = strings.NewReader(input)
	if len(cp.env) > 0 {
		cmd.Env = append(cmd.Environ(), cp.env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	cp.logger.Debug("command.run",
		"op", op,
		"command", cp.name,
		"duration", time.Since(start),
		"err", err,
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		} else if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = errors.Join(err, errors.New(msg))
		}
		return "", &OpError{
			Op:   "command." + op,
			Kind: KindExecution,
			Path: cp.name,
			Err:  err,
		}
	}
	return stdout.String(), nil
}

// parseBlocks splits out into groups of non-empty lines separated by one or
// more blank lines.
func parseBlocks(out string) [][]string {
	var (
		blocks  [][]string
		current []string
	)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}
