package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/NikitaCOEUR/fastcomplete/internal/completion"
	"github.com/NikitaCOEUR/fastcomplete/internal/config"
	"github.com/NikitaCOEUR/fastcomplete/internal/derrors"
	"github.com/NikitaCOEUR/fastcomplete/internal/logger"
	"github.com/NikitaCOEUR/fastcomplete/internal/output"
	"github.com/NikitaCOEUR/fastcomplete/internal/timing"
	"github.com/NikitaCOEUR/fastcomplete/internal/tokenizer"
	"github.com/NikitaCOEUR/fastcomplete/internal/trace"
	"github.com/NikitaCOEUR/fastcomplete/internal/tree"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	Config *config.Config
	Log    *logger.Logger

	Line      string // COMP_LINE
	Point     int    // COMP_POINT in characters, negative for the end of the line
	Separator string // _ARGCOMPLETE_IFS
	// NoFallback is set when this process is itself a fallback child
	NoFallback bool

	// Out receives the candidates; descriptor 8 when nil
	Out io.Writer
}

// ParamsFromEnv reads the completion protocol variables. ok is false when the
// process was not started by a shell completion request.
func ParamsFromEnv(lookupEnv func(string) (string, bool)) (params CompleteParams, ok bool) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	getenv := func(key string) string {
		v, _ := lookupEnv(key)
		return v
	}

	line, set := lookupEnv(completion.LineEnvVar)
	if !set {
		return CompleteParams{}, false
	}

	point := -1
	if p, err := strconv.Atoi(getenv(completion.PointEnvVar)); err == nil {
		point = p
	}

	return CompleteParams{
		Line:       line,
		Point:      point,
		Separator:  output.Separator(getenv),
		NoFallback: getenv(completion.NoFallbackEnvVar) != "",
	}, true
}

// Complete answers a shell completion request. It never fails on a request it
// cannot answer: the shell gets no candidates and falls back to its defaults.
func Complete(ctx context.Context, params CompleteParams) error {
	defer trace.Region(ctx, "cli.Complete")()

	log := params.Log
	if log == nil {
		log = logger.Discard()
	}
	if params.Separator == "" {
		params.Separator = output.DefaultIFS
	}

	timer := timing.NewTimer()
	candidates := complete(ctx, params, log, timer)

	if len(candidates) == 0 {
		log.Debug().Str("timings", timer.Summary()).Msg("No completions")
		return nil
	}

	out := params.Out
	if out == nil {
		fd, err := output.OpenFD(output.FD)
		if err != nil {
			log.Warn().Err(err).Msg("Cannot write completions")
			return nil
		}
		defer func() { _ = fd.Close() }()
		out = fd
	}

	if err := output.New(out, params.Separator).Write(candidates); err != nil {
		log.Warn().Err(err).Msg("Cannot write completions")
		return nil
	}
	timer.Mark("write")

	log.Debug().
		Int("candidates", len(candidates)).
		Str("timings", timer.Summary()).
		Msg("Completed")

	return nil
}

// complete runs the tokenizer and the completion engine
func complete(ctx context.Context, params CompleteParams, log *logger.Logger, timer *timing.Timer) []string {
	log.Debug().
		Str("line", params.Line).
		Int("point", params.Point).
		Msg("Received completion request")

	var (
		words []string
		err   error
	)
	trace.WithRegion(ctx, "tokenize", func() {
		words, err = tokenizer.Split(params.Line, params.Point)
	})
	timer.Mark("tokenize")
	if err != nil {
		log.Debug().Err(err).Msg("Cannot tokenize command line")
		return nil
	}
	log.Debug().Strs("words", words).Msg("Split command line")

	var result *completion.Result
	trace.WithRegion(ctx, "engine.Complete", func() {
		result, err = newEngine(params.Config, "", log).Complete(ctx, completion.Request{
			Line:       tokenizer.Truncate(params.Line, params.Point),
			Words:      words,
			Separator:  params.Separator,
			NoFallback: params.NoFallback,
		})
	})
	timer.Mark("complete")
	if err != nil {
		var cannot *derrors.CannotHandleCompletionError
		if errors.As(err, &cannot) {
			log.Debug().Str("reason", cannot.Reason).Err(err).Msg("Static tree cannot answer")
		} else {
			log.Debug().Err(err).Msg("Completion failed")
		}
		return nil
	}

	log.Debug().
		Str("source", result.Source).
		Str("reason", result.Reason).
		Int("candidates", len(result.Candidates)).
		Msg("Got completions")
	return result.Candidates
}

// newEngine wires the configured tree (or treePath when set) and fallback into an engine
func newEngine(cfg *config.Config, treePath string, log *logger.Logger) *completion.Engine {
	load := func() (*tree.Node, error) {
		path, err := resolveTreePath(cfg, treePath)
		if err != nil {
			return nil, err
		}
		root, err := tree.Load(path)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("tree", path).Msg("Loaded static tree")
		return root, nil
	}

	fallback := completion.NewFallback("", 0)
	if cfg != nil {
		fallback = completion.NewFallback(cfg.Fallback.Command, cfg.Fallback.Timeout)
	}
	return completion.NewEngine(load, fallback)
}
