package cli

import (
	"context"
	"errors"
	"io"

	"github.com/NikitaCOEUR/fastcomplete/internal/completion"
	"github.com/NikitaCOEUR/fastcomplete/internal/config"
	"github.com/NikitaCOEUR/fastcomplete/internal/derrors"
	"github.com/NikitaCOEUR/fastcomplete/internal/logger"
	"github.com/NikitaCOEUR/fastcomplete/internal/tokenizer"
)

// QueryParams contains parameters for the Query command
type QueryParams struct {
	Config   *config.Config
	Log      *logger.Logger
	Line     string // Command line, completed at its end
	TreePath string // Overrides the configured tree when set
	// Fallback consults the configured full CLI when the tree cannot answer
	Fallback bool
	Out      io.Writer
}

// Query completes a literal command line and prints one candidate per line.
// Unlike Complete it reports failures, which makes it the tool for checking a
// tree by hand. A request the tree cannot answer is reported as a comment.
func Query(ctx context.Context, params QueryParams) error {
	out := stdout(params.Out)
	log := params.Log
	if log == nil {
		log = logger.Discard()
	}

	words, err := tokenizer.Split(params.Line, -1)
	if err != nil {
		return err
	}
	log.Debug().Strs("words", words).Msg("Split command line")

	result, err := newEngine(params.Config, params.TreePath, log).Complete(ctx, completion.Request{
		Line:       params.Line,
		Words:      words,
		Separator:  "\n",
		NoFallback: !params.Fallback,
	})

	var cannot *derrors.CannotHandleCompletionError
	switch {
	case errors.As(err, &cannot) && cannot.Reason != derrors.ReasonNoTree:
		printf(out, "# cannot complete statically (%s)\n", cannot.Reason)
		return nil
	case err != nil:
		return err
	}

	if result.Source == completion.SourceFallback {
		printf(out, "# from fallback (%s)\n", result.Reason)
	}
	for _, c := range result.Candidates {
		printf(out, "%s\n", c)
	}
	return nil
}
