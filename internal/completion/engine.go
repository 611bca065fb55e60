package completion

import (
	"context"
	"errors"

	"github.com/NikitaCOEUR/fastcomplete/internal/derrors"
)

// Engine answers completion requests from the static tree first and the
// fallback second
type Engine struct {
	load     TreeLoader
	fallback *Fallback
}

// NewEngine creates an engine. A nil fallback disables it.
func NewEngine(load TreeLoader, fallback *Fallback) *Engine {
	return &Engine{load: load, fallback: fallback}
}

// Complete answers req. Only a *derrors.CannotHandleCompletionError from the
// static tree, including a tree that cannot be loaded, reaches the fallback.
// When the fallback is not used, that error is returned as is.
func (e *Engine) Complete(ctx context.Context, req Request) (*Result, error) {
	candidates, err := e.completeStatic(req.Words)
	if err == nil {
		return &Result{Candidates: candidates, Source: SourceStatic}, nil
	}

	var cannot *derrors.CannotHandleCompletionError
	if !errors.As(err, &cannot) || req.NoFallback || !e.fallback.Enabled() {
		return nil, err
	}

	candidates, fbErr := e.fallback.Complete(ctx, req.Line, req.Separator)
	if fbErr != nil {
		return nil, errors.Join(err, fbErr)
	}
	return &Result{Candidates: candidates, Source: SourceFallback, Reason: cannot.Reason}, nil
}

func (e *Engine) completeStatic(words []string) ([]string, error) {
	if e.load == nil {
		return nil, derrors.NewCannotHandleError(derrors.ReasonNoTree, "no static tree configured", nil)
	}
	root, err := e.load()
	if err != nil {
		return nil, derrors.NewCannotHandleError(derrors.ReasonNoTree, "static tree unavailable", err)
	}
	return NewMatcher(root).Complete(words)
}
