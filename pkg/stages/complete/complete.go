// Package complete hands a finished export to the library.
package complete

import (
	"context"
	"errors"

	"github.com/user/clipmerge/pkg/pipeline"
	"github.com/user/clipmerge/pkg/ports"
)

// Handler decides what happens to an export once it is terminal.
type Handler struct {
	library ports.Library
	logger  ports.Logger
}

// NewHandler creates a completion handler.
func NewHandler(library ports.Library, logger ports.Logger) *Handler {
	return &Handler{
		library: library,
		logger:  logger.WithComponent("complete"),
	}
}

// Handle saves a successful export as a new asset when the grant allows it.
// Unsuccessful exports are skipped without touching the library.
func (h *Handler) Handle(ctx context.Context, export pipeline.ExportResult, grant ports.Grant) pipeline.CompletionResult {
	if export.Status != pipeline.ExportSucceeded {
		return pipeline.CompletionResult{Outcome: pipeline.OutcomeSkipped, Err: export.Err}
	}

	if !grant.Authorized() {
		h.logger.Warn("Library access is %s; keeping %s only on disk", grant.Status(), export.OutputPath)
		return pipeline.CompletionResult{
			Outcome: pipeline.OutcomeNotAuthorized,
			Err:     pipeline.NewStageError(pipeline.ErrAuthorizationDenied, "save to library", errors.New(string(grant.Status()))),
		}
	}

	asset, err := h.library.Save(ctx, grant, export.OutputPath)
	if err != nil {
		h.logger.Error("Failed to save %s to library: %v", export.OutputPath, err)
		return pipeline.CompletionResult{
			Outcome: pipeline.OutcomePersistenceFailed,
			Err:     pipeline.NewStageError(pipeline.ErrPersistence, "save to library", err),
		}
	}

	h.logger.Info("Saved %s as asset %s", export.OutputPath, asset.ID)
	return pipeline.CompletionResult{Outcome: pipeline.OutcomeSaved, Asset: &asset}
}

// Stage wraps a Handler as a pipeline stage.
type Stage struct {
	handler *Handler
}

// NewStage creates a new completion stage.
func NewStage(handler *Handler) *Stage {
	return &Stage{
		handler: handler,
	}
}

// Execute never fails; the outcome carries any error.
func (s *Stage) Execute(ctx context.Context, input pipeline.CompletionInput) (pipeline.CompletionResult, error) {
	return s.handler.Handle(ctx, input.Export, input.Grant), nil
}
