package complete

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/user/clipmerge/pkg/adapters/logger"
	"github.com/user/clipmerge/pkg/mocks"
	"github.com/user/clipmerge/pkg/pipeline"
	"github.com/user/clipmerge/pkg/ports"
)

var (
	succeeded = pipeline.ExportResult{Status: pipeline.ExportSucceeded, OutputPath: "/out/merged.mov", FileSize: 42}
	granted   = ports.NewGrant(ports.AuthorizationGranted, time.Now())
	denied    = ports.NewGrant(ports.AuthorizationDenied, time.Now())
)

func TestHandle_Saved(t *testing.T) {
	lib := &mocks.Library{}
	result := NewHandler(lib, logger.NewNoop()).Handle(context.Background(), succeeded, granted)

	if result.Outcome != pipeline.OutcomeSaved || !result.Success() {
		t.Fatalf("expected saved, got %+v", result)
	}
	if lib.Count() != 1 || result.Asset == nil || result.Asset.Location != "/out/merged.mov" {
		t.Errorf("expected one asset for the output, got %+v", lib.Assets)
	}
}

func TestHandle_NotAuthorized(t *testing.T) {
	for _, grant := range []ports.Grant{denied, {}} {
		lib := &mocks.Library{}
		result := NewHandler(lib, logger.NewNoop()).Handle(context.Background(), succeeded, grant)

		if result.Outcome != pipeline.OutcomeNotAuthorized {
			t.Errorf("%s: expected not_authorized, got %s", grant.Status(), result.Outcome)
		}
		if !errors.Is(result.Err, pipeline.ErrAuthorizationDenied) {
			t.Errorf("%s: expected ErrAuthorizationDenied, got %v", grant.Status(), result.Err)
		}
		if lib.Count() != 0 {
			t.Errorf("%s: no asset may be created", grant.Status())
		}
	}
}

func TestHandle_SkipsUnsuccessfulExport(t *testing.T) {
	exportErr := pipeline.NewStageError(pipeline.ErrExport, "export video", errors.New("boom"))
	for _, export := range []pipeline.ExportResult{
		{Status: pipeline.ExportFailed, Err: exportErr},
		{Status: pipeline.ExportCancelled, Err: context.Canceled},
	} {
		lib := &mocks.Library{}
		result := NewHandler(lib, logger.NewNoop()).Handle(context.Background(), export, granted)

		if result.Outcome != pipeline.OutcomeSkipped {
			t.Errorf("%s: expected skipped, got %s", export.Status, result.Outcome)
		}
		if result.Err != export.Err {
			t.Errorf("%s: expected export error to be carried", export.Status)
		}
		if lib.Count() != 0 {
			t.Errorf("%s: library must not be touched", export.Status)
		}
	}
}

func TestHandle_PersistenceFailed(t *testing.T) {
	saveErr := errors.New("disk full")
	lib := &mocks.Library{SaveFunc: func(ctx context.Context, grant ports.Grant, path string) (ports.Asset, error) {
		return ports.Asset{}, saveErr
	}}

	result := NewHandler(lib, logger.NewNoop()).Handle(context.Background(), succeeded, granted)
	if result.Outcome != pipeline.OutcomePersistenceFailed {
		t.Fatalf("expected persistence_failed, got %s", result.Outcome)
	}
	if !errors.Is(result.Err, pipeline.ErrPersistence) || !errors.Is(result.Err, saveErr) {
		t.Errorf("expected ErrPersistence wrapping cause, got %v", result.Err)
	}
}

func TestStage_Execute(t *testing.T) {
	stage := NewStage(NewHandler(&mocks.Library{}, logger.NewNoop()))
	result, err := stage.Execute(context.Background(), pipeline.CompletionInput{Export: succeeded, Grant: granted})
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != pipeline.OutcomeSaved {
		t.Errorf("expected saved, got %s", result.Outcome)
	}
}
