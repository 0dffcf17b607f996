package dirlibrary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/user/clipmerge/pkg/adapters/osfilesystem"
	"github.com/user/clipmerge/pkg/mocks"
	"github.com/user/clipmerge/pkg/ports"
)

func granted() ports.Grant {
	return ports.NewGrant(ports.AuthorizationGranted, time.Now())
}

func TestLibrary_Save(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "mergeVideo.MOV")
	if err := os.WriteFile(src, []byte("movie data"), 0644); err != nil {
		t.Fatal(err)
	}

	libDir := filepath.Join(dir, "library")
	lib := New(libDir, osfilesystem.New())

	asset, err := lib.Save(context.Background(), granted(), src)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := uuid.Parse(asset.ID); err != nil {
		t.Errorf("expected UUID asset ID, got %q", asset.ID)
	}
	if asset.Location != filepath.Join(libDir, asset.ID+".mov") {
		t.Errorf("unexpected location %s", asset.Location)
	}
	if asset.Size != int64(len("movie data")) {
		t.Errorf("expected size %d, got %d", len("movie data"), asset.Size)
	}
	if _, err := os.Stat(src); err != nil {
		t.Error("source file must be kept")
	}

	second, err := lib.Save(context.Background(), granted(), src)
	if err != nil {
		t.Fatal(err)
	}
	if second.ID == asset.ID {
		t.Error("each save must create a new asset")
	}
}

func TestLibrary_Save_NotAuthorized(t *testing.T) {
	fs := mocks.NewFileSystem()
	lib := New("library", fs)

	for _, grant := range []ports.Grant{
		{},
		ports.NewGrant(ports.AuthorizationDenied, time.Now()),
		ports.NewGrant(ports.AuthorizationNotDetermined, time.Now()),
	} {
		if _, err := lib.Save(context.Background(), grant, "out.mov"); !errors.Is(err, ErrNotAuthorized) {
			t.Errorf("%s: expected ErrNotAuthorized, got %v", grant.Status(), err)
		}
	}
	if len(fs.GetAllFiles()) != 0 {
		t.Error("nothing should be written without authorization")
	}
}

func TestLibrary_Save_CopyFails(t *testing.T) {
	fs := mocks.NewFileSystem()
	lib := New("library", fs)
	lib.newID = func() string { return "fixed" }

	if _, err := lib.Save(context.Background(), granted(), "missing.mov"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
