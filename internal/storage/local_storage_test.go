package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestNewLocalImageFetcher_MissingRoot(t *testing.T) {
	if _, err := NewLocalImageFetcher(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("Expected error for a missing root")
	}
}

func TestNewLocalImageFetcher_RootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLocalImageFetcher(path); err == nil {
		t.Fatal("Expected error for a non-directory root")
	}
}

func TestLocalFetchImage(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "r.png"), pngBytes(t), 0o644); err != nil {
		t.Fatal(err)
	}

	fetcher, err := NewLocalImageFetcher(root)
	if err != nil {
		t.Fatalf("NewLocalImageFetcher returned error: %v", err)
	}

	img, err := fetcher.FetchImage(context.Background(), "r.png")
	if err != nil {
		t.Fatalf("FetchImage returned error: %v", err)
	}
	if img.Bounds().Dx() != 2 {
		t.Errorf("Unexpected image bounds: %v", img.Bounds())
	}
}

func TestLocalFetchImage_RejectsTraversal(t *testing.T) {
	fetcher, err := NewLocalImageFetcher(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for _, location := range []string{"../secret.png", "/etc/passwd", "a/../../b.png"} {
		if _, err := fetcher.FetchImage(context.Background(), location); err == nil {
			t.Errorf("Expected %q to be rejected", location)
		}
	}
}

func TestLocalFetchImage_CancelledContext(t *testing.T) {
	fetcher, err := NewLocalImageFetcher(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := fetcher.FetchImage(ctx, "r.png"); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
