package images

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type stubDownloader struct {
	calls   []string
	failOn  map[string]bool
	content []byte
}

func (d *stubDownloader) Download(_ context.Context, url, _ string, dest string) error {
	d.calls = append(d.calls, url)
	if d.failOn[url] {
		return errors.New("download failed")
	}
	return os.WriteFile(dest, d.content, 0o644)
}

func TestAcquireDownloadsUpToMax(t *testing.T) {
	root := t.TempDir()
	dl := &stubDownloader{content: []byte("jpeg")}
	store, err := NewStore(root, dl)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	urls := []string{
		"http://cdn.example.test/a/1.jpg",
		"http://cdn.example.test/a/2.jpg",
		"http://cdn.example.test/a/3.jpg",
	}
	folder, local, failed := store.Acquire(context.Background(), "Orkide", "Beyaz Orkide", "http://example.test/p", urls, 2)

	if failed != 0 {
		t.Fatalf("failed = %d, want 0", failed)
	}
	if len(dl.calls) != 2 {
		t.Fatalf("downloads = %d, want 2 (capped)", len(dl.calls))
	}
	if folder != filepath.Join("Orkide", "Beyaz Orkide") {
		t.Fatalf("folder = %q", folder)
	}
	want := []string{
		filepath.Join("Orkide", "Beyaz Orkide", "1.jpg"),
		filepath.Join("Orkide", "Beyaz Orkide", "2.jpg"),
	}
	if len(local) != len(want) {
		t.Fatalf("local = %v, want %v", local, want)
	}
	for i := range want {
		if local[i] != want[i] {
			t.Fatalf("local[%d] = %q, want %q", i, local[i], want[i])
		}
		if _, err := os.Stat(filepath.Join(root, want[i])); err != nil {
			t.Fatalf("image file missing: %v", err)
		}
	}
}

func TestAcquireToleratesFailures(t *testing.T) {
	root := t.TempDir()
	dl := &stubDownloader{
		content: []byte("jpeg"),
		failOn:  map[string]bool{"http://cdn.example.test/b/2.jpg": true},
	}
	store, err := NewStore(root, dl)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	urls := []string{
		"http://cdn.example.test/b/1.jpg",
		"http://cdn.example.test/b/2.jpg",
		"http://cdn.example.test/b/3.jpg",
	}
	_, local, failed := store.Acquire(context.Background(), "Gul", "Buket", "http://example.test/p", urls, 5)

	if failed != 1 {
		t.Fatalf("failed = %d, want 1", failed)
	}
	if len(local) != 2 {
		t.Fatalf("local = %v, want 2 entries", local)
	}
	// The failed second slot leaves a gap rather than renumbering.
	if filepath.Base(local[1]) != "3.jpg" {
		t.Fatalf("surviving third image = %q, want 3.jpg", local[1])
	}
}

func TestAcquireEmptySetCreatesNoFolder(t *testing.T) {
	root := t.TempDir()
	store, err := NewStore(root, &stubDownloader{})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	folder, local, failed := store.Acquire(context.Background(), "Gul", "Buket", "http://example.test/p", nil, 5)
	if folder != "" || len(local) != 0 || failed != 0 {
		t.Fatalf("Acquire(empty) = %q, %v, %d", folder, local, failed)
	}
	if _, err := os.Stat(filepath.Join(root, "Gul")); !os.IsNotExist(err) {
		t.Fatalf("category folder should not exist")
	}
}

func TestAcquireReusesCachedURL(t *testing.T) {
	root := t.TempDir()
	dl := &stubDownloader{content: []byte("jpeg")}
	store, err := NewStore(root, dl)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	shared := []string{"http://cdn.example.test/shared/1.jpg"}
	_, first, _ := store.Acquire(context.Background(), "Gul", "Buket", "http://example.test/p1", shared, 5)
	_, second, _ := store.Acquire(context.Background(), "Gul", "Aranjman", "http://example.test/p2", shared, 5)

	if len(dl.calls) != 1 {
		t.Fatalf("downloads = %d, want 1 (second hit served from cache)", len(dl.calls))
	}
	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Fatalf("cached path mismatch: %v vs %v", first, second)
	}
}
