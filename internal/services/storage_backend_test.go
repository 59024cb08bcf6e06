package services

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestLocalBackendRoundtrip(t *testing.T) {
	backend, err := NewLocalBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalBackend: %v", err)
	}
	ctx := context.Background()

	payload := []byte("fake jpeg bytes")
	if err := backend.Upload(ctx, "activities/1-photo.jpg", bytes.NewReader(payload), int64(len(payload))); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	ok, err := backend.Exists(ctx, "activities/1-photo.jpg")
	if err != nil || !ok {
		t.Fatalf("Exists = (%v, %v), want (true, nil)", ok, err)
	}

	r, size, err := backend.Download(ctx, "activities/1-photo.jpg")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer r.Close()
	if size != int64(len(payload)) {
		t.Errorf("size = %d, want %d", size, len(payload))
	}
	got, _ := io.ReadAll(r)
	if !bytes.Equal(got, payload) {
		t.Errorf("content = %q, want %q", got, payload)
	}

	if err := backend.Delete(ctx, "activities/1-photo.jpg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := backend.Exists(ctx, "activities/1-photo.jpg"); ok {
		t.Error("object still exists after delete")
	}

	// Deleting a missing object is not an error.
	if err := backend.Delete(ctx, "activities/1-photo.jpg"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestLocalBackendRejectsTraversal(t *testing.T) {
	backend, err := NewLocalBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalBackend: %v", err)
	}
	ctx := context.Background()

	// Cleaned keys stay inside the root even with traversal segments.
	if err := backend.Upload(ctx, "../../etc/passwd", strings.NewReader("x"), 1); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if ok, _ := backend.Exists(ctx, "etc/passwd"); !ok {
		t.Error("traversal key not confined to storage root")
	}
}

func TestPhotoKey(t *testing.T) {
	key := PhotoKey("my photo (1).jpg")
	if !strings.HasPrefix(key, "activities/") {
		t.Errorf("key %q missing prefix", key)
	}
	if strings.ContainsAny(key, " ()") {
		t.Errorf("key %q not sanitized", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("key %q lost its extension", key)
	}

	// Path components of the original name are stripped.
	if k := PhotoKey("../../evil.png"); strings.Contains(strings.TrimPrefix(k, "activities/"), "/") {
		t.Errorf("key %q carries path separators", k)
	}

	if k := PhotoKey(""); !strings.HasSuffix(k, "photo.jpg") {
		t.Errorf("empty filename produced %q", k)
	}
}

func TestContentTypeForKey(t *testing.T) {
	if ct := ContentTypeForKey("activities/1-a.png"); ct != "image/png" {
		t.Errorf("png content type = %q", ct)
	}
	if ct := ContentTypeForKey("activities/1-a"); ct != "image/jpeg" {
		t.Errorf("default content type = %q", ct)
	}
}
