package service

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BaderVance/BucketListify/internal/model"
	"github.com/BaderVance/BucketListify/internal/validation"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 16))

type fakeStorage struct {
	saved map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: map[string][]byte{}}
}

func (s *fakeStorage) Save(path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.saved[path] = data
	return nil
}

func (s *fakeStorage) Delete(path string) error {
	delete(s.saved, path)
	return nil
}

func (s *fakeStorage) PublicURL(path string) string {
	return "https://photos.test/" + path
}

// multipartUpload builds a real multipart form and returns the parsed file.
func multipartUpload(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("photo", filename)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	_, err = part.Write(content)
	if err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	err = w.Close()
	if err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/goals/x/photos", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	file, header, err := req.FormFile("photo")
	if err != nil {
		t.Fatalf("FormFile() error = %v", err)
	}
	t.Cleanup(func() { _ = file.Close() })
	return file, header
}

func TestPhotoUpload(t *testing.T) {
	t.Parallel()

	repo := newFakeGoalRepo()
	store := newFakeStorage()
	goals := NewGoalService(repo, newFakeProfileRepo())
	photos := NewPhotoService(repo, store)

	goal, err := goals.Create("owner", CreateGoalInput{
		Title:    "Skydive",
		Category: model.CategoryAdventure,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	file, header := multipartUpload(t, "jump.png", pngHeader)

	got, err := photos.Upload(goal.ID, "owner", file, header, "Right before the jump")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if len(got.Photos) != 1 {
		t.Fatalf("goal has %d photos, want 1", len(got.Photos))
	}
	photo := got.Photos[0]
	if photo.Caption != "Right before the jump" {
		t.Errorf("caption = %q", photo.Caption)
	}
	if !strings.HasPrefix(photo.URL, "https://photos.test/goals/"+goal.ID+"/") {
		t.Errorf("url = %q, want storage-derived URL under the goal prefix", photo.URL)
	}
	if !strings.HasSuffix(photo.URL, ".png") {
		t.Errorf("url = %q, want original extension preserved", photo.URL)
	}
	if len(store.saved) != 1 {
		t.Fatalf("storage holds %d objects, want 1", len(store.saved))
	}

	stored, err := repo.ByID(goal.ID)
	if err != nil {
		t.Fatalf("ByID() error = %v", err)
	}
	if len(stored.Photos) != 1 {
		t.Fatalf("persisted goal has %d photos, want 1", len(stored.Photos))
	}
}

func TestPhotoUploadRequiresOwnership(t *testing.T) {
	t.Parallel()

	repo := newFakeGoalRepo()
	goals := NewGoalService(repo, newFakeProfileRepo())
	photos := NewPhotoService(repo, newFakeStorage())

	goal, err := goals.Create("owner", CreateGoalInput{
		Title:    "Skydive",
		Category: model.CategoryAdventure,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	file, header := multipartUpload(t, "jump.png", pngHeader)

	_, err = photos.Upload(goal.ID, "stranger", file, header, "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("Upload() by non-owner error = %v, want ErrForbidden", err)
	}
}

func TestPhotoUploadRejectsBadFiles(t *testing.T) {
	t.Parallel()

	repo := newFakeGoalRepo()
	store := newFakeStorage()
	goals := NewGoalService(repo, newFakeProfileRepo())
	photos := NewPhotoService(repo, store)

	goal, err := goals.Create("owner", CreateGoalInput{
		Title:    "Skydive",
		Category: model.CategoryAdventure,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name     string
		filename string
		content  []byte
		caption  string
	}{
		{name: "not an image", filename: "notes.txt", content: []byte("just text"), caption: ""},
		{name: "extension mismatch", filename: "jump.gif", content: pngHeader, caption: ""},
		{name: "caption too long", filename: "jump.png", content: pngHeader, caption: strings.Repeat("x", 301)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, header := multipartUpload(t, tt.filename, tt.content)

			_, err := photos.Upload(goal.ID, "owner", file, header, tt.caption)

			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("Upload() error = %v, want validation error", err)
			}
			if len(store.saved) != 0 {
				t.Fatal("rejected upload must not reach storage")
			}
		})
	}
}
