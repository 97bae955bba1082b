package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/storage"
)

type fakeRepository struct {
	photos map[string]*Photo
}

func newFakePhotoRepository() *fakeRepository {
	return &fakeRepository{photos: map[string]*Photo{}}
}

func (r *fakeRepository) Create(_ context.Context, p *Photo) error {
	r.photos[p.ID] = p
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Photo, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepository) FindByItem(_ context.Context, itemID string) ([]*Photo, error) {
	var out []*Photo
	for _, p := range r.photos {
		if p.ItemID == itemID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.photos[id]; !ok {
		return ErrNotFound
	}
	delete(r.photos, id)
	return nil
}

type fakeItemGetter struct {
	items map[string]*item.Item
}

func (g *fakeItemGetter) GetByID(_ context.Context, id string) (*item.Item, error) {
	it, ok := g.items[id]
	if !ok {
		return nil, item.ErrNotFound
	}
	return it, nil
}

type memStorage struct {
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (s *memStorage) Save(_ context.Context, path string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *memStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Delete(_ context.Context, path string) error {
	delete(s.files, path)
	return nil
}

func makeFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%s`, strconv.Quote(filename)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func newTestService(t *testing.T) (*service, *fakeRepository, *memStorage) {
	t.Helper()

	repo := newFakePhotoRepository()
	store := newMemStorage()
	items := &fakeItemGetter{items: map[string]*item.Item{
		"item-1": {ID: "item-1", Name: "Drill", OwnerID: "owner"},
	}}

	svc := NewService(repo, items, store, storage.NewImageProcessor()).(*service)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}

	return svc, repo, store
}

func TestServiceUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner Uploads Image", func(t *testing.T) {
		svc, repo, store := newTestService(t)
		header := makeFileHeader(t, "drill.png", "image/png", pngBytes(t))

		photo, err := svc.Upload(ctx, "item-1", "owner", header)
		require.NoError(t, err)

		assert.Equal(t, "item-1", photo.ItemID)
		assert.Equal(t, "owner", photo.UploaderID)
		assert.Equal(t, "drill.png", photo.Filename)
		assert.Equal(t, "image/png", photo.ContentType)
		assert.Contains(t, repo.photos, photo.ID)
		assert.Contains(t, store.files, photo.StoragePath)

		require.NotEmpty(t, photo.ThumbnailPath, "a valid image gets a thumbnail")
		assert.Contains(t, store.files, photo.ThumbnailPath)
	})

	t.Run("Undecodable Image Still Uploads Without Thumbnail", func(t *testing.T) {
		svc, repo, store := newTestService(t)
		header := makeFileHeader(t, "broken.png", "image/png", []byte("not a real png"))

		photo, err := svc.Upload(ctx, "item-1", "owner", header)
		require.NoError(t, err)

		assert.Empty(t, photo.ThumbnailPath)
		assert.Contains(t, repo.photos, photo.ID)
		assert.Contains(t, store.files, photo.StoragePath)
	})

	t.Run("Non Owner", func(t *testing.T) {
		svc, repo, store := newTestService(t)
		header := makeFileHeader(t, "drill.png", "image/png", pngBytes(t))

		_, err := svc.Upload(ctx, "item-1", "stranger", header)
		assert.ErrorIs(t, err, item.ErrNotOwner)
		assert.Empty(t, repo.photos)
		assert.Empty(t, store.files)
	})

	t.Run("Not An Image", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		header := makeFileHeader(t, "notes.txt", "text/plain", []byte("hello"))

		_, err := svc.Upload(ctx, "item-1", "owner", header)
		assert.ErrorIs(t, err, ErrNotImage)
		assert.Empty(t, repo.photos)
	})

	t.Run("Unknown Item", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		header := makeFileHeader(t, "drill.png", "image/png", pngBytes(t))

		_, err := svc.Upload(ctx, "missing", "owner", header)
		assert.ErrorIs(t, err, item.ErrNotFound)
	})
}

func TestServiceDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("Round Trip", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		content := pngBytes(t)
		header := makeFileHeader(t, "drill.png", "image/png", content)

		uploaded, err := svc.Upload(ctx, "item-1", "owner", header)
		require.NoError(t, err)

		photo, reader, err := svc.Download(ctx, uploaded.ID)
		require.NoError(t, err)
		defer reader.Close()

		got, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, content, got)
		assert.Equal(t, "image/png", photo.ContentType)
	})

	t.Run("Missing Thumbnail", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		header := makeFileHeader(t, "broken.png", "image/png", []byte("not a real png"))

		uploaded, err := svc.Upload(ctx, "item-1", "owner", header)
		require.NoError(t, err)

		_, _, err = svc.DownloadThumbnail(ctx, uploaded.ID)
		assert.ErrorIs(t, err, ErrNoThumbnail)
	})

	t.Run("Unknown Photo", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, _, err := svc.Download(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner Deletes", func(t *testing.T) {
		svc, repo, store := newTestService(t)
		header := makeFileHeader(t, "drill.png", "image/png", pngBytes(t))

		uploaded, err := svc.Upload(ctx, "item-1", "owner", header)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, uploaded.ID, "owner"))
		assert.NotContains(t, repo.photos, uploaded.ID)
		assert.Empty(t, store.files, "storage is cleaned up")
	})

	t.Run("Non Owner", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		header := makeFileHeader(t, "drill.png", "image/png", pngBytes(t))

		uploaded, err := svc.Upload(ctx, "item-1", "owner", header)
		require.NoError(t, err)

		err = svc.Delete(ctx, uploaded.ID, "stranger")
		assert.ErrorIs(t, err, item.ErrNotOwner)
		assert.Contains(t, repo.photos, uploaded.ID)
	})
}
