package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/storage"
)

// ItemGetter provides item lookups for ownership checks.
type ItemGetter interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}

type Service interface {
	Upload(ctx context.Context, itemID, uploaderID string, header *multipart.FileHeader) (*Photo, error)
	GetByID(ctx context.Context, id string) (*Photo, error)
	ListByItem(ctx context.Context, itemID string) ([]*Photo, error)
	Download(ctx context.Context, id string) (*Photo, io.ReadCloser, error)
	DownloadThumbnail(ctx context.Context, id string) (*Photo, io.ReadCloser, error)
	Delete(ctx context.Context, id, actingUserID string) error
}

const (
	thumbnailMaxWidth  = 320
	thumbnailMaxHeight = 320
)

type service struct {
	repo      Repository
	items     ItemGetter
	storage   storage.Storage
	processor *storage.ImageProcessor
	now       func() time.Time
}

func NewService(repo Repository, items ItemGetter, store storage.Storage, processor *storage.ImageProcessor) Service {
	return &service{
		repo:      repo,
		items:     items,
		storage:   store,
		processor: processor,
		now:       time.Now,
	}
}

func (s *service) Upload(ctx context.Context, itemID, uploaderID string, header *multipart.FileHeader) (*Photo, error) {
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != uploaderID {
		return nil, item.ErrNotOwner
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read uploaded file failed: %w", err)
	}

	id := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))
	storagePath := filepath.Join("items", itemID, id+ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("save photo failed: %w", err)
	}

	var thumbnailPath string
	if thumb, err := s.processor.GenerateThumbnail(bytes.NewReader(data), thumbnailMaxWidth, thumbnailMaxHeight); err == nil {
		thumbnailPath = filepath.Join("items", itemID, id+"_thumb.jpg")
		if err := s.storage.Save(ctx, thumbnailPath, thumb); err != nil {
			thumbnailPath = ""
		}
	}

	photo := &Photo{
		ID:            id,
		ItemID:        itemID,
		UploaderID:    uploaderID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          int64(len(data)),
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, photo); err != nil {
		// Keep the filesystem consistent with the database.
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != "" {
			_ = s.storage.Delete(ctx, thumbnailPath)
		}
		return nil, err
	}

	return photo, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Photo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByItem(ctx context.Context, itemID string) ([]*Photo, error) {
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	photos, err := s.repo.FindByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if photos == nil {
		photos = []*Photo{}
	}
	return photos, nil
}

func (s *service) Download(ctx context.Context, id string) (*Photo, io.ReadCloser, error) {
	photo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.storage.Get(ctx, photo.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open photo failed: %w", err)
	}

	return photo, reader, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (*Photo, io.ReadCloser, error) {
	photo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if photo.ThumbnailPath == "" {
		return nil, nil, ErrNoThumbnail
	}

	reader, err := s.storage.Get(ctx, photo.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open thumbnail failed: %w", err)
	}

	return photo, reader, nil
}

func (s *service) Delete(ctx context.Context, id, actingUserID string) error {
	photo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	it, err := s.items.GetByID(ctx, photo.ItemID)
	if err != nil {
		return err
	}
	if it.OwnerID != actingUserID {
		return item.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Storage cleanup is best effort once the record is gone.
	_ = s.storage.Delete(ctx, photo.StoragePath)
	if photo.ThumbnailPath != "" {
		_ = s.storage.Delete(ctx, photo.ThumbnailPath)
	}

	return nil
}
