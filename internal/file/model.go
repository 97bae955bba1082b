package file

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.NotFound("photo not found")
	ErrNoThumbnail = apperror.NotFound("thumbnail not available")
	ErrNotImage    = apperror.BadRequest("file must be an image")
)

// Photo is an image attached to an item listing.
type Photo struct {
	ID            string `json:"id"`
	ItemID        string `json:"item_id"`
	UploaderID    string `json:"uploader_id"`
	Filename      string `json:"filename"`
	StoragePath   string `json:"-"` // Internal path
	ThumbnailPath string `json:"-"` // Internal path, empty if missing
	ContentType   string `json:"content_type"`
	Size          int64  `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// PhotoURL returns the public URL for accessing a photo by its ID.
func PhotoURL(id string) string {
	return "/v1/photos/" + id
}

// ThumbnailURL returns the public URL for accessing a photo's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/photos/" + id + "/thumbnail"
}
