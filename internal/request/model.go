package request

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound("request not found")
	ErrDescriptionRequired = apperror.BadRequest("description is required")
)

// Request is a user's ask for an item that is not in the catalog yet.
// CreatedAt is stamped once at construction and never changes.
type Request struct {
	ID          string // UUID
	UserID      string
	Description string
	CreatedAt   time.Time
}

// Details is a request together with the items listed to fulfill it.
// The relationship is computed from Item.RequestID at read time, it is
// not stored on the request.
type Details struct {
	Request
	Items []*item.Item
}
