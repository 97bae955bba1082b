package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.NotFound("user is not registered")
	ErrEmailAlreadyUsed   = apperror.BadRequest("email already used")
	ErrEmailRequired      = apperror.BadRequest("email is required")
	ErrNameRequired       = apperror.BadRequest("name is required")
	ErrPasswordTooShort   = apperror.BadRequest("password is too short")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrNotSelf            = apperror.NotFound("user does not match the acting user")
)

// User represents a registered user. Items reference the owner by id and
// bookings reference the booker by id; no object graph is held here.
type User struct {
	ID           string // UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
