package http

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
)

// ItemTag is the minimal item reference embedded in other responses.
type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created"`
}

func NewCommentResponse(cm *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         cm.ID,
		Text:       cm.Text,
		AuthorName: cm.AuthorName,
		CreatedAt:  cm.CreatedAt,
	}
}

// BookingRefResponse is a compact booking reference on an owner's item view.
type BookingRefResponse struct {
	ID        string    `json:"id"`
	BookerID  string    `json:"booker_id"`
	StartTime time.Time `json:"start"`
	EndTime   time.Time `json:"end"`
}

func newBookingRefResponse(ref *item.BookingRef) *BookingRefResponse {
	if ref == nil {
		return nil
	}
	return &BookingRefResponse{
		ID:        ref.ID,
		BookerID:  ref.BookerID,
		StartTime: ref.StartTime,
		EndTime:   ref.EndTime,
	}
}

type ItemResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Available   bool                `json:"available"`
	RequestID   *string             `json:"request_id,omitempty"`
	Comments    []CommentResponse   `json:"comments,omitempty"`
	LastBooking *BookingRefResponse `json:"last_booking,omitempty"`
	NextBooking *BookingRefResponse `json:"next_booking,omitempty"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

func NewItemDetailsResponse(d *item.Details) ItemResponse {
	resp := NewItemResponse(&d.Item)

	resp.Comments = make([]CommentResponse, len(d.Comments))
	for i, cm := range d.Comments {
		resp.Comments[i] = NewCommentResponse(cm)
	}
	resp.LastBooking = newBookingRefResponse(d.LastBooking)
	resp.NextBooking = newBookingRefResponse(d.NextBooking)

	return resp
}

type CreateItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *string `json:"request_id" binding:"omitempty,uuid"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
