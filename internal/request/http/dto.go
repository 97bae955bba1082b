package http

import (
	"time"

	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/request"
)

type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

type RequestResponse struct {
	ID          string                  `json:"id"`
	Description string                  `json:"description"`
	CreatedAt   time.Time               `json:"created"`
	Items       []itemHttp.ItemResponse `json:"items"`
}

func NewRequestResponse(req *request.Request) RequestResponse {
	return RequestResponse{
		ID:          req.ID,
		Description: req.Description,
		CreatedAt:   req.CreatedAt,
		Items:       []itemHttp.ItemResponse{},
	}
}

func NewRequestDetailsResponse(d *request.Details) RequestResponse {
	resp := NewRequestResponse(&d.Request)

	resp.Items = make([]itemHttp.ItemResponse, len(d.Items))
	for i, it := range d.Items {
		resp.Items[i] = itemHttp.NewItemResponse(it)
	}

	return resp
}
