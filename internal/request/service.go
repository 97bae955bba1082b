package request

import (
	"context"
	"strings"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type Service interface {
	Create(ctx context.Context, userID, description string) (*Request, error)
	GetByID(ctx context.Context, id string, actingUserID string) (*Details, error)
	ListByUser(ctx context.Context, userID string) ([]*Details, error)
	ListByOthers(ctx context.Context, userID string, from, size int) ([]*Details, int, error)
}

type service struct {
	repo        Repository
	userService user.Service
	itemService item.Service
	now         func() time.Time
}

func NewService(repo Repository, userService user.Service, itemService item.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
		itemService: itemService,
		now:         time.Now,
	}
}

func (s *service) Create(ctx context.Context, userID, description string) (*Request, error) {
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}

	req := &Request{
		UserID:      userID,
		Description: description,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) GetByID(ctx context.Context, id string, actingUserID string) (*Details, error) {
	if _, err := s.userService.GetByID(ctx, actingUserID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.withItems(ctx, req)
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]*Details, error) {
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, requests)
}

func (s *service) ListByOthers(ctx context.Context, userID string, from, size int) ([]*Details, int, error) {
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}

	requests, total, err := s.repo.FindByOthers(ctx, userID, from, size)
	if err != nil {
		return nil, 0, err
	}

	details, err := s.enrich(ctx, requests)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (s *service) enrich(ctx context.Context, requests []*Request) ([]*Details, error) {
	details := make([]*Details, 0, len(requests))
	for _, req := range requests {
		d, err := s.withItems(ctx, req)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *service) withItems(ctx context.Context, req *Request) (*Details, error) {
	items, err := s.itemService.ListByRequestID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*item.Item{}
	}
	return &Details{Request: *req, Items: items}, nil
}
