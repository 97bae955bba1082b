package item

import (
	"context"
	"strings"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *string
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error)
	Update(ctx context.Context, id string, actingUserID string, req UpdateRequest) (*Item, error)
	GetByID(ctx context.Context, id string, actingUserID string) (*Details, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Details, error)
	ListByRequestID(ctx context.Context, requestID string) ([]*Item, error)
	Search(ctx context.Context, actingUserID, text string) ([]*Item, error)
	AddComment(ctx context.Context, actingUserID, itemID, text string) (*Comment, error)
}

type service struct {
	repo        Repository
	userService user.Service
	bookings    BookingLookup
	now         func() time.Time
}

func NewService(repo Repository, userService user.Service, bookings BookingLookup) Service {
	return &service{
		repo:        repo,
		userService: userService,
		bookings:    bookings,
		now:         time.Now,
	}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error) {
	if _, err := s.userService.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}

	it := &Item{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
		Available:   req.Available,
		RequestID:   req.RequestID,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, id string, actingUserID string, req UpdateRequest) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != actingUserID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		it.Name = *req.Name
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, ErrDescriptionRequired
		}
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, id string, actingUserID string) (*Details, error) {
	if _, err := s.userService.GetByID(ctx, actingUserID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &Details{Item: *it}

	details.Comments, err = s.repo.FindCommentsByItem(ctx, id)
	if err != nil {
		return nil, err
	}

	// Booking references are visible to the owner only.
	if it.OwnerID == actingUserID {
		details.LastBooking, details.NextBooking, err = s.bookings.LastAndNext(ctx, id, s.now())
		if err != nil {
			return nil, err
		}
	}

	return details, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]*Details, error) {
	if _, err := s.userService.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	details := make([]*Details, 0, len(items))
	for _, it := range items {
		d := &Details{Item: *it}

		d.Comments, err = s.repo.FindCommentsByItem(ctx, it.ID)
		if err != nil {
			return nil, err
		}
		d.LastBooking, d.NextBooking, err = s.bookings.LastAndNext(ctx, it.ID, now)
		if err != nil {
			return nil, err
		}

		details = append(details, d)
	}

	return details, nil
}

func (s *service) ListByRequestID(ctx context.Context, requestID string) ([]*Item, error) {
	return s.repo.FindByRequestID(ctx, requestID)
}

func (s *service) Search(ctx context.Context, actingUserID, text string) ([]*Item, error) {
	if _, err := s.userService.GetByID(ctx, actingUserID); err != nil {
		return nil, err
	}

	// A blank query returns an empty result without hitting storage.
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}

	return s.repo.Search(ctx, text)
}

func (s *service) AddComment(ctx context.Context, actingUserID, itemID, text string) (*Comment, error) {
	u, err := s.userService.GetByID(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentTextRequired
	}

	now := s.now()
	ok, err := s.bookings.HasFinished(ctx, actingUserID, it.ID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoFinishedBooking
	}

	cm := &Comment{
		ItemID:     it.ID,
		AuthorID:   u.ID,
		AuthorName: u.Name,
		Text:       text,
		CreatedAt:  now,
	}

	if err := s.repo.CreateComment(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}
