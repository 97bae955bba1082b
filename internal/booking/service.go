package booking

import (
	"context"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// ItemGetter provides the item fields booking validation needs.
// item.Repository satisfies it.
type ItemGetter interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}

type CreateRequest struct {
	ItemID    string
	StartTime time.Time
	EndTime   time.Time
	Status    *Status
}

type Service interface {
	Create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error)
	Approve(ctx context.Context, id string, actingUserID string, approved bool) (*Booking, error)
	GetByID(ctx context.Context, id string, actingUserID string) (*Booking, error)
	ListByBooker(ctx context.Context, userID string, state State) ([]*Booking, error)
	ListByOwner(ctx context.Context, userID string, state State) ([]*Booking, error)
}

type service struct {
	repo        Repository
	items       ItemGetter
	userService user.Service
	now         func() time.Time
}

func NewService(repo Repository, items ItemGetter, userService user.Service) Service {
	return &service{
		repo:        repo,
		items:       items,
		userService: userService,
		now:         time.Now,
	}
}

func (s *service) Create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error) {
	if _, err := s.userService.GetByID(ctx, bookerID); err != nil {
		return nil, err
	}

	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID == bookerID {
		return nil, ErrOwnItem
	}
	if !it.Available {
		return nil, ErrItemUnavailable
	}

	status := StatusWaiting
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		status = *req.Status
	}

	b := &Booking{
		ItemID:      it.ID,
		ItemName:    it.Name,
		ItemOwnerID: it.OwnerID,
		BookerID:    bookerID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      status,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// The response carries the booker by id only; no user lookup is made
	// here, trading completeness for one fewer query.
	return b, nil
}

func (s *service) Approve(ctx context.Context, id string, actingUserID string, approved bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Re-approving an approved booking is rejected, not deduplicated.
	if b.Status == StatusApproved && approved {
		return nil, ErrAlreadyApproved
	}
	if b.ItemOwnerID != actingUserID {
		return nil, ErrNotOwnerApprove
	}

	status := StatusRejected
	if approved {
		status = StatusApproved
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	b.Status = status
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string, actingUserID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Only the booker and the item owner may view a booking; anyone else
	// gets the same not-found as a missing relationship.
	if actingUserID != b.BookerID && actingUserID != b.ItemOwnerID {
		return nil, ErrNotVisible
	}

	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, userID string, state State) ([]*Booking, error) {
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindByBooker(ctx, userID)
	if err != nil {
		return nil, err
	}

	return FilterByState(bookings, state, s.now()), nil
}

func (s *service) ListByOwner(ctx context.Context, userID string, state State) ([]*Booking, error) {
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindByItemOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	return FilterByState(bookings, state, s.now()), nil
}
