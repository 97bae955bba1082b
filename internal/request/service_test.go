package request

import (
	"context"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type fakeRepository struct {
	requests map[string]*Request
	nextID   int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{requests: map[string]*Request{}, nextID: 1}
}

func (r *fakeRepository) Create(_ context.Context, req *Request) error {
	req.ID = "req-" + strconv.Itoa(r.nextID)
	r.nextID++
	r.requests[req.ID] = req
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (r *fakeRepository) FindByUser(_ context.Context, userID string) ([]*Request, error) {
	var out []*Request
	for _, req := range r.requests {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepository) FindByOthers(_ context.Context, userID string, from, size int) ([]*Request, int, error) {
	var all []*Request
	for _, req := range r.requests {
		if req.UserID != userID {
			all = append(all, req)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if from >= total {
		return nil, total, nil
	}
	end := from + size
	if end > total {
		end = total
	}
	return all[from:end], total, nil
}

type fakeItemService struct {
	byRequest map[string][]*item.Item
}

func (s *fakeItemService) ListByRequestID(_ context.Context, requestID string) ([]*item.Item, error) {
	return s.byRequest[requestID], nil
}

func (s *fakeItemService) Create(context.Context, string, item.CreateRequest) (*item.Item, error) {
	panic("not used")
}
func (s *fakeItemService) Update(context.Context, string, string, item.UpdateRequest) (*item.Item, error) {
	panic("not used")
}
func (s *fakeItemService) GetByID(context.Context, string, string) (*item.Details, error) {
	panic("not used")
}
func (s *fakeItemService) ListByOwner(context.Context, string) ([]*item.Details, error) {
	panic("not used")
}
func (s *fakeItemService) Search(context.Context, string, string) ([]*item.Item, error) {
	panic("not used")
}
func (s *fakeItemService) AddComment(context.Context, string, string, string) (*item.Comment, error) {
	panic("not used")
}

type fakeUserService struct {
	users map[string]*user.User
}

func (s *fakeUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserService) Register(context.Context, string, string, string) (*user.User, error) {
	panic("not used")
}
func (s *fakeUserService) Login(context.Context, string, string) (*user.User, error) {
	panic("not used")
}
func (s *fakeUserService) List(context.Context) ([]*user.User, error) { panic("not used") }
func (s *fakeUserService) Update(context.Context, string, string, user.UpdateRequest) (*user.User, error) {
	panic("not used")
}
func (s *fakeUserService) Remove(context.Context, string, string) error { panic("not used") }

func newTestService(t *testing.T) (*service, *fakeRepository, *fakeItemService) {
	t.Helper()

	repo := newFakeRepository()
	items := &fakeItemService{byRequest: map[string][]*item.Item{}}
	users := &fakeUserService{users: map[string]*user.User{
		"alice": {ID: "alice", Name: "Alice"},
		"bob":   {ID: "bob", Name: "Bob"},
	}}

	svc := NewService(repo, users, items).(*service)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}

	return svc, repo, items
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Stamps Creation Time", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		req, err := svc.Create(ctx, "alice", "Need a ladder")
		require.NoError(t, err)
		assert.NotEmpty(t, req.ID)
		assert.Equal(t, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), req.CreatedAt)
		assert.Contains(t, repo.requests, req.ID)
	})

	t.Run("Blank Description", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Create(ctx, "alice", "   ")
		assert.ErrorIs(t, err, ErrDescriptionRequired)
	})

	t.Run("Unknown User", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Create(ctx, "ghost", "Need a ladder")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestServiceGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Includes Fulfilling Items", func(t *testing.T) {
		svc, _, items := newTestService(t)

		req, err := svc.Create(ctx, "alice", "Need a ladder")
		require.NoError(t, err)
		items.byRequest[req.ID] = []*item.Item{{ID: "item-1", Name: "Ladder"}}

		d, err := svc.GetByID(ctx, req.ID, "bob")
		require.NoError(t, err)
		require.Len(t, d.Items, 1)
		assert.Equal(t, "Ladder", d.Items[0].Name)
	})

	t.Run("No Items Is An Empty Slice", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		req, err := svc.Create(ctx, "alice", "Need a ladder")
		require.NoError(t, err)

		d, err := svc.GetByID(ctx, req.ID, "alice")
		require.NoError(t, err)
		assert.NotNil(t, d.Items)
		assert.Empty(t, d.Items)
	})

	t.Run("Unknown Request", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.GetByID(ctx, "missing", "alice")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceListByOthers(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, svc *service, repo *fakeRepository) {
		t.Helper()
		base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 5; i++ {
			created := base.Add(time.Duration(i) * time.Hour)
			svc.now = func() time.Time { return created }
			_, err := svc.Create(ctx, "bob", "bob's request")
			require.NoError(t, err)
		}
		svc.now = func() time.Time { return base }
		_, err := svc.Create(ctx, "alice", "alice's request")
		require.NoError(t, err)
	}

	t.Run("Excludes Own And Paginates", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		seed(t, svc, repo)

		details, total, err := svc.ListByOthers(ctx, "alice", 0, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, details, 2)
		for _, d := range details {
			assert.Equal(t, "bob", d.UserID)
		}
	})

	t.Run("Newest First", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		seed(t, svc, repo)

		details, _, err := svc.ListByOthers(ctx, "alice", 0, 5)
		require.NoError(t, err)
		require.Len(t, details, 5)
		for i := 1; i < len(details); i++ {
			assert.False(t, details[i].CreatedAt.After(details[i-1].CreatedAt))
		}
	})

	t.Run("Offset Past End", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		seed(t, svc, repo)

		details, total, err := svc.ListByOthers(ctx, "alice", 10, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Empty(t, details)
	})
}

func TestServiceListByUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.Create(ctx, "alice", "Need a ladder")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", "Need a drill")
	require.NoError(t, err)

	details, err := svc.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "alice", details[0].UserID)
}
