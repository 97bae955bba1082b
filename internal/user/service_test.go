package user

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	users  map[string]*User
	nextID int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: map[string]*User{}, nextID: 1}
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepository) List(_ context.Context) ([]*User, error) {
	var out []*User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeRepository) Create(_ context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	u.ID = "user-" + strconv.Itoa(r.nextID)
	r.nextID++
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepository) Update(_ context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range r.users {
		if id != u.ID && existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// fakeHasher marks hashes so Compare can verify without bcrypt cost.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return ErrInvalidCredentials
	}
	return nil
}

func newTestService(t *testing.T) (Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	return NewService(repo, fakeHasher{}), repo
}

func TestServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, repo := newTestService(t)

		u, err := svc.Register(ctx, "Alice", "Alice@Example.com ", "supersecret")
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "alice@example.com", u.Email, "email is normalized")
		assert.Equal(t, "hashed:supersecret", u.PasswordHash)
		assert.Contains(t, repo.users, u.ID)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Register(ctx, "Alice", "alice@example.com", "supersecret")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "Other Alice", "ALICE@example.com", "supersecret")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("Blank Email", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Register(ctx, "Alice", "  ", "supersecret")
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("Blank Name", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Register(ctx, " ", "alice@example.com", "supersecret")
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("Short Password", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Register(ctx, "Alice", "alice@example.com", "short")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestServiceLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc Service) *User {
		t.Helper()
		u, err := svc.Register(ctx, "Alice", "alice@example.com", "supersecret")
		require.NoError(t, err)
		return u
	}

	t.Run("Success", func(t *testing.T) {
		svc, _ := newTestService(t)
		u := register(t, svc)

		got, err := svc.Login(ctx, " ALICE@example.com", "supersecret")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		svc, _ := newTestService(t)
		register(t, svc)

		_, err := svc.Login(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Login(ctx, "nobody@example.com", "supersecret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Self Update", func(t *testing.T) {
		svc, _ := newTestService(t)
		u, err := svc.Register(ctx, "Alice", "alice@example.com", "supersecret")
		require.NoError(t, err)

		name := "Alicia"
		got, err := svc.Update(ctx, u.ID, u.ID, UpdateRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Alicia", got.Name)
		assert.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("Updating Someone Else Is Not Found", func(t *testing.T) {
		svc, _ := newTestService(t)
		u, err := svc.Register(ctx, "Alice", "alice@example.com", "supersecret")
		require.NoError(t, err)

		name := "Mallory"
		_, err = svc.Update(ctx, u.ID, "someone-else", UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotSelf)
	})

	t.Run("Email Conflict", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Register(ctx, "Alice", "alice@example.com", "supersecret")
		require.NoError(t, err)
		b, err := svc.Register(ctx, "Bob", "bob@example.com", "supersecret")
		require.NoError(t, err)

		email := "alice@example.com"
		_, err = svc.Update(ctx, b.ID, b.ID, UpdateRequest{Email: &email})
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})
}

func TestServiceRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("Self Remove", func(t *testing.T) {
		svc, repo := newTestService(t)
		u, err := svc.Register(ctx, "Alice", "alice@example.com", "supersecret")
		require.NoError(t, err)

		require.NoError(t, svc.Remove(ctx, u.ID, u.ID))
		assert.NotContains(t, repo.users, u.ID)
	})

	t.Run("Removing Someone Else Is Not Found", func(t *testing.T) {
		svc, _ := newTestService(t)
		u, err := svc.Register(ctx, "Alice", "alice@example.com", "supersecret")
		require.NoError(t, err)

		err = svc.Remove(ctx, u.ID, "someone-else")
		assert.ErrorIs(t, err, ErrNotSelf)
	})
}
