package service

import (
	"context"
	"testing"

	"library-backend/internal/domains/lending"
	"library-backend/internal/domains/user"
	"library-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// FAKES
// ========================================

type fakeUserRepo struct {
	users    map[uuid.UUID]user.User
	wishlist []user.WishlistItem
	reading  []user.ReadingListItem
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]user.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return user.ErrDuplicateUser
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = hash
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) AddWishlistItem(_ context.Context, item user.WishlistItem) error {
	for _, existing := range r.wishlist {
		if existing.UserID == item.UserID && existing.BookTitle == item.BookTitle {
			return user.ErrAlreadyInWishlist
		}
	}
	r.wishlist = append(r.wishlist, item)
	return nil
}

func (r *fakeUserRepo) ListWishlist(_ context.Context, userID uuid.UUID) ([]user.WishlistItem, error) {
	var out []user.WishlistItem
	for _, item := range r.wishlist {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) RemoveWishlistItem(_ context.Context, userID uuid.UUID, title string) (bool, error) {
	for i, item := range r.wishlist {
		if item.UserID == userID && item.BookTitle == title {
			r.wishlist = append(r.wishlist[:i], r.wishlist[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) AddReadingItem(_ context.Context, item user.ReadingListItem) error {
	for _, existing := range r.reading {
		if existing.UserID == item.UserID && existing.BookTitle == item.BookTitle {
			return user.ErrAlreadyReading
		}
	}
	r.reading = append(r.reading, item)
	return nil
}

func (r *fakeUserRepo) ListReading(_ context.Context, userID uuid.UUID) ([]user.ReadingListItem, error) {
	var out []user.ReadingListItem
	for _, item := range r.reading {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateReadingProgress(_ context.Context, userID uuid.UUID, title string, progress int) (bool, error) {
	for i, item := range r.reading {
		if item.UserID == userID && item.BookTitle == title {
			r.reading[i].Progress = progress
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) RemoveReadingItem(_ context.Context, userID uuid.UUID, title string) (bool, error) {
	for i, item := range r.reading {
		if item.UserID == userID && item.BookTitle == title {
			r.reading = append(r.reading[:i], r.reading[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// stubLending satisfies lending.Service for profile aggregation.
type stubLending struct {
	borrows []lending.BorrowRecord
}

func (s *stubLending) Borrow(context.Context, uuid.UUID, string) (*lending.BorrowResult, error) {
	return nil, nil
}
func (s *stubLending) Return(context.Context, uuid.UUID, string) (*lending.ReturnResult, error) {
	return nil, nil
}
func (s *stubLending) JoinQueue(context.Context, uuid.UUID, uuid.UUID) (*lending.JoinQueueResult, error) {
	return nil, nil
}
func (s *stubLending) LeaveQueue(context.Context, uuid.UUID, uuid.UUID) (*lending.LeaveQueueResult, error) {
	return nil, nil
}
func (s *stubLending) QueueStatus(context.Context, uuid.UUID, uuid.UUID) (*lending.QueueStatusResult, error) {
	return nil, nil
}
func (s *stubLending) BorrowStatus(context.Context, uuid.UUID, uuid.UUID) (*lending.BorrowStatusResult, error) {
	return nil, nil
}
func (s *stubLending) ListUserBorrows(context.Context, uuid.UUID) ([]lending.BorrowRecord, error) {
	return s.borrows, nil
}
func (s *stubLending) ListUserQueues(context.Context, uuid.UUID) ([]lending.QueueMembership, error) {
	return nil, nil
}

func newTestService(repo *fakeUserRepo) user.Service {
	tokens := jwt.NewManager("test-secret", 15, 72)
	return NewService(repo, &stubLending{}, tokens, nil)
}

// ========================================
// TESTS
// ========================================

func TestRegister_IssuesTokenPair(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	result, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "alice", result.User.Username)
	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.Equal(t, user.RoleMember, result.User.Role)
	assert.NotEqual(t, "correct horse", result.User.PasswordHash)
}

func TestRegister_DuplicateRejected(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), user.RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "correct horse",
	})
	assert.ErrorIs(t, err, user.ErrDuplicateUser)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), user.LoginRequest{
		Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", result.User.Username)

	_, err = svc.Login(context.Background(), user.LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	// Unknown accounts get the same error as wrong passwords.
	_, err = svc.Login(context.Background(), user.LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	registered, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, user.ErrInvalidToken)

	// An access token is not usable as a refresh token.
	_, err = svc.Refresh(context.Background(), registered.AccessToken)
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	registered, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)
	userID := registered.User.ID

	err = svc.ChangePassword(context.Background(), userID, user.ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "battery staple",
	})
	assert.ErrorIs(t, err, user.ErrWrongPassword)

	err = svc.ChangePassword(context.Background(), userID, user.ChangePasswordRequest{
		CurrentPassword: "correct horse", NewPassword: "battery staple",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), user.LoginRequest{
		Email: "alice@example.com", Password: "battery staple",
	})
	assert.NoError(t, err)
}

func TestWishlist_DuplicateTitleRejected(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	registered, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)
	userID := registered.User.ID

	err = svc.AddToWishlist(context.Background(), userID, user.AddListItemRequest{Title: "Dune"})
	require.NoError(t, err)

	err = svc.AddToWishlist(context.Background(), userID, user.AddListItemRequest{Title: "Dune"})
	assert.ErrorIs(t, err, user.ErrAlreadyInWishlist)

	items, err := svc.GetWishlist(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestReadingList_ProgressAndRemoval(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	registered, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)
	userID := registered.User.ID

	err = svc.AddToReadingList(context.Background(), userID, user.AddListItemRequest{Title: "Dune"})
	require.NoError(t, err)

	err = svc.UpdateReadingProgress(context.Background(), userID, "Dune", 40)
	require.NoError(t, err)

	items, err := svc.GetReadingList(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 40, items[0].Progress)

	err = svc.UpdateReadingProgress(context.Background(), userID, "Missing", 10)
	assert.ErrorIs(t, err, user.ErrListItemNotFound)

	err = svc.RemoveFromReadingList(context.Background(), userID, "Dune")
	require.NoError(t, err)

	err = svc.RemoveFromReadingList(context.Background(), userID, "Dune")
	assert.ErrorIs(t, err, user.ErrListItemNotFound)
}

func TestGetProfile_Aggregates(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := jwt.NewManager("test-secret", 15, 72)
	lendingStub := &stubLending{borrows: []lending.BorrowRecord{{BookTitle: "Dune"}}}
	svc := NewService(repo, lendingStub, tokens, nil)

	registered, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)
	userID := registered.User.ID

	require.NoError(t, svc.AddToWishlist(context.Background(), userID, user.AddListItemRequest{Title: "Dune"}))

	profile, err := svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, "alice", profile.User.Username)
	assert.Len(t, profile.Wishlist, 1)
	borrows, ok := profile.BorrowHistory.([]lending.BorrowRecord)
	require.True(t, ok)
	assert.Len(t, borrows, 1)
}
