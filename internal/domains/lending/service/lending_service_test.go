package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"library-backend/internal/config"
	"library-backend/internal/domains/lending"
	"library-backend/internal/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// IN-MEMORY FAKE REPOSITORY
// ========================================

type fakeState struct {
	books   map[uuid.UUID]lending.BookView
	users   map[uuid.UUID]lending.UserInfo
	borrows []lending.BorrowRecord
	queue   []lending.QueueEntry
}

func (s *fakeState) clone() *fakeState {
	c := &fakeState{
		books:   make(map[uuid.UUID]lending.BookView, len(s.books)),
		users:   make(map[uuid.UUID]lending.UserInfo, len(s.users)),
		borrows: append([]lending.BorrowRecord(nil), s.borrows...),
		queue:   append([]lending.QueueEntry(nil), s.queue...),
	}
	for k, v := range s.books {
		c.books[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

type fakeRepo struct {
	state *fakeState

	// adjustStockFailures makes the next N guarded stock updates report
	// a version conflict, exercising the retry path.
	adjustStockFailures int
	commitErr           error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{state: &fakeState{
		books: map[uuid.UUID]lending.BookView{},
		users: map[uuid.UUID]lending.UserInfo{},
	}}
}

func (r *fakeRepo) addBook(b lending.BookView) lending.BookView {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.MaxQueueSize == 0 {
		b.MaxQueueSize = 10
	}
	r.state.books[b.ID] = b
	return b
}

func (r *fakeRepo) addUser(username string) lending.UserInfo {
	u := lending.UserInfo{ID: uuid.New(), Username: username, Email: username + "@example.com"}
	r.state.users[u.ID] = u
	return u
}

func (r *fakeRepo) WithTx(_ context.Context, fn func(tx lending.TxRepository) error) error {
	snapshot := r.state.clone()
	if err := fn(&fakeTx{repo: r}); err != nil {
		r.state = snapshot
		return err
	}
	if r.commitErr != nil {
		r.state = snapshot
		return lending.ErrPartialFailure
	}
	return nil
}

func (r *fakeRepo) GetBookByID(_ context.Context, bookID uuid.UUID) (*lending.BookView, error) {
	b, ok := r.state.books[bookID]
	if !ok {
		return nil, lending.ErrBookNotFound
	}
	return &b, nil
}

func (r *fakeRepo) HasActiveBorrow(_ context.Context, userID uuid.UUID, title string) (bool, error) {
	return r.hasActive(userID, title), nil
}

func (r *fakeRepo) CountActiveBorrows(_ context.Context, userID uuid.UUID) (int, error) {
	return r.countActive(userID), nil
}

func (r *fakeRepo) ListUserBorrows(_ context.Context, userID uuid.UUID) ([]lending.BorrowRecord, error) {
	var out []lending.BorrowRecord
	for _, rec := range r.state.borrows {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListUserQueues(_ context.Context, userID uuid.UUID) ([]lending.QueueMembership, error) {
	var out []lending.QueueMembership
	for _, e := range r.state.queue {
		if e.UserID != userID {
			continue
		}
		book := r.state.books[e.BookID]
		out = append(out, lending.QueueMembership{
			BookID:      e.BookID,
			BookTitle:   book.Title,
			Position:    r.position(e.BookID, userID),
			QueueLength: r.queueLen(e.BookID),
			JoinedAt:    e.JoinedAt,
		})
	}
	return out, nil
}

func (r *fakeRepo) QueueSnapshot(_ context.Context, bookID, userID uuid.UUID) (*lending.QueueSnapshot, error) {
	b, ok := r.state.books[bookID]
	if !ok {
		return nil, lending.ErrBookNotFound
	}
	pos := r.position(bookID, userID)
	return &lending.QueueSnapshot{
		BookID:       bookID,
		QueueEnabled: b.QueueEnabled,
		IsInQueue:    pos > 0,
		Position:     pos,
		QueueLength:  r.queueLen(bookID),
	}, nil
}

func (r *fakeRepo) ListBorrowsDueWithin(_ context.Context, within time.Duration) ([]lending.DueSoonBorrow, error) {
	var out []lending.DueSoonBorrow
	cutoff := time.Now().Add(within)
	for _, rec := range r.state.borrows {
		if rec.Status == lending.StatusBorrowed && rec.DueDate.Before(cutoff) {
			u := r.state.users[rec.UserID]
			out = append(out, lending.DueSoonBorrow{
				BorrowID: rec.ID, UserID: rec.UserID,
				Username: u.Username, Email: u.Email,
				BookTitle: rec.BookTitle, DueDate: rec.DueDate,
			})
		}
	}
	return out, nil
}

func (r *fakeRepo) DeleteOrphanWaitlistEntries(_ context.Context) (int64, error) {
	var kept []lending.QueueEntry
	var removed int64
	for _, e := range r.state.queue {
		if _, ok := r.state.users[e.UserID]; ok {
			kept = append(kept, e)
		} else {
			removed++
		}
	}
	r.state.queue = kept
	return removed, nil
}

func (r *fakeRepo) hasActive(userID uuid.UUID, title string) bool {
	for _, rec := range r.state.borrows {
		if rec.UserID == userID && rec.BookTitle == title && rec.Status == lending.StatusBorrowed {
			return true
		}
	}
	return false
}

func (r *fakeRepo) countActive(userID uuid.UUID) int {
	count := 0
	for _, rec := range r.state.borrows {
		if rec.UserID == userID && rec.Status == lending.StatusBorrowed {
			count++
		}
	}
	return count
}

func (r *fakeRepo) sortedQueue(bookID uuid.UUID) []lending.QueueEntry {
	var entries []lending.QueueEntry
	for _, e := range r.state.queue {
		if e.BookID == bookID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].JoinedAt.Equal(entries[j].JoinedAt) {
			return entries[i].ID.String() < entries[j].ID.String()
		}
		return entries[i].JoinedAt.Before(entries[j].JoinedAt)
	})
	return entries
}

func (r *fakeRepo) position(bookID, userID uuid.UUID) int {
	for i, e := range r.sortedQueue(bookID) {
		if e.UserID == userID {
			return i + 1
		}
	}
	return 0
}

func (r *fakeRepo) queueLen(bookID uuid.UUID) int {
	return len(r.sortedQueue(bookID))
}

type fakeTx struct {
	repo *fakeRepo
}

func (t *fakeTx) LockBookByTitle(_ context.Context, title string) (*lending.BookView, error) {
	for _, b := range t.repo.state.books {
		if b.Title == title {
			return &b, nil
		}
	}
	return nil, lending.ErrBookNotFound
}

func (t *fakeTx) LockBookByID(_ context.Context, bookID uuid.UUID) (*lending.BookView, error) {
	b, ok := t.repo.state.books[bookID]
	if !ok {
		return nil, lending.ErrBookNotFound
	}
	return &b, nil
}

func (t *fakeTx) AdjustStock(_ context.Context, bookID uuid.UUID, version int64, delta int, countBorrow bool) (*lending.BookView, error) {
	if t.repo.adjustStockFailures > 0 {
		t.repo.adjustStockFailures--
		return nil, lending.ErrVersionConflict
	}
	b, ok := t.repo.state.books[bookID]
	if !ok || b.Version != version || b.Stock+delta < 0 {
		return nil, lending.ErrVersionConflict
	}
	b.Stock += delta
	b.Version++
	t.repo.state.books[bookID] = b
	return &b, nil
}

func (t *fakeTx) GetUser(_ context.Context, userID uuid.UUID) (*lending.UserInfo, error) {
	u, ok := t.repo.state.users[userID]
	if !ok {
		return nil, lending.ErrUserNotFound
	}
	return &u, nil
}

func (t *fakeTx) HasActiveBorrow(_ context.Context, userID uuid.UUID, title string) (bool, error) {
	return t.repo.hasActive(userID, title), nil
}

func (t *fakeTx) CountActiveBorrows(_ context.Context, userID uuid.UUID) (int, error) {
	return t.repo.countActive(userID), nil
}

func (t *fakeTx) InsertBorrow(_ context.Context, rec lending.BorrowRecord) error {
	t.repo.state.borrows = append(t.repo.state.borrows, rec)
	return nil
}

func (t *fakeTx) CloseBorrow(_ context.Context, userID uuid.UUID, title string, returnedAt time.Time) (bool, error) {
	for i, rec := range t.repo.state.borrows {
		if rec.UserID == userID && rec.BookTitle == title && rec.Status == lending.StatusBorrowed {
			t.repo.state.borrows[i].Status = lending.StatusReturned
			t.repo.state.borrows[i].ReturnDate = &returnedAt
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTx) QueueLength(_ context.Context, bookID uuid.UUID) (int, error) {
	return t.repo.queueLen(bookID), nil
}

func (t *fakeTx) IsQueued(_ context.Context, bookID, userID uuid.UUID) (bool, error) {
	return t.repo.position(bookID, userID) > 0, nil
}

func (t *fakeTx) AppendQueueEntry(_ context.Context, entry lending.QueueEntry) error {
	t.repo.state.queue = append(t.repo.state.queue, entry)
	return nil
}

func (t *fakeTx) RemoveQueueEntry(_ context.Context, bookID, userID uuid.UUID) (bool, error) {
	for i, e := range t.repo.state.queue {
		if e.BookID == bookID && e.UserID == userID {
			t.repo.state.queue = append(t.repo.state.queue[:i], t.repo.state.queue[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTx) QueueHead(_ context.Context, bookID uuid.UUID) (*lending.QueueEntry, error) {
	entries := t.repo.sortedQueue(bookID)
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (t *fakeTx) MarkNotified(_ context.Context, entryID uuid.UUID) error {
	for i, e := range t.repo.state.queue {
		if e.ID == entryID {
			t.repo.state.queue[i].Notified = true
		}
	}
	return nil
}

type fakeEnqueuer struct {
	promotions []shared.NotifyPromotionPayload
}

func (e *fakeEnqueuer) EnqueueNotifyPromotion(_ context.Context, p shared.NotifyPromotionPayload) error {
	e.promotions = append(e.promotions, p)
	return nil
}

// ========================================
// TEST SETUP
// ========================================

func testPolicy() config.LendingConfig {
	return config.LendingConfig{
		BorrowLimit:     3,
		LoanDays:        7,
		MaxQueueSize:    10,
		ConflictRetries: 3,
	}
}

func newTestService(repo *fakeRepo) (lending.Service, *fakeEnqueuer) {
	enq := &fakeEnqueuer{}
	return NewService(repo, nil, enq, testPolicy()), enq
}

// ========================================
// BORROW
// ========================================

func TestBorrow_Success(t *testing.T) {
	repo := newFakeRepo()
	book := repo.addBook(lending.BookView{Title: "Dune", Author: "Frank Herbert", Stock: 2, QueueEnabled: true})
	user := repo.addUser("alice")
	svc, _ := newTestService(repo)

	result, err := svc.Borrow(context.Background(), user.ID, "Dune")
	require.NoError(t, err)

	assert.Equal(t, "Dune", result.BookTitle)
	assert.Equal(t, 1, result.RemainingStock)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), result.DueDate, 5*time.Second)

	assert.Equal(t, 1, repo.state.books[book.ID].Stock)
	require.Len(t, repo.state.borrows, 1)
	assert.Equal(t, lending.StatusBorrowed, repo.state.borrows[0].Status)
}

func TestBorrow_OutOfStock(t *testing.T) {
	repo := newFakeRepo()
	repo.addBook(lending.BookView{Title: "Dune", Stock: 0, QueueEnabled: true})
	user := repo.addUser("alice")
	svc, _ := newTestService(repo)

	_, err := svc.Borrow(context.Background(), user.ID, "Dune")
	assert.ErrorIs(t, err, lending.ErrOutOfStock)
	assert.Empty(t, repo.state.borrows)
}

func TestBorrow_DuplicateRejectedWithoutStockChange(t *testing.T) {
	repo := newFakeRepo()
	book := repo.addBook(lending.BookView{Title: "Dune", Stock: 5})
	user := repo.addUser("alice")
	svc, _ := newTestService(repo)

	_, err := svc.Borrow(context.Background(), user.ID, "Dune")
	require.NoError(t, err)

	_, err = svc.Borrow(context.Background(), user.ID, "Dune")
	assert.ErrorIs(t, err, lending.ErrAlreadyBorrowed)

	assert.Equal(t, 4, repo.state.books[book.ID].Stock)
	assert.Len(t, repo.state.borrows, 1)
}

func TestBorrow_LimitEnforced(t *testing.T) {
	repo := newFakeRepo()
	user := repo.addUser("alice")
	for _, title := range []string{"A", "B", "C", "D"} {
		repo.addBook(lending.BookView{Title: title, Stock: 1})
	}
	svc, _ := newTestService(repo)

	for _, title := range []string{"A", "B", "C"} {
		_, err := svc.Borrow(context.Background(), user.ID, title)
		require.NoError(t, err)
	}

	_, err := svc.Borrow(context.Background(), user.ID, "D")
	assert.ErrorIs(t, err, lending.ErrBorrowLimitReached)
}

func TestBorrow_UnknownBook(t *testing.T) {
	repo := newFakeRepo()
	user := repo.addUser("alice")
	svc, _ := newTestService(repo)

	_, err := svc.Borrow(context.Background(), user.ID, "Missing")
	assert.ErrorIs(t, err, lending.ErrBookNotFound)
}

func TestBorrow_RetriesVersionConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.addBook(lending.BookView{Title: "Dune", Stock: 3})
	user := repo.addUser("alice")
	repo.adjustStockFailures = 2
	svc, _ := newTestService(repo)

	result, err := svc.Borrow(context.Background(), user.ID, "Dune")
	require.NoError(t, err)
	assert.Equal(t, 2, result.RemainingStock)
}

func TestBorrow_ConflictAfterExhaustedRetries(t *testing.T) {
	repo := newFakeRepo()
	repo.addBook(lending.BookView{Title: "Dune", Stock: 3})
	user := repo.addUser("alice")
	repo.adjustStockFailures = 100
	svc, _ := newTestService(repo)

	_, err := svc.Borrow(context.Background(), user.ID, "Dune")
	assert.ErrorIs(t, err, lending.ErrConflict)
	assert.Empty(t, repo.state.borrows)
}

func TestBorrow_CommitFailureSurfacesPartialFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.addBook(lending.BookView{Title: "Dune", Stock: 3})
	user := repo.addUser("alice")
	repo.commitErr = assert.AnError
	svc, _ := newTestService(repo)

	_, err := svc.Borrow(context.Background(), user.ID, "Dune")
	assert.ErrorIs(t, err, lending.ErrPartialFailure)
}

// ========================================
// RETURN + PROMOTION
// ========================================

func TestReturn_EmptyQueueRestocks(t *testing.T) {
	repo := newFakeRepo()
	book := repo.addBook(lending.BookView{Title: "Dune", Stock: 1, QueueEnabled: true})
	user := repo.addUser("alice")
	svc, enq := newTestService(repo)

	_, err := svc.Borrow(context.Background(), user.ID, "Dune")
	require.NoError(t, err)

	result, err := svc.Return(context.Background(), user.ID, "Dune")
	require.NoError(t, err)

	assert.True(t, result.Restocked)
	assert.False(t, result.Promoted)
	assert.Equal(t, 1, repo.state.books[book.ID].Stock)
	assert.Equal(t, lending.StatusReturned, repo.state.borrows[0].Status)
	assert.Empty(t, enq.promotions)
}

func TestReturn_PromotesQueueHead(t *testing.T) {
	repo := newFakeRepo()
	book := repo.addBook(lending.BookView{Title: "Dune", Stock: 1, QueueEnabled: true})
	alice := repo.addUser("alice")
	bob := repo.addUser("bob")
	carol := repo.addUser("carol")
	svc, enq := newTestService(repo)

	_, err := svc.Borrow(context.Background(), alice.ID, "Dune")
	require.NoError(t, err)

	for _, u := range []lending.UserInfo{bob, carol} {
		_, err := svc.JoinQueue(context.Background(), book.ID, u.ID)
		require.NoError(t, err)
	}

	result, err := svc.Return(context.Background(), alice.ID, "Dune")
	require.NoError(t, err)
	assert.True(t, result.Promoted)

	// The freed copy goes straight to bob, the oldest waiter.
	assert.Equal(t, 0, repo.state.books[book.ID].Stock)
	assert.True(t, repo.hasActive(bob.ID, "Dune"))
	assert.False(t, repo.hasActive(carol.ID, "Dune"))

	// Bob left the queue, carol moved up to position 1.
	assert.Equal(t, 0, repo.position(book.ID, bob.ID))
	assert.Equal(t, 1, repo.position(book.ID, carol.ID))

	require.Len(t, enq.promotions, 1)
	assert.Equal(t, bob.ID, enq.promotions[0].UserID)
	assert.Equal(t, "Dune", enq.promotions[0].BookTitle)
}

func TestReturn_NotBorrowed(t *testing.T) {
	repo := newFakeRepo()
	repo.addBook(lending.BookView{Title: "Dune", Stock: 1})
	user := repo.addUser("alice")
	svc, _ := newTestService(repo)

	_, err := svc.Return(context.Background(), user.ID, "Dune")
	assert.ErrorIs(t, err, lending.ErrNotBorrowed)
}

func TestReturn_BookDeletedFromCatalog(t *testing.T) {
	repo := newFakeRepo()
	book := repo.addBook(lending.BookView{Title: "Dune", Stock: 1})
	user := repo.addUser("alice")
	svc, _ := newTestService(repo)

	_, err := svc.Borrow(context.Background(), user.ID, "Dune")
	require.NoError(t, err)

	delete(repo.state.books, book.ID)

	result, err := svc.Return(context.Background(), user.ID, "Dune")
	require.NoError(t, err)
	assert.False(t, result.Restocked)
	assert.Equal(t, lending.StatusReturned, repo.state.borrows[0].Status)
}

func TestReturn_MissingQueueUserSkipsPromotion(t *testing.T) {
	repo := newFakeRepo()
	book := repo.addBook(lending.BookView{Title: "Dune", Stock: 1, QueueEnabled: true})
	alice := repo.addUser("alice")
	ghost := repo.addUser("ghost")
	svc, enq := newTestService(repo)

	_, err := svc.Borrow(context.Background(), alice.ID, "Dune")
	require.NoError(t, err)
	_, err = svc.JoinQueue(context.Background(), book.ID, ghost.ID)
	require.NoError(t, err)

	// The queued user disappears before the return.
	delete(repo.state.users, ghost.ID)

	result, err := svc.Return(context.Background(), alice.ID, "Dune")
	require.NoError(t, err)

	// Stock is not consumed by a promotion nobody receives.
	assert.False(t, result.Promoted)
	assert.Equal(t, 1, repo.state.books[book.ID].Stock)
	assert.Empty(t, enq.promotions)
}

// ========================================
// QUEUE JOIN / LEAVE
// ========================================

func TestJoinQueue_PositionsFollowArrivalOrder(t *testing.T) {
	repo := newFakeRepo()
	book := repo.addBook(lending.BookView{Title: "Dune", Stock: 0, QueueEnabled: true})
	svc, _ := newTestService(repo)

	for i, name := range []string{"alice", "bob", "carol"} {
		u := repo.addUser(name)
		result, err := svc.JoinQueue(context.Background(), book.ID, u.ID)
		require.NoError(t, err)
		assert.Equal(t, i+1, result.Position)
		assert.Equal(t, i+1, result.QueueLength)
	}
}

func TestJoinQueue_Guards(t *testing.T) {
	repo := newFakeRepo()
	disabled := repo.addBook(lending.BookView{Title: "NoQueue", Stock: 0, QueueEnabled: false})
	book := repo.addBook(lending.BookView{Title: "Dune", Stock: 1, QueueEnabled: true, MaxQueueSize: 1})
	alice := repo.addUser("alice")
	bob := repo.addUser("bob")
	carol := repo.addUser("carol")
	svc, _ := newTestService(repo)

	_, err := svc.JoinQueue(context.Background(), disabled.ID, alice.ID)
	assert.ErrorIs(t, err, lending.ErrQueueDisabled)

	// Holding the book bars queueing for it.
	_, err = svc.Borrow(context.Background(), alice.ID, "Dune")
	require.NoError(t, err)
	_, err = svc.JoinQueue(context.Background(), book.ID, alice.ID)
	assert.ErrorIs(t, err, lending.ErrAlreadyBorrowed)

	_, err = svc.JoinQueue(context.Background(), book.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.JoinQueue(context.Background(), book.ID, bob.ID)
	assert.ErrorIs(t, err, lending.ErrAlreadyQueued)

	_, err = svc.JoinQueue(context.Background(), book.ID, carol.ID)
	assert.ErrorIs(t, err, lending.ErrQueueFull)
}

func TestLeaveQueue_ShiftsLaterPositions(t *testing.T) {
	repo := newFakeRepo()
	book := repo.addBook(lending.BookView{Title: "Dune", Stock: 0, QueueEnabled: true})
	alice := repo.addUser("alice")
	bob := repo.addUser("bob")
	carol := repo.addUser("carol")
	svc, _ := newTestService(repo)

	for _, u := range []lending.UserInfo{alice, bob, carol} {
		_, err := svc.JoinQueue(context.Background(), book.ID, u.ID)
		require.NoError(t, err)
	}

	result, err := svc.LeaveQueue(context.Background(), book.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, result.Removed)

	assert.Equal(t, 1, repo.position(book.ID, alice.ID))
	assert.Equal(t, 2, repo.position(book.ID, carol.ID))
}

func TestLeaveQueue_AbsentIsNoOp(t *testing.T) {
	repo := newFakeRepo()
	book := repo.addBook(lending.BookView{Title: "Dune", Stock: 0, QueueEnabled: true})
	user := repo.addUser("alice")
	svc, _ := newTestService(repo)

	result, err := svc.LeaveQueue(context.Background(), book.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, result.Removed)
}

// ========================================
// STATUS QUERIES
// ========================================

func TestQueueStatus(t *testing.T) {
	repo := newFakeRepo()
	book := repo.addBook(lending.BookView{Title: "Dune", Stock: 0, QueueEnabled: true})
	alice := repo.addUser("alice")
	bob := repo.addUser("bob")
	svc, _ := newTestService(repo)

	for _, u := range []lending.UserInfo{alice, bob} {
		_, err := svc.JoinQueue(context.Background(), book.ID, u.ID)
		require.NoError(t, err)
	}

	status, err := svc.QueueStatus(context.Background(), book.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, status.IsInQueue)
	assert.Equal(t, 2, status.Position)
	assert.Equal(t, 2, status.QueueLength)
	assert.Equal(t, 14, status.EstimatedWait)

	outsider := repo.addUser("carol")
	status, err = svc.QueueStatus(context.Background(), book.ID, outsider.ID)
	require.NoError(t, err)
	assert.False(t, status.IsInQueue)
	assert.Equal(t, 0, status.Position)
	assert.Equal(t, 0, status.EstimatedWait)
}

func TestBorrowStatus(t *testing.T) {
	repo := newFakeRepo()
	book := repo.addBook(lending.BookView{Title: "Dune", Stock: 2})
	user := repo.addUser("alice")
	svc, _ := newTestService(repo)

	status, err := svc.BorrowStatus(context.Background(), book.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, status.HasBorrowed)
	assert.True(t, status.CanBorrow)
	assert.Equal(t, 0, status.CurrentBorrows)
	assert.Equal(t, 3, status.BorrowLimit)

	_, err = svc.Borrow(context.Background(), user.ID, "Dune")
	require.NoError(t, err)

	status, err = svc.BorrowStatus(context.Background(), book.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, status.HasBorrowed)
	assert.Equal(t, 1, status.CurrentBorrows)
}
