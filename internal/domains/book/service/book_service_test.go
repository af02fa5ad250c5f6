package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"library-backend/internal/domains/book"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// FAKES
// ========================================

type fakeBookRepo struct {
	books map[uuid.UUID]book.Book
	// listCalls counts repository hits so cache behavior is observable.
	listCalls int
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[uuid.UUID]book.Book{}}
}

func (r *fakeBookRepo) add(b book.Book) book.Book {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.books[b.ID] = b
	return b
}

func (r *fakeBookRepo) List(_ context.Context, filter book.ListFilter) ([]book.Book, int64, error) {
	r.listCalls++
	var out []book.Book
	for _, b := range r.books {
		if filter.Category == "" || b.Category == filter.Category {
			out = append(out, b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookRepo) GetByID(_ context.Context, id uuid.UUID) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return &b, nil
}

func (r *fakeBookRepo) GetByTitle(_ context.Context, title string) (*book.Book, error) {
	for _, b := range r.books {
		if b.Title == title {
			return &b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (r *fakeBookRepo) Upsert(_ context.Context, b *book.Book) (*book.Book, error) {
	for id, existing := range r.books {
		if existing.Title == b.Title {
			updated := existing
			updated.Author = b.Author
			updated.Category = b.Category
			updated.Year = b.Year
			updated.Synopsis = b.Synopsis
			r.books[id] = updated
			return &updated, nil
		}
	}
	r.books[b.ID] = *b
	saved := *b
	return &saved, nil
}

func (r *fakeBookRepo) DeleteByTitle(_ context.Context, title string) (bool, error) {
	for id, b := range r.books {
		if b.Title == title {
			delete(r.books, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookRepo) ReplaceAll(_ context.Context, books []book.Book) error {
	r.books = map[uuid.UUID]book.Book{}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return nil
}

func (r *fakeBookRepo) Search(_ context.Context, query string, limit int) ([]book.Suggestion, error) {
	var out []book.Suggestion
	for _, b := range r.books {
		if strings.Contains(strings.ToLower(b.Title), strings.ToLower(query)) && len(out) < limit {
			out = append(out, book.Suggestion{ID: b.ID, Title: b.Title, Author: b.Author})
		}
	}
	return out, nil
}

func (r *fakeBookRepo) UpdateCover(_ context.Context, id uuid.UUID, coverURL string) error {
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.Cover = coverURL
	r.books[id] = b
	return nil
}

// memoryCache is a minimal cache.Cache for tests.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *memoryCache) Ping(_ context.Context) error { return nil }

// ========================================
// TESTS
// ========================================

func TestList_CachesResult(t *testing.T) {
	repo := newFakeBookRepo()
	repo.add(book.Book{Title: "Dune", Category: "Fantasy"})
	svc := NewService(repo, newMemoryCache(), nil)

	filter := book.ListFilter{Page: 1, Limit: 20}

	_, total, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 1, repo.listCalls)

	// Second read is served from cache.
	_, _, err = svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}

func TestSave_InvalidatesCache(t *testing.T) {
	repo := newFakeBookRepo()
	repo.add(book.Book{Title: "Dune", Category: "Fantasy"})
	svc := NewService(repo, newMemoryCache(), nil)

	filter := book.ListFilter{Page: 1, Limit: 20}
	_, _, err := svc.List(context.Background(), filter)
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), book.SaveBookRequest{
		Title:    "The Shining",
		Author:   "Stephen King",
		Category: "Horror",
		Year:     1977,
	})
	require.NoError(t, err)

	_, total, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, 2, repo.listCalls)
}

func TestSave_AppliesDefaults(t *testing.T) {
	repo := newFakeBookRepo()
	svc := NewService(repo, nil, nil)

	saved, err := svc.Save(context.Background(), book.SaveBookRequest{
		Title:    "Dune",
		Author:   "Frank Herbert",
		Category: "Science Fiction",
		Year:     1965,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, saved.Stock)
	assert.True(t, saved.QueueEnabled)
	assert.Equal(t, 10, saved.MaxQueueSize)
	assert.Equal(t, "#", saved.BorrowLink)
}

func TestSave_UpdatesExistingTitle(t *testing.T) {
	repo := newFakeBookRepo()
	svc := NewService(repo, nil, nil)

	_, err := svc.Save(context.Background(), book.SaveBookRequest{
		Title: "Dune", Author: "F. Herbert", Category: "Science Fiction", Year: 1965,
	})
	require.NoError(t, err)

	updated, err := svc.Save(context.Background(), book.SaveBookRequest{
		Title: "Dune", Author: "Frank Herbert", Category: "Science Fiction", Year: 1965,
	})
	require.NoError(t, err)

	assert.Equal(t, "Frank Herbert", updated.Author)
	assert.Len(t, repo.books, 1)
}

func TestDeleteByTitle_NotFound(t *testing.T) {
	svc := NewService(newFakeBookRepo(), nil, nil)

	err := svc.DeleteByTitle(context.Background(), "Missing")
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestSeed_ResetsCatalog(t *testing.T) {
	repo := newFakeBookRepo()
	repo.add(book.Book{Title: "Old Book", Category: "Horror"})
	svc := NewService(repo, nil, nil)

	count, err := svc.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, count)
	assert.Len(t, repo.books, 6)

	// Every seeded title starts with three copies.
	for _, b := range repo.books {
		assert.Equal(t, 3, b.Stock)
	}

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestSearch_ShortQueryReturnsEmpty(t *testing.T) {
	repo := newFakeBookRepo()
	repo.add(book.Book{Title: "Dune"})
	svc := NewService(repo, nil, nil)

	suggestions, err := svc.Search(context.Background(), "d", 12)
	require.NoError(t, err)
	assert.Empty(t, suggestions)

	suggestions, err = svc.Search(context.Background(), "  du  ", 12)
	require.NoError(t, err)
	assert.Len(t, suggestions, 1)
}
