package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"library-backend/internal/domains/book"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"

	"github.com/google/uuid"
)

const (
	listCacheTTL   = 5 * time.Minute
	detailCacheTTL = 10 * time.Minute
	maxCoverBytes  = 5 << 20 // 5 MB
)

// Uploader abstracts the object store for cover images.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// BookService implements book.Service with a read-through cache in
// front of the catalog.
type BookService struct {
	repo    book.Repository
	cache   cache.Cache // nil-safe
	storage Uploader    // nil-safe, cover uploads disabled without it
}

func NewService(repo book.Repository, c cache.Cache, storage Uploader) book.Service {
	return &BookService{repo: repo, cache: c, storage: storage}
}

type cachedList struct {
	Books []book.Book `json:"books"`
	Total int64       `json:"total"`
}

func (s *BookService) List(ctx context.Context, filter book.ListFilter) ([]book.Book, int64, error) {
	key := fmt.Sprintf("books:list:%s:%d:%d", filter.Category, filter.Page, filter.Limit)

	if s.cache != nil {
		var cached cachedList
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached.Books, cached.Total, nil
		}
	}

	books, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, cachedList{Books: books, Total: total}, listCacheTTL); err != nil {
			logger.Error("failed to cache book list", err)
		}
	}
	return books, total, nil
}

func (s *BookService) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	key := "books:detail:" + id.String()

	if s.cache != nil {
		var cached book.Book
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, b, detailCacheTTL); err != nil {
			logger.Error("failed to cache book", err)
		}
	}
	return b, nil
}

func (s *BookService) Search(ctx context.Context, query string, limit int) ([]book.Suggestion, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []book.Suggestion{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 12
	}
	return s.repo.Search(ctx, query, limit)
}

func (s *BookService) Save(ctx context.Context, req book.SaveBookRequest) (*book.Book, error) {
	b := &book.Book{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(req.Title),
		Author:       req.Author,
		Category:     req.Category,
		Year:         req.Year,
		Synopsis:     req.Synopsis,
		Cover:        req.Cover,
		PDFURL:       req.PDFURL,
		BorrowLink:   req.BorrowLink,
		Stock:        3,
		QueueEnabled: true,
		MaxQueueSize: 10,
	}
	if b.BorrowLink == "" {
		b.BorrowLink = "#"
	}
	if req.Stock != nil {
		b.Stock = *req.Stock
	}
	if req.QueueEnabled != nil {
		b.QueueEnabled = *req.QueueEnabled
	}
	if req.MaxQueueSize != nil {
		b.MaxQueueSize = *req.MaxQueueSize
	}

	saved, err := s.repo.Upsert(ctx, b)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return saved, nil
}

func (s *BookService) DeleteByTitle(ctx context.Context, title string) error {
	deleted, err := s.repo.DeleteByTitle(ctx, title)
	if err != nil {
		return err
	}
	if !deleted {
		return book.ErrBookNotFound
	}

	s.invalidate(ctx)
	return nil
}

// Seed resets the catalog to the sample set. Every title starts with
// three copies on the shelf.
func (s *BookService) Seed(ctx context.Context) (int, error) {
	books := seedBooks()
	if err := s.repo.ReplaceAll(ctx, books); err != nil {
		return 0, err
	}

	s.invalidate(ctx)
	logger.Info("📚 Catalog seeded", map[string]interface{}{"count": len(books)})
	return len(books), nil
}

func (s *BookService) UploadCover(ctx context.Context, bookID uuid.UUID, file *multipart.FileHeader) (string, error) {
	if s.storage == nil {
		return "", book.ErrCoverUpload
	}
	if file.Size > maxCoverBytes {
		return "", book.ErrCoverTooLarge
	}

	if _, err := s.repo.GetByID(ctx, bookID); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("covers/%s%s", bookID, ext)

	url, err := s.storage.Upload(ctx, key, data, file.Header.Get("Content-Type"))
	if err != nil {
		logger.Error("cover upload failed", err)
		return "", book.ErrCoverUpload
	}

	if err := s.repo.UpdateCover(ctx, bookID, url); err != nil {
		return "", err
	}

	s.invalidate(ctx)
	return url, nil
}

func (s *BookService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "books:*"); err != nil {
		logger.Error("failed to invalidate book cache", err)
	}
}
