package book

import (
	"time"

	"github.com/google/uuid"
)

// Book categories accepted by the catalog.
var Categories = []string{
	"Horror", "Fantasy", "Mystery", "Science Fiction", "Thriller",
	"Romance", "Adventure", "History", "Computer Books", "Cooking",
}

// Book is one catalog title. Stock counts physical copies; Version
// guards concurrent stock mutations in the lending engine.
type Book struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Category     string    `json:"category"`
	Year         int       `json:"year"`
	Synopsis     string    `json:"synopsis"`
	Cover        string    `json:"cover"`
	PDFURL       string    `json:"pdfUrl"`
	BorrowLink   string    `json:"borrowLink"`
	Stock        int       `json:"stock"`
	QueueEnabled bool      `json:"queueEnabled"`
	MaxQueueSize int       `json:"maxQueueSize"`
	Rating       float64   `json:"rating"`
	TotalRatings int       `json:"totalRatings"`
	BorrowCount  int       `json:"borrowCount"`
	Available    bool      `json:"available"`
	Version      int64     `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Suggestion is the trimmed projection used by live search.
type Suggestion struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Category string    `json:"category"`
	Year     int       `json:"year"`
	Rating   float64   `json:"rating"`
	Cover    string    `json:"cover"`
	Stock    int       `json:"stock"`
	PDFURL   string    `json:"pdfUrl"`
	Synopsis string    `json:"synopsis"`
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
