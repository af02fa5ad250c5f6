package book

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SaveBookRequest creates a book or updates the one with the same
// title (upsert by title).
type SaveBookRequest struct {
	Title        string  `json:"title" binding:"required"`
	Author       string  `json:"author" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	Year         int     `json:"year" binding:"required"`
	Synopsis     string  `json:"synopsis"`
	Cover        string  `json:"cover"`
	PDFURL       string  `json:"pdfUrl"`
	BorrowLink   string  `json:"borrowLink"`
	Stock        *int    `json:"stock"`
	QueueEnabled *bool   `json:"queueEnabled"`
	MaxQueueSize *int    `json:"maxQueueSize"`
}

func (r SaveBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.By(func(value interface{}) error {
				if !ValidCategory(value.(string)) {
					return ErrInvalidCategory
				}
				return nil
			}),
		),
		validation.Field(&r.Year,
			validation.Required.Error("year is required"),
			validation.Min(1000),
			validation.Max(2100),
		),
		validation.Field(&r.Stock,
			validation.Min(0),
		),
		validation.Field(&r.MaxQueueSize,
			validation.Min(0),
			validation.Max(100),
		),
	)
}

// ListFilter narrows the catalog listing.
type ListFilter struct {
	Category string
	Page     int
	Limit    int
}
