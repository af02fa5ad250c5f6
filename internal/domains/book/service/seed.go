package service

import (
	"library-backend/internal/domains/book"

	"github.com/google/uuid"
)

// seedBooks is the development sample catalog.
func seedBooks() []book.Book {
	samples := []book.Book{
		{
			Title:    "The Reaper",
			Author:   "Steven Banner",
			Category: "Horror",
			Year:     2023,
			Rating:   4,
			Synopsis: "Young Sean Callahan appears to be lost...",
			Cover:    "horror/horror1.png",
		},
		{
			Title:    "The Darkest Night",
			Author:   "A. Nonymous",
			Category: "Horror",
			Year:     2021,
			Rating:   5,
			Synopsis: "A scary story about the night.",
			Cover:    "horror/horror2.png",
		},
		{
			Title:    "The Shining",
			Author:   "Stephen King",
			Category: "Horror",
			Year:     1977,
			Rating:   5,
			Synopsis: "Here's Johnny!",
			Cover:    "horror/shining.png",
		},
		{
			Title:    "The Dragon's Eye",
			Author:   "F. Antasy",
			Category: "Fantasy",
			Year:     2020,
			Rating:   5,
			Synopsis: "Dragons and magic.",
			Cover:    "fantasy/fantasy1.png",
		},
		{
			Title:    "Magic World",
			Author:   "J. K. Rowling",
			Category: "Fantasy",
			Year:     2018,
			Rating:   4,
			Synopsis: "Wizards fighting dark magic.",
			Cover:    "fantasy/fantasy2.png",
		},
		{
			Title:    "Who Did It?",
			Author:   "Sherlock",
			Category: "Mystery",
			Year:     1999,
			Rating:   5,
			Synopsis: "A classic whodunit.",
			Cover:    "mystery/mystery1.png",
		},
	}

	for i := range samples {
		samples[i].ID = uuid.New()
		samples[i].Stock = 3
		samples[i].BorrowLink = "#"
	}
	return samples
}
