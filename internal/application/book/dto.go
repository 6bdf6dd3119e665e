package book

import (
	"time"

	"github.com/xiebiao/library/internal/domain/book"
)

// BookResponse 图书响应DTO
// 缓存中保存的就是这个投影,避免领域实体直接出现在缓存和HTTP响应里
type BookResponse struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	PublicationYear int       `json:"publication_year"`
	ISBN            string    `json:"isbn"`
	Available       bool      `json:"available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
		ISBN:            b.ISBN,
		Available:       b.Available,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toBookResponses(books []*book.Book) []*BookResponse {
	out := make([]*BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	return out
}
