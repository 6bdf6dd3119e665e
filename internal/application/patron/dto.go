package patron

import (
	"time"

	"github.com/xiebiao/library/internal/domain/patron"
)

// PatronResponse 读者响应DTO
type PatronResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contact_info"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toPatronResponse(p *patron.Patron) *PatronResponse {
	return &PatronResponse{
		ID:          p.ID,
		Name:        p.Name,
		ContactInfo: p.ContactInfo,
		Email:       p.Email,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPatronResponses(patrons []*patron.Patron) []*PatronResponse {
	out := make([]*PatronResponse, 0, len(patrons))
	for _, p := range patrons {
		out = append(out, toPatronResponse(p))
	}
	return out
}
