// Package person provides HTTP handlers for person endpoints.
// It includes handlers for creating, retrieving and listing enriched person records.
package person

import (
	"time"

	"person-api/internal/domain/entity"
)

// DTO represents the JSON structure for person data transfer.
// Gender and probability are omitted when the lookup service did not
// recognize the name.
type DTO struct {
	ID          int64     `json:"id" example:"1"`
	Name        string    `json:"name" example:"Jane"`
	LastName    string    `json:"lastName" example:"Doe"`
	Gender      *string   `json:"gender,omitempty" example:"female"`
	Probability *float64  `json:"probability,omitempty" example:"0.98"`
	Count       int64     `json:"count" example:"12049"`
	CreatedAt   time.Time `json:"createdAt" example:"2025-10-26T12:00:00Z"`
}

func fromEntity(p *entity.Person) DTO {
	return DTO{
		ID:          p.ID,
		Name:        p.Name,
		LastName:    p.LastName,
		Gender:      p.Gender,
		Probability: p.Probability,
		Count:       p.Count,
		CreatedAt:   p.CreatedAt,
	}
}
