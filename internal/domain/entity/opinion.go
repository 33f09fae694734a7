package entity

import "time"

// Opinion is a user review of a hotel, flight or bus
type Opinion struct {
	ID          string      `json:"id,omitempty"`
	UserID      int64       `json:"userId"`
	Type        ProductType `json:"type"`
	ReferenceID string      `json:"referenceId"`
	Rating      int         `json:"rating"`
	Comment     string      `json:"comment"`
	PublishedAt time.Time   `json:"publishedAt,omitempty"`
}
