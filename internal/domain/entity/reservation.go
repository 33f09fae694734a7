package entity

import "time"

// Reservation is a confirmed booking, shown to the user as a receipt
type Reservation struct {
	ID          string      `json:"id"`
	UserID      int64       `json:"userId"`
	ProductType ProductType `json:"productType"`
	ProductID   string      `json:"productId"`
	CheckIn     *time.Time  `json:"checkIn,omitempty"`
	CheckOut    *time.Time  `json:"checkOut,omitempty"`
	Total       float64     `json:"total"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}
