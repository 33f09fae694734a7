package entity

import (
	"time"

	"github.com/shesho2101/ProyectoIntegrador2/pkg/utils"
)

// Hotel is a lodging listing as served by the Wayra API
type Hotel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Rating      float64   `json:"rating"`
	Location    string    `json:"location"`
	Images      []string  `json:"images"`
	Opinions    []Opinion `json:"opinions,omitempty"`
}

// Stars rounds the rating onto the 0..5 scale used by the star display
func (h Hotel) Stars() int {
	switch {
	case h.Rating <= 0:
		return 0
	case h.Rating >= 5:
		return 5
	default:
		return int(h.Rating + 0.5)
	}
}

// StayTotal is nights × nightly price; zero when check-out is not after check-in
func (h Hotel) StayTotal(checkIn, checkOut time.Time) (nights int, total float64) {
	nights = utils.NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return 0, 0
	}
	return nights, float64(nights) * h.Price
}

// StayQuote is the priced stay shown before adding a hotel to the cart
type StayQuote struct {
	HotelID      string    `json:"hotelId"`
	CheckIn      time.Time `json:"checkIn"`
	CheckOut     time.Time `json:"checkOut"`
	Nights       int       `json:"nights"`
	NightlyPrice float64   `json:"nightlyPrice"`
	Total        float64   `json:"total"`
	Display      string    `json:"display"`
}
