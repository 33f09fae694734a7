package entity

// ProductType is the kind of product a cart line, favorite or opinion points at
type ProductType string

const (
	ProductHotel  ProductType = "hotel"
	ProductFlight ProductType = "flight"
	ProductBus    ProductType = "bus"
)

// Valid reports whether t is one of the sellable product types
func (t ProductType) Valid() bool {
	switch t {
	case ProductHotel, ProductFlight, ProductBus:
		return true
	}
	return false
}

// CartItem is one line of a user's cart. TotalPrice is what the backend stored.
type CartItem struct {
	ID          string      `json:"id"`
	UserID      int64       `json:"userId"`
	ProductID   string      `json:"productId"`
	ProductType ProductType `json:"productType"`
	Quantity    int         `json:"quantity"`
	UnitPrice   float64     `json:"unitPrice"`
	TotalPrice  float64     `json:"totalPrice"`
}

// LineTotal is unit price × quantity. Lines the backend priced as a whole
// (hotel stays) carry no unit price and keep their stored total.
func (i CartItem) LineTotal() float64 {
	if i.UnitPrice == 0 {
		return i.TotalPrice
	}
	return i.UnitPrice * float64(i.Quantity)
}

// Cart is the last server view of a user's cart
type Cart struct {
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Display  string     `json:"display"`
}

// CartSubtotal sums line totals
func CartSubtotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}
