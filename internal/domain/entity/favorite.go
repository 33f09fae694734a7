package entity

// Favorite marks a product the user wants to keep an eye on
type Favorite struct {
	ID          string      `json:"id"`
	UserID      int64       `json:"userId"`
	ProductType ProductType `json:"productType"`
	ProductID   string      `json:"productId"`
}
