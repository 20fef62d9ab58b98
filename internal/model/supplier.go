package model

type Supplier struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"totalReviews"`
}

// SupplierInput is the add-supplier form payload.
type SupplierInput struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}
