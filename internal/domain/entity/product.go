package entity

// Product is a sellable catalog item. Quantity is the authoritative stock
// count; the legacy Stock and PostalCode fields are carried for backward
// compatibility with older records but are never consulted.
type Product struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	Price            float64  `json:"price"`
	Quantity         int      `json:"quantity"`
	AvailabilityFrom string   `json:"availabilityFrom,omitempty"`
	AvailabilityTo   string   `json:"availabilityTo,omitempty"`
	Image            string   `json:"image,omitempty"`
	Images           []string `json:"images,omitempty"`
	Address1         string   `json:"address1,omitempty"`
	Address2         string   `json:"address2,omitempty"`
	City             string   `json:"city,omitempty"`
	State            string   `json:"state,omitempty"`
	Zip              string   `json:"zip,omitempty"`
	Country          string   `json:"country,omitempty"`
	PostalCode       string   `json:"postalCode,omitempty"`
	Stock            int      `json:"stock,omitempty"`
	Status           string   `json:"status,omitempty"`
}

func (p *Product) InStock() bool {
	return p.Quantity > 0
}
