package entity

import (
	"strings"
)

// PurchaseLine is a per-product aggregate of everything a user has ever
// bought of that product. A line never stays around with a zero quantity.
type PurchaseLine struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type User struct {
	ID             string         `json:"id"`
	FullName       string         `json:"fullName"`
	Email          string         `json:"email"`
	Password       string         `json:"password"`
	PhoneNumber    string         `json:"phoneNumber,omitempty"`
	Gender         string         `json:"gender,omitempty"`
	ProfileImage   string         `json:"profileImage,omitempty"`
	IsActive       bool           `json:"isActive"`
	Address1       string         `json:"address1,omitempty"`
	Address2       string         `json:"address2,omitempty"`
	City           string         `json:"city,omitempty"`
	State          string         `json:"state,omitempty"`
	Zip            string         `json:"zip,omitempty"`
	Country        string         `json:"country,omitempty"`
	Address        string         `json:"address,omitempty"`
	PurchasedLines []PurchaseLine `json:"purchasedProducts"`
}

// JoinAddress rebuilds the derived display address from the six address
// components, skipping empty ones.
func (u *User) JoinAddress() string {
	parts := []string{u.Address1, u.Address2, u.City, u.State, u.Zip, u.Country}
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

// PurchaseLineFor returns the user's purchase line for the given product,
// or nil when the user never bought it.
func (u *User) PurchaseLineFor(productID string) *PurchaseLine {
	for i := range u.PurchasedLines {
		if u.PurchasedLines[i].ProductID == productID {
			return &u.PurchasedLines[i]
		}
	}
	return nil
}

// RecordPurchase merges a purchase into the user's history: the existing
// line for the product is incremented in place, otherwise a new line is
// appended.
func (u *User) RecordPurchase(productID, productName string, quantity int, price float64) {
	if line := u.PurchaseLineFor(productID); line != nil {
		line.Quantity += quantity
		return
	}
	u.PurchasedLines = append(u.PurchasedLines, PurchaseLine{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
	})
}

// RemovePurchaseUnits takes quantity units off the line for the given
// product. A line whose quantity drops to zero or below is removed from the
// history entirely.
func (u *User) RemovePurchaseUnits(productID string, quantity int) {
	for i := range u.PurchasedLines {
		if u.PurchasedLines[i].ProductID != productID {
			continue
		}
		if u.PurchasedLines[i].Quantity-quantity <= 0 {
			u.PurchasedLines = append(u.PurchasedLines[:i], u.PurchasedLines[i+1:]...)
		} else {
			u.PurchasedLines[i].Quantity -= quantity
		}
		return
	}
}

// RemovedPurchaseLines reports the lines present in old but absent in
// updated, i.e. the purchases an editor deleted from the history.
func RemovedPurchaseLines(old, updated *User) []PurchaseLine {
	if old == nil {
		return nil
	}
	var removed []PurchaseLine
	for _, line := range old.PurchasedLines {
		if updated == nil || updated.PurchaseLineFor(line.ProductID) == nil {
			removed = append(removed, line)
		}
	}
	return removed
}

// TotalPurchasedQuantity sums the quantities across all purchase lines.
func (u *User) TotalPurchasedQuantity() int {
	total := 0
	for _, line := range u.PurchasedLines {
		total += line.Quantity
	}
	return total
}

// TotalPurchasedAmount sums quantity*price across all purchase lines.
func (u *User) TotalPurchasedAmount() float64 {
	var total float64
	for _, line := range u.PurchasedLines {
		total += float64(line.Quantity) * line.Price
	}
	return total
}
