package entity

import (
	"errors"
	"time"
)

// CartItem is one line of a cart. Stock is a snapshot of the product's
// available quantity captured when the item entered the cart; the line
// quantity is always clamped to it and never refreshed afterwards.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
	Stock     int     `json:"stock"`
}

func NewCartItem(productID, title string, price float64, image string, quantity, stock int) (*CartItem, error) {
	if productID == "" {
		return nil, errors.New("product ID cannot be empty for cart item")
	}
	if quantity <= 0 {
		return nil, errors.New("cart item quantity must be positive")
	}
	if quantity > stock {
		quantity = stock
	}
	return &CartItem{
		ProductID: productID,
		Title:     title,
		Price:     price,
		Image:     image,
		Quantity:  quantity,
		Stock:     stock,
	}, nil
}

// Cart holds at most one line per product.
type Cart struct {
	UserID     string     `json:"user_id"`
	Items      []CartItem `json:"items"`
	HasNewItem bool       `json:"has_new_item"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func NewCart(userID string) *Cart {
	return &Cart{
		UserID:    userID,
		Items:     make([]CartItem, 0),
		UpdatedAt: time.Now().UTC(),
	}
}

func (c *Cart) GetItem(productID string) (*CartItem, int) {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return &c.Items[i], i
		}
	}
	return nil, -1
}

// AddItem merges the incoming line into the cart. When a line for the
// product already exists its quantity grows by the incoming quantity,
// clamped to the stock snapshot captured when the line was first added.
// Returns true when the resulting quantity was clamped.
func (c *Cart) AddItem(item CartItem) (bool, error) {
	if item.ProductID == "" {
		return false, errors.New("product ID cannot be empty for cart item")
	}
	if item.Quantity <= 0 {
		return false, errors.New("cart item quantity must be positive")
	}

	clamped := false
	existing, _ := c.GetItem(item.ProductID)
	if existing != nil {
		newQuantity := existing.Quantity + item.Quantity
		if newQuantity > existing.Stock {
			newQuantity = existing.Stock
			clamped = true
		}
		existing.Quantity = newQuantity
	} else {
		if item.Quantity > item.Stock {
			item.Quantity = item.Stock
			clamped = true
		}
		c.Items = append(c.Items, item)
	}
	c.HasNewItem = true
	c.UpdatedAt = time.Now().UTC()
	return clamped, nil
}

// UpdateItemQuantity sets the line quantity, clamped to the stock snapshot.
// Returns true when the requested quantity exceeded the snapshot; the caller
// is responsible for warning the user about the clamp.
func (c *Cart) UpdateItemQuantity(productID string, quantity int) (bool, error) {
	item, _ := c.GetItem(productID)
	if item == nil {
		return false, errors.New("item not found in cart")
	}
	if quantity <= 0 {
		return false, errors.New("cart item quantity must be positive")
	}

	clamped := false
	if quantity > item.Stock {
		quantity = item.Stock
		clamped = true
	}
	item.Quantity = quantity
	c.UpdatedAt = time.Now().UTC()
	return clamped, nil
}

func (c *Cart) RemoveItem(productID string) error {
	_, index := c.GetItem(productID)
	if index == -1 {
		return errors.New("item not found in cart to remove")
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.UpdatedAt = time.Now().UTC()
}

// AckNewItem clears the new-item notification flag.
func (c *Cart) AckNewItem() {
	c.HasNewItem = false
	c.UpdatedAt = time.Now().UTC()
}

// TotalAmount sums price*quantity over all lines.
func (c *Cart) TotalAmount() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
