package models

import "time"

// Product is a catalog entry.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Brand        string    `json:"brand,omitempty"`
	Price        Money     `json:"price"`
	CategoryID   string    `json:"category_id"`
	CountInStock int       `json:"count_in_stock"`
	IsFeatured   bool      `json:"is_featured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Category groups products.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// CreateProductRequest is the payload for product creation and update.
type CreateProductRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Brand        string  `json:"brand,omitempty"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	CategoryID   string  `json:"category_id"`
	CountInStock int     `json:"count_in_stock"`
	IsFeatured   bool    `json:"is_featured"`
}
