package domain

import (
	"time"

	"github.com/google/uuid"
)

// Categorías admitidas.
const (
	CategoryCow     = "Cow"
	CategorySheep   = "Sheep"
	CategoryChicken = "Chicken"
	CategoryFish    = "Fish"
	CategoryCamel   = "Camel"
	CategoryKabab   = "Kabab"
)

const EnableDefault = "enabled"

type Image struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// Product representa un producto del catálogo.
type Product struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	NewPrice  float64   `json:"new_price"`
	Ratings   float64   `json:"ratings"`
	Images    []Image   `json:"images"`
	Category  string    `json:"category"`
	Stock     int       `json:"stock"`
	User      uuid.UUID `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	Enable    string    `json:"enable"`
}

// NewProduct asigna id, fecha y valores por defecto.
func NewProduct(owner uuid.UUID, name, category string) *Product {
	return &Product{
		ID:        uuid.New(),
		Name:      name,
		Category:  category,
		Images:    []Image{},
		User:      owner,
		CreatedAt: time.Now().UTC(),
		Enable:    EnableDefault,
	}
}

// Patch son los cambios parciales de una actualización; nil = sin cambio.
type Patch struct {
	Name     *string
	Price    *float64
	NewPrice *float64
	Ratings  *float64
	Images   []Image
	Category *string
	Stock    *int
	Enable   *string
}

// Apply copia en p los campos presentes.
func (p *Product) Apply(patch Patch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.NewPrice != nil {
		p.NewPrice = *patch.NewPrice
	}
	if patch.Ratings != nil {
		p.Ratings = *patch.Ratings
	}
	if patch.Images != nil {
		p.Images = patch.Images
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Enable != nil {
		p.Enable = *patch.Enable
	}
}
