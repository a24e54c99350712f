package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category string

const (
	CategoryShoe Category = "shoe"
	CategoryHat  Category = "hat"
)

// HasVariantDimension reports whether products in the category are sold in
// variants (shoes carry a size, hats do not).
func (c Category) HasVariantDimension() bool {
	return c == CategoryShoe
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image,omitempty" json:"image"`
	Category    Category           `bson:"category" json:"category"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
