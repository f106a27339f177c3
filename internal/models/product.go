package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"returnsconsole/internal/returns"
)

// Product is the inventory document as stored by the inventory service.
// Older documents carry a numeric "id" next to Mongo's "_id"; orders
// reference products by whichever of the two existed when they were
// written.
type Product struct {
	ObjectID  primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	LegacyID  interface{}        `bson:"id,omitempty" json:"-"`
	Name      string             `bson:"name" json:"name"`
	NameEn    string             `bson:"nameEn,omitempty" json:"nameEn,omitempty"`
	Price     float64            `bson:"price" json:"price"`
	IsDeleted bool               `bson:"isDeleted" json:"isDeleted,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CatalogID returns the identifier orders use for this product.
func (p Product) CatalogID() returns.ID {
	if id, ok := returns.ParseID(p.LegacyID); ok {
		return id
	}
	if !p.ObjectID.IsZero() {
		return returns.ID(p.ObjectID.Hex())
	}
	return ""
}

// CatalogEntry projects the document onto the attributes returns read.
func (p Product) CatalogEntry() returns.Product {
	price := p.Price
	if price < 0 {
		price = 0
	}
	return returns.Product{
		ID:     p.CatalogID(),
		Name:   p.Name,
		NameEn: p.NameEn,
		Price:  price,
	}
}
