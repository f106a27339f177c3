package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"returnsconsole/internal/returns"
)

type Customer struct {
	ObjectID  primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	LegacyID  interface{}        `bson:"id,omitempty" json:"-"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// DisplayName prefers the stored full name over first/last name parts.
func (c Customer) DisplayName() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// ReturnCustomer projects the document onto the customer a return names.
func (c Customer) ReturnCustomer() returns.Customer {
	id, ok := returns.ParseID(c.LegacyID)
	if !ok && !c.ObjectID.IsZero() {
		id = returns.ID(c.ObjectID.Hex())
	}
	return returns.Customer{ID: id, Name: c.DisplayName()}
}
