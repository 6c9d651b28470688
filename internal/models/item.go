package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Item is one stocked inventory line. ID is supplied by the caller and is
// not required to be unique.
type Item struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	LastModifiedBy int             `json:"userId"`
}

// Equal reports whether two items carry the same field values.
func (i Item) Equal(o Item) bool {
	return i.ID == o.ID &&
		i.Name == o.Name &&
		i.Quantity == o.Quantity &&
		i.Price.Equal(o.Price) &&
		i.LastModifiedBy == o.LastModifiedBy
}

func (i Item) String() string {
	return fmt.Sprintf("ID: %d, Name: %s, Quantity: %d, Price: %s soms.", i.ID, i.Name, i.Quantity, i.Price.String())
}
