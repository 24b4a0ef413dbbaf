package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a versioned balance holder. Version moves by exactly 1 on every
// accepted balance write and is the only conflict-detection signal between
// concurrent transfers.
type Account struct {
	Id      uuid.UUID       `json:"id"`
	Balance decimal.Decimal `json:"balance"`
	Version int64           `json:"version"`
}
