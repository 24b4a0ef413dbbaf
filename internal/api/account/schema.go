package account

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateAccountSchema struct {
	Balance *decimal.Decimal `json:"balance"`
}

type AccountShowSchema struct {
	Id      uuid.UUID       `json:"id"`
	Balance decimal.Decimal `json:"balance"`
}

type CreateAccountResponseSchema = AccountShowSchema

type AccountListItemSchema struct {
	Id      uuid.UUID       `json:"id"`
	Balance decimal.Decimal `json:"balance"`
	Version int64           `json:"version"`
}
