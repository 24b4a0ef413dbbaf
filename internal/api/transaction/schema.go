package transaction

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateTransactionSchema struct {
	Amount *decimal.Decimal `json:"amount" validate:"required"`
	From   *uuid.UUID       `json:"from" validate:"required"`
	To     *uuid.UUID       `json:"to" validate:"required"`
}
