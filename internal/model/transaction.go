package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one finalized transfer attempt. Records are append-only:
// abandoned attempts stay in the log with Failed set.
type Transaction struct {
	Id        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Sender    uuid.UUID       `json:"sender"`
	Recipient uuid.UUID       `json:"recipient"`
	Failed    bool            `json:"failed"`
	CreatedAt time.Time       `json:"created_at"`
}
