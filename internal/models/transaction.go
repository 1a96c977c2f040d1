package models

import (
	"time"
)

// TransactionType is the kind of on-chain movement a transaction claims.
type TransactionType string

const (
	TypeDeposit  TransactionType = "deposit"
	TypeWithdraw TransactionType = "withdraw"
)

func (t TransactionType) Valid() bool {
	return t == TypeDeposit || t == TypeWithdraw
}

// Transaction is an append-only record of a claimed deposit or withdrawal.
// Entries are associated to users by UserAddress string equality, not by ID.
type Transaction struct {
	ID              string          `json:"id"`
	TransactionHash string          `json:"transactionHash"`
	UserAddress     string          `json:"userAddress"`
	Type            TransactionType `json:"type"`
	CreatedAt       time.Time       `json:"createdAt"`
}
