package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/metlabs/backend/internal/models"
	"github.com/metlabs/backend/internal/store"
)

// TransactionService appends and lists ledger entries. Entries are immutable;
// there is no update or delete.
type TransactionService struct {
	transactions store.Store[models.Transaction]
}

func NewTransactionService(transactions store.Store[models.Transaction]) *TransactionService {
	return &TransactionService{transactions: transactions}
}

// Add validates and appends a new transaction. Validation failures happen
// before any file access, so a rejected entry never touches the store.
func (s *TransactionService) Add(ctx context.Context, transactionHash, userAddress string, txType models.TransactionType) (*models.Transaction, error) {
	if transactionHash == "" || userAddress == "" {
		return nil, ErrMissingField
	}
	if !txType.Valid() {
		return nil, ErrInvalidTransactionType
	}

	entry := models.Transaction{
		ID:              uuid.NewString(),
		TransactionHash: transactionHash,
		UserAddress:     userAddress,
		Type:            txType,
		CreatedAt:       time.Now().UTC(),
	}

	err := s.transactions.Update(ctx, func(transactions []models.Transaction) ([]models.Transaction, bool, error) {
		return append(transactions, entry), true, nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[TX] Added %s transaction %s for address %s", entry.Type, entry.ID, entry.UserAddress)
	return &entry, nil
}

// ListByUser returns every transaction attributed to userAddress, in
// insertion order.
func (s *TransactionService) ListByUser(ctx context.Context, userAddress string) ([]models.Transaction, error) {
	transactions, err := s.transactions.Load(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Transaction, 0)
	for _, tx := range transactions {
		if tx.UserAddress == userAddress {
			matched = append(matched, tx)
		}
	}
	return matched, nil
}
