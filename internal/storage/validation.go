// Package storage provides the data persistence layer for the solari ledger.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/solari/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidEntity = errors.New("invalid entity")
	ErrInvalidID     = errors.New("id must be positive")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures an identifier is positive.
func validateID(id int64, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidID, paramName)
	}
	return nil
}

// validateWallet validates a wallet record before persisting.
func validateWallet(wallet *model.Wallet) error {
	if wallet == nil {
		return fmt.Errorf("%w: wallet", ErrNilParameter)
	}
	if strings.TrimSpace(wallet.Name) == "" {
		return fmt.Errorf("%w: wallet missing name", ErrInvalidEntity)
	}
	return nil
}

// validateTransaction validates a wallet transaction record.
func validateTransaction(txn *model.WalletTransaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.WalletID <= 0 {
		return fmt.Errorf("%w: transaction missing wallet", ErrInvalidEntity)
	}
	if txn.CategoryID <= 0 {
		return fmt.Errorf("%w: transaction missing category", ErrInvalidEntity)
	}
	if !txn.Type.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", ErrInvalidEntity, txn.Type)
	}
	if !txn.Status.Valid() {
		return fmt.Errorf("%w: unknown transaction status %q", ErrInvalidEntity, txn.Status)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: transaction missing date", ErrInvalidEntity)
	}
	return nil
}

// validateCard validates a credit card record.
func validateCard(card *model.CreditCard) error {
	if card == nil {
		return fmt.Errorf("%w: card", ErrNilParameter)
	}
	if strings.TrimSpace(card.Name) == "" {
		return fmt.Errorf("%w: card missing name", ErrInvalidEntity)
	}
	return nil
}
