package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/solari/internal/common"
	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/money"
	"github.com/Veraticus/solari/internal/service"
)

// WalletService manages wallets, their transactions, and transfers between
// them. The cached wallet balance is adjusted in the same transaction as the
// event that changes it.
type WalletService struct {
	store service.Storage
}

// NewWalletService creates a wallet service backed by the given storage.
func NewWalletService(store service.Storage) *WalletService {
	return &WalletService{store: store}
}

// CreateWallet creates a wallet with the given starting balance.
func (s *WalletService) CreateWallet(ctx context.Context, name, walletType string, initialBalance money.Amount) (*model.Wallet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("wallet name: %w", common.ErrInvalidInput)
	}

	wallet := &model.Wallet{
		Name:    name,
		Type:    walletType,
		Balance: initialBalance,
	}

	err := runInTx(ctx, s.store, func(tx service.Tx) error {
		exists, err := tx.WalletExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("wallet %q: %w", name, common.ErrDuplicateName)
		}
		return tx.CreateWallet(ctx, wallet)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("wallet created", "name", name, "balance", initialBalance.String())
	return wallet, nil
}

// RenameWallet changes a wallet's name, keeping the name space unique.
func (s *WalletService) RenameWallet(ctx context.Context, id int64, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("wallet name: %w", common.ErrInvalidInput)
	}

	return runInTx(ctx, s.store, func(tx service.Tx) error {
		wallet, err := tx.GetWalletByID(ctx, id)
		if err != nil {
			return err
		}
		if wallet.Name == newName {
			return nil
		}
		exists, err := tx.WalletExistsByName(ctx, newName)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("wallet %q: %w", newName, common.ErrDuplicateName)
		}
		wallet.Name = newName
		return tx.UpdateWallet(ctx, wallet)
	})
}

// ArchiveWallet hides a wallet from default listings without touching its
// history.
func (s *WalletService) ArchiveWallet(ctx context.Context, id int64) error {
	return s.setArchived(ctx, id, true)
}

// UnarchiveWallet restores an archived wallet.
func (s *WalletService) UnarchiveWallet(ctx context.Context, id int64) error {
	return s.setArchived(ctx, id, false)
}

func (s *WalletService) setArchived(ctx context.Context, id int64, archived bool) error {
	return runInTx(ctx, s.store, func(tx service.Tx) error {
		wallet, err := tx.GetWalletByID(ctx, id)
		if err != nil {
			return err
		}
		wallet.Archived = archived
		return tx.UpdateWallet(ctx, wallet)
	})
}

// DeleteWallet removes a wallet. Wallets with transaction or transfer
// history cannot be deleted; archive them instead.
func (s *WalletService) DeleteWallet(ctx context.Context, id int64) error {
	return runInTx(ctx, s.store, func(tx service.Tx) error {
		txnCount, err := tx.CountTransactionsByWallet(ctx, id)
		if err != nil {
			return err
		}
		transferCount, err := tx.CountTransfersByWallet(ctx, id)
		if err != nil {
			return err
		}
		if txnCount > 0 || transferCount > 0 {
			return fmt.Errorf("wallet has history, archive it instead: %w", common.ErrInvalidInput)
		}
		return tx.DeleteWallet(ctx, id)
	})
}

// UpdateBalance overwrites a wallet's balance without recording a
// transaction. It is the manual correction escape hatch.
func (s *WalletService) UpdateBalance(ctx context.Context, id int64, newBalance money.Amount) error {
	err := runInTx(ctx, s.store, func(tx service.Tx) error {
		return tx.UpdateWalletBalance(ctx, id, newBalance)
	})
	if err != nil {
		return err
	}
	slog.Info("wallet balance overwritten", "wallet_id", id, "balance", newBalance.String())
	return nil
}

// TransferMoney moves an amount between two wallets, recording the transfer
// and adjusting both balances atomically.
func (s *WalletService) TransferMoney(ctx context.Context, senderID, receiverID int64, date time.Time, amount money.Amount, description string) (*model.Transfer, error) {
	if senderID == receiverID {
		return nil, fmt.Errorf("cannot transfer to the same wallet: %w", common.ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("transfer amount must be positive: %w", common.ErrInvalidInput)
	}

	transfer := &model.Transfer{
		SenderWalletID:   senderID,
		ReceiverWalletID: receiverID,
		Date:             date,
		Amount:           amount,
		Description:      description,
	}

	err := runInTx(ctx, s.store, func(tx service.Tx) error {
		sender, err := tx.GetWalletByID(ctx, senderID)
		if err != nil {
			return fmt.Errorf("sender: %w", err)
		}
		receiver, err := tx.GetWalletByID(ctx, receiverID)
		if err != nil {
			return fmt.Errorf("receiver: %w", err)
		}
		if sender.Balance < amount {
			return fmt.Errorf("wallet %q has %s: %w", sender.Name, sender.Balance, common.ErrInsufficientBalance)
		}

		if err := tx.CreateTransfer(ctx, transfer); err != nil {
			return err
		}
		if err := tx.UpdateWalletBalance(ctx, senderID, sender.Balance-amount); err != nil {
			return err
		}
		return tx.UpdateWalletBalance(ctx, receiverID, receiver.Balance+amount)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("transfer completed",
		"sender_id", senderID,
		"receiver_id", receiverID,
		"amount", amount.String())
	return transfer, nil
}

// AddTransaction records an income or expense on a wallet. A confirmed
// transaction applies its balance delta immediately; a pending one waits
// for ConfirmTransaction.
func (s *WalletService) AddTransaction(ctx context.Context, walletID, categoryID int64, txnType model.TransactionType, status model.TransactionStatus, date time.Time, amount money.Amount, description string) (*model.WalletTransaction, error) {
	if !txnType.Valid() {
		return nil, fmt.Errorf("transaction type %q: %w", txnType, common.ErrInvalidInput)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("transaction status %q: %w", status, common.ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("transaction amount must be positive: %w", common.ErrInvalidInput)
	}

	txn := &model.WalletTransaction{
		WalletID:    walletID,
		CategoryID:  categoryID,
		Type:        txnType,
		Status:      status,
		Date:        date,
		Amount:      amount,
		Description: description,
	}

	err := runInTx(ctx, s.store, func(tx service.Tx) error {
		wallet, err := tx.GetWalletByID(ctx, walletID)
		if err != nil {
			return fmt.Errorf("wallet: %w", err)
		}
		if _, err := tx.GetCategoryByID(ctx, categoryID); err != nil {
			return fmt.Errorf("category: %w", err)
		}

		if err := tx.CreateTransaction(ctx, txn); err != nil {
			return err
		}
		if status == model.StatusConfirmed {
			newBalance := wallet.Balance + balanceDelta(txnType, amount)
			return tx.UpdateWalletBalance(ctx, walletID, newBalance)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("transaction added",
		"wallet_id", walletID,
		"type", txnType,
		"status", status,
		"amount", amount.String())
	return txn, nil
}

// ConfirmTransaction applies a pending transaction's delta to its wallet.
// Confirming an expense the wallet cannot cover fails with
// ErrInsufficientBalance.
func (s *WalletService) ConfirmTransaction(ctx context.Context, id int64) error {
	err := runInTx(ctx, s.store, func(tx service.Tx) error {
		txn, err := tx.GetTransactionByID(ctx, id)
		if err != nil {
			return err
		}
		if txn.Status == model.StatusConfirmed {
			return fmt.Errorf("transaction %d: %w", id, common.ErrAlreadyConfirmed)
		}

		wallet, err := tx.GetWalletByID(ctx, txn.WalletID)
		if err != nil {
			return err
		}
		if txn.Type == model.TypeExpense && wallet.Balance < txn.Amount {
			return fmt.Errorf("wallet %q has %s, need %s: %w",
				wallet.Name, wallet.Balance, txn.Amount, common.ErrInsufficientBalance)
		}

		newBalance := wallet.Balance + balanceDelta(txn.Type, txn.Amount)
		if err := tx.UpdateWalletBalance(ctx, txn.WalletID, newBalance); err != nil {
			return err
		}
		return tx.UpdateTransactionStatus(ctx, id, model.StatusConfirmed)
	})
	if err != nil {
		return err
	}

	slog.Info("transaction confirmed", "transaction_id", id)
	return nil
}

// DeleteTransaction removes a transaction, reversing its balance delta
// first if it was confirmed.
func (s *WalletService) DeleteTransaction(ctx context.Context, id int64) error {
	return runInTx(ctx, s.store, func(tx service.Tx) error {
		txn, err := tx.GetTransactionByID(ctx, id)
		if err != nil {
			return err
		}

		if txn.Status == model.StatusConfirmed {
			wallet, err := tx.GetWalletByID(ctx, txn.WalletID)
			if err != nil {
				return err
			}
			newBalance := wallet.Balance - balanceDelta(txn.Type, txn.Amount)
			if err := tx.UpdateWalletBalance(ctx, txn.WalletID, newBalance); err != nil {
				return err
			}
		}
		return tx.DeleteTransaction(ctx, id)
	})
}

// GetWallet returns a wallet by ID.
func (s *WalletService) GetWallet(ctx context.Context, id int64) (*model.Wallet, error) {
	return s.store.GetWalletByID(ctx, id)
}

// GetWalletByName returns a wallet by its unique name.
func (s *WalletService) GetWalletByName(ctx context.Context, name string) (*model.Wallet, error) {
	return s.store.GetWalletByName(ctx, name)
}

// ListWallets returns wallets, optionally including archived ones.
func (s *WalletService) ListWallets(ctx context.Context, includeArchived bool) ([]model.Wallet, error) {
	return s.store.ListWallets(ctx, includeArchived)
}

// ListTransactions returns a wallet's transactions, newest first.
func (s *WalletService) ListTransactions(ctx context.Context, walletID int64) ([]model.WalletTransaction, error) {
	return s.store.ListTransactionsByWallet(ctx, walletID)
}

// ListTransactionsByMonth returns all transactions dated within a month.
func (s *WalletService) ListTransactionsByMonth(ctx context.Context, month time.Month, year int) ([]model.WalletTransaction, error) {
	return s.store.ListTransactionsByMonth(ctx, month, year)
}

// ListPendingTransactions returns every pending transaction across wallets.
func (s *WalletService) ListPendingTransactions(ctx context.Context) ([]model.WalletTransaction, error) {
	return s.store.ListPendingTransactions(ctx)
}

// ListTransfers returns transfers where the wallet is sender or receiver.
func (s *WalletService) ListTransfers(ctx context.Context, walletID int64) ([]model.Transfer, error) {
	return s.store.ListTransfersByWallet(ctx, walletID)
}
