package model

import (
	"time"

	"github.com/Veraticus/solari/internal/money"
)

// Transfer is an atomic pairwise balance movement between two wallets.
type Transfer struct {
	Date             time.Time
	CreatedAt        time.Time
	Description      string
	ID               int64
	SenderWalletID   int64
	ReceiverWalletID int64
	Amount           money.Amount
}
