package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType represents the direction of a wallet transaction
type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// Wallet represents a per-(user, role) balance. Exactly one wallet exists
// for each identity; it is created in the same transaction as the account.
type Wallet struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	UserRole  Role      `json:"user_role" db:"user_role"`
	Balance   float64   `json:"balance" db:"balance"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Transaction represents an entry in a wallet's append-only ledger.
// BalanceAfter always equals BalanceBefore plus or minus Amount.
type Transaction struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	WalletID      uuid.UUID       `json:"wallet_id" db:"wallet_id"`
	Type          TransactionType `json:"type" db:"type"`
	Amount        float64         `json:"amount" db:"amount"`
	Description   string          `json:"description" db:"description"`
	RideID        *uuid.UUID      `json:"related_ride" db:"ride_id"`
	BalanceBefore float64         `json:"balance_before" db:"balance_before"`
	BalanceAfter  float64         `json:"balance_after" db:"balance_after"`
	CreatedAt     time.Time       `json:"timestamp" db:"created_at"`
}

// FundWalletRequest is the payload for a wallet top-up
type FundWalletRequest struct {
	Amount           float64 `json:"amount"`
	PaymentReference string  `json:"payment_reference"`
}

// WithdrawRequest is the payload for a driver withdrawal
type WithdrawRequest struct {
	Amount      float64      `json:"amount"`
	BankDetails *BankDetails `json:"bank_details"`
}

// BankDetails identifies the withdrawal destination
type BankDetails struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
}

// TransactionHistory is a paginated slice of a wallet's ledger,
// most recent first.
type TransactionHistory struct {
	Balance      float64       `json:"balance"`
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
	Page         int           `json:"page"`
	TotalPages   int           `json:"total_pages"`
}
