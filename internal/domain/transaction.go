// Package domain encodes the transaction and provider entities and their attributes
package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes collections from disbursements.
type TransactionType string

const (
	TypeDeposit TransactionType = "DEPOSIT"
	TypePayout  TransactionType = "PAYOUT"
)

func (t TransactionType) Valid() bool {
	return t == TypeDeposit || t == TypePayout
}

// ParseTransactionType validates a type string arriving at the boundary.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(s))
	if !t.Valid() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return t, nil
}

// TransactionStatus represents the current state of a transaction as last
// reported by any reconciliation channel.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusAccepted  TransactionStatus = "ACCEPTED"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// ParseStatus normalizes a status string reported by the gateway. Unknown
// strings are rejected so an arbitrary value never reaches the store.
func ParseStatus(s string) (TransactionStatus, error) {
	st := TransactionStatus(strings.ToUpper(s))
	if !st.Valid() {
		return "", fmt.Errorf("unknown transaction status %q", s)
	}
	return st, nil
}

// MapGatewayStatus folds the status phrasings the gateway uses into the
// local enum so nothing outside the four persisted values ever reaches the
// store. Unknown phrasings report false and leave the local status alone.
func MapGatewayStatus(s string) (TransactionStatus, bool) {
	switch strings.ToUpper(s) {
	case "PENDING":
		return StatusPending, true
	case "ACCEPTED", "ENQUEUED", "SUBMITTED", "IN_PROGRESS":
		return StatusAccepted, true
	case "COMPLETED", "SUCCESSFUL":
		return StatusCompleted, true
	case "FAILED", "REJECTED", "CANCELLED", "EXPIRED", "DUPLICATE_IGNORED":
		return StatusFailed, true
	}
	return "", false
}

// Transaction is one money-movement attempt. Status is last-write-wins:
// any later-arriving signal may overwrite it, including after COMPLETED.
type Transaction struct {
	ID              string            `json:"id"`
	Type            TransactionType   `json:"type"`
	Status          TransactionStatus `json:"status"`
	Amount          string            `json:"amount"`
	Currency        string            `json:"currency"`
	Country         string            `json:"country,omitempty"`
	PhoneNumber     string            `json:"phoneNumber,omitempty"`
	Provider        string            `json:"provider,omitempty"`
	Description     string            `json:"description,omitempty"`
	ProviderTxID    *string           `json:"providerTransactionId,omitempty"`
	GatewayResponse json.RawMessage   `json:"pawapayResponse,omitempty"`
	ErrorMessage    *string           `json:"errorMessage,omitempty"`
	Created         time.Time         `json:"created"`
	Updated         time.Time         `json:"updated"`
}

// TransactionUpdate is a partial update: nil fields are left untouched by
// the merge, so concurrent writers from different reconciliation channels
// only overwrite what they know about.
type TransactionUpdate struct {
	Status          *TransactionStatus
	Country         *string
	Provider        *string
	ProviderTxID    *string
	GatewayResponse json.RawMessage
	ErrorMessage    *string
}

// Apply shallow-merges the set fields of u over t. Timestamps are owned by
// the store, not the merge.
func (u TransactionUpdate) Apply(t *Transaction) {
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Country != nil {
		t.Country = *u.Country
	}
	if u.Provider != nil {
		t.Provider = *u.Provider
	}
	if u.ProviderTxID != nil {
		t.ProviderTxID = u.ProviderTxID
	}
	if u.GatewayResponse != nil {
		t.GatewayResponse = u.GatewayResponse
	}
	if u.ErrorMessage != nil {
		t.ErrorMessage = u.ErrorMessage
	}
}

// NewTransaction builds a PENDING record with the fields the caller supplied.
// Country, provider and gateway-assigned fields are resolved later.
func NewTransaction(id string, txType TransactionType, amount, currency, phoneNumber, provider, description string) (*Transaction, error) {
	if id == "" {
		return nil, NewMissingRequiredFieldError("id")
	}
	if !txType.Valid() {
		return nil, NewMissingRequiredFieldError("type")
	}
	normalized, err := NormalizeAmount(amount)
	if err != nil {
		return nil, err
	}
	if currency == "" {
		return nil, NewMissingRequiredFieldError("currency")
	}

	return &Transaction{
		ID:          id,
		Type:        txType,
		Status:      StatusPending,
		Amount:      normalized,
		Currency:    currency,
		PhoneNumber: phoneNumber,
		Provider:    provider,
		Description: description,
	}, nil
}

// NormalizeAmount validates an amount as exact decimal text and returns its
// canonical form. Amounts are never held as floats.
func NormalizeAmount(amount string) (string, error) {
	if amount == "" {
		return "", NewMissingRequiredFieldError("amount")
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", NewInvalidAmountError(amount)
	}
	if d.Sign() <= 0 {
		return "", NewInvalidAmountError(amount)
	}
	return d.String(), nil
}
