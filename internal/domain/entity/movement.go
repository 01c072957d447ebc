package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types recorded in the stock ledger.
const (
	TxnReceived           = "received"
	TxnStockReceipt       = "stock-receipt"
	TxnDistribution       = "distribution"
	TxnShippedOut         = "shipped-out"
	TxnAdjustmentIncrease = "adjustment-increase"
	TxnAdjustmentDecrease = "adjustment-decrease"
	TxnAdjustment         = "adjustment"
)

// Reference document types a ledger entry can point back to.
const (
	RefShipment     = "shipment"
	RefDistribution = "distribution"
	RefAdjustment   = "adjustment"
)

// KnownTransactionType reports whether t is one of the ledger transaction types.
func KnownTransactionType(t string) bool {
	switch t {
	case TxnReceived, TxnStockReceipt, TxnDistribution, TxnShippedOut,
		TxnAdjustmentIncrease, TxnAdjustmentDecrease, TxnAdjustment:
		return true
	}
	return false
}

// KnownReferenceType reports whether t is one of the reference document types.
func KnownReferenceType(t string) bool {
	switch t {
	case RefShipment, RefDistribution, RefAdjustment:
		return true
	}
	return false
}

// StockMovement is one ledger entry: a recorded stock transaction with a
// signed quantity and the resulting balance.
type StockMovement struct {
	ID              int64
	CouncilID       int64
	CouncilName     string
	ItemID          int64
	ItemName        string
	ItemCode        string
	TransactionType string
	ReferenceType   string
	ReferenceID     int64 // id of the referenced document; zero when none
	Quantity        int64 // signed: positive for receipts, negative for issues
	BalanceAfter    int64
	TotalValue      decimal.Decimal
	TransactionDate time.Time
	CreatedBy       string
}
