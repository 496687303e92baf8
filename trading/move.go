package trading

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind selects which intraday price pair a move trades.
type Kind int

const (
	// BuyOpenSellHigh buys at the day's open and sells at its high.
	BuyOpenSellHigh Kind = iota
	// BuyLowSellClose buys at the day's low and sells at its close.
	BuyLowSellClose
)

// BuyAction and SellAction are the wire names used in moves files.
func (k Kind) BuyAction() string {
	if k == BuyOpenSellHigh {
		return "buy-open"
	}
	return "buy-low"
}

func (k Kind) SellAction() string {
	if k == BuyOpenSellHigh {
		return "sell-high"
	}
	return "sell-close"
}

func (k Kind) String() string {
	return k.BuyAction() + "/" + k.SellAction()
}

// KindFromBuyAction is the inverse of BuyAction.
func KindFromBuyAction(action string) (Kind, bool) {
	switch action {
	case "buy-open":
		return BuyOpenSellHigh, true
	case "buy-low":
		return BuyLowSellClose, true
	}
	return 0, false
}

// Move is one committed intraday transaction: a buy leg and a sell leg of
// the same share count on the same day. Immutable once appended to a
// ledger's move sequence.
type Move struct {
	Symbol    string
	Date      time.Time
	Kind      Kind
	Shares    int64
	BuyPrice  decimal.Decimal
	SellPrice decimal.Decimal
	FeeRate   decimal.Decimal
}

// Cost is the cash consumed by the buy leg, fee included.
func (m Move) Cost() decimal.Decimal {
	return m.BuyPrice.
		Mul(one.Add(m.FeeRate)).
		Mul(decimal.NewFromInt(m.Shares))
}

// Proceeds is the cash produced by the sell leg, net of its fee.
func (m Move) Proceeds() decimal.Decimal {
	return m.SellPrice.
		Mul(one.Sub(m.FeeRate)).
		Mul(decimal.NewFromInt(m.Shares))
}

// Profit is Proceeds minus Cost.
func (m Move) Profit() decimal.Decimal {
	return m.Proceeds().Sub(m.Cost())
}

var one = decimal.NewFromInt(1)
