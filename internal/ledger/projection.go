package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Line is one row of the read-time ledger view: the stored transaction plus
// its running balance and the two display columns. Lines are never persisted.
type Line struct {
	Transaction
	// Balance is the cumulative sum of signed amounts from the account's
	// oldest transaction through this one.
	Balance decimal.Decimal
	// DebitDisplay and CreditDisplay split the magnitude into the two-column
	// ledger view: exactly one of them carries the unsigned value, the other
	// is empty. Presentation only; they never feed back into Amount.
	DebitDisplay  string
	CreditDisplay string
}

// Project turns the full transaction set of one account into the date-ordered
// ledger view. The input may arrive in any order; the output is sorted by
// date descending (ties keep their relative input order) and each line carries
// the running balance computed from the oldest transaction forward.
//
// The account is assumed to start at zero before its oldest recorded
// transaction: the oldest line's balance is its own amount. Project is a pure
// function of the input set, so re-running it on an unchanged set yields an
// identical view.
func Project(txns []Transaction) []Line {
	out := make([]Line, len(txns))
	for i, txn := range txns {
		out[i] = Line{Transaction: txn}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	n := len(out)
	if n > 0 {
		out[n-1].Balance = out[n-1].Amount
		for i := n - 2; i >= 0; i-- {
			out[i].Balance = out[i+1].Balance.Add(out[i].Amount)
		}
	}

	for i := range out {
		out[i].DebitDisplay, out[i].CreditDisplay = displayFields(out[i].Transaction)
	}
	return out
}

// displayFields maps the stored direction and magnitude onto the two display
// columns: credits fill the credit column, everything else fills the debit
// column, and the other column stays empty.
func displayFields(txn Transaction) (debit, credit string) {
	magnitude := txn.Amount.Abs().String()
	if txn.Direction == DirectionCredit {
		return "", magnitude
	}
	return magnitude, ""
}
