package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kislikjeka/bookkeeper/pkg/money"
	"github.com/kislikjeka/bookkeeper/pkg/validate"
)

// DailyTotal holds the debit and credit sums of one line date
type DailyTotal struct {
	Date   time.Time
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Balanced reports whether debits equal credits exactly
func (t DailyTotal) Balanced() bool {
	return t.Debit.Equal(t.Credit)
}

// DailyTotals groups lines by date and sums each side, ordered by date
func DailyTotals(lines []*Line) []DailyTotal {
	byDate := make(map[string]*DailyTotal)

	for _, l := range lines {
		key := l.LineDate.Format(validate.DateLayout)
		t, ok := byDate[key]
		if !ok {
			t = &DailyTotal{Date: l.LineDate, Debit: decimal.Zero, Credit: decimal.Zero}
			byDate[key] = t
		}
		if l.Debit != nil {
			t.Debit = t.Debit.Add(*l.Debit)
		}
		if l.Credit != nil {
			t.Credit = t.Credit.Add(*l.Credit)
		}
	}

	totals := make([]DailyTotal, 0, len(byDate))
	for _, t := range byDate {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Date.Before(totals[j].Date)
	})

	return totals
}

// CheckDailyBalance returns a DailyImbalance rejection naming the earliest
// date whose debits and credits differ.
func CheckDailyBalance(lines []*Line) error {
	for _, t := range DailyTotals(lines) {
		if !t.Balanced() {
			return reject(KindDailyImbalance, fmt.Sprintf(
				"%s: debit %s, credit %s",
				t.Date.Format(validate.DateLayout),
				money.Format(t.Debit),
				money.Format(t.Credit),
			))
		}
	}
	return nil
}
