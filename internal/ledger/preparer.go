package ledger

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/kislikjeka/bookkeeper/pkg/money"
	"github.com/kislikjeka/bookkeeper/pkg/validate"
)

// maxDescriptionLength matches the general_ledger.description column
const maxDescriptionLength = 255

// rowPreparer turns raw rows into typed ledger lines
type rowPreparer struct {
	resolver *accountResolver
}

func newRowPreparer(resolver *accountResolver) *rowPreparer {
	return &rowPreparer{resolver: resolver}
}

// prepare validates one row. Checks run in a fixed order and the first
// failure wins: blank fields, code format, account existence, date, amount,
// description, then side. A *RejectionError is a business rejection; any
// other error is a storage fault.
func (p *rowPreparer) prepare(ctx context.Context, rowNo int, row RawRow) (*Line, error) {
	fail := func(kind RejectionKind, detail string) error {
		return &RejectionError{Kind: kind, Row: rowNo, Detail: detail}
	}

	code := strings.TrimSpace(row.Code)
	date := strings.TrimSpace(row.Date)
	amount := strings.TrimSpace(row.Amount)
	description := strings.TrimSpace(row.Description)

	for _, f := range []struct{ name, value string }{
		{"code", code},
		{"date", date},
		{"amount", amount},
		{"description", description},
	} {
		if validate.IsBlank(f.value) {
			return nil, fail(KindBlankField, f.name)
		}
	}

	// format first: a non-numeric code never reaches the lookup
	if !validate.IsNumeric(code) {
		return nil, fail(KindNonNumericCode, code)
	}
	accountID, found, err := p.resolver.resolveAccount(ctx, code)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fail(KindUnknownAccount, code)
	}

	lineDate, ok := validate.ParseDate(date)
	if !ok {
		return nil, fail(KindInvalidDate, date)
	}

	value, err := money.Parse(amount)
	if err != nil {
		return nil, fail(KindInvalidAmount, amount)
	}

	if !validate.IsAlphanumericText(description) || len(description) > maxDescriptionLength {
		return nil, fail(KindInvalidDescription, description)
	}

	line := &Line{
		ID:          uuid.New(),
		AccountID:   accountID,
		AccountCode: code,
		LineNo:      rowNo,
		LineDate:    lineDate,
		Description: description,
	}

	switch Side(strings.ToLower(strings.TrimSpace(string(row.CreDebit)))) {
	case SideDebit:
		line.Debit = &value
	case SideCredit:
		line.Credit = &value
	default:
		return nil, fail(KindInvalidEntrySide, string(row.CreDebit))
	}

	return line, nil
}
