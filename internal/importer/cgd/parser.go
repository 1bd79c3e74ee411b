// Package cgd reads Caixa Geral de Depósitos CSV exports.
package cgd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrUnknownFormat = errors.New("no matching CGD format found: expected columns for conta, extrato, or cartão")

const dateLayout = "02-01-2006"

// Movement is one account movement. Amount is always positive; Debit tells
// money leaving the account from money coming in.
type Movement struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Debit       bool
}

// Parser reads UTF-8 CGD exports and detects the layout from the header row.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Movement, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	l, cols, header := detectLayout(rows)
	if l == nil {
		return nil, ErrUnknownFormat
	}

	return readMovements(l, cols, rows[header+1:], header+1)
}

type colIndex map[string]int

func detectLayout(rows [][]string) (*layout, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex, len(row))

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range layouts {
			if hasColumns(cols, layouts[i].columns()) {
				return &layouts[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func hasColumns(cols colIndex, names []string) bool {
	for _, name := range names {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// readMovements skips rows without a date (page footers, totals) and rows
// without a non-zero amount.
func readMovements(l *layout, cols colIndex, rows [][]string, firstRow int) ([]Movement, error) {
	var out []Movement

	for i, row := range rows {
		date, err := time.Parse(dateLayout, cell(row, cols[l.dateCol]))
		if err != nil {
			continue
		}

		desc := cell(row, cols[l.descCol])
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", firstRow+i+1)
		}

		amount, debit, ok := readAmount(l, cols, row)
		if !ok {
			continue
		}

		out = append(out, Movement{
			Date:        date,
			Description: desc,
			Amount:      amount,
			Debit:       debit,
		})
	}

	return out, nil
}

func readAmount(l *layout, cols colIndex, row []string) (decimal.Decimal, bool, bool) {
	if l.mode == amountSigned {
		v, ok := nonZero(cell(row, cols[l.amountCol]))
		if !ok {
			return decimal.Zero, false, false
		}

		return v.Abs(), v.IsNegative(), true
	}

	if v, ok := nonZero(cell(row, cols[l.debitCol])); ok {
		return v.Abs(), true, true
	}

	if v, ok := nonZero(cell(row, cols[l.creditCol])); ok {
		return v.Abs(), false, true
	}

	return decimal.Zero, false, false
}

func nonZero(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	v, err := parseEuropeanAmount(s)
	if err != nil || v.IsZero() {
		return decimal.Zero, false
	}

	return v, true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
