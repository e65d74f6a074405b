package kurs

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"kursapi/internal/domain"
)

// The rate table layout is a hard external contract: the page publishes one
// table with 7 columns per body row, in this exact order.
const (
	rateTableSelector = ".m-table-kurs"
	columnsPerRow     = 7
)

// Row is one raw table row: the currency symbol plus the six numeric cells in
// document order (e_rate buy/sell, tt_counter buy/sell, bank_notes buy/sell).
type Row struct {
	Symbol string
	Cells  [6]decimal.Decimal
}

// ParseRateTable extracts all body rows of the rate table from raw markup.
// Rows come back in document order. Rows with an empty symbol cell are skipped.
// The first cell that fails normalization aborts the whole parse with a
// MalformedRowError; a partially parsed day must never reach the store.
func ParseRateTable(markup []byte) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	var (
		rows     []Row
		parseErr error
	)
	doc.Find(rateTableSelector).First().Find("tbody tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		cols := tr.Find("td")
		symbol := strings.TrimSpace(cols.Eq(0).Text())
		if symbol == "" {
			return true
		}
		if cols.Length() != columnsPerRow {
			parseErr = &domain.MalformedRowError{
				Row:  i,
				Cell: symbol,
				Err:  fmt.Errorf("expected %d cells, got %d", columnsPerRow, cols.Length()),
			}
			return false
		}

		row := Row{Symbol: symbol}
		for c := 1; c < columnsPerRow; c++ {
			text := cols.Eq(c).Text()
			value, normErr := NormalizeNumber(text)
			if normErr != nil {
				parseErr = &domain.MalformedRowError{Row: i, Cell: strings.TrimSpace(text), Err: normErr}
				return false
			}
			row.Cells[c-1] = value
		}
		rows = append(rows, row)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return rows, nil
}
