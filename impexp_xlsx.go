package folio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// this file contains functions to handle the spreadsheet import/export format.
//
// The workbook has a single sheet, a header row, then one row per snapshot:
//
//	Name | Created | Total | Currency | Tickers
//
// where Tickers flattens the allocations as "AAPL(400), MSFT(600)". Ids and
// timestamps are not part of the format, they are regenerated on import.

// SpreadsheetFilename is the default name of the spreadsheet export.
const SpreadsheetFilename = "portfolios.xlsx"

const sheetName = "Portfolios"

var spreadsheetHeader = []any{"Name", "Created", "Total", "Currency", "Tickers"}

// tickerPattern matches one flattened allocation, like "AAPL(400)".
var tickerPattern = regexp.MustCompile(`^(.+)\(([0-9]+(?:\.[0-9]+)?)\)$`)

// createdLayouts are the date layouts accepted in the Created column: ISO
// first, then what spreadsheets commonly display in ko-KR and en-US.
var createdLayouts = []string{"2006-1-2", "2006. 1. 2.", "2006. 1. 2", "2006/1/2", "1/2/2006", "1/2/06"}

// FormatTickers flattens allocations as "SYMBOL(amount), SYMBOL(amount)".
func FormatTickers(allocations []Allocation) string {
	parts := make([]string, len(allocations))
	for i, a := range allocations {
		parts[i] = fmt.Sprintf("%s(%s)", a.Symbol, a.Amount)
	}
	return strings.Join(parts, ", ")
}

// ParseTickers reverses FormatTickers. Entries that do not match
// SYMBOL(amount) are dropped. New allocations get fresh ids and are stamped
// at.
func ParseTickers(s string, at date.Stamp) []Allocation {
	allocations := []Allocation{}
	for _, part := range strings.Split(s, ",") {
		match := tickerPattern.FindStringSubmatch(strings.TrimSpace(part))
		if match == nil {
			continue
		}
		symbol := NormalizeSymbol(match[1])
		amount, err := decimal.NewFromString(match[2])
		if symbol == "" || err != nil {
			continue
		}
		allocations = append(allocations, Allocation{ID: newID(), Symbol: symbol, Amount: amount, Timestamp: at})
	}
	return allocations
}

// parseCreated parses the Created column into the local midnight of that day.
func parseCreated(s string) (date.Stamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range createdLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return date.FromTime(t), nil
		}
	}
	return 0, fmt.Errorf("invalid date %q", s)
}

// EncodeSpreadsheet writes snapshots to w as an xlsx workbook.
func EncodeSpreadsheet(w io.Writer, snapshots []Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("cannot create sheet: %w", err)
	}
	rows := make([][]any, 0, len(snapshots)+1)
	rows = append(rows, spreadsheetHeader)
	for _, s := range snapshots {
		rows = append(rows, []any{
			s.Name,
			s.CreatedAt.Date().String(),
			spreadsheetAmount(s.TotalInvestment.Amount()),
			string(s.TotalInvestment.Currency()),
			FormatTickers(s.Tickers),
		})
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cannot address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("cannot write row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(sheetName, "E", "E", 60); err != nil {
		return fmt.Errorf("cannot format sheet: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("cannot write spreadsheet: %w", err)
	}
	return nil
}

// spreadsheetAmount returns d as a number cell when a spreadsheet can hold it
// exactly, and as text otherwise.
func spreadsheetAmount(d decimal.Decimal) any {
	f := d.InexactFloat64()
	if math.Abs(f) < 1e15 && decimal.NewFromFloat(f).Equal(d) {
		return f
	}
	return d.String()
}

// oleMagic starts the legacy binary .xls workbooks.
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// DecodeSpreadsheet reads snapshots from the first sheet of the xlsx
// workbook in r.
//
// A row with fewer than four columns, or an invalid date, total or currency
// is an ErrParse. A missing Tickers column is an empty allocation list, and
// malformed ticker entries are dropped.
func DecodeSpreadsheet(r io.Reader) ([]Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, parseErrorf("cannot read spreadsheet: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		if bytes.HasPrefix(data, oleMagic) {
			// encrypted xlsx are OLE too, but excelize opens them.
			return nil, parseErrorf("legacy binary .xls workbooks are not supported, save it as .xlsx: %v", err)
		}
		return nil, parseErrorf("not a spreadsheet: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, parseErrorf("spreadsheet without sheet")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, parseErrorf("cannot read sheet %q: %v", sheets[0], err)
	}

	snapshots := []Snapshot{}
	for i, row := range rows {
		if i == 0 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), spreadsheetHeader[0].(string)) {
			continue
		}
		if isBlank(row) {
			continue
		}
		s, err := decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, nil
}

func decodeRow(row []string) (Snapshot, error) {
	if len(row) < 4 {
		return Snapshot{}, parseErrorf("want at least 4 columns, got %d", len(row))
	}
	name := strings.TrimSpace(row[0])
	if name == "" {
		return Snapshot{}, parseErrorf("missing name")
	}
	created, err := parseCreated(row[1])
	if err != nil {
		return Snapshot{}, parseErrorf("%v", err)
	}
	amount, err := ParseAmount(row[2])
	if err != nil || amount.IsNegative() {
		return Snapshot{}, parseErrorf("invalid total %q", row[2])
	}
	cur, err := ParseCurrency(row[3])
	if err != nil {
		return Snapshot{}, parseErrorf("invalid currency %q", row[3])
	}
	var tickers []Allocation
	if len(row) > 4 {
		tickers = ParseTickers(row[4], created)
	}
	return Snapshot{
		ID:              newID(),
		Name:            name,
		TotalInvestment: M(amount, cur),
		Tickers:         cloneAllocations(tickers),
		CreatedAt:       created,
	}, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
