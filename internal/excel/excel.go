// Package excel renders month row collections to styled workbooks and
// parses uploaded workbooks back into rows.
package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/transport-ledger/backend/internal/calculator"
	"github.com/transport-ledger/backend/internal/rowstore"
	"github.com/transport-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var (
	ErrHeaderNotFound = errors.New("the file does not contain the expected column header row")
	ErrNoMonths       = errors.New("there are no months to export")
)

// Headers is the fixed column header sequence. Import requires it
// verbatim, export always writes it.
var Headers = []string{
	"날짜", "차량번호", "업체/상차지", "하차지", "품목", "중량", "횟수", "단가", "공급가액", "세액", "합계금액",
}

var columnWidths = []float64{8, 10, 16, 16, 10, 8, 8, 10, 12, 8, 12}

const (
	defaultSheetName = "운반내역"
	filenamePrefix   = "지산건기_차량운행일지_"
)

// Meta is the letterhead of an exported sheet.
type Meta struct {
	Company    string
	Contact    string
	RegNo      string
	MonthLabel string
}

// Month bundles one month's rows with its letterhead for the combined
// export.
type Month struct {
	Label string
	Rows  []rowstore.Row
	Meta  Meta
}

// Filename returns the download name for a single-month export. Spaces
// in the label are stripped.
func Filename(label string) string {
	return filenamePrefix + strings.ReplaceAll(label, " ", "") + ".xlsx"
}

// CombinedFilename returns the download name for the combined export.
func CombinedFilename() string {
	return filenamePrefix + "통합.xlsx"
}

// ExportOne renders one month to a single-sheet workbook.
func ExportOne(rows []rowstore.Row, meta Meta) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", defaultSheetName); err != nil {
		return nil, err
	}

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, err
	}

	if err := writeSheet(f, defaultSheetName, rows, meta, styles); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExportMany renders several months into one workbook, one sheet per
// month, named by the month label.
func ExportMany(months []Month) ([]byte, error) {
	if len(months) == 0 {
		return nil, ErrNoMonths
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, err
	}

	for _, m := range months {
		if _, err := f.NewSheet(m.Label); err != nil {
			return nil, err
		}

		meta := m.Meta
		meta.MonthLabel = m.Label
		if err := writeSheet(f, m.Label, m.Rows, meta, styles); err != nil {
			return nil, err
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Import parses the first sheet of an uploaded workbook. The header
// row is located by scanning for the first row whose leading cells
// match Headers exactly after trimming, so leading letterhead rows are
// tolerated. Rows below it are kept when both a date and a car number
// are present.
func Import(r io.Reader) ([]rowstore.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrHeaderNotFound, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrHeaderNotFound
	}

	aoa, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	return mapRows(aoa)
}

// ImportCSV parses comma-separated data with the same header scan and
// row mapping as Import.
func ImportCSV(r io.Reader) ([]rowstore.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	aoa, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrHeaderNotFound, err)
	}

	return mapRows(aoa)
}

func mapRows(aoa [][]string) ([]rowstore.Row, error) {
	headerIdx := -1
	for i, row := range aoa {
		if isHeaderRow(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, ErrHeaderNotFound
	}

	rows := make([]rowstore.Row, 0, len(aoa)-headerIdx-1)
	for _, raw := range aoa[headerIdx+1:] {
		if len(raw) < 2 || raw[0] == "" || raw[1] == "" {
			continue
		}

		// Absent trailing columns are empty strings.
		if len(raw) < len(Headers) {
			raw = append(raw[:len(raw):len(raw)], make([]string, len(Headers)-len(raw))...)
		}

		rows = append(rows, rowstore.Row{
			Date:        importDate(raw[0]),
			CarNumber:   raw[1],
			Company:     raw[2],
			Destination: raw[3],
			Item:        raw[4],
			Weight:      raw[5],
			Count:       raw[6],
			UnitPrice:   importAmount(raw[7]),
			SupplyPrice: importAmount(raw[8]),
			Tax:         importAmount(raw[9]),
			TotalPrice:  importAmount(raw[10]),
		})
	}

	return rows, nil
}

func isHeaderRow(row []string) bool {
	if len(row) < len(Headers) {
		return false
	}

	for i, h := range Headers {
		if strings.TrimSpace(row[i]) != h {
			return false
		}
	}

	return true
}

// importDate undoes the exported "<month>/<day>" rendering, keeping
// only the day of month.
func importDate(v string) string {
	if idx := strings.Index(v, "/"); idx >= 0 {
		return v[idx+1:]
	}
	return v
}

// importAmount undoes the exported group separators so a re-imported
// amount matches what was stored.
func importAmount(v string) string {
	return strings.ReplaceAll(v, ",", "")
}

type styleSet struct {
	title    int
	regLine  int
	header   int
	data     int
	dataLeft int
	totals   int
}

func newStyleSet(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error

	border := []excelize.Border{
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	left := &excelize.Alignment{Horizontal: "left", Vertical: "center"}

	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "맑은 고딕", Size: 22, Bold: true},
		Alignment: center,
	}); err != nil {
		return s, err
	}

	if s.regLine, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "맑은 고딕", Size: 16, Bold: true},
		Alignment: left,
	}); err != nil {
		return s, err
	}

	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "맑은 고딕", Size: 16, Bold: true},
		Alignment: center,
		Border:    border,
	}); err != nil {
		return s, err
	}

	if s.data, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "맑은 고딕", Size: 11},
		Alignment: center,
		Border:    border,
	}); err != nil {
		return s, err
	}

	if s.dataLeft, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "맑은 고딕", Size: 11},
		Alignment: left,
		Border:    border,
	}); err != nil {
		return s, err
	}

	if s.totals, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "맑은 고딕", Size: 11, Bold: true},
		Alignment: center,
		Border:    border,
	}); err != nil {
		return s, err
	}

	return s, nil
}

func writeSheet(f *excelize.File, sheet string, rows []rowstore.Row, meta Meta, styles styleSet) error {
	exported := make([]rowstore.Row, 0, len(rows))
	for _, row := range rows {
		if !row.IsBlank() {
			exported = append(exported, row)
		}
	}

	monthNumber := 1
	if label, err := types.ParseLabel(meta.MonthLabel); err == nil {
		monthNumber = int(label.Month)
	}

	lastCol, err := excelize.ColumnNumberToName(len(Headers))
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s  %s 운반내역서 담당%s", meta.Company, meta.MonthLabel, meta.Contact)
	regLine := fmt.Sprintf("등록번호-%s", meta.RegNo)

	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", styles.title); err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A2", regLine); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A2", lastCol+"2"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A2", lastCol+"2", styles.regLine); err != nil {
		return err
	}

	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A3", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A3", lastCol+"3", styles.header); err != nil {
		return err
	}
	if err := f.AutoFilter(sheet, "A3:"+lastCol+"3", nil); err != nil {
		return err
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}

	var unitPriceSum, supplySum, taxSum, totalSum decimal.Decimal
	for i, row := range exported {
		rowNumber := 4 + i

		date := ""
		if row.Date != "" {
			date = fmt.Sprintf("%d/%s", monthNumber, row.Date)
		}

		cells := []interface{}{
			date,
			row.CarNumber,
			row.Company,
			row.Destination,
			row.Item,
			row.Weight,
			row.Count,
			calculator.FormatCurrency(row.UnitPrice),
			calculator.FormatCurrency(row.SupplyPrice),
			calculator.FormatCurrency(row.Tax),
			calculator.FormatCurrency(row.TotalPrice),
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNumber), &cells); err != nil {
			return err
		}

		if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNumber), fmt.Sprintf("%s%d", lastCol, rowNumber), styles.data); err != nil {
			return err
		}
		// Company and destination read better left-aligned.
		if err := f.SetCellStyle(sheet, fmt.Sprintf("C%d", rowNumber), fmt.Sprintf("D%d", rowNumber), styles.dataLeft); err != nil {
			return err
		}

		unitPriceSum = unitPriceSum.Add(calculator.Amount(row.UnitPrice))
		supplySum = supplySum.Add(calculator.Amount(row.SupplyPrice))
		taxSum = taxSum.Add(calculator.Amount(row.Tax))
		totalSum = totalSum.Add(calculator.Amount(row.TotalPrice))
	}

	if len(exported) > 0 {
		rowNumber := 4 + len(exported)
		cells := []interface{}{
			"합계", "", "", "", "", "", "",
			calculator.FormatDecimal(unitPriceSum),
			calculator.FormatDecimal(supplySum),
			calculator.FormatDecimal(taxSum),
			calculator.FormatDecimal(totalSum),
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNumber), &cells); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNumber), fmt.Sprintf("%s%d", lastCol, rowNumber), styles.totals); err != nil {
			return err
		}
	}

	return nil
}
