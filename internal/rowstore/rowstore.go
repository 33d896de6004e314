// Package rowstore holds the editable in-memory row state, one ordered
// row collection per month.
package rowstore

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/transport-ledger/backend/internal/calculator"
)

var (
	ErrRowIndex     = errors.New("there is no row at the index you specified")
	ErrUnknownField = errors.New("the field you specified does not exist")
	ErrDateRange    = errors.New("the date must be a day of month between 1 and 31")
)

// Field names a single editable column of a transport row.
type Field string

const (
	FieldDate        Field = "date"
	FieldCarNumber   Field = "carNumber"
	FieldCompany     Field = "company"
	FieldDestination Field = "destination"
	FieldItem        Field = "item"
	FieldWeight      Field = "weight"
	FieldCount       Field = "count"
	FieldUnitPrice   Field = "unitPrice"
	FieldSupplyPrice Field = "supplyPrice"
	FieldTax         Field = "tax"
	FieldTotalPrice  Field = "totalPrice"
)

// Row is one editable delivery line item. All values are strings as
// typed; the derived money columns are overwritten by the recompute
// cascade.
type Row struct {
	Date        string `json:"date"`
	CarNumber   string `json:"carNumber"`
	Company     string `json:"company"`
	Destination string `json:"destination"`
	Item        string `json:"item"`
	Weight      string `json:"weight"`
	Count       string `json:"count"`
	UnitPrice   string `json:"unitPrice"`
	SupplyPrice string `json:"supplyPrice"`
	Tax         string `json:"tax"`
	TotalPrice  string `json:"totalPrice"`
}

// IsBlank reports whether every field of the row is empty.
func (r Row) IsBlank() bool {
	return r == Row{}
}

// fieldAccess maps every field name to its column.
var fieldAccess = map[Field]func(*Row) *string{
	FieldDate:        func(r *Row) *string { return &r.Date },
	FieldCarNumber:   func(r *Row) *string { return &r.CarNumber },
	FieldCompany:     func(r *Row) *string { return &r.Company },
	FieldDestination: func(r *Row) *string { return &r.Destination },
	FieldItem:        func(r *Row) *string { return &r.Item },
	FieldWeight:      func(r *Row) *string { return &r.Weight },
	FieldCount:       func(r *Row) *string { return &r.Count },
	FieldUnitPrice:   func(r *Row) *string { return &r.UnitPrice },
	FieldSupplyPrice: func(r *Row) *string { return &r.SupplyPrice },
	FieldTax:         func(r *Row) *string { return &r.Tax },
	FieldTotalPrice:  func(r *Row) *string { return &r.TotalPrice },
}

// deriveAfter maps a trigger field to the recompute that runs after the
// field has been set. Editing any other field, including tax or total
// directly, leaves the downstream columns as typed until the next
// upstream edit.
var deriveAfter = map[Field]func(*Row){
	FieldWeight:      deriveSupply,
	FieldUnitPrice:   deriveSupply,
	FieldSupplyPrice: deriveTax,
}

// deriveSupply recomputes the supply price from weight and unit price,
// then the columns derived from it.
func deriveSupply(r *Row) {
	r.SupplyPrice = calculator.SupplyPrice(r.Weight, r.UnitPrice).Round(0).String()
	deriveTax(r)
}

// deriveTax recomputes tax and total from the supply price.
func deriveTax(r *Row) {
	r.Tax = calculator.Tax(r.SupplyPrice).String()
	r.TotalPrice = calculator.Total(r.SupplyPrice, r.Tax).String()
}

// Store maps month indexes to their ordered row collections. Months are
// fully isolated: an edit for month i never touches month j.
type Store struct {
	months map[int][]Row
}

// New returns an empty Store.
func New() *Store {
	return &Store{months: make(map[int][]Row)}
}

// Get returns the row at the given position.
func (s *Store) Get(monthIndex, rowIndex int) (Row, error) {
	rows := s.months[monthIndex]
	if rowIndex < 0 || rowIndex >= len(rows) {
		return Row{}, fmt.Errorf("%w: %d", ErrRowIndex, rowIndex)
	}

	return rows[rowIndex], nil
}

// Rows returns the row collection for a month. The returned slice is a
// copy, mutations go through the store operations.
func (s *Store) Rows(monthIndex int) []Row {
	rows := make([]Row, len(s.months[monthIndex]))
	copy(rows, s.months[monthIndex])
	return rows
}

// Len returns the number of rows for a month.
func (s *Store) Len(monthIndex int) int {
	return len(s.months[monthIndex])
}

// UpdateField sets one field of one row and runs the recompute cascade
// for the field. Out of range dates are rejected and never stored.
func (s *Store) UpdateField(monthIndex, rowIndex int, field Field, value string) error {
	rows := s.months[monthIndex]
	if rowIndex < 0 || rowIndex >= len(rows) {
		return fmt.Errorf("%w: %d", ErrRowIndex, rowIndex)
	}

	access, ok := fieldAccess[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	if field == FieldDate && value != "" {
		day, err := strconv.Atoi(value)
		if err != nil || day < 1 || day > 31 {
			return fmt.Errorf("%w: %q", ErrDateRange, value)
		}
	}

	row := &rows[rowIndex]
	*access(row) = value

	if derive, ok := deriveAfter[field]; ok {
		derive(row)
	}

	return nil
}

// AddRow appends a blank row to a month.
func (s *Store) AddRow(monthIndex int) {
	s.months[monthIndex] = append(s.months[monthIndex], Row{})
}

// DeleteRow removes the row at the given position. Subsequent rows
// shift up.
func (s *Store) DeleteRow(monthIndex, rowIndex int) error {
	rows := s.months[monthIndex]
	if rowIndex < 0 || rowIndex >= len(rows) {
		return fmt.Errorf("%w: %d", ErrRowIndex, rowIndex)
	}

	s.months[monthIndex] = append(rows[:rowIndex], rows[rowIndex+1:]...)
	return nil
}

// Reorder replaces the row collection of a month wholesale. Used by
// drag-reorder, which hands back the full sequence in its new order.
func (s *Store) Reorder(monthIndex int, rows []Row) {
	s.ReplaceAll(monthIndex, rows)
}

// ReplaceAll replaces the row collection of a month, e.g. after an
// import or a remote fetch.
func (s *Store) ReplaceAll(monthIndex int, rows []Row) {
	replacement := make([]Row, len(rows))
	copy(replacement, rows)
	s.months[monthIndex] = replacement
}

// FieldValues returns the values of one field across all rows of a
// month, in row order.
func (s *Store) FieldValues(monthIndex int, field Field) ([]string, error) {
	access, ok := fieldAccess[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	rows := s.months[monthIndex]
	values := make([]string, 0, len(rows))
	for i := range rows {
		values = append(values, *access(&rows[i]))
	}

	return values, nil
}

// Suggestions returns the autocomplete suggestion list for a field: the
// distinct non-empty values in first-seen order.
func (s *Store) Suggestions(monthIndex int, field Field) ([]string, error) {
	values, err := s.FieldValues(monthIndex, field)
	if err != nil {
		return nil, err
	}

	return calculator.UniqueValues(values), nil
}
