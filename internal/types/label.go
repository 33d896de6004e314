// Package types implements special types for the transport ledger.
package types

import (
	"fmt"
	"regexp"
	"sort"
	"time"
)

// labelPattern matches month labels of the form "<year>년 <month>월".
var labelPattern = regexp.MustCompile(`^(\d+)년 (\d+)월$`)

// ErrMalformedLabel is returned when a string cannot be parsed as a month label.
var ErrMalformedLabel = fmt.Errorf("the month label is not of the form \"<year>년 <month>월\"")

// MonthLabel identifies an invoicing month. It is the unique sort key
// for months in the directory and the persistence layer.
type MonthLabel struct {
	Year  int
	Month time.Month
}

// NewMonthLabel returns a new MonthLabel.
func NewMonthLabel(year int, month time.Month) MonthLabel {
	return MonthLabel{Year: year, Month: month}
}

// ParseLabel parses a "<year>년 <month>월" string and returns the MonthLabel
// it represents.
func ParseLabel(s string) (MonthLabel, error) {
	match := labelPattern.FindStringSubmatch(s)
	if match == nil {
		return MonthLabel{}, fmt.Errorf("%w: %q", ErrMalformedLabel, s)
	}

	var year, month int
	fmt.Sscanf(match[1], "%d", &year)
	fmt.Sscanf(match[2], "%d", &month)

	if month < 1 || month > 12 {
		return MonthLabel{}, fmt.Errorf("%w: %q", ErrMalformedLabel, s)
	}

	return NewMonthLabel(year, time.Month(month)), nil
}

// LabelOf returns the MonthLabel for the month in which a time occurs.
func LabelOf(t time.Time) MonthLabel {
	year, month, _ := t.Date()
	return NewMonthLabel(year, month)
}

// String returns the label formatted as "<year>년 <month>월".
func (m MonthLabel) String() string {
	return fmt.Sprintf("%d년 %d월", m.Year, int(m.Month))
}

// Next returns the label one calendar month later. December rolls over
// to January of the following year.
func (m MonthLabel) Next() MonthLabel {
	if m.Month == time.December {
		return NewMonthLabel(m.Year+1, time.January)
	}
	return NewMonthLabel(m.Year, m.Month+1)
}

// Before reports whether the month m is before n.
func (m MonthLabel) Before(n MonthLabel) bool {
	if m.Year != n.Year {
		return m.Year < n.Year
	}
	return m.Month < n.Month
}

// After reports whether the month m is after n.
func (m MonthLabel) After(n MonthLabel) bool {
	return n.Before(m)
}

// Equal reports whether m and n represent the same month.
func (m MonthLabel) Equal(n MonthLabel) bool {
	return m.Year == n.Year && m.Month == n.Month
}

// IsZero reports if the label is the zero value.
func (m MonthLabel) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// SortLabels sorts label strings ascending by (year, month). Strings that
// do not parse as month labels are dropped from the result.
func SortLabels(labels []string) []string {
	parsed := make([]MonthLabel, 0, len(labels))
	for _, label := range labels {
		m, err := ParseLabel(label)
		if err != nil {
			continue
		}
		parsed = append(parsed, m)
	}

	sort.Slice(parsed, func(i, j int) bool {
		return parsed[i].Before(parsed[j])
	})

	sorted := make([]string, 0, len(parsed))
	for _, m := range parsed {
		sorted = append(sorted, m.String())
	}

	return sorted
}
