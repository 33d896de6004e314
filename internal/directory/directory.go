// Package directory tracks the ordered list of month labels together
// with the selection and the checked set used for multi-month export.
package directory

import (
	"errors"
	"fmt"
	"time"

	"github.com/transport-ledger/backend/internal/types"
	"golang.org/x/exp/slices"
)

var ErrLabelNotFound = errors.New("there is no month with the label you specified")

// Directory is the local month list state. It performs no remote
// operations itself, persistence happens in the layer driving it.
type Directory struct {
	labels   []string
	selected int
	checked  map[int]struct{}
}

// New returns a directory over the given labels with the first month
// selected and nothing checked.
func New(labels []string) *Directory {
	d := &Directory{
		labels:  make([]string, len(labels)),
		checked: make(map[int]struct{}),
	}
	copy(d.labels, labels)
	return d
}

// Labels returns the month labels in directory order.
func (d *Directory) Labels() []string {
	labels := make([]string, len(d.labels))
	copy(labels, d.labels)
	return labels
}

// Len returns the number of months.
func (d *Directory) Len() int {
	return len(d.labels)
}

// Selected returns the index of the selected month.
func (d *Directory) Selected() int {
	return d.selected
}

// SelectedLabel returns the label of the selected month, or the empty
// string for an empty directory.
func (d *Directory) SelectedLabel() string {
	if d.selected < 0 || d.selected >= len(d.labels) {
		return ""
	}
	return d.labels[d.selected]
}

// NextLabel computes the label a new month would get: the current
// calendar month when the directory is empty, otherwise one month past
// the last label. A malformed last label is an error, a label is never
// fabricated from guesswork.
func (d *Directory) NextLabel(now time.Time) (types.MonthLabel, error) {
	if len(d.labels) == 0 {
		return types.LabelOf(now), nil
	}

	last, err := types.ParseLabel(d.labels[len(d.labels)-1])
	if err != nil {
		return types.MonthLabel{}, fmt.Errorf("computing next month label: %w", err)
	}

	return last.Next(), nil
}

// Append adds a label to the end of the directory, selects it, and
// checks every month.
func (d *Directory) Append(label string) {
	d.labels = append(d.labels, label)
	d.selected = len(d.labels) - 1
	d.checked = make(map[int]struct{}, len(d.labels))
	for i := range d.labels {
		d.checked[i] = struct{}{}
	}
}

// Remove deletes a label from the directory. If the removed month was
// selected, selection falls back to the previous index, floored at 0.
// Checked indexes past the removed month shift down with the labels.
func (d *Directory) Remove(label string) error {
	idx := slices.Index(d.labels, label)
	if idx == -1 {
		return fmt.Errorf("%w: %q", ErrLabelNotFound, label)
	}

	d.labels = append(d.labels[:idx], d.labels[idx+1:]...)

	if idx == d.selected {
		d.selected = max(0, idx-1)
	} else if idx < d.selected {
		d.selected--
	}

	checked := make(map[int]struct{}, len(d.checked))
	for i := range d.checked {
		switch {
		case i < idx:
			checked[i] = struct{}{}
		case i > idx:
			checked[i-1] = struct{}{}
		}
	}
	d.checked = checked

	return nil
}

// Select changes the selected month.
func (d *Directory) Select(index int) error {
	if index < 0 || index >= len(d.labels) {
		return fmt.Errorf("%w: index %d", ErrLabelNotFound, index)
	}

	d.selected = index
	return nil
}

// ToggleChecked flips the checked state of one month.
func (d *Directory) ToggleChecked(index int) error {
	if index < 0 || index >= len(d.labels) {
		return fmt.Errorf("%w: index %d", ErrLabelNotFound, index)
	}

	if _, ok := d.checked[index]; ok {
		delete(d.checked, index)
	} else {
		d.checked[index] = struct{}{}
	}

	return nil
}

// ToggleCheckedAll checks every month, or unchecks every month when
// all are already checked.
func (d *Directory) ToggleCheckedAll() {
	if len(d.checked) == len(d.labels) {
		d.checked = make(map[int]struct{})
		return
	}

	for i := range d.labels {
		d.checked[i] = struct{}{}
	}
}

// IsChecked reports whether the month at the index is checked.
func (d *Directory) IsChecked(index int) bool {
	_, ok := d.checked[index]
	return ok
}

// CheckedLabels returns the labels of all checked months in directory
// order.
func (d *Directory) CheckedLabels() []string {
	labels := make([]string, 0, len(d.checked))
	for i, label := range d.labels {
		if _, ok := d.checked[i]; ok {
			labels = append(labels, label)
		}
	}
	return labels
}
