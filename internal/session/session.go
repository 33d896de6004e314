// Package session holds the working state of the single operator: the
// month directory, the editable rows of every month, the auto-save
// scheduler and the notification center.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/transport-ledger/backend/internal/autosave"
	"github.com/transport-ledger/backend/internal/directory"
	"github.com/transport-ledger/backend/internal/excel"
	"github.com/transport-ledger/backend/internal/models"
	"github.com/transport-ledger/backend/internal/notify"
	"github.com/transport-ledger/backend/internal/rowstore"
	"github.com/transport-ledger/backend/internal/store"
	"github.com/rs/zerolog"
)

// Default letterhead, used until the operator edits it.
const (
	DefaultCompany = "㈜지산건기"
	DefaultContact = "010-3437-7661"
	DefaultRegNo   = "543-81-01295"
)

var (
	ErrNothingChecked = errors.New("no months are checked for export")
	ErrNoMonth        = errors.New("there is no month to operate on")
)

// CompanyInfo is the letterhead applied to new months and exports.
type CompanyInfo struct {
	Company string `json:"company"`
	Contact string `json:"contact"`
	RegNo   string `json:"regNo"`
}

// Session is the working state. All exported methods are safe for
// concurrent use.
type Session struct {
	mu      sync.Mutex
	store   *store.Store
	dir     *directory.Directory
	rows    *rowstore.Store
	sched   *autosave.Scheduler
	notes   *notify.Center
	log     zerolog.Logger
	company CompanyInfo
}

// New builds a session over the given store and loads the month list
// and the rows of the first month.
func New(st *store.Store, log zerolog.Logger) *Session {
	s := &Session{
		store: st,
		dir:   directory.New(st.FetchMonthList()),
		rows:  rowstore.New(),
		notes: notify.NewCenter(notify.DefaultLifetime),
		log:   log,
		company: CompanyInfo{
			Company: DefaultCompany,
			Contact: DefaultContact,
			RegNo:   DefaultRegNo,
		},
	}

	s.sched = autosave.New(autosave.DefaultDelay, s.persistAndReport, func(err error) {
		s.log.Error().Err(err).Msg("auto-save failed")
		s.notes.Error(notify.MsgSaveFailed)
	})

	s.mu.Lock()
	s.loadSelectedLocked()
	s.mu.Unlock()

	return s
}

// Notifications returns the notification center.
func (s *Session) Notifications() *notify.Center {
	return s.notes
}

// CompanyInfo returns the current letterhead.
func (s *Session) CompanyInfo() CompanyInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.company
}

// SetCompanyInfo replaces the letterhead.
func (s *Session) SetCompanyInfo(info CompanyInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.company = info
}

// Labels returns the month labels in directory order.
func (s *Session) Labels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir.Labels()
}

// Selected returns the index of the selected month.
func (s *Session) Selected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir.Selected()
}

// Checked reports the checked state per month, in directory order.
func (s *Session) Checked() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	checked := make([]bool, s.dir.Len())
	for i := range checked {
		checked[i] = s.dir.IsChecked(i)
	}
	return checked
}

// Rows returns the rows of the selected month.
func (s *Session) Rows() []rowstore.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows.Rows(s.dir.Selected())
}

// Suggestions returns the autocomplete values for a field of the
// selected month.
func (s *Session) Suggestions(field rowstore.Field) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows.Suggestions(s.dir.Selected(), field)
}

// SchedulerState reports what the auto-save scheduler is doing.
func (s *Session) SchedulerState() autosave.State {
	return s.sched.State()
}

// UpdateField edits one field of one row of the selected month and
// arms the auto-save timer.
func (s *Session) UpdateField(rowIndex int, field rowstore.Field, value string) error {
	s.mu.Lock()
	err := s.rows.UpdateField(s.dir.Selected(), rowIndex, field, value)
	s.updateSchedulerLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.sched.NotifyChange()
	return nil
}

// AddRow appends a blank row to the selected month.
func (s *Session) AddRow() {
	s.mu.Lock()
	s.rows.AddRow(s.dir.Selected())
	s.updateSchedulerLocked()
	s.mu.Unlock()

	s.sched.NotifyChange()
}

// DeleteRow removes one row of the selected month.
func (s *Session) DeleteRow(rowIndex int) error {
	s.mu.Lock()
	err := s.rows.DeleteRow(s.dir.Selected(), rowIndex)
	s.updateSchedulerLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.sched.NotifyChange()
	return nil
}

// Reorder replaces the selected month's row sequence.
func (s *Session) Reorder(rows []rowstore.Row) {
	s.mu.Lock()
	s.rows.Reorder(s.dir.Selected(), rows)
	s.updateSchedulerLocked()
	s.mu.Unlock()

	s.sched.NotifyChange()
}

// Save persists the selected month immediately, serialized against an
// in-flight auto-save.
func (s *Session) Save() error {
	err := s.sched.TriggerNow()
	if err != nil {
		s.log.Error().Err(err).Msg("manual save failed")
		s.notes.Error(notify.MsgSaveFailed)
	}
	return err
}

// ImportRows replaces the selected month's rows with an imported set
// and persists immediately.
func (s *Session) ImportRows(rows []rowstore.Row) error {
	s.mu.Lock()
	s.rows.ReplaceAll(s.dir.Selected(), rows)
	s.updateSchedulerLocked()
	s.mu.Unlock()

	if err := s.sched.TriggerNow(); err != nil {
		s.notes.Error(notify.MsgImportFailed)
		return err
	}

	s.notes.Success(notify.MsgExcelImported)
	return nil
}

// AddMonth creates the next month, selects it and checks every month.
func (s *Session) AddMonth() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	label, err := s.dir.NextLabel(time.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("adding month")
		s.notes.Error(notify.MsgSaveFailed)
		return err
	}

	if _, err := s.store.CreateMonth(label.String(), s.company.Company, s.company.Contact, s.company.RegNo); err != nil {
		s.log.Error().Err(err).Str("label", label.String()).Msg("adding month")
		s.notes.Error(notify.MsgSaveFailed)
		return err
	}

	s.dir.Append(label.String())
	s.rows.ReplaceAll(s.dir.Selected(), nil)
	s.updateSchedulerLocked()

	s.notes.Success(notify.MsgMonthAdded)
	return nil
}

// DeleteMonth removes a month remotely and from the directory. A month
// that was never persisted is only removed locally.
func (s *Session) DeleteMonth(label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.store.FetchMonth(label)
	if err != nil {
		s.log.Error().Err(err).Str("label", label).Msg("deleting month")
		s.notes.Error(notify.MsgMonthDeleteFailed)
		return err
	}

	if record != nil {
		if err := s.store.DeleteMonth(record.ID); err != nil {
			s.log.Error().Err(err).Str("label", label).Msg("deleting month")
			s.notes.Error(notify.MsgMonthDeleteFailed)
			return err
		}
	}

	if err := s.dir.Remove(label); err != nil {
		s.notes.Error(notify.MsgMonthDeleteFailed)
		return err
	}

	s.loadSelectedLocked()
	s.notes.Success(notify.MsgMonthDeleted)
	return nil
}

// Select changes the selected month and loads its rows.
func (s *Session) Select(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.dir.Select(index); err != nil {
		return err
	}

	s.loadSelectedLocked()
	return nil
}

// ToggleChecked flips the checked state of one month.
func (s *Session) ToggleChecked(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir.ToggleChecked(index)
}

// ToggleCheckedAll checks or unchecks every month.
func (s *Session) ToggleCheckedAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dir.ToggleCheckedAll()
}

// ExportSelected renders the selected month to a workbook.
func (s *Session) ExportSelected() (string, []byte, error) {
	s.mu.Lock()
	label := s.dir.SelectedLabel()
	rows := s.rows.Rows(s.dir.Selected())
	meta := excel.Meta{
		Company:    s.company.Company,
		Contact:    s.company.Contact,
		RegNo:      s.company.RegNo,
		MonthLabel: label,
	}
	s.mu.Unlock()

	if label == "" {
		return "", nil, ErrNoMonth
	}

	data, err := excel.ExportOne(rows, meta)
	if err != nil {
		s.log.Error().Err(err).Str("label", label).Msg("exporting month")
		s.notes.Error(notify.MsgExportFailed)
		return "", nil, err
	}

	s.notes.Success(notify.MsgExcelExported)
	return excel.Filename(label), data, nil
}

// ExportChecked renders every checked month into one workbook, one
// sheet per month. Months are fetched concurrently; a month whose
// fetch fails contributes an empty sheet instead of failing the whole
// export.
func (s *Session) ExportChecked() (string, []byte, error) {
	s.mu.Lock()
	labels := s.dir.CheckedLabels()
	info := s.company
	s.mu.Unlock()

	if len(labels) == 0 {
		s.notes.Warning(notify.MsgNoMonthsChecked)
		return "", nil, ErrNothingChecked
	}

	months := make([]excel.Month, len(labels))
	var wg sync.WaitGroup
	for i, label := range labels {
		i, label := i, label
		wg.Add(1)
		go func() {
			defer wg.Done()
			months[i] = excel.Month{
				Label: label,
				Rows:  s.fetchMonthRows(label),
				Meta: excel.Meta{
					Company: info.Company,
					Contact: info.Contact,
					RegNo:   info.RegNo,
				},
			}
		}()
	}
	wg.Wait()

	data, err := excel.ExportMany(months)
	if err != nil {
		s.log.Error().Err(err).Msg("exporting checked months")
		s.notes.Error(notify.MsgCombinedFailed)
		return "", nil, err
	}

	s.notes.Success(notify.MsgCombinedExported)
	return excel.CombinedFilename(), data, nil
}

// fetchMonthRows loads one month's rows from the store, degrading to
// no rows when the month is missing or the fetch fails.
func (s *Session) fetchMonthRows(label string) []rowstore.Row {
	record, err := s.store.FetchMonth(label)
	if err != nil || record == nil {
		if err != nil {
			s.log.Error().Err(err).Str("label", label).Msg("fetching month for export")
		}
		return nil
	}

	stored, err := s.store.FetchRows(record.ID)
	if err != nil {
		s.log.Error().Err(err).Str("label", label).Msg("fetching rows for export")
		return nil
	}

	return fromModels(stored)
}

// persistAndReport is the scheduler's save callback.
func (s *Session) persistAndReport() error {
	if err := s.persist(); err != nil {
		return err
	}

	s.notes.Success(notify.MsgDataSaved)
	return nil
}

// persist writes the selected month's rows through the store, creating
// the month record on first save.
func (s *Session) persist() error {
	s.mu.Lock()
	label := s.dir.SelectedLabel()
	rows := s.rows.Rows(s.dir.Selected())
	info := s.company
	s.mu.Unlock()

	if label == "" {
		return ErrNoMonth
	}

	record, err := s.store.FetchMonth(label)
	if err != nil {
		return err
	}

	if record == nil {
		created, err := s.store.CreateMonth(label, info.Company, info.Contact, info.RegNo)
		if err != nil {
			return err
		}
		record = &created
	}

	if _, err := s.store.ReplaceRows(record.ID, toModels(rows)); err != nil {
		return err
	}

	s.log.Debug().Str("label", label).Int("rows", len(rows)).Msg("saved")
	return nil
}

// loadSelectedLocked pulls the selected month's rows from the store
// into the row store. Call with the mutex held.
func (s *Session) loadSelectedLocked() {
	defer s.updateSchedulerLocked()

	label := s.dir.SelectedLabel()
	if label == "" {
		return
	}

	record, err := s.store.FetchMonth(label)
	if err != nil || record == nil {
		if err != nil {
			s.log.Error().Err(err).Str("label", label).Msg("loading month")
		}
		s.rows.ReplaceAll(s.dir.Selected(), nil)
		return
	}

	stored, err := s.store.FetchRows(record.ID)
	if err != nil {
		s.log.Error().Err(err).Str("label", label).Msg("loading rows")
		s.rows.ReplaceAll(s.dir.Selected(), nil)
		return
	}

	s.rows.ReplaceAll(s.dir.Selected(), fromModels(stored))
}

// updateSchedulerLocked keeps the scheduler inert while there is
// nothing to save. Call with the mutex held.
func (s *Session) updateSchedulerLocked() {
	s.sched.SetEnabled(s.dir.Len() > 0 && s.rows.Len(s.dir.Selected()) > 0)
}

func toModels(rows []rowstore.Row) []models.TransportRow {
	out := make([]models.TransportRow, len(rows))
	for i, r := range rows {
		out[i] = models.TransportRow{
			Date:        r.Date,
			CarNumber:   r.CarNumber,
			Company:     r.Company,
			Destination: r.Destination,
			Item:        r.Item,
			Weight:      r.Weight,
			Count:       r.Count,
			UnitPrice:   r.UnitPrice,
			SupplyPrice: r.SupplyPrice,
			Tax:         r.Tax,
			TotalPrice:  r.TotalPrice,
		}
	}
	return out
}

func fromModels(rows []models.TransportRow) []rowstore.Row {
	out := make([]rowstore.Row, len(rows))
	for i, r := range rows {
		out[i] = rowstore.Row{
			Date:        r.Date,
			CarNumber:   r.CarNumber,
			Company:     r.Company,
			Destination: r.Destination,
			Item:        r.Item,
			Weight:      r.Weight,
			Count:       r.Count,
			UnitPrice:   r.UnitPrice,
			SupplyPrice: r.SupplyPrice,
			Tax:         r.Tax,
			TotalPrice:  r.TotalPrice,
		}
	}
	return out
}
