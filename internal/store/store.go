// Package store translates between the in-memory month and row state and
// the relational backend.
package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/transport-ledger/backend/internal/cache"
	"github.com/transport-ledger/backend/internal/models"
	"github.com/transport-ledger/backend/internal/types"
	"gorm.io/gorm"
)

const (
	cacheSize = 64
	cacheTTL  = 5 * time.Minute

	// listKey is the aggregate cache key for the full month list.
	listKey = "month-list"
)

// Store is the persistence gateway. Reads go through a TTL cache, every
// successful mutation invalidates the keys it touches so that subsequent
// reads are fresh.
type Store struct {
	db     *gorm.DB
	months *cache.LRUCache[models.TransportMonth]
	rows   *cache.LRUCache[[]models.TransportRow]
	lists  *cache.LRUCache[[]string]
}

// New returns a Store over the given database handle.
func New(db *gorm.DB) *Store {
	return &Store{
		db:     db,
		months: cache.NewLRUCache[models.TransportMonth](cacheSize, cacheTTL),
		rows:   cache.NewLRUCache[[]models.TransportRow](cacheSize, cacheTTL),
		lists:  cache.NewLRUCache[[]string](1, cacheTTL),
	}
}

// CreateMonth inserts one month record. A duplicate label is rejected by
// the unique constraint and surfaces as models.ErrMonthLabelNotUnique.
func (s *Store) CreateMonth(label, company, contact, regNo string) (models.TransportMonth, error) {
	month := models.TransportMonth{
		MonthLabel: label,
		Company:    company,
		Contact:    contact,
		RegNo:      regNo,
	}

	err := s.db.Create(&month).Error
	if err != nil {
		return models.TransportMonth{}, err
	}

	s.lists.Delete(listKey)
	s.months.Delete(label)

	return month, nil
}

// FetchMonth returns the month with the given label, or nil when no such
// month exists. Only genuine backend failures return an error.
func (s *Store) FetchMonth(label string) (*models.TransportMonth, error) {
	if month, ok := s.months.Get(label); ok {
		return &month, nil
	}

	var month models.TransportMonth
	err := s.db.First(&month, "month_label = ?", label).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.months.Set(label, month)
	return &month, nil
}

// FetchMonthList returns all month labels sorted ascending by year and
// month. Missing labels are dropped. Any failure degrades to an empty
// list: an empty directory is always a safe state for the caller.
func (s *Store) FetchMonthList() []string {
	if labels, ok := s.lists.Get(listKey); ok {
		return labels
	}

	var months []models.TransportMonth
	err := s.db.Find(&months).Error
	if err != nil {
		log.Error().Err(err).Msg("month list could not be loaded")
		return []string{}
	}

	labels := make([]string, 0, len(months))
	for _, month := range months {
		if month.MonthLabel == "" {
			continue
		}
		labels = append(labels, month.MonthLabel)
	}

	labels = types.SortLabels(labels)
	s.lists.Set(listKey, labels)

	return labels
}

// ReplaceRows replaces the full row set of a month. The delete and the
// insert run in one transaction so the month can never be left without
// its rows by a failure in between. Rows are stored with sequential
// order, starting at 0.
func (s *Store) ReplaceRows(monthID uuid.UUID, rows []models.TransportRow) ([]models.TransportRow, error) {
	stored := make([]models.TransportRow, 0, len(rows))

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("month_id = ?", monthID).Delete(&models.TransportRow{}).Error
		if err != nil {
			return err
		}

		for i, row := range rows {
			row.DefaultModel = models.DefaultModel{}
			row.MonthID = monthID
			row.RowOrder = i

			err = tx.Create(&row).Error
			if err != nil {
				return err
			}

			stored = append(stored, row)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.rows.Delete(monthID.String())

	return stored, nil
}

// FetchRows returns the rows of a month ordered by their persisted
// position.
func (s *Store) FetchRows(monthID uuid.UUID) ([]models.TransportRow, error) {
	if rows, ok := s.rows.Get(monthID.String()); ok {
		return rows, nil
	}

	var rows []models.TransportRow
	err := s.db.Where("month_id = ?", monthID).Order("row_order ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	s.rows.Set(monthID.String(), rows)
	return rows, nil
}

// DeleteMonth removes a month and its rows. Rows are deleted first: if
// that fails the month record stays intact so that no rows are orphaned
// silently.
func (s *Store) DeleteMonth(monthID uuid.UUID) error {
	var month models.TransportMonth
	err := s.db.First(&month, "id = ?", monthID).Error
	if err != nil {
		return err
	}

	err = s.db.Where("month_id = ?", monthID).Delete(&models.TransportRow{}).Error
	if err != nil {
		return err
	}

	err = s.db.Delete(&models.TransportMonth{}, "id = ?", monthID).Error
	if err != nil {
		return err
	}

	s.lists.Delete(listKey)
	s.months.Delete(month.MonthLabel)
	s.rows.Delete(monthID.String())

	return nil
}
