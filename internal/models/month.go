package models

// TransportMonth represents one invoicing month.
//
// It is the unit of organization for the ledger: every transport row
// belongs to exactly one month, identified by its unique label of the
// form "<year>년 <month>월".
type TransportMonth struct {
	DefaultModel
	MonthLabel string `json:"monthLabel" gorm:"uniqueIndex" example:"2025년 8월"` // Unique month label, the sort key for months
	Company    string `json:"company" example:"㈜지산건기"`                          // Issuing company name
	Contact    string `json:"contact" example:"010-3437-7661"`                  // Contact number printed on the statement
	RegNo      string `json:"regNo" example:"543-81-01295"`                     // Business registration number
}

func (m TransportMonth) Self() string {
	return "Transport Month"
}
