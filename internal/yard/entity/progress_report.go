package entity

import (
	"time"

	"gorm.io/gorm"
)

// ProgressReport is one appended progress observation for a work detail.
// Reports are never mutated; removal is a soft delete.
type ProgressReport struct {
	ID           string         `json:"id" gorm:"primaryKey;size:32"`
	WorkDetailID string         `json:"work_detail_id" gorm:"size:32;not null;index"`
	Percentage   float64        `json:"percentage" gorm:"not null"`
	ReportDate   time.Time      `json:"report_date" gorm:"not null"`
	ReportedBy   string         `json:"reported_by" gorm:"size:32"`
	Notes        string         `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	WorkDetail *WorkDetail `json:"work_detail,omitempty" gorm:"foreignKey:WorkDetailID"`
}

func (ProgressReport) TableName() string {
	return "progress_reports"
}

// ProgressSummary is the derived "current progress" of a work detail.
type ProgressSummary struct {
	Value float64    `json:"value"`
	AsOf  *time.Time `json:"as_of,omitempty"`
	Count int        `json:"count"`
}

// CurrentProgress reduces a list of reports to the current progress: the
// percentage of the report with the latest report date. When two reports
// share the latest date the highest ID wins, so the result does not depend
// on fetch order. Empty input yields {0, nil, 0}.
func CurrentProgress(reports []ProgressReport) ProgressSummary {
	if len(reports) == 0 {
		return ProgressSummary{}
	}

	latest := reports[0]
	for _, r := range reports[1:] {
		if r.ReportDate.After(latest.ReportDate) {
			latest = r
			continue
		}
		if r.ReportDate.Equal(latest.ReportDate) && r.ID > latest.ID {
			latest = r
		}
	}

	asOf := latest.ReportDate
	return ProgressSummary{
		Value: latest.Percentage,
		AsOf:  &asOf,
		Count: len(reports),
	}
}
