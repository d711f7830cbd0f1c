package domain

import (
	"time"
)

// WorkOrderQuery is the filter spec applied in memory by the listing
// aggregator. All specified dimensions must match; Search is a
// case-insensitive substring match on description, equipment name or
// technician name.
type WorkOrderQuery struct {
	Search   string   `form:"search" json:"search"`
	Status   string   `form:"status" json:"status"`
	Kind     string   `form:"kind" json:"kind"` // PREVENTIVE or CORRECTIVE
	Priority Priority `form:"priority" json:"priority"`

	DateFrom time.Time `form:"dateFrom" time_format:"2006-01-02" json:"dateFrom"`
	DateTo   time.Time `form:"dateTo" time_format:"2006-01-02" json:"dateTo"`

	Page     int `form:"page" json:"page"`
	PageSize int `form:"pageSize" json:"pageSize"`
}
