package dto

import (
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
)

// SummaryParams scopes the dashboard.
type SummaryParams struct {
	HubID    string     `form:"hubId"`
	ClientID string     `form:"clientId"`
	DriverID string     `form:"driverId"`
	DateFrom *time.Time `form:"dateFrom"`
	DateTo   *time.Time `form:"dateTo"`
}

func (p SummaryParams) ToFilter() domain.SummaryFilter {
	return domain.SummaryFilter{
		HubID:    p.HubID,
		ClientID: p.ClientID,
		DriverID: p.DriverID,
		DateFrom: p.DateFrom,
		DateTo:   p.DateTo,
	}
}
