package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Period is an inclusive date-time window.
type Period struct {
	Start time.Time `json:"periodStart"`
	End   time.Time `json:"periodEnd"`
}

// Contains reports whether t falls inside the period, both ends inclusive.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Valid reports whether the period is non-empty and ordered.
func (p Period) Valid() bool {
	return !p.Start.IsZero() && !p.End.IsZero() && !p.End.Before(p.Start)
}

// Page describes an offset-based page request.
type Page struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Offset returns the number of rows to skip for the page. Page numbers start at 1.
func (p Page) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// UniqueStrings returns ids with duplicates removed, keeping first-seen order.
func UniqueStrings(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
