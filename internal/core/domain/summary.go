package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TopCollectorsLimit caps the collector leaderboard on the dashboard.
const TopCollectorsLimit = 5

// SummaryFilter scopes the dashboard. DateFrom/DateTo bound collectionTime and depositedAt.
type SummaryFilter struct {
	HubID    string
	ClientID string
	DriverID string
	DateFrom *time.Time
	DateTo   *time.Time
}

func (f SummaryFilter) inRange(t time.Time) bool {
	if f.DateFrom != nil && t.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && t.After(*f.DateTo) {
		return false
	}
	return true
}

// MatchesCollection applies the party filters and the date range.
func (f SummaryFilter) MatchesCollection(c Collection) bool {
	if f.HubID != "" && c.HubID != f.HubID {
		return false
	}
	if f.ClientID != "" && c.ClientID != f.ClientID {
		return false
	}
	if f.DriverID != "" && c.CollectedByID != f.DriverID {
		return false
	}
	return f.inRange(c.CollectionTime)
}

// MatchesDeposit applies the hub and driver filters and the date range.
func (f SummaryFilter) MatchesDeposit(d Deposit) bool {
	if f.HubID != "" && d.HubID != f.HubID {
		return false
	}
	if f.DriverID != "" && d.DepositedByID != f.DriverID {
		return false
	}
	return f.inRange(d.DepositedAt)
}

// CountAmount is a count with the amount it sums to.
type CountAmount struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

func (ca *CountAmount) add(amount decimal.Decimal) {
	ca.Count++
	ca.Amount = ca.Amount.Add(amount)
}

// StatusCount is one row of the status breakdown.
type StatusCount struct {
	Status CollectionStatus `json:"status"`
	CountAmount
}

// CollectorTotal is one row of the collector leaderboard.
type CollectorTotal struct {
	CollectorID   string `json:"collectedById"`
	CollectorName string `json:"collectedByName"`
	CountAmount
}

// DiscrepancySummary totals deposits left in DISCREPANCY.
type DiscrepancySummary struct {
	Count    int             `json:"count"`
	Shortage decimal.Decimal `json:"shortage"`
	Excess   decimal.Decimal `json:"excess"`
}

// Summary is the read-only dashboard view.
type Summary struct {
	TodayCollections   CountAmount        `json:"todayCollections"`
	PendingDeposits    CountAmount        `json:"pendingDeposits"`
	PendingRemittances CountAmount        `json:"pendingRemittances"`
	StatusBreakdown    []StatusCount      `json:"statusBreakdown"`
	TopCollectors      []CollectorTotal   `json:"topCollectors"`
	Discrepancies      DiscrepancySummary `json:"discrepancies"`
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// BuildSummary folds the dashboard from full record sets.
func BuildSummary(collections []Collection, deposits []Deposit, f SummaryFilter, now time.Time) Summary {
	s := Summary{
		TodayCollections:   CountAmount{Amount: decimal.Zero},
		PendingDeposits:    CountAmount{Amount: decimal.Zero},
		PendingRemittances: CountAmount{Amount: decimal.Zero},
		Discrepancies:      DiscrepancySummary{Shortage: decimal.Zero, Excess: decimal.Zero},
	}
	today := StartOfDay(now)
	byStatus := map[CollectionStatus]*StatusCount{}
	byCollector := map[string]*CollectorTotal{}

	for _, c := range collections {
		if !f.MatchesCollection(c) {
			continue
		}
		if !c.CollectionTime.Before(today) {
			s.TodayCollections.add(c.CollectedAmount)
		}
		if c.IsDepositable() {
			s.PendingDeposits.add(c.CollectedAmount)
		}
		if c.IsRemittable() {
			s.PendingRemittances.add(c.CollectedAmount)
		}
		sc, ok := byStatus[c.Status]
		if !ok {
			sc = &StatusCount{Status: c.Status, CountAmount: CountAmount{Amount: decimal.Zero}}
			byStatus[c.Status] = sc
		}
		sc.add(c.CollectedAmount)

		ct, ok := byCollector[c.CollectedByID]
		if !ok {
			ct = &CollectorTotal{CollectorID: c.CollectedByID, CollectorName: c.CollectedByName, CountAmount: CountAmount{Amount: decimal.Zero}}
			byCollector[c.CollectedByID] = ct
		}
		ct.add(c.CollectedAmount)
	}

	for _, d := range deposits {
		if d.Status != DepositDiscrepancy || !f.MatchesDeposit(d) {
			continue
		}
		s.Discrepancies.Count++
		s.Discrepancies.Shortage = s.Discrepancies.Shortage.Add(d.ShortageAmount)
		s.Discrepancies.Excess = s.Discrepancies.Excess.Add(d.ExcessAmount)
	}

	s.StatusBreakdown = make([]StatusCount, 0, len(byStatus))
	for _, sc := range byStatus {
		s.StatusBreakdown = append(s.StatusBreakdown, *sc)
	}
	sort.Slice(s.StatusBreakdown, func(i, j int) bool {
		return s.StatusBreakdown[i].Status < s.StatusBreakdown[j].Status
	})

	s.TopCollectors = make([]CollectorTotal, 0, len(byCollector))
	for _, ct := range byCollector {
		s.TopCollectors = append(s.TopCollectors, *ct)
	}
	sort.Slice(s.TopCollectors, func(i, j int) bool {
		a, b := s.TopCollectors[i], s.TopCollectors[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.CollectorID < b.CollectorID
	})
	if len(s.TopCollectors) > TopCollectorsLimit {
		s.TopCollectors = s.TopCollectors[:TopCollectorsLimit]
	}
	return s
}
