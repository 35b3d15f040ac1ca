package domain

import (
	"fmt"
	"time"
)

const (
	DepositNumberPrefix    = "DEP"
	RemittanceNumberPrefix = "REM"
)

// SequenceDay is the key of a per-day sequence, e.g. 20240315.
func SequenceDay(t time.Time) string {
	return t.UTC().Format("20060102")
}

// FormatNumber renders a human-readable number like DEP-20240315-000042.
func FormatNumber(prefix, day string, seq int64) string {
	return fmt.Sprintf("%s-%s-%06d", prefix, day, seq)
}
