package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/SscSPs/cod_ledger/internal/core/ports/external"
	"github.com/SscSPs/cod_ledger/internal/middleware"
	"github.com/SscSPs/cod_ledger/internal/utils/pagination"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Parties external.PartyDirectory
	Retry   RetryPolicy
	Clock   func() time.Time
	Paging  PageLimits
}

// PageLimits bounds list sizes requested by callers.
type PageLimits struct {
	Default int
	Max     int
}

// DefaultPageLimits is used when no limits are configured.
var DefaultPageLimits = PageLimits{Default: 20, Max: 100}

// ServiceOption is a functional option shared by every service constructor.
type ServiceOption func(*BaseService)

// WithPartyDirectory sets the directory used to fill display names.
func WithPartyDirectory(parties external.PartyDirectory) ServiceOption {
	return func(s *BaseService) {
		s.Parties = parties
	}
}

// WithRetryPolicy sets how claim operations retry on transient storage conflicts.
func WithRetryPolicy(policy RetryPolicy) ServiceOption {
	return func(s *BaseService) {
		s.Retry = policy
	}
}

// WithPageLimits sets default and maximum page sizes.
func WithPageLimits(limits PageLimits) ServiceOption {
	return func(s *BaseService) {
		s.Paging = limits
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

func newBaseService(options []ServiceOption) BaseService {
	base := BaseService{Retry: DefaultRetryPolicy, Paging: DefaultPageLimits}
	for _, option := range options {
		option(&base)
	}
	return base
}

// Now returns the current time in UTC from the configured clock.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// clampPage fills in the page number and size for offset listings.
func (s *BaseService) clampPage(p domain.Page) domain.Page {
	if p.Page < 1 {
		p.Page = 1
	}
	p.PageSize = pagination.ClampPageSize(p.PageSize, s.Paging.Default, s.Paging.Max)
	return p
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with the error attached
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// resolveName returns current when set, otherwise a directory lookup. Lookup failures are logged
// and yield an empty name.
func (s *BaseService) resolveName(ctx context.Context, kind external.PartyKind, id, current string) string {
	if current != "" || id == "" || s.Parties == nil {
		return current
	}
	name, err := s.Parties.ResolveName(ctx, kind, id)
	if err != nil {
		s.LogDebug(ctx, "Display name lookup failed",
			slog.String("kind", string(kind)),
			slog.String("id", id),
			slog.String("error", err.Error()))
		return ""
	}
	return name
}
