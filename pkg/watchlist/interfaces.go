package watchlist

import (
	"context"

	"github.com/samvad-hq/pwnwatch/internal/domain"
	"github.com/samvad-hq/pwnwatch/pkg/hibp"
)

// Checker looks up one kind of exposure for a watch.
// Concrete implementations live in type-specific files (e.g., breach_checker.go).
type Checker interface {
	Type() string
	Check(ctx context.Context, w Watch) ([]domain.Exposure, error)
}

// CheckerRegistry resolves the checker implementation for a given watch.
type CheckerRegistry interface {
	CheckerFor(w Watch) (Checker, error)
}

// API is the subset of *hibp.Client the checkers call.
type API interface {
	BreachedAccount(ctx context.Context, account string, opts hibp.BreachedAccountOptions) ([]hibp.Breach, error)
	PasteAccount(ctx context.Context, email string) ([]hibp.Paste, error)
}
