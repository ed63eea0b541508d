package watchlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/samvad-hq/pwnwatch/internal/domain"
	"github.com/samvad-hq/pwnwatch/pkg/hibp"
)

// breachChecker implements Checker for breached_account watches.
type breachChecker struct {
	api API
}

// NewBreachChecker builds a checker that lists breaches for an account.
func NewBreachChecker(api API) Checker {
	return &breachChecker{api: api}
}

func (c *breachChecker) Type() string { return TypeBreachedAccount }

func (c *breachChecker) Check(ctx context.Context, w Watch) ([]domain.Exposure, error) {
	if !strings.EqualFold(w.Type, TypeBreachedAccount) {
		return nil, fmt.Errorf("breach checker received incompatible watch type %q", w.Type)
	}
	if c.api == nil {
		return nil, fmt.Errorf("breach checker has no api client")
	}

	breaches, err := c.api.BreachedAccount(ctx, w.Account, hibp.BreachedAccountOptions{
		Domain:   w.Domain,
		Truncate: w.Truncate,
	})
	if err != nil {
		return nil, fmt.Errorf("breached account lookup for watch %s: %w", w.ID, err)
	}
	return exposuresFromBreaches(w.Account, breaches), nil
}

func exposuresFromBreaches(account string, breaches []hibp.Breach) []domain.Exposure {
	out := make([]domain.Exposure, 0, len(breaches))
	for _, b := range breaches {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			continue
		}
		out = append(out, ExposureFromBreach(account, b))
	}
	return out
}

// ExposureFromBreach converts an API breach into an exposure of account.
func ExposureFromBreach(account string, b hibp.Breach) domain.Exposure {
	return domain.Exposure{
		ID:          domain.ExposureID(domain.ExposureBreach, account, b.Name),
		Kind:        domain.ExposureBreach,
		Account:     account,
		Name:        b.Name,
		Title:       b.Title,
		Domain:      b.Domain,
		Date:        b.BreachDate,
		PwnCount:    b.PwnCount,
		DataClasses: b.DataClasses,
		Description: b.Description,
		Complete:    !b.Truncated(),
	}
}
