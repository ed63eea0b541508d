package watchlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/samvad-hq/pwnwatch/internal/domain"
	"github.com/samvad-hq/pwnwatch/pkg/hibp"
)

// pasteChecker implements Checker for paste_account watches.
type pasteChecker struct {
	api API
}

// NewPasteChecker builds a checker that lists pastes for an email address.
func NewPasteChecker(api API) Checker {
	return &pasteChecker{api: api}
}

func (c *pasteChecker) Type() string { return TypePasteAccount }

func (c *pasteChecker) Check(ctx context.Context, w Watch) ([]domain.Exposure, error) {
	if !strings.EqualFold(w.Type, TypePasteAccount) {
		return nil, fmt.Errorf("paste checker received incompatible watch type %q", w.Type)
	}
	if c.api == nil {
		return nil, fmt.Errorf("paste checker has no api client")
	}

	pastes, err := c.api.PasteAccount(ctx, w.Account)
	if err != nil {
		return nil, fmt.Errorf("paste account lookup for watch %s: %w", w.ID, err)
	}

	out := make([]domain.Exposure, 0, len(pastes))
	for _, p := range pastes {
		if strings.TrimSpace(p.ID) == "" {
			continue
		}
		out = append(out, exposureFromPaste(w.Account, p))
	}
	return out, nil
}

func exposureFromPaste(account string, p hibp.Paste) domain.Exposure {
	title := p.Title
	if title == "" {
		// untitled pastes are common; fall back to source/id
		title = p.Source + "/" + p.ID
	}
	return domain.Exposure{
		ID:       domain.ExposureID(domain.ExposurePaste, account, p.Source+"/"+p.ID),
		Kind:     domain.ExposurePaste,
		Account:  account,
		Name:     p.ID,
		Title:    title,
		Date:     p.Date,
		PwnCount: int64(p.EmailCount),
		Source:   p.Source,
		Complete: true,
	}
}
