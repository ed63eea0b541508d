package hibp

import (
	"context"
	"net/url"
	"strings"
)

const endpointPasteAccount = "pasteaccount"

// PasteAccount lists the pastes an email address appears in. It returns
// nil, nil when the address is not in any paste and a Bad request error when
// the API rejects the address as malformed.
func (c *Client) PasteAccount(ctx context.Context, email string) ([]Paste, error) {
	if strings.TrimSpace(email) == "" {
		return nil, emptyIdentifierError("email")
	}

	var pastes []Paste
	found, err := c.get(ctx, endpointPasteAccount, "/pasteaccount/"+url.PathEscape(email), nil, &pastes)
	if err != nil || !found {
		return nil, err
	}
	if pastes == nil {
		pastes = []Paste{}
	}
	return pastes, nil
}
