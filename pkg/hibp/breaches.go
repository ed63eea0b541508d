package hibp

import (
	"context"
	"net/url"
	"strings"
)

const (
	endpointBreachedAccount = "breachedaccount"
	endpointBreaches        = "breaches"
	endpointBreach          = "breach"
	endpointDataClasses     = "dataclasses"
)

// BreachedAccount lists the breaches an account appears in. It returns
// nil, nil when the account is not part of any breach.
func (c *Client) BreachedAccount(ctx context.Context, account string, opts BreachedAccountOptions) ([]Breach, error) {
	if strings.TrimSpace(account) == "" {
		return nil, emptyIdentifierError("account")
	}

	query := url.Values{}
	if domain := strings.TrimSpace(opts.Domain); domain != "" {
		query.Set("domain", domain)
	}
	if opts.Truncate {
		query.Set("truncateResponse", "true")
	}

	var breaches []Breach
	found, err := c.get(ctx, endpointBreachedAccount, "/breachedaccount/"+url.PathEscape(account), query, &breaches)
	if err != nil || !found {
		return nil, err
	}
	if breaches == nil {
		breaches = []Breach{}
	}
	return breaches, nil
}

// Breaches lists every breach in the system, optionally filtered by domain.
// The result is never nil on success.
func (c *Client) Breaches(ctx context.Context, domain string) ([]Breach, error) {
	query := url.Values{}
	if domain = strings.TrimSpace(domain); domain != "" {
		query.Set("domain", domain)
	}

	var breaches []Breach
	if _, err := c.get(ctx, endpointBreaches, "/breaches", query, &breaches); err != nil {
		return nil, err
	}
	if breaches == nil {
		breaches = []Breach{}
	}
	return breaches, nil
}

// Breach fetches a single breach by name. It returns nil, nil when no breach
// has that name.
func (c *Client) Breach(ctx context.Context, name string) (*Breach, error) {
	if strings.TrimSpace(name) == "" {
		return nil, emptyIdentifierError("breach name")
	}

	var breach Breach
	found, err := c.get(ctx, endpointBreach, "/breach/"+url.PathEscape(name), nil, &breach)
	if err != nil || !found {
		return nil, err
	}
	return &breach, nil
}

// DataClasses lists the data classes used to categorize breaches. The
// result is never nil on success.
func (c *Client) DataClasses(ctx context.Context) ([]string, error) {
	var classes []string
	if _, err := c.get(ctx, endpointDataClasses, "/dataclasses", nil, &classes); err != nil {
		return nil, err
	}
	if classes == nil {
		classes = []string{}
	}
	return classes, nil
}
