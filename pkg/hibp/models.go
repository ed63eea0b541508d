package hibp

// Breach describes a single breach as returned by the API. A truncated
// response only populates Name.
type Breach struct {
	Name         string   `json:"Name"`
	Title        string   `json:"Title,omitempty"`
	Domain       string   `json:"Domain,omitempty"`
	BreachDate   string   `json:"BreachDate,omitempty"`
	AddedDate    string   `json:"AddedDate,omitempty"`
	ModifiedDate string   `json:"ModifiedDate,omitempty"`
	PwnCount     int64    `json:"PwnCount,omitempty"`
	Description  string   `json:"Description,omitempty"`
	LogoPath     string   `json:"LogoPath,omitempty"`
	DataClasses  []string `json:"DataClasses,omitempty"`
	IsVerified   bool     `json:"IsVerified"`
	IsFabricated bool     `json:"IsFabricated"`
	IsSensitive  bool     `json:"IsSensitive"`
	IsRetired    bool     `json:"IsRetired"`
	IsSpamList   bool     `json:"IsSpamList"`
}

// Truncated reports whether only the breach name was returned.
func (b Breach) Truncated() bool {
	return b.Title == "" && b.BreachDate == "" && len(b.DataClasses) == 0
}

// Paste is a paste that contained a queried email address.
type Paste struct {
	Source     string `json:"Source"`
	ID         string `json:"Id"`
	Title      string `json:"Title,omitempty"`
	Date       string `json:"Date,omitempty"`
	EmailCount int    `json:"EmailCount"`
}

// BreachedAccountOptions narrows a breached account lookup.
type BreachedAccountOptions struct {
	// Domain restricts results to breaches against this domain.
	Domain string
	// Truncate asks the API to return breach names only.
	Truncate bool
}
