package domain

import "strings"

// Domain contains core models shared by checkers, the monitor and publishers.

const (
	ExposureBreach = "breach"
	ExposurePaste  = "paste"
)

// Exposure is a single breach or paste an account was found in.
type Exposure struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Account      string   `json:"account"`
	Name         string   `json:"name"`
	Title        string   `json:"title,omitempty"`
	Domain       string   `json:"domain,omitempty"`
	Date         string   `json:"date,omitempty"`
	PwnCount     int64    `json:"pwn_count,omitempty"`
	DataClasses  []string `json:"data_classes,omitempty"`
	Description  string   `json:"description,omitempty"`
	ReferenceURL string   `json:"reference_url,omitempty"`
	Source       string   `json:"source,omitempty"`
	Complete     bool     `json:"complete"`
}

// ExposureID builds the dedupe key for an exposure of an account.
func ExposureID(kind, account, name string) string {
	return kind + ":" + strings.ToLower(strings.TrimSpace(account)) + ":" + name
}
