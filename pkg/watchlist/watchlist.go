package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Package watchlist loads the accounts to monitor (YAML/JSON) and checks them.

const (
	TypeBreachedAccount = "breached_account"
	TypePasteAccount    = "paste_account"

	defaultRequestDelayMs = 1500
)

// Watch is one monitored account.
type Watch struct {
	ID             string `json:"id" yaml:"id"`
	Account        string `json:"account" yaml:"account"`
	Type           string `json:"type" yaml:"type"`
	Domain         string `json:"domain" yaml:"domain"`
	Truncate       bool   `json:"truncate" yaml:"truncate"`
	RequestDelayMs int    `json:"request_delay_ms" yaml:"request_delay_ms"`
	Enabled        *bool  `json:"enabled" yaml:"enabled"`
}

type watchFile struct {
	Watches []Watch `json:"watches" yaml:"watches"`
}

// Registry holds the watches loaded from a file.
type Registry struct {
	mu      sync.RWMutex
	watches []Watch
	idx     map[string]Watch
}

// LoadRegistry loads the watchlist from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("watchlist file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open watchlist file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read watchlist file: %w", err)
	}

	wf, err := parseWatchFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewRegistry(wf.Watches)
}

// NewRegistry validates watches and indexes them by id.
func NewRegistry(watches []Watch) (*Registry, error) {
	if len(watches) == 0 {
		return nil, errors.New("watchlist contains no watches entries")
	}

	reg := &Registry{
		watches: make([]Watch, len(watches)),
		idx:     make(map[string]Watch, len(watches)),
	}
	for i := range watches {
		w := sanitizeWatch(watches[i])
		if err := validateWatch(w); err != nil {
			return nil, fmt.Errorf("watches[%d]: %w", i, err)
		}
		if _, exists := reg.idx[w.ID]; exists {
			return nil, fmt.Errorf("duplicate watch id %q", w.ID)
		}
		reg.watches[i] = w
		reg.idx[w.ID] = w
	}
	return reg, nil
}

type unmarshalFn func([]byte, any) error

func parseWatchFile(data []byte, ext string) (watchFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if wf, err := unmarshalWatchFile(d.name, data, d.fn); err == nil {
			return wf, nil
		}
	}

	return watchFile{}, errors.New("watchlist file format not recognized (expected YAML or JSON)")
}

func unmarshalWatchFile(name string, data []byte, fn unmarshalFn) (watchFile, error) {
	var wf watchFile
	if err := fn(data, &wf); err != nil {
		return watchFile{}, fmt.Errorf("decode %s watchlist: %w", name, err)
	}
	return wf, nil
}

func sanitizeWatch(w Watch) Watch {
	w.ID = strings.TrimSpace(w.ID)
	w.Account = strings.TrimSpace(w.Account)
	w.Type = strings.ToLower(strings.TrimSpace(w.Type))
	w.Domain = strings.TrimSpace(w.Domain)

	if w.Type == "" {
		w.Type = TypeBreachedAccount
	}
	if w.RequestDelayMs <= 0 {
		w.RequestDelayMs = defaultRequestDelayMs
	}
	if w.Enabled == nil {
		def := true
		w.Enabled = &def
	}
	return w
}

func validateWatch(w Watch) error {
	if w.ID == "" {
		return errors.New("id is required")
	}
	if w.Account == "" {
		return fmt.Errorf("account is required for watch %q", w.ID)
	}
	if w.Type == TypePasteAccount && !strings.Contains(w.Account, "@") {
		return fmt.Errorf("paste watch %q requires an email account", w.ID)
	}
	return nil
}

// All returns all configured watches.
func (r *Registry) All() []Watch {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Watch, len(r.watches))
	copy(out, r.watches)
	return out
}

// Enabled returns watches that are enabled.
func (r *Registry) Enabled() []Watch {
	all := r.All()
	if len(all) == 0 {
		return nil
	}

	out := make([]Watch, 0, len(all))
	for _, w := range all {
		if w.EnabledValue() {
			out = append(out, w)
		}
	}
	return out
}

// ByID returns the watch entry for the given id, if loaded.
func (r *Registry) ByID(id string) (Watch, bool) {
	if r == nil {
		return Watch{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Watch{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.idx[id]
	return w, ok
}

// EnabledValue returns enabled flag defaulting to true.
func (w Watch) EnabledValue() bool {
	if w.Enabled == nil {
		return true
	}
	return *w.Enabled
}

// RequestDelay returns the pause to take after checking this watch.
func (w Watch) RequestDelay() time.Duration {
	if w.RequestDelayMs <= 0 {
		return time.Duration(defaultRequestDelayMs) * time.Millisecond
	}
	return time.Duration(w.RequestDelayMs) * time.Millisecond
}
