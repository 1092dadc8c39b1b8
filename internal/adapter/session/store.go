package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/cafe-notion-service/internal/repository"
)

// Cookie mirrors one cookie entry in the persisted session state file.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite,omitempty"`
}

// State is the serialized browsing session written by the session bootstrap.
// Origins is carried opaquely so a state file produced with local storage
// entries survives a load/save round trip.
type State struct {
	Cookies []Cookie          `json:"cookies"`
	Origins []json.RawMessage `json:"origins,omitempty"`
}

// Store reads and writes the session state file at a fixed path.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted browsing session. A missing file is reported as
// ErrSessionStateMissing so callers can fail before any network activity.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", repository.ErrSessionStateMissing, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse session state %s: %w", s.path, err)
	}
	return &state, nil
}

// Save writes the session state, creating the parent directory if needed.
func (s *Store) Save(state *State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create session state directory: %w", err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}
	return nil
}

// CookiesByOrigin groups the stored cookies by a synthetic https origin
// derived from each cookie's domain, suitable for seeding an http.CookieJar.
func (st *State) CookiesByOrigin() map[string][]*http.Cookie {
	grouped := make(map[string][]*http.Cookie)
	for _, c := range st.Cookies {
		host := strings.TrimPrefix(c.Domain, ".")
		if host == "" {
			continue
		}
		origin := (&url.URL{Scheme: "https", Host: host}).String()
		cookie := &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		}
		if c.Expires > 0 {
			cookie.Expires = time.Unix(int64(c.Expires), 0)
		}
		grouped[origin] = append(grouped[origin], cookie)
	}
	return grouped
}
