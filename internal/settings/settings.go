// Package settings holds the backend URL and provider API keys used by the
// recommendation pipeline. Keys are kept server-side and never returned to clients.
package settings

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultBackendURL is used when no backend URL has been configured
const DefaultBackendURL = "http://localhost:8000"

// ErrInvalidBackendURL is returned for URLs that are not absolute http(s)
var ErrInvalidBackendURL = errors.New("backend URL must be an absolute http or https URL")

// ErrUnknownKey rejects API key names outside KeyNames
var ErrUnknownKey = errors.New("unknown API key")

// Key names, shared with the environment variables that seed them
const (
	KeyGroq             = "GROQ_API_KEY"
	KeyLangChain        = "LANGCHAIN_API_KEY"
	KeyLangChainProject = "LANGCHAIN_PROJECT"
	KeySerper           = "SERPER_API_KEY"
	KeyGoogle           = "GOOGLE_API_KEY"
	KeyTavily           = "TAVILY_API_KEY"
)

// KeyNames lists every API key the store accepts
var KeyNames = []string{KeyGroq, KeyLangChain, KeyLangChainProject, KeySerper, KeyGoogle, KeyTavily}

// APIKeys holds provider credentials
type APIKeys map[string]string

func (k APIKeys) Groq() string   { return k[KeyGroq] }
func (k APIKeys) Serper() string { return k[KeySerper] }
func (k APIKeys) Tavily() string { return k[KeyTavily] }
func (k APIKeys) Google() string { return k[KeyGoogle] }

// Presence reports which keys are set without exposing values
func (k APIKeys) Presence() map[string]bool {
	out := make(map[string]bool, len(KeyNames))
	for _, name := range KeyNames {
		out[name] = strings.TrimSpace(k[name]) != ""
	}
	return out
}

// Settings is a snapshot of the configured values
type Settings struct {
	BackendURL string
	Configured bool
	Keys       APIKeys
}

// Store reads and updates settings
type Store interface {
	Get(ctx context.Context) (Settings, error)
	SetBackendURL(ctx context.Context, raw string) error
	// UpdateKeys sets the given keys; an empty value clears that key
	UpdateKeys(ctx context.Context, keys map[string]string) error
}

// ValidateBackendURL normalizes raw and rejects anything but absolute http(s)
func ValidateBackendURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: %q", ErrInvalidBackendURL, raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

func validateKeyNames(keys map[string]string) error {
	for name := range keys {
		known := false
		for _, k := range KeyNames {
			if k == name {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w %q", ErrUnknownKey, name)
		}
	}
	return nil
}
