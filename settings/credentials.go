// Package settings provides storage for resxkit user settings, currently
// the translator subscription keys.
//
// All settings are stored in the XDG data directory:
//
//	$XDG_DATA_HOME/resxkit/  (default: ~/.local/share/resxkit/)
//
// auth.json is a JSON object keyed by profile ID ("azure" by default). Each
// value records the key type, the key itself and optionally the region and
// endpoint of the translator resource. File permissions are 0600.
//
// Lookup order for the subscription key:
//  1. --subscription-key flag (highest priority)
//  2. RESXKIT_SUBSCRIPTION_KEY environment variable
//  3. This credential store
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	dataDirName = "resxkit"
	fileName    = "auth.json"
)

// DefaultProfile is the profile used when none is given.
const DefaultProfile = "azure"

// Environment variables consulted by ResolveKey and ResolveRegion.
const (
	EnvSubscriptionKey = "RESXKIT_SUBSCRIPTION_KEY"
	EnvRegion          = "RESXKIT_REGION"
)

// ---------------------------------------------------------------------------
// Auth entry
// ---------------------------------------------------------------------------

// Info is the entry stored per profile in auth.json.
type Info struct {
	// Type discriminator; only "api" is written.
	Type string `json:"type"`

	Key      string `json:"key,omitempty"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

// IsAPI returns true if this is an API key entry.
func (i *Info) IsAPI() bool {
	return i.Type == "api"
}

// Store holds all credentials, keyed by profile ID.
type Store map[string]*Info

// Profiles returns the stored profile IDs, sorted.
func (s Store) Profiles() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ---------------------------------------------------------------------------
// File path
// ---------------------------------------------------------------------------

// dataDir returns the XDG data directory for resxkit.
// Respects $XDG_DATA_HOME (falls back to ~/.local/share).
func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, dataDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", dataDirName), nil
}

func filePath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// FilePath returns the auth.json file path for display purposes.
func FilePath() string {
	p, err := filePath()
	if err != nil {
		return ""
	}
	return p
}

// DataDir returns the resxkit data directory path.
func DataDir() (string, error) {
	return dataDir()
}

// ---------------------------------------------------------------------------
// Load / Save
// ---------------------------------------------------------------------------

// Load reads the credential store from disk.
// Returns an empty store if the file doesn't exist or is invalid.
func Load() Store {
	path, err := filePath()
	if err != nil {
		return make(Store)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return make(Store)
	}

	var store Store
	if err := json.Unmarshal(data, &store); err != nil || store == nil {
		return make(Store)
	}
	return store
}

// Save writes the credential store to disk with 0600 permissions.
func Save(store Store) error {
	path, err := filePath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing auth file: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Get / Set / Remove
// ---------------------------------------------------------------------------

// Get returns the entry for a profile, or nil if not found.
func Get(profile string) *Info {
	return Load()[profile]
}

// SetAPIKey stores a subscription key with its optional region and
// endpoint (upsert).
func SetAPIKey(profile, key, region, endpoint string) error {
	store := Load()
	store[profile] = &Info{
		Type:     "api",
		Key:      strings.TrimSpace(key),
		Region:   strings.TrimSpace(region),
		Endpoint: strings.TrimSpace(endpoint),
	}
	return Save(store)
}

// Remove deletes credentials for a profile.
func Remove(profile string) error {
	store := Load()
	if _, ok := store[profile]; !ok {
		return nil
	}
	delete(store, profile)
	return Save(store)
}

// RemoveAll removes all stored credentials.
func RemoveAll() error {
	path, err := filePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing auth file: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Resolution
// ---------------------------------------------------------------------------

// ResolveKey returns the subscription key to use and where it came from
// ("flag", "env" or "store"). An empty key means none is configured.
func ResolveKey(flagValue, profile string) (key, source string) {
	if k := strings.TrimSpace(flagValue); k != "" {
		return k, "flag"
	}
	if k := strings.TrimSpace(os.Getenv(EnvSubscriptionKey)); k != "" {
		return k, "env"
	}
	if info := Get(profile); info != nil && info.IsAPI() && info.Key != "" {
		return info.Key, "store"
	}
	return "", ""
}

// ResolveRegion returns the first non-empty of the flag value, the
// RESXKIT_REGION environment variable, the config file value and the
// stored region.
func ResolveRegion(flagValue, configValue, profile string) string {
	for _, r := range []string{flagValue, os.Getenv(EnvRegion), configValue} {
		if r = strings.TrimSpace(r); r != "" {
			return r
		}
	}
	if info := Get(profile); info != nil {
		return info.Region
	}
	return ""
}

// ---------------------------------------------------------------------------
// Display helpers
// ---------------------------------------------------------------------------

// MaskKey returns a masked version of a key for display.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
