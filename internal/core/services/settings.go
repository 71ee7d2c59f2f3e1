package services

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// envPrefix namespaces the per-key environment overrides, e.g.
// BIASCTL_HISTORY_CONCURRENCY for history.concurrency.
const envPrefix = "BIASCTL_"

type valueKind int

const (
	kindURL valueKind = iota
	kindPositiveInt
	kindNonNegativeFloat
)

// settingKeys lists the supported keys in display order.
var settingKeys = []struct {
	key  string
	kind valueKind
}{
	{domain.KeyAPIURL, kindURL},
	{domain.KeyAPITimeoutSeconds, kindPositiveInt},
	{domain.KeyAPIRequestsPerSecond, kindNonNegativeFloat},
	{domain.KeyHistoryConcurrency, kindPositiveInt},
	{domain.KeyHistoryLimit, kindPositiveInt},
	{domain.KeySearchTopK, kindPositiveInt},
	{domain.KeyRAGTopK, kindPositiveInt},
}

// SettingsService resolves client settings from the environment,
// the config file and the defaults, in that order.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service reading the process environment.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// Resolve returns the effective settings. Invalid values fall back to the
// next source.
func (s *SettingsService) Resolve() domain.ClientSettings {
	defaults := domain.DefaultClientSettings()

	return domain.ClientSettings{
		APIURL:             s.apiURL(defaults.APIURL),
		Timeout:            time.Duration(s.positiveInt(domain.KeyAPITimeoutSeconds, int(defaults.Timeout/time.Second))) * time.Second,
		RequestsPerSecond:  s.rate(defaults.RequestsPerSecond),
		HistoryConcurrency: s.positiveInt(domain.KeyHistoryConcurrency, defaults.HistoryConcurrency),
		HistoryLimit:       s.positiveInt(domain.KeyHistoryLimit, defaults.HistoryLimit),
		SearchTopK:         s.positiveInt(domain.KeySearchTopK, defaults.SearchTopK),
		RAGTopK:            s.positiveInt(domain.KeyRAGTopK, defaults.RAGTopK),
	}
}

// Get returns the raw config file value of a key.
func (s *SettingsService) Get(key string) (any, bool) {
	return s.configStore.Get(key)
}

// Set validates value for key and writes it to the config file.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := keyKind(key)
	if !ok {
		return fmt.Errorf("%w: unknown key %q (known: %s)", domain.ErrInvalidInput, key, strings.Join(s.Keys(), ", "))
	}

	parsed, err := parseValue(kind, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every supported key.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	for i, k := range settingKeys {
		keys[i] = k.key
	}
	return keys
}

// Path returns the config file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	return envPrefix + strings.ToUpper(strings.NewReplacer(".", "_").Replace(key))
}

func (s *SettingsService) apiURL(def string) string {
	for _, name := range []string{domain.EnvAPIURL, domain.EnvLegacyAPIURL} {
		if v, ok := s.lookupEnv(name); ok {
			if u, err := parseValue(kindURL, strings.TrimSpace(v)); err == nil {
				return u.(string)
			}
		}
	}
	if v, err := parseValue(kindURL, s.configStore.GetString(domain.KeyAPIURL)); err == nil {
		return v.(string)
	}
	return def
}

func (s *SettingsService) positiveInt(key string, def int) int {
	if v, ok := s.lookupEnv(EnvVar(key)); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
	}
	if n := s.configStore.GetInt(key); n > 0 {
		return n
	}
	return def
}

func (s *SettingsService) rate(def float64) float64 {
	if v, ok := s.lookupEnv(EnvVar(domain.KeyAPIRequestsPerSecond)); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && f >= 0 {
			return f
		}
	}
	if _, ok := s.configStore.Get(domain.KeyAPIRequestsPerSecond); ok {
		if f := s.configStore.GetFloat(domain.KeyAPIRequestsPerSecond); f >= 0 {
			return f
		}
	}
	return def
}

func keyKind(key string) (valueKind, bool) {
	for _, k := range settingKeys {
		if k.key == key {
			return k.kind, true
		}
	}
	return 0, false
}

func parseValue(kind valueKind, value string) (any, error) {
	switch kind {
	case kindURL:
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("%q is not an http(s) URL", value)
		}
		return strings.TrimRight(value, "/"), nil
	case kindPositiveInt:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%q is not a positive integer", value)
		}
		return n, nil
	case kindNonNegativeFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("%q is not a non-negative number", value)
		}
		return f, nil
	}
	return nil, fmt.Errorf("unsupported value kind %d", kind)
}
