package driving

import "github.com/custodia-labs/biasctl/internal/core/domain"

// SettingsService resolves client configuration.
type SettingsService interface {
	// Resolve returns the effective settings: environment, then config
	// file, then defaults.
	Resolve() domain.ClientSettings

	// Get returns the raw config file value of a key.
	Get(key string) (any, bool)

	// Set validates and persists a config file value.
	Set(key, value string) error

	// Keys returns every supported key.
	Keys() []string

	// Path returns the config file path.
	Path() string
}
