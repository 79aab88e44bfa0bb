// Package config handles global Shrike configuration.
//
// Endpoints and rendering options live in config.toml; credentials come
// from the environment (optionally via a .env file) so they never end up
// in a file that gets synced around with the notes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/shrikehq/shrike/internal/jira"
	"github.com/shrikehq/shrike/internal/props"
)

// Credential environment variables. The "_2" variants select the second
// organization.
const (
	EnvToken    = "SHRIKE_JIRA_TOKEN"
	EnvAccount  = "SHRIKE_JIRA_ACCOUNT"
	EnvToken2   = "SHRIKE_JIRA_TOKEN_2"
	EnvAccount2 = "SHRIKE_JIRA_ACCOUNT_2"
)

// Config represents the global Shrike configuration.
type Config struct {
	// Vault is the path to the notes directory.
	Vault string `toml:"vault"`

	// Dialect selects the reference syntax: "wiki" or "markdown".
	Dialect string `toml:"dialect"`

	// InlineUpdates controls whether keys are spliced into the note text.
	InlineUpdates bool `toml:"inline_updates"`

	// Annotate controls whether a property block is maintained.
	Annotate bool `toml:"annotate"`

	// PropertySeparator is the token between a property name and value.
	PropertySeparator string `toml:"property_separator"`

	// Properties toggles individual annotated fields.
	Properties PropertiesConfig `toml:"properties"`

	// Orgs holds the two configurable target organizations.
	Orgs OrgsConfig `toml:"orgs"`
}

// PropertiesConfig toggles which issue fields are annotated.
type PropertiesConfig struct {
	Summary    bool `toml:"summary"`
	Status     bool `toml:"status"`
	Priority   bool `toml:"priority"`
	Assignee   bool `toml:"assignee"`
	Reporter   bool `toml:"reporter"`
	FixVersion bool `toml:"fix_version"`
	Resolution bool `toml:"resolution"`
}

// OrgsConfig holds the endpoint settings for both organizations.
type OrgsConfig struct {
	Primary   OrgConfig `toml:"primary"`
	Secondary OrgConfig `toml:"secondary"`
}

// OrgConfig is the non-secret part of one organization's context.
type OrgConfig struct {
	// BaseURL is the Jira site base, e.g. "https://acme.atlassian.net".
	BaseURL string `toml:"base_url"`

	// APIVersion selects the REST API version path segment (default "2").
	APIVersion string `toml:"api_version"`

	// AuthType is "basic" (account:token) or "bearer".
	AuthType string `toml:"auth_type"`
}

// Defaults returns the built-in configuration values.
func Defaults() *Config {
	return &Config{
		Dialect:           "markdown",
		InlineUpdates:     true,
		Annotate:          true,
		PropertySeparator: props.DefaultSeparator,
		Properties: PropertiesConfig{
			Summary:  true,
			Status:   true,
			Assignee: true,
		},
	}
}

// PropertyOptions converts the toggles to the props layer's option set.
func (c *Config) PropertyOptions() props.Options {
	return props.Options{
		Summary:    c.Properties.Summary,
		Status:     c.Properties.Status,
		Priority:   c.Properties.Priority,
		Assignee:   c.Properties.Assignee,
		Reporter:   c.Properties.Reporter,
		FixVersion: c.Properties.FixVersion,
		Resolution: c.Properties.Resolution,
	}
}

// Org assembles the full org context (endpoint settings plus environment
// credentials) for the selected organization. A vault-local .env is loaded
// first so per-vault credentials work.
func (c *Config) Org(second bool) jira.Org {
	if c.Vault != "" {
		_ = godotenv.Load(filepath.Join(c.Vault, ".env"))
	}
	_ = godotenv.Load()

	oc := c.Orgs.Primary
	token, account := os.Getenv(EnvToken), os.Getenv(EnvAccount)
	if second {
		oc = c.Orgs.Secondary
		token, account = os.Getenv(EnvToken2), os.Getenv(EnvAccount2)
	}

	return jira.Org{
		BaseURL:    oc.BaseURL,
		APIVersion: oc.APIVersion,
		AuthType:   oc.AuthType,
		Account:    account,
		Token:      token,
	}
}

// Load loads the configuration from the default location. Returns defaults
// if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Defaults(), nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path, applied on top of
// the defaults.
func LoadFrom(path string) (*Config, error) {
	config := Defaults()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, nil
}

// ResolveConfigPath resolves the effective config path from an optional
// override.
func ResolveConfigPath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/shrike/config.toml first (XDG style), then falls back
// to the OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "shrike", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "shrike", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// CreateDefault creates a default config file if it doesn't exist.
func CreateDefault() (string, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil // Already exists
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# Shrike Configuration

# Path to your notes vault
# vault = "/path/to/your/notes"

# Reference syntax: "markdown" or "wiki"
dialect = "markdown"

# Splice rendered references into the note text
inline_updates = true

# Maintain a property block at the end of the note
annotate = true

# Separator between property names and values
property_separator = "::"

[properties]
summary = true
status = true
assignee = true
priority = false
reporter = false
fix_version = false
resolution = false

[orgs.primary]
# base_url = "https://acme.atlassian.net"
api_version = "2"
auth_type = "basic"

[orgs.secondary]
# base_url = "https://other.atlassian.net"
api_version = "2"
auth_type = "basic"

# Credentials are read from the environment (or a .env next to the vault):
#   SHRIKE_JIRA_ACCOUNT / SHRIKE_JIRA_TOKEN         primary org
#   SHRIKE_JIRA_ACCOUNT_2 / SHRIKE_JIRA_TOKEN_2     secondary org
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
