package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultAPIBaseURL = "https://api.twitter.com"

// Credentials holds the Twitter/X API keys. All five are required; the
// read-only endpoints use the bearer token, the rest are kept so the same
// file works for OAuth 1.0a tooling.
type Credentials struct {
	ConsumerKey    string `json:"consumer_key"`
	ConsumerSecret string `json:"consumer_secret"`
	BearerToken    string `json:"bearer_token"`
	AccessToken    string `json:"access_token"`
	AccessSecret   string `json:"access_token_secret"`
}

// Config is the runtime configuration handed to the API client at startup.
type Config struct {
	Credentials Credentials
	APIBaseURL  string
}

// Dir returns the app config directory, ~/.birdview by default.
// BIRDVIEW_CONFIG_DIR overrides it (used by tests).
func Dir() (string, error) {
	if dir := os.Getenv("BIRDVIEW_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".birdview"), nil
}

func CredentialsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.json"), nil
}

func BookmarksPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bookmarks.json"), nil
}

// Load reads credentials from the config file, applies BIRDVIEW_* environment
// overrides, and validates that every key is present. A missing or incomplete
// setup fails with instructions rather than partially proceeding.
func Load() (Config, error) {
	path, err := CredentialsPath()
	if err != nil {
		return Config{}, err
	}

	var creds Credentials
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &creds); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Fine as long as the environment supplies everything.
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnvOverrides(&creds)

	cfg := Config{
		Credentials: creds,
		APIBaseURL:  os.Getenv("BIRDVIEW_API_BASE_URL"),
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w\n\n%s", err, setupInstructions(path))
	}
	return cfg, nil
}

func applyEnvOverrides(creds *Credentials) {
	overrides := []struct {
		env   string
		field *string
	}{
		{"BIRDVIEW_CONSUMER_KEY", &creds.ConsumerKey},
		{"BIRDVIEW_CONSUMER_SECRET", &creds.ConsumerSecret},
		{"BIRDVIEW_BEARER_TOKEN", &creds.BearerToken},
		{"BIRDVIEW_ACCESS_TOKEN", &creds.AccessToken},
		{"BIRDVIEW_ACCESS_TOKEN_SECRET", &creds.AccessSecret},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.field = v
		}
	}
}

func (c Config) Validate() error {
	missing := c.Credentials.missingKeys()
	if len(missing) > 0 {
		return fmt.Errorf("missing credentials: %s", strings.Join(missing, ", "))
	}
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if strings.HasSuffix(c.APIBaseURL, "/") {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	return nil
}

func (c Credentials) missingKeys() []string {
	var missing []string
	if c.ConsumerKey == "" {
		missing = append(missing, "consumer_key")
	}
	if c.ConsumerSecret == "" {
		missing = append(missing, "consumer_secret")
	}
	if c.BearerToken == "" {
		missing = append(missing, "bearer_token")
	}
	if c.AccessToken == "" {
		missing = append(missing, "access_token")
	}
	if c.AccessSecret == "" {
		missing = append(missing, "access_token_secret")
	}
	return missing
}

// Save writes the credentials file with owner-only permissions and
// returns the path it wrote to.
func Save(creds Credentials) (string, error) {
	path, err := CredentialsPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func setupInstructions(path string) string {
	return fmt.Sprintf(`Run 'birdview init' to set up, or create the file manually:

  mkdir -p %s
  cat > %s << 'EOF'
  {
    "consumer_key": "your_consumer_key",
    "consumer_secret": "your_consumer_secret",
    "bearer_token": "your_bearer_token",
    "access_token": "your_access_token",
    "access_token_secret": "your_access_token_secret"
  }
  EOF`, filepath.Dir(path), path)
}
