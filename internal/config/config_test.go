package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func setConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BIRDVIEW_CONFIG_DIR", dir)
	t.Setenv("BIRDVIEW_CONSUMER_KEY", "")
	t.Setenv("BIRDVIEW_CONSUMER_SECRET", "")
	t.Setenv("BIRDVIEW_BEARER_TOKEN", "")
	t.Setenv("BIRDVIEW_ACCESS_TOKEN", "")
	t.Setenv("BIRDVIEW_ACCESS_TOKEN_SECRET", "")
	t.Setenv("BIRDVIEW_API_BASE_URL", "")
	return dir
}

func sampleCreds() Credentials {
	return Credentials{
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		BearerToken:    "bt",
		AccessToken:    "at",
		AccessSecret:   "as",
	}
}

func TestLoad_MissingFileFailsWithSetupInstructions(t *testing.T) {
	setConfigDir(t)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
	if got := err.Error(); !strings.Contains(got, "birdview init") {
		t.Fatalf("expected setup instructions, got: %s", got)
	}
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	setConfigDir(t)

	path, err := Save(sampleCreds())
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Credentials.BearerToken != "bt" {
		t.Fatalf("unexpected bearer token: %s", cfg.Credentials.BearerToken)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("unexpected base URL: %s", cfg.APIBaseURL)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat credentials file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Fatalf("expected 0600 permissions, got %o", perm)
		}
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	setConfigDir(t)

	if _, err := Save(sampleCreds()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	t.Setenv("BIRDVIEW_BEARER_TOKEN", "env-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Credentials.BearerToken != "env-token" {
		t.Fatalf("expected env override, got %s", cfg.Credentials.BearerToken)
	}
	if cfg.Credentials.ConsumerKey != "ck" {
		t.Fatalf("file value should survive, got %s", cfg.Credentials.ConsumerKey)
	}
}

func TestLoad_EnvOnlySetup(t *testing.T) {
	setConfigDir(t)
	t.Setenv("BIRDVIEW_CONSUMER_KEY", "ck")
	t.Setenv("BIRDVIEW_CONSUMER_SECRET", "cs")
	t.Setenv("BIRDVIEW_BEARER_TOKEN", "bt")
	t.Setenv("BIRDVIEW_ACCESS_TOKEN", "at")
	t.Setenv("BIRDVIEW_ACCESS_TOKEN_SECRET", "as")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Credentials.AccessSecret != "as" {
		t.Fatalf("unexpected access secret: %s", cfg.Credentials.AccessSecret)
	}
}

func TestValidate_PartialCredentialsNameMissingKeys(t *testing.T) {
	cfg := Config{
		Credentials: Credentials{ConsumerKey: "ck", BearerToken: "bt"},
		APIBaseURL:  defaultAPIBaseURL,
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := err.Error(); !strings.Contains(got, "consumer_secret") || !strings.Contains(got, "access_token") {
		t.Fatalf("expected missing key names, got: %s", got)
	}
}

func TestValidate_APIBaseURLTrailingSlash(t *testing.T) {
	cfg := Config{Credentials: sampleCreds(), APIBaseURL: "https://api.twitter.com/"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for trailing slash")
	}
}

func TestBookmarksPath_UsesConfigDir(t *testing.T) {
	dir := setConfigDir(t)

	path, err := BookmarksPath()
	if err != nil {
		t.Fatalf("BookmarksPath returned error: %v", err)
	}
	if path != filepath.Join(dir, "bookmarks.json") {
		t.Fatalf("unexpected path: %s", path)
	}
}
