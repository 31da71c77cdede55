package cli

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestCheckBaseURL(t *testing.T) {
	tests := []struct {
		name       string
		baseURL    string
		wantStatus string
	}{
		{"valid http", "http://localhost:8010", "ok"},
		{"valid https", "https://astro.example.com", "ok"},
		{"bad scheme", "ftp://example.com", "fail"},
		{"no scheme", "localhost:8010", "fail"},
		{"no host", "http://", "fail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkBaseURL(tt.baseURL)
			if got.Status != tt.wantStatus {
				t.Errorf("checkBaseURL(%q) status = %q (%s), want %q", tt.baseURL, got.Status, got.Detail, tt.wantStatus)
			}
		})
	}
}

func TestCheckToken(t *testing.T) {
	t.Run("absent token is info", func(t *testing.T) {
		got := checkToken("")
		if got.Status != "info" {
			t.Errorf("status = %q, want info", got.Status)
		}
	})

	t.Run("opaque token is ok", func(t *testing.T) {
		got := checkToken("not-a-jwt")
		if got.Status != "ok" {
			t.Errorf("status = %q, want ok", got.Status)
		}
		if !strings.Contains(got.Detail, "opaque") {
			t.Errorf("detail = %q, want it to say opaque", got.Detail)
		}
	})

	t.Run("expired JWT fails", func(t *testing.T) {
		token := signedJWT(t, time.Now().Add(-time.Hour))
		got := checkToken(token)
		if got.Status != "fail" {
			t.Errorf("status = %q (%s), want fail", got.Status, got.Detail)
		}
		if !strings.Contains(got.Detail, "expired") {
			t.Errorf("detail = %q, want it to say expired", got.Detail)
		}
	})

	t.Run("valid JWT is ok", func(t *testing.T) {
		token := signedJWT(t, time.Now().Add(time.Hour))
		got := checkToken(token)
		if got.Status != "ok" {
			t.Errorf("status = %q (%s), want ok", got.Status, got.Detail)
		}
		if !strings.Contains(got.Detail, "valid until") {
			t.Errorf("detail = %q, want the expiry in it", got.Detail)
		}
	})
}

// signedJWT builds a token with just an exp claim. The doctor never verifies
// the signature, so any key works.
func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestCheckDotEnv(t *testing.T) {
	// Run from a temp directory without a .env file.
	t.Chdir(t.TempDir())

	got := checkDotEnv()
	if got.Status != "info" {
		t.Errorf("status = %q, want info without a .env", got.Status)
	}
}

func TestCheckConfigFile_RejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ASTROCTL_LOG_LEVEL", "")

	if err := os.WriteFile(".astroctlrc.yaml", []byte("logLevel: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := checkConfigFile()
	if got.Status != "fail" {
		t.Errorf("status = %q (%s), want fail for a bad logLevel", got.Status, got.Detail)
	}
	if !strings.Contains(got.Detail, "logLevel") {
		t.Errorf("detail = %q, want it to name logLevel", got.Detail)
	}
}
