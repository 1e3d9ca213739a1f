package envcheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mwiater/ragnote/internal/docindex"
	"github.com/mwiater/ragnote/internal/logging"
)

// ErrClientUnavailable is returned by a ClientFactory that cannot provide a
// document-index client.
var ErrClientUnavailable = errors.New("document index client unavailable")

// NamespaceLister is the one call the connectivity check needs.
type NamespaceLister interface {
	ListNamespaces(ctx context.Context) ([]string, error)
}

// ClientFactory builds a client for the derived search API URL.
type ClientFactory func(searchURL, token string) (NamespaceLister, error)

// DocIndexFactory returns a ClientFactory backed by the docindex HTTP client.
// debug enables payload logging on the client.
func DocIndexFactory(timeout time.Duration, debug bool) ClientFactory {
	return func(searchURL, token string) (NamespaceLister, error) {
		return docindex.New(searchURL, token, timeout, debug), nil
	}
}

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	stepColor = color.New(color.Bold)
)

func pass(w io.Writer, format string, args ...any) {
	okColor.Fprintf(w, "   ✅ "+format+"\n", args...)
}

func fail(w io.Writer, format string, args ...any) {
	failColor.Fprintf(w, "   ❌ "+format+"\n", args...)
}

func step(w io.Writer, title string) {
	stepColor.Fprintln(w, title)
}

// CheckRequiredVariables reports each required variable and returns true if
// any is missing or still set to its sample placeholder.
func CheckRequiredVariables(w io.Writer, env Environment, spec EnvSpec, defaults map[string]string) bool {
	step(w, "1️⃣  Checking required environment variables:")

	hasErrors := false
	for _, name := range spec.Required {
		value := Getenv(env, name)
		if strings.TrimSpace(value) == "" {
			fail(w, "%s: NOT SET", name)
			hasErrors = true
			continue
		}

		display := MaskSensitiveValue(name, value)
		if spec.needsCustomization(name) {
			if placeholder, ok := defaults[name]; ok && value == placeholder {
				fail(w, "%s: %s - Using default value! Please add a unique suffix (e.g., %s-yourname)", name, display, placeholder)
				hasErrors = true
				continue
			}
		}
		pass(w, "%s: %s", name, display)
	}

	logging.LogEvent("[ENV] required variables checked: errors=%v", hasErrors)
	return hasErrors
}

// ValidateAPIURL returns true when raw is empty or not an absolute URL with a
// scheme and host.
func ValidateAPIURL(w io.Writer, raw string) bool {
	fmt.Fprintln(w)
	step(w, "2️⃣  Validating URL format:")

	if raw == "" {
		fail(w, "%s: NOT SET", VarAPIBaseURL)
		return true
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		fail(w, "%s: Error parsing URL - %v", VarAPIBaseURL, err)
		return true
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		fail(w, "%s: Invalid URL format", VarAPIBaseURL)
		return true
	}

	pass(w, "%s: Valid format", VarAPIBaseURL)
	return false
}

// CheckAPIConnection lists namespaces as a connectivity probe and returns true
// on any failure. A missing URL or token skips the probe without an error.
func CheckAPIConnection(ctx context.Context, w io.Writer, factory ClientFactory, baseURL, token string) bool {
	fmt.Fprintln(w)
	step(w, "3️⃣  Testing PhariaAI API access:")

	if baseURL == "" || token == "" {
		fail(w, " Skipping API test - Missing API URL or token")
		return false
	}

	searchURL := docindex.SearchURL(baseURL)
	if factory == nil {
		factory = unavailableFactory
	}
	client, err := factory(searchURL, token)
	if err != nil {
		if errors.Is(err, ErrClientUnavailable) {
			fail(w, "document index client not available - %v", err)
		} else {
			fail(w, "Unexpected error: %v", err)
		}
		return true
	}

	if _, err := client.ListNamespaces(ctx); err != nil {
		logging.LogEvent("[ENV] connectivity probe failed: %v", err)
		if docindex.IsAuthError(err) {
			fail(w, "Authentication failed - Invalid token")
		} else {
			fail(w, "API connection failed: %v", err)
			fail(w, "Attempted URL: %s", searchURL)
		}
		return true
	}

	pass(w, "API connection successful")
	return false
}

func unavailableFactory(string, string) (NamespaceLister, error) {
	return nil, ErrClientUnavailable
}
