// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestConfigFallbacks(t *testing.T) {
	var cfg Config

	if cfg.RequestTimeout() != 600*time.Second {
		t.Fatalf("expected default request timeout of 600s, got %v", cfg.RequestTimeout())
	}
	if cfg.LogFilePath() != "ragnote.log" {
		t.Fatalf("expected default log file, got %q", cfg.LogFilePath())
	}
	if cfg.ChatModelName() != DefaultChatModel {
		t.Fatalf("expected default model, got %q", cfg.ChatModelName())
	}
	if cfg.MaxTokenLimit() != 512 {
		t.Fatalf("expected default max tokens, got %d", cfg.MaxTokenLimit())
	}
	n, s := cfg.SearchLimits()
	if n != 3 || s != 0 {
		t.Fatalf("unexpected search limits %d %v", n, s)
	}

	cfg = Config{TimeoutSeconds: 5, LogFile: "x.log", ChatModel: "m", MaxTokens: 10, SearchMaxResults: 7, SearchMinScore: -1}
	if cfg.RequestTimeout() != 5*time.Second || cfg.LogFilePath() != "x.log" || cfg.ChatModelName() != "m" || cfg.MaxTokenLimit() != 10 {
		t.Fatalf("explicit values not honored: %+v", cfg)
	}
	n, s = cfg.SearchLimits()
	if n != 7 || s != DefaultSearchMinScore {
		t.Fatalf("unexpected search limits %d %v", n, s)
	}
}

func TestDefaultsCoverConfigKeys(t *testing.T) {
	defaults := Defaults()
	for _, key := range []string{"debug", "logFile", "timeout", "chatModel", "maxTokens", "searchMaxResults", "searchMinScore"} {
		if _, ok := defaults[key]; !ok {
			t.Fatalf("missing default for %s", key)
		}
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	ShowConfig(&buf, "", nil)
	out := buf.String()
	for _, want := range []string{"No config file loaded (using defaults).", "Current configuration:", "Request Timeout:", "10m0s", "llama-3.1-8b-instruct"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	ShowConfig(&buf, "config/config.json", &Config{Debug: true, TimeoutSeconds: 30})
	out = buf.String()
	if !strings.Contains(out, "Config file: config/config.json") || !strings.Contains(out, "30s") || !strings.Contains(out, "true") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestDumpConfig(t *testing.T) {
	var buf bytes.Buffer
	DumpConfig(&buf, &Config{ChatModel: "dump-model"})
	if !strings.Contains(buf.String(), "dump-model") {
		t.Fatalf("expected dump to include model:\n%s", buf.String())
	}
}
