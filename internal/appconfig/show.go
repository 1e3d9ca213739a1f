package appconfig

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/k0kubun/pp"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
)

// ShowConfig prints the current configuration summary. A nil cfg prints the
// defaults.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &Config{}
	}
	maxResults, minScore := cfg.SearchLimits()

	fmt.Fprintln(out, headerStyle.Render("Current configuration:"))
	rows := []struct {
		key   string
		value any
	}{
		{"Debug", cfg.Debug},
		{"Log File", cfg.LogFilePath()},
		{"Request Timeout", cfg.RequestTimeout()},
		{"Chat Model", cfg.ChatModelName()},
		{"Max Tokens", cfg.MaxTokenLimit()},
		{"Search Max Results", maxResults},
		{"Search Min Score", minScore},
	}
	for _, row := range rows {
		key := keyStyle.Render(fmt.Sprintf("%-19s", row.key+":"))
		fmt.Fprintf(out, "  %s %s\n", key, valueStyle.Render(fmt.Sprint(row.value)))
	}
}

// DumpConfig pretty-prints the raw struct.
func DumpConfig(out io.Writer, cfg *Config) {
	pp.ColoringEnabled = false
	pp.Fprintln(out, cfg)
}
