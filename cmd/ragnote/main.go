// cmd/ragnote/main.go
package main

import (
	cmd "github.com/mwiater/ragnote/internal/cli"
)

// Build-time variables injected with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
)

// main starts the ragnote CLI by delegating to the cobra root command.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
