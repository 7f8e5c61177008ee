package cmd

import (
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/pagekit/internal/config"
	"github.com/atomicstack/pagekit/internal/logging/events"
)

func traceStartup(cfg config.Config) {
	events.App.Start(startupPayload(cfg))
}

// startupPayload bundles the resolved configuration and process context
// for the startup trace.
func startupPayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"file":   cfg.File,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["terminal"] = probeTerminal()
	return payload
}

type terminalInfo struct {
	// Columns and Rows come from the first descriptor that reports a size.
	Columns int           `json:"columns,omitempty"`
	Rows    int           `json:"rows,omitempty"`
	Source  string        `json:"source,omitempty"`
	Probes  []streamProbe `json:"probes"`
}

type streamProbe struct {
	Stream     string `json:"stream"`
	IsTerminal bool   `json:"is_terminal"`
	Columns    int    `json:"columns,omitempty"`
	Rows       int    `json:"rows,omitempty"`
	Error      string `json:"error,omitempty"`
}

// probeTerminal reports which standard streams are terminals and their size.
func probeTerminal() terminalInfo {
	streams := []struct {
		name string
		file *os.File
	}{
		{"stdin", os.Stdin},
		{"stdout", os.Stdout},
		{"stderr", os.Stderr},
	}
	info := terminalInfo{Probes: make([]streamProbe, 0, len(streams))}
	for _, s := range streams {
		probe := streamProbe{Stream: s.name}
		fd := int(s.file.Fd())
		if fd >= 0 && term.IsTerminal(fd) {
			probe.IsTerminal = true
			cols, rows, err := term.GetSize(fd)
			switch {
			case err != nil:
				probe.Error = err.Error()
			default:
				probe.Columns, probe.Rows = cols, rows
				if info.Source == "" {
					info.Source, info.Columns, info.Rows = s.name, cols, rows
				}
			}
		}
		info.Probes = append(info.Probes, probe)
	}
	return info
}
