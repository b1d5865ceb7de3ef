package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"db48x/internal/version"
)

// versionInfo is the build fingerprint read from internal/version's
// link-time variables, trimmed and ready to print.
type versionInfo struct {
	Version    string
	GitCommit  string
	GitMessage string
	BuildDate  string
}

// versionField is one optional line of build trivia: a pretty label, a
// JSON key, the accessor into versionInfo, and the flag that enables
// it. Driving both renderers off one table keeps --hash/--message/
// --date in sync without three parallel if-chains.
type versionField struct {
	label string
	json  string
	get   func(versionInfo) string
	shown func(versionFlags) bool
}

var versionFields = []versionField{
	{"commit", "git_commit", func(i versionInfo) string { return i.GitCommit }, func(f versionFlags) bool { return f.hash }},
	{"message", "git_message", func(i versionInfo) string { return i.GitMessage }, func(f versionFlags) bool { return f.message }},
	{"built", "build_date", func(i versionInfo) string { return i.BuildDate }, func(f versionFlags) bool { return f.date }},
}

type versionFlags struct {
	hash    bool
	message bool
	date    bool
}

func (f versionFlags) any() bool { return f.hash || f.message || f.date }

const versionTagline = "a stack never lies"

var (
	versionFormat      string
	versionShowHash    bool
	versionShowMessage bool
	versionShowDate    bool
	versionShowFull    bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include git commit hash")
	versionCmd.Flags().BoolVar(&versionShowMessage, "message", false, "include git commit message")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "include build timestamp")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show db48x build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(versionFormat)
		if format != "pretty" && format != "json" {
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
		flags := versionFlags{
			hash:    versionShowHash || versionShowFull,
			message: versionShowMessage || versionShowFull,
			date:    versionShowDate || versionShowFull,
		}
		info := collectVersionInfo()
		if format == "json" {
			return renderVersionJSON(cmd.OutOrStdout(), info, flags)
		}
		renderVersionPretty(cmd.OutOrStdout(), info, flags)
		return nil
	},
}

func collectVersionInfo() versionInfo {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	return versionInfo{
		Version:    v,
		GitCommit:  strings.TrimSpace(version.GitCommit),
		GitMessage: strings.TrimSpace(version.GitMessage),
		BuildDate:  strings.TrimSpace(version.BuildDate),
	}
}

func renderVersionPretty(out io.Writer, info versionInfo, flags versionFlags) {
	fmt.Fprintf(out, "db48x %s - %s\n", info.Version, versionTagline)
	for _, f := range versionFields {
		if f.shown(flags) {
			fmt.Fprintf(out, "%s: %s\n", f.label, valueOrUnknown(f.get(info)))
		}
	}
	if !flags.any() {
		fmt.Fprintln(out, "set --hash, --message, --date, or --full for more build trivia")
	}
}

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	Tagline    string `json:"tagline"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

func renderVersionJSON(out io.Writer, info versionInfo, flags versionFlags) error {
	payload := versionPayload{Tool: "db48x", Version: info.Version, Tagline: versionTagline}
	for _, f := range versionFields {
		if !f.shown(flags) {
			continue
		}
		switch f.json {
		case "git_commit":
			payload.GitCommit = valueOrUnknown(f.get(info))
		case "git_message":
			payload.GitMessage = valueOrUnknown(f.get(info))
		case "build_date":
			payload.BuildDate = valueOrUnknown(f.get(info))
		}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
