package main

import (
	"github.com/spf13/cobra"

	"db48x/internal/settings"
)

// resolveSettings builds the Settings a subcommand runs under: the
// factory defaults, overridden by --settings (a TOML file) if given,
// then by --base/--wordsize if the caller actually set them. Mirrors
// surge's own flag-precedence rule of "explicit flag beats config file
// beats built-in default".
func resolveSettings(cmd *cobra.Command) (settings.Settings, error) {
	root := cmd.Root().PersistentFlags()

	path, err := root.GetString("settings")
	if err != nil {
		return settings.Settings{}, err
	}
	s := settings.Default()
	if path != "" {
		s, err = settings.Load(path)
		if err != nil {
			return settings.Settings{}, err
		}
	}

	if root.Changed("base") {
		base, err := root.GetInt("base")
		if err != nil {
			return settings.Settings{}, err
		}
		s.Base = base
	}
	if root.Changed("wordsize") {
		wordSize, err := root.GetInt("wordsize")
		if err != nil {
			return settings.Settings{}, err
		}
		s.WordSize = wordSize
	}
	if err := s.Validate(); err != nil {
		return settings.Settings{}, err
	}
	return s, nil
}
