// Command db48x is the calculator's command-line front end: a one-shot
// "eval" subcommand, a "parse" subcommand for inspecting the object
// stream a line of input produces, an interactive "repl", a "batch"
// subcommand that evaluates several files concurrently, and "version". Grounded on vovakirdan-surge/cmd/surge/main.go's cobra
// rootCmd shape — persistent flags read by every subcommand via
// cmd.Root().PersistentFlags(), a single isTerminal helper deciding
// color/TUI fallbacks, os.Exit(1) on a failed Execute.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"db48x/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "db48x",
	Short: "A DB48X-style RPL calculator",
	Long:  `db48x evaluates RPL programs against a stack-based calculator runtime: numbers, symbols, algebraic expressions, and named variables, in a directory tree.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("base", 10, "display base: 2, 8, 10, or 16")
	rootCmd.PersistentFlags().Int("wordsize", 64, "based-number word size in bits")
	rootCmd.PersistentFlags().String("settings", "", "path to a TOML settings file (explicit --base/--wordsize flags override it)")
	rootCmd.PersistentFlags().String("ui", "auto", "use the full-screen stack view (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to an interactive terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
