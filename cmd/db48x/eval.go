package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"db48x/internal/decimal"
	"db48x/internal/diagnostic"
	"db48x/internal/parser"
	"db48x/internal/rplvm"
)

var evalCmd = &cobra.Command{
	Use:   "eval <program>...",
	Short: "Parse and run one RPL program, printing the resulting stack",
	Long:  `eval parses its arguments as a single line of RPL source, runs it against a fresh evaluator, and prints the stack top-down, one value per line.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	src := strings.Join(args, " ")
	p := parser.New(src, s.Base, decimal.Width64)
	parsed, err := p.ParseProgram()
	if err != nil {
		return reportDiagnostic(cmd, err)
	}
	v, err := rplvm.FromParser(parsed)
	if err != nil {
		return reportDiagnostic(cmd, err)
	}

	ev := rplvm.NewEvaluator(1<<24, s)
	if err := ev.EvalTopLevel(v); err != nil {
		return reportDiagnostic(cmd, err)
	}

	depth := ev.Stack.Depth()
	out := cmd.OutOrStdout()
	for n := depth; n >= 1; n-- {
		top, err := ev.Stack.Top(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d: %s\n", n, renderValue(top, s))
	}
	if depth == 0 {
		quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
		if !quiet {
			fmt.Fprintln(out, "(empty stack)")
		}
	}
	return nil
}

// reportDiagnostic prints a Diagnostic's closed error-kind name and
// message to stderr, colored red when the resolved --color mode calls
// for it, and returns it unwrapped so cobra's own error path still sees
// it (RunE's returned error surfaces the exit code, not a second
// message).
func reportDiagnostic(cmd *cobra.Command, err error) error {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	msg := err.Error()
	if d, ok := err.(*diagnostic.Diagnostic); ok {
		msg = fmt.Sprintf("%s: %s", d.Kind(), d.Message)
	}
	if useColor(colorFlag, os.Stderr) {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, msg)
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
	return err
}
