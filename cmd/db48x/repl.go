package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"db48x/internal/decimal"
	"db48x/internal/parser"
	"db48x/internal/persist"
	"db48x/internal/rplvm"
	"db48x/internal/settings"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run an interactive read-eval-print loop",
	Long:  `repl reads one line of RPL source at a time, evaluates it against a persistent evaluator, and prints the resulting stack. Lines starting with "." are session commands (.undo, .save, .load, .quit).`,
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	replCmd.Flags().String("load", "", "load a saved stack image before starting")
}

func runRepl(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Root().PersistentFlags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	ev := rplvm.NewEvaluator(1<<24, s)
	if loadPath, _ := cmd.Flags().GetString("load"); loadPath != "" {
		if err := loadStackImage(ev, loadPath); err != nil {
			return err
		}
	}

	if shouldUseTUI(mode) {
		return runReplTUI(ev, s)
	}
	return runReplPlain(cmd, ev, s)
}

// runReplPlain is the line-oriented fallback used when stdin/stdout is
// not a terminal (piped input, CI, "--ui off") — the same tier surge's
// own commands fall back to when isTerminal reports false.
func runReplPlain(cmd *cobra.Command, ev *rplvm.Evaluator, s settings.Settings) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(os.Stdin)
	interactive := isTerminal(os.Stdin)
	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == ".quit" || line == ".exit" {
			return nil
		}
		if handled, err := runSessionCommand(ev, out, line); handled {
			if err != nil {
				reportDiagnostic(cmd, err)
			}
			continue
		}
		if err := evalLine(ev, s, line); err != nil {
			reportDiagnostic(cmd, err)
			continue
		}
		printStackTop(out, ev, s)
	}
}

// runSessionCommand handles the "." commands a plain or TUI session
// both understand; the TUI's own Update loop calls this too so both
// front ends share one command set.
func runSessionCommand(ev *rplvm.Evaluator, out io.Writer, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], ".") {
		return false, nil
	}
	switch fields[0] {
	case ".undo":
		return true, ev.Undo()
	case ".save":
		if len(fields) != 2 {
			return true, fmt.Errorf("usage: .save <path>")
		}
		return true, saveStackImage(ev, fields[1])
	case ".load":
		if len(fields) != 2 {
			return true, fmt.Errorf("usage: .load <path>")
		}
		return true, loadStackImage(ev, fields[1])
	case ".depth":
		fmt.Fprintf(out, "%d\n", ev.Stack.Depth())
		return true, nil
	default:
		return true, fmt.Errorf("unknown session command: %s", fields[0])
	}
}

func evalLine(ev *rplvm.Evaluator, s settings.Settings, line string) error {
	p := parser.New(line, s.Base, decimal.Width64)
	parsed, err := p.ParseProgram()
	if err != nil {
		return err
	}
	v, err := rplvm.FromParser(parsed)
	if err != nil {
		return err
	}
	return ev.EvalTopLevel(v)
}

func printStackTop(out io.Writer, ev *rplvm.Evaluator, s settings.Settings) {
	depth := ev.Stack.Depth()
	for n := depth; n >= 1; n-- {
		top, err := ev.Stack.Top(n)
		if err != nil {
			return
		}
		fmt.Fprintf(out, "%d: %s\n", n, renderValue(top, s))
	}
}

// saveStackImage persists the value stack (bottom to top) and the root
// directory's bindings as a single content-hashed blob, per
// internal/persist's "heap bytes plus named root offset lists"
// contract: each stack slot and each global binding is encoded as its
// own self-describing object and appended to one shared buffer, with
// Roots recording where each one starts. "dir:<name>" keys stand in for
// the directory root (only the root directory's own bindings travel;
// nested child directories are not walked).
func saveStackImage(ev *rplvm.Evaluator, path string) error {
	var heap []byte
	roots := map[string][]int{}

	depth := ev.Stack.Depth()
	stackOffsets := make([]int, 0, depth)
	for n := depth; n >= 1; n-- {
		v, err := ev.Stack.Top(n)
		if err != nil {
			return err
		}
		buf, err := rplvm.Encode(v)
		if err != nil {
			return err
		}
		stackOffsets = append(stackOffsets, len(heap))
		heap = append(heap, buf...)
	}
	roots["stack"] = stackOffsets

	for name, h := range ev.Root.RecallAll() {
		v, err := rplvm.Decode(ev.Arena.Bytes(h))
		if err != nil {
			return err
		}
		buf, err := rplvm.Encode(v)
		if err != nil {
			return err
		}
		roots["dir:"+name] = []int{len(heap)}
		heap = append(heap, buf...)
	}

	return persist.Save(path, persist.Build(heap, roots))
}

func loadStackImage(ev *rplvm.Evaluator, path string) error {
	payload, err := persist.Load(path)
	if err != nil {
		return err
	}
	if err := ev.Stack.Drop(ev.Stack.Depth()); err != nil {
		return err
	}
	if offs, ok := payload.Roots["stack"]; ok {
		for _, off := range offs {
			v, err := rplvm.Decode(payload.HeapBytes[off:])
			if err != nil {
				return err
			}
			if err := ev.Stack.Push(v); err != nil {
				return err
			}
		}
	}
	for key, offs := range payload.Roots {
		name, ok := strings.CutPrefix(key, "dir:")
		if !ok || len(offs) != 1 {
			continue
		}
		v, err := rplvm.Decode(payload.HeapBytes[offs[0]:])
		if err != nil {
			return err
		}
		buf, err := rplvm.Encode(v)
		if err != nil {
			return err
		}
		h, err := ev.Arena.Alloc(buf)
		if err != nil {
			return err
		}
		ev.Root.Store(name, h)
	}
	return nil
}
