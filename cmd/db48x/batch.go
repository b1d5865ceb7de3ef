package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"db48x/internal/decimal"
	"db48x/internal/parser"
	"db48x/internal/rplvm"
	"db48x/internal/settings"
)

// batchResult is one file's outcome, collected into a pre-sized slice
// indexed by its position in args so concurrent goroutines never need a
// mutex around a shared accumulator.
type batchResult struct {
	path  string
	lines []string
	err   error
}

var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Evaluate several independent RPL source files concurrently",
	Long:  `batch runs each file against its own fresh evaluator — they share no stack or directory state — and prints the resulting stacks in argument order once every file has finished. Concurrency is bounded by --jobs (GOMAXPROCS when 0) and does not affect the single-threaded evaluation rule within any one file.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().Int("jobs", 0, "max concurrent files (0 = GOMAXPROCS)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]batchResult, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(args)))

	for i, path := range args {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = evalBatchFile(path, s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := false
	for _, r := range results {
		fmt.Fprintf(out, "== %s ==\n", r.path)
		if r.err != nil {
			fmt.Fprintf(out, "error: %s\n", r.err)
			failed = true
			continue
		}
		if len(r.lines) == 0 {
			fmt.Fprintln(out, "(empty stack)")
			continue
		}
		for _, line := range r.lines {
			fmt.Fprintln(out, line)
		}
	}
	if failed {
		return fmt.Errorf("one or more files failed to evaluate")
	}
	return nil
}

// evalBatchFile parses and runs one file against a fresh evaluator. Each
// call owns its own Evaluator, so running many of these under an
// errgroup never shares a heap, stack, or directory across files — the
// "no parallel evaluation" rule applies within a single evaluator, not
// across independent ones.
func evalBatchFile(path string, s settings.Settings) batchResult {
	src, err := os.ReadFile(path)
	if err != nil {
		return batchResult{path: path, err: err}
	}
	p := parser.New(string(src), s.Base, decimal.Width64)
	parsed, err := p.ParseProgram()
	if err != nil {
		return batchResult{path: path, err: err}
	}
	v, err := rplvm.FromParser(parsed)
	if err != nil {
		return batchResult{path: path, err: err}
	}
	ev := rplvm.NewEvaluator(1<<24, s)
	if err := ev.EvalTopLevel(v); err != nil {
		return batchResult{path: path, err: err}
	}

	depth := ev.Stack.Depth()
	lines := make([]string, 0, depth)
	for n := depth; n >= 1; n-- {
		top, err := ev.Stack.Top(n)
		if err != nil {
			return batchResult{path: path, err: err}
		}
		lines = append(lines, fmt.Sprintf("%d: %s", n, renderValue(top, s)))
	}
	return batchResult{path: path, lines: lines}
}
