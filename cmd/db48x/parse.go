package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"db48x/internal/decimal"
	"db48x/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse <program>...",
	Short: "Parse a line of RPL source and print its object stream",
	Long:  `parse runs the object-stream parser (the same one eval and repl use) and prints the resulting objects without evaluating them, either as an indented tree or as JSON.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	src := strings.Join(args, " ")
	p := parser.New(src, s.Base, decimal.Width64)
	v, err := p.ParseProgram()
	if err != nil {
		return reportDiagnostic(cmd, err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		fmt.Fprintln(out, renderParsedValue(v, 0))
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(parsedValueJSON(v))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}

func valueKindName(k parser.ValueKind) string {
	switch k {
	case parser.ValueExpr:
		return "expr"
	case parser.ValueText:
		return "text"
	case parser.ValueProgram:
		return "program"
	case parser.ValueList:
		return "list"
	case parser.ValueArray:
		return "array"
	default:
		return "?"
	}
}

func renderParsedValue(v parser.Value, depth int) string {
	indent := strings.Repeat("  ", depth)
	switch v.Kind {
	case parser.ValueExpr:
		return fmt.Sprintf("%s%s %s", indent, valueKindName(v.Kind), v.Expr.Render())
	case parser.ValueText:
		return fmt.Sprintf("%s%s %q", indent, valueKindName(v.Kind), v.Text)
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "%s%s", indent, valueKindName(v.Kind))
		for _, it := range v.Items {
			b.WriteByte('\n')
			b.WriteString(renderParsedValue(it, depth+1))
		}
		return b.String()
	}
}

type parsedValueOut struct {
	Kind  string           `json:"kind"`
	Expr  string           `json:"expr,omitempty"`
	Text  string           `json:"text,omitempty"`
	Items []parsedValueOut `json:"items,omitempty"`
}

func parsedValueJSON(v parser.Value) parsedValueOut {
	out := parsedValueOut{Kind: valueKindName(v.Kind)}
	switch v.Kind {
	case parser.ValueExpr:
		out.Expr = v.Expr.Render()
	case parser.ValueText:
		out.Text = v.Text
	default:
		out.Items = make([]parsedValueOut, len(v.Items))
		for i, it := range v.Items {
			out.Items[i] = parsedValueJSON(it)
		}
	}
	return out
}
