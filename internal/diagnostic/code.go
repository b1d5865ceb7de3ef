// Package diagnostic implements the evaluator's closed error taxonomy: a
// numbered Code enum banded by concern, a Severity, and a Bag that
// collects diagnostics with stable sort ordering — the same shape
// surge's internal/diag carries (Code/Severity/Bag), scaled down from a
// compiler's diagnostics surface to a calculator's fixed, closed error set.
package diagnostic

import "fmt"

// Code identifies one of the closed set of evaluation error kinds,
// banded by concern the way surge bands codes into Lex*/Syn*/Sema*
// thousands: 1000s arithmetic, 2000s parsing, 3000s evaluation,
// 4000s control flow.
type Code uint16

const (
	Unknown Code = 0

	ZeroDivide      Code = 1000
	NumberTooBig    Code = 1001
	OutOfMemory     Code = 1002
	TypeMismatch    Code = 1003
	ValueOutOfRange Code = 1004

	InvalidSyntax Code = 2000

	UndefinedName      Code = 3000
	NotEnoughArguments Code = 3001
	InvalidPlotParams  Code = 3002
	Unimplemented      Code = 3003

	Interrupted Code = 4000
)

// String renders the calculator's error-kind names exactly as named in
// the closed set surfaced to callers ("zero_divide", "type_mismatch", ...).
func (c Code) String() string {
	switch c {
	case ZeroDivide:
		return "zero_divide"
	case NumberTooBig:
		return "number_too_big"
	case OutOfMemory:
		return "out_of_memory"
	case TypeMismatch:
		return "type_mismatch"
	case ValueOutOfRange:
		return "value_out_of_range"
	case InvalidSyntax:
		return "invalid_syntax"
	case UndefinedName:
		return "undefined_name"
	case NotEnoughArguments:
		return "not_enough_arguments"
	case InvalidPlotParams:
		return "invalid_ppar"
	case Unimplemented:
		return "unimplemented"
	case Interrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("code(%d)", uint16(c))
	}
}
