package parser

import "db48x/internal/expr"

// ValueKind tags which variant a parsed Value holds.
type ValueKind uint8

const (
	// ValueExpr covers numbers, symbols, and algebraic expressions —
	// anything expr.Expr already represents.
	ValueExpr ValueKind = iota
	ValueText
	// ValueProgram is a «…»-delimited sequence of Values, executed in
	// order by the evaluator.
	ValueProgram
	// ValueList is a {…}-delimited sequence of Values.
	ValueList
	// ValueArray is a […]-delimited sequence of Values (vector/matrix).
	ValueArray
	// ValueLoop is one of the six START/FOR/DO/WHILE loop forms; Items
	// holds the body, Cond (when non-nil) the do-until/while-repeat
	// condition.
	ValueLoop
)

// LoopKind mirrors internal/rplvm.LoopKind without importing it (rplvm
// imports parser, not the other way around); FromParser converts the
// two directly since both share the same const ordering.
type LoopKind uint8

const (
	LoopCounted LoopKind = iota
	LoopDoUntil
	LoopWhileRepeat
)

// Value is one parsed RPL object: either an algebraic expression/number/
// symbol, quoted text, one of the three composite delimited forms, or a
// loop. This is the parser's output; internal/rplvm consumes a stream
// of Values to build the object heap.
type Value struct {
	Kind  ValueKind
	Expr  expr.Expr
	Text  string
	Items []Value

	// Loop fields, set only when Kind == ValueLoop.
	LoopKind LoopKind
	Named    bool
	Stepped  bool
	VarName  string
	Cond     *Value
}
