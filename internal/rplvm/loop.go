package rplvm

// LoopKind identifies one of the three loop shapes. Grounded on
// original_source/src/loops.h, which models start-next, start-step,
// for-next, for-step, do-until, and while-repeat as six distinct object
// classes; this is the REDESIGN noted in SPEC_FULL.md: one Loop struct
// with a Kind plus Named/Stepped flags rather than six near-identical
// structs, since the only behavioral differences are (a) whether a loop
// variable is bound and (b) whether the step is fixed at one or popped
// from the stack each iteration.
type LoopKind uint8

const (
	// LoopCounted covers start-next, start-step, for-next, and for-step:
	// pop bounds a, b, run the body with a hidden or named counter from a
	// to b (inclusive), by the fixed step 1 or an explicit popped step.
	LoopCounted LoopKind = iota
	// LoopDoUntil executes Body then Cond, repeating while Cond is falsy.
	LoopDoUntil
	// LoopWhileRepeat evaluates Cond first, running Body only while it is
	// truthy.
	LoopWhileRepeat
)

// Loop is a first-class object embedding its sub-programs, evaluated by
// (*Evaluator).runLoop.
type Loop struct {
	Kind LoopKind

	// Named is set for every parsed counted loop (FOR binds its explicit
	// VarName, START the fixed name "i"): the counter is bound to VarName
	// in a fresh child directory visible to Body, rather than left hidden.
	Named   bool
	Stepped bool // set for start-step/for-step: the step is popped, not fixed at 1
	VarName string

	Body Value
	Cond Value // do-until / while-repeat only
}
