package rplvm

import (
	"sync/atomic"

	"db48x/internal/bignum"
	"db48x/internal/diagnostic"
	"db48x/internal/directory"
	"db48x/internal/expr"
	"db48x/internal/objmem"
	"db48x/internal/settings"
)

// Evaluator holds the object heap, the value stack, the current
// directory, and the display/arithmetic settings a running program
// reads. Grounded on vovakirdan-surge/internal/vm/vm.go's VM struct
// (frame stack plus shared constant/global tables), generalized from
// surge's compiled-bytecode dispatch loop to direct interpretation of
// Program objects: there is no separate compile step, each object is
// evaluated as it is encountered.
type Evaluator struct {
	Arena    *objmem.Arena
	Stack    *Stack
	Root     *directory.Directory
	Dir      *directory.Directory
	Settings settings.Settings

	// AutoRecall is the evaluator-wide "alpha-mode recall" flag: when
	// set, a bare symbol that names no command is looked up in the
	// directory tree and its bound value evaluated; when clear, the
	// symbol is pushed unresolved.
	AutoRecall bool

	interrupted int32 // atomic; set by Interrupt, polled at loop boundaries

	lastUndo *undoState
}

// undoState is the shallow snapshot UNDO restores: a copy of the
// stack's handle slice plus the arena snapshot needed to make those
// handles valid again.
type undoState struct {
	stack []objmem.Handle
	arena objmem.Snapshot
}

// NewEvaluator creates an Evaluator over a fresh arena and directory
// root, with AutoRecall on (the calculator's default alpha-mode).
func NewEvaluator(arenaCapacity int, s settings.Settings) *Evaluator {
	arena := objmem.NewArena(arenaCapacity)
	root := directory.NewRoot()
	return &Evaluator{
		Arena:      arena,
		Stack:      NewStack(arena),
		Root:       root,
		Dir:        root,
		Settings:   s,
		AutoRecall: true,
	}
}

// Interrupt sets the cooperative interrupt flag; the next poll point (a
// loop iteration boundary) aborts evaluation with an interrupted error.
func (e *Evaluator) Interrupt() { atomic.StoreInt32(&e.interrupted, 1) }

// ClearInterrupt resets the flag, done once per top-level command
// before evaluation begins.
func (e *Evaluator) ClearInterrupt() { atomic.StoreInt32(&e.interrupted, 0) }

func (e *Evaluator) checkInterrupt() error {
	if atomic.LoadInt32(&e.interrupted) != 0 {
		return diagnostic.ErrInterrupted()
	}
	return nil
}

func (e *Evaluator) maxBits() int { return e.Settings.MaxBignum }

// EvalTopLevel runs v as a single undoable user action: the stack and
// arena are snapshotted first, and on error the snapshot is restored so
// the stack reads exactly as it did before the attempt — "1 0 / ⇒ error
// zero_divide, stack unchanged from before the division attempt." On
// success the snapshot becomes the target of a subsequent UNDO.
func (e *Evaluator) EvalTopLevel(v Value) error {
	snap := e.snapshotForUndo()
	if err := e.Run(v); err != nil {
		e.restoreUndo(snap)
		return err
	}
	e.lastUndo = &snap
	return nil
}

func (e *Evaluator) snapshotForUndo() undoState {
	return undoState{stack: e.Stack.snapshot(), arena: e.Arena.Save()}
}

func (e *Evaluator) restoreUndo(s undoState) {
	e.Arena.Restore(s.arena)
	e.Stack.restore(s.stack)
}

// Undo restores the stack to the state it held before the last
// successful EvalTopLevel call; called by the UNDO command itself.
func (e *Evaluator) Undo() error {
	if e.lastUndo == nil {
		return diagnostic.ErrUnimplemented("nothing to undo")
	}
	e.restoreUndo(*e.lastUndo)
	e.lastUndo = nil
	return nil
}

// Run evaluates v, treating a top-level Program as a body whose objects
// are each evaluated in order; every other kind is handed to Eval
// directly — a bare object typed at the prompt evaluates itself.
func (e *Evaluator) Run(v Value) error {
	if v.Kind != KindProgram {
		return e.Eval(v)
	}
	for _, item := range v.Items {
		if err := e.Eval(item); err != nil {
			return err
		}
	}
	return nil
}

// Eval evaluates one object per the closed rule set: self-evaluating
// objects push, a symbol is resolved as a command first and only falls
// back to directory recall, and a Loop object runs; a nested Program or
// Expression is self-evaluating data and simply pushes.
func (e *Evaluator) Eval(v Value) error {
	switch v.Kind {
	case KindSymbol:
		return e.evalSymbol(v.Sym)
	case KindLoop:
		return e.runLoop(v.Loop)
	default:
		return e.Stack.Push(v)
	}
}

// evalSymbol looks up name in the command table first — the table of
// commands is closed and enumerated at build time, and command dispatch
// is checked before symbol recall — falling back to the directory only
// when name is not a command. A symbol bound to a Program auto-runs it;
// any other binding pushes.
func (e *Evaluator) evalSymbol(name string) error {
	if cmd, ok := commands[name]; ok {
		return cmd(e)
	}
	if !e.AutoRecall {
		return e.Stack.Push(Symbol(name))
	}
	h, err := e.Dir.Recall(name)
	if err != nil {
		return diagnostic.ErrUndefinedName(name)
	}
	bound, err := Decode(e.Arena.Bytes(h))
	if err != nil {
		return err
	}
	if bound.Kind == KindProgram {
		return e.Run(bound)
	}
	e.Stack.PushHandle(e.Arena.Retain(h))
	return nil
}

// resolvedTruthy resolves v's bound value if it is a symbol, raising
// undefined_name if unbound, then applies the truthiness rule.
func (e *Evaluator) resolvedTruthy(v Value) (bool, error) {
	if v.Kind == KindSymbol {
		h, err := e.Dir.Recall(v.Sym)
		if err != nil {
			return false, diagnostic.ErrUndefinedName(v.Sym)
		}
		bound, err := Decode(e.Arena.Bytes(h))
		if err != nil {
			return false, err
		}
		return bound.Truthy()
	}
	return v.Truthy()
}

// evalTruthy runs cond (a Program that leaves exactly one value on the
// stack) and returns that value's truthiness.
func (e *Evaluator) evalTruthy(cond Value) (bool, error) {
	if err := e.Run(cond); err != nil {
		return false, err
	}
	v, err := e.Stack.Pop()
	if err != nil {
		return false, err
	}
	return e.resolvedTruthy(v)
}

// runLoop dispatches to the variant matching l.Kind — the REDESIGN
// collapsing start-next, start-step, for-next, for-step, do-until, and
// while-repeat into one Loop struct plus a Kind enum.
func (e *Evaluator) runLoop(l *Loop) error {
	switch l.Kind {
	case LoopCounted:
		return e.runCountedLoop(l)
	case LoopDoUntil:
		return e.runDoUntilLoop(l)
	case LoopWhileRepeat:
		return e.runWhileRepeatLoop(l)
	default:
		return diagnostic.ErrUnimplemented("unknown loop kind")
	}
}

func (e *Evaluator) allocAtom(a expr.Atom) (objmem.Handle, error) {
	buf, err := Encode(atomToValue(a))
	if err != nil {
		return 0, err
	}
	h, err := e.Arena.Alloc(buf)
	if err != nil {
		return 0, diagnostic.ErrOutOfMemory()
	}
	return h, nil
}

// runCountedLoop covers start-next, start-step, for-next, and for-step:
// pop the bounds a, b, then run Body once per counter value from a to b
// inclusive. A named loop binds the counter to l.VarName in a child
// directory visible to Body for the duration of the loop.
//
// The two families differ in where the step comes from. start-next/
// for-next fix it at 1 and check the bound before each run, so a>b
// never runs the body at all. start-step/for-step instead pop the step
// off the stack *after* each run of Body — the step isn't known until
// the body has produced one, so its direction can't be checked up
// front, and the body always runs at least once, like a do-until loop.
func (e *Evaluator) runCountedLoop(l *Loop) error {
	maxBits := e.maxBits()
	bv, err := e.Stack.Pop()
	if err != nil {
		return err
	}
	av, err := e.Stack.Pop()
	if err != nil {
		return err
	}
	end, err := numericAtom(bv, "loop bound")
	if err != nil {
		return err
	}
	counter, err := numericAtom(av, "loop bound")
	if err != nil {
		return err
	}

	var parent *directory.Directory
	if l.Named {
		parent = e.Dir
	}

	runBody := func() error {
		if err := e.checkInterrupt(); err != nil {
			return err
		}
		if l.Named {
			e.Dir = parent.Cd(l.VarName)
			h, err := e.allocAtom(counter)
			if err != nil {
				e.Dir = parent
				return err
			}
			e.Dir.Store(l.VarName, h)
		}
		runErr := e.Run(l.Body)
		if l.Named {
			e.Dir = parent
		}
		return runErr
	}

	if l.Stepped {
		for {
			if err := runBody(); err != nil {
				return err
			}
			sv, err := e.Stack.Pop()
			if err != nil {
				return err
			}
			step, err := numericAtom(sv, "step")
			if err != nil {
				return err
			}
			stepSign, err := compareAtoms(step, mkInt(bignum.IntZero()))
			if err != nil {
				return err
			}
			if stepSign == 0 {
				return wrapValueOutOfRange("loop step must not be zero")
			}
			counter, err = arithAdd(counter, step, maxBits)
			if err != nil {
				return err
			}
			cmp, err := compareAtoms(counter, end)
			if err != nil {
				return err
			}
			if stepSign > 0 && cmp > 0 {
				break
			}
			if stepSign < 0 && cmp < 0 {
				break
			}
		}
		return nil
	}

	step := mkInt(bignum.IntFromInt64(1))
	for {
		cmp, err := compareAtoms(counter, end)
		if err != nil {
			return err
		}
		if cmp > 0 {
			break
		}
		if err := runBody(); err != nil {
			return err
		}
		counter, err = arithAdd(counter, step, maxBits)
		if err != nil {
			return err
		}
	}
	return nil
}

// runDoUntilLoop executes Body then Cond, terminating once Cond is
// truthy — "do ... until ... end" always runs its body at least once.
func (e *Evaluator) runDoUntilLoop(l *Loop) error {
	for {
		if err := e.checkInterrupt(); err != nil {
			return err
		}
		if err := e.Run(l.Body); err != nil {
			return err
		}
		truthy, err := e.evalTruthy(l.Cond)
		if err != nil {
			return err
		}
		if truthy {
			return nil
		}
	}
}

// runWhileRepeatLoop evaluates Cond first, running Body only while it
// is truthy.
func (e *Evaluator) runWhileRepeatLoop(l *Loop) error {
	for {
		if err := e.checkInterrupt(); err != nil {
			return err
		}
		truthy, err := e.evalTruthy(l.Cond)
		if err != nil {
			return err
		}
		if !truthy {
			return nil
		}
		if err := e.Run(l.Body); err != nil {
			return err
		}
	}
}
