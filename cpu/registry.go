package cpu

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/dt31/internal"
)

// Factory builds an instruction from its operands.
type Factory func(args ...Operand) (Instruction, error)

// Registry maps opcode names to instruction factories. The built-in
// instruction set is always present; hosts may Register more before parsing.
type Registry struct {
	custom map[string]Factory
}

var builtinRegistry = NewRegistry()

// NewRegistry returns a registry holding the built-in instruction set.
func NewRegistry() *Registry {
	return &Registry{custom: map[string]Factory{}}
}

// Register adds a factory under name. Names are case-insensitive.
func (reg *Registry) Register(name string, factory Factory) (err error) {
	name = strings.ToUpper(name)
	if len(name) == 0 || factory == nil {
		err = errors.Join(ErrConfiguration, ErrOpcodeInvalid, errors.New(name))
		return
	}
	_, ok := reg.Lookup(name)
	if ok {
		err = errors.Join(ErrConfiguration, ErrOpcodeDuplicate, errors.New(name))
		return
	}
	reg.custom[name] = factory
	return
}

// Lookup finds the factory of an opcode.
func (reg *Registry) Lookup(name string) (factory Factory, ok bool) {
	name = strings.ToUpper(name)
	factory, ok = builtin[name]
	if ok {
		return
	}
	factory, ok = reg.custom[name]
	return
}

// Make builds an instruction by opcode name, coercing Go integers to literals.
func (reg *Registry) Make(name string, args ...any) (inst Instruction, err error) {
	factory, ok := reg.Lookup(name)
	if !ok {
		err = errors.Join(ErrConfiguration, ErrOpcodeInvalid, errors.New(name))
		return
	}
	ops := make([]Operand, len(args))
	for n, arg := range args {
		ops[n], err = AsOperand(arg)
		if err != nil {
			return
		}
	}
	return factory(ops...)
}

// Names returns all opcode names, sorted.
func (reg *Registry) Names() []string {
	return slices.Sorted(internal.IterSeqConcat(maps.Keys(builtin), maps.Keys(reg.custom)))
}

// Make builds a built-in instruction by opcode name.
func Make(name string, args ...any) (Instruction, error) {
	return builtinRegistry.Make(name, args...)
}

// arguments checks the operand count, returning the operands padded with
// nil up to max.
func arguments(name string, args []Operand, min, max int) (ops []Operand, err error) {
	if len(args) < min || len(args) > max {
		err = errors.Join(ErrConfiguration, ErrArgumentCount, errors.New(f("%v takes %d to %d operands, not %d", name, min, max, len(args))))
		return
	}
	ops = make([]Operand, max)
	copy(ops, args)
	return
}

// output coerces an optional output operand.
func output(name string, op Operand) (ref Reference, err error) {
	if op == nil {
		return
	}
	ref, err = AsReference(op)
	if err != nil {
		err = errors.Join(err, errors.New(f("%v output", name)))
	}
	return
}

func binaryFactory(op BinaryOp) Factory {
	return func(args ...Operand) (inst Instruction, err error) {
		ops, err := arguments(op.String(), args, 2, 3)
		if err != nil {
			return
		}
		out, err := output(op.String(), ops[2])
		if err != nil {
			return
		}
		return NewBinary(op, ops[0], ops[1], out)
	}
}

func unaryFactory(op UnaryOp) Factory {
	return func(args ...Operand) (inst Instruction, err error) {
		ops, err := arguments(op.String(), args, 1, 2)
		if err != nil {
			return
		}
		out, err := output(op.String(), ops[1])
		if err != nil {
			return
		}
		return NewUnary(op, ops[0], out)
	}
}

func jumpFactory(mode Addressing, cond Condition) Factory {
	return func(args ...Operand) (inst Instruction, err error) {
		if len(args) == 0 {
			return NewJump(mode, cond, nil)
		}
		return NewJump(mode, cond, args[0], args[1:]...)
	}
}

func callFactory(mode Addressing) Factory {
	return func(args ...Operand) (inst Instruction, err error) {
		ops, err := arguments("CALL", args, 1, 1)
		if err != nil {
			return
		}
		return NewCall(mode, ops[0])
	}
}

// outputFactory builds an instruction whose sole operand is a required output.
func outputFactory[T Instruction](name string, build func(Reference) (T, error)) Factory {
	return func(args ...Operand) (inst Instruction, err error) {
		ops, err := arguments(name, args, 1, 1)
		if err != nil {
			return
		}
		out, err := output(name, ops[0])
		if err != nil {
			return
		}
		return build(out)
	}
}

// writerFactory builds an output instruction with an optional newline flag.
func writerFactory[T Instruction](name string, build func(a, nl Operand) (T, error)) Factory {
	return func(args ...Operand) (inst Instruction, err error) {
		ops, err := arguments(name, args, 1, 2)
		if err != nil {
			return
		}
		return build(ops[0], ops[1])
	}
}

// simpleFactory builds an instruction that takes no operands.
func simpleFactory(name string, inst Instruction) Factory {
	return func(args ...Operand) (Instruction, error) {
		_, err := arguments(name, args, 0, 0)
		if err != nil {
			return nil, err
		}
		return inst, nil
	}
}

var builtin = func() map[string]Factory {
	table := map[string]Factory{
		"CP": func(args ...Operand) (inst Instruction, err error) {
			ops, err := arguments("CP", args, 2, 2)
			if err != nil {
				return
			}
			out, err := output("CP", ops[1])
			if err != nil {
				return
			}
			return NewCopy(ops[0], out)
		},
		"RCALL": callFactory(ADDR_RELATIVE),
		"CALL":  callFactory(ADDR_ABSOLUTE),
		"RET":   simpleFactory("RET", Return{}),
		"PUSH": func(args ...Operand) (inst Instruction, err error) {
			ops, err := arguments("PUSH", args, 1, 1)
			if err != nil {
				return
			}
			return NewPush(ops[0])
		},
		"POP": func(args ...Operand) (inst Instruction, err error) {
			ops, err := arguments("POP", args, 0, 1)
			if err != nil {
				return
			}
			out, err := output("POP", ops[0])
			if err != nil {
				return
			}
			return Pop{Out: out}, nil
		},
		"SEMP": outputFactory("SEMP", NewStackEmpty),
		"NOUT": writerFactory("NOUT", NewNumberOut),
		"COUT": writerFactory("COUT", NewCharOut),
		"NIN":  outputFactory("NIN", NewNumberIn),
		"CIN":  outputFactory("CIN", NewCharIn),
		"NOOP": simpleFactory("NOOP", NoOp{}),
		"EXIT": func(args ...Operand) (inst Instruction, err error) {
			ops, err := arguments("EXIT", args, 0, 1)
			if err != nil {
				return
			}
			return NewExit(ops[0]), nil
		},
		"BRK":  simpleFactory("BRK", Break{}),
		"BRKD": simpleFactory("BRKD", Break{Sticky: true}),
	}
	table["OOUT"] = table["COUT"]
	table["OIN"] = table["CIN"]

	for op := OP_ADD; op <= OP_XOR; op++ {
		table[op.String()] = binaryFactory(op)
	}
	for op := OP_BNOT; op <= OP_NOT; op++ {
		table[op.String()] = unaryFactory(op)
	}
	for cond, name := range jumpMnemonic {
		table[name] = jumpFactory(ADDR_ABSOLUTE, cond)
		table["R"+name] = jumpFactory(ADDR_RELATIVE, cond)
	}

	return table
}()
