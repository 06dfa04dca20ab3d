package cpu

import (
	"strings"
)

// Instruction is a single executable step. Execution is two-phase:
// Compute performs the instruction's effect and returns its value, then
// Advance moves the instruction pointer. Instructions are immutable values.
type Instruction interface {
	// Name is the opcode mnemonic.
	Name() string
	// Arguments are the operands in source order, with trailing defaults omitted.
	Arguments() []Operand
	Compute(cpu *Cpu) (value int, err error)
	Advance(cpu *Cpu) error
}

// Storer is an Instruction whose computed value is stored after Advance.
// A nil Output skips the store.
type Storer interface {
	Instruction
	Output() Reference
}

// Defaulted is an Instruction whose Arguments omit operands left at their
// defaults. AllArguments lists every operand.
type Defaulted interface {
	Instruction
	AllArguments() []Operand
}

// Destined is an Instruction with a jump destination the assembler resolves.
type Destined interface {
	Instruction
	Destination() Operand
	Addressing() Addressing
	// WithDestination returns a copy of the instruction with dest substituted.
	WithDestination(dest Operand) Instruction
}

// Sequential provides the default Advance: continue at the next instruction.
// Embed it in custom instructions that do not alter control flow.
type Sequential struct{}

func (Sequential) Advance(cpu *Cpu) error {
	cpu.Next()
	return nil
}

// Text renders an instruction as program text: NAME arg, arg.
// Operands left at their defaults are omitted.
func Text(inst Instruction) string {
	if inst == nil {
		return "<nil>"
	}
	return render(inst.Name(), inst.Arguments())
}

// TextAll renders an instruction as program text with every operand,
// including defaulted ones.
func TextAll(inst Instruction) string {
	if defaulted, ok := inst.(Defaulted); ok {
		return render(inst.Name(), defaulted.AllArguments())
	}
	return Text(inst)
}

func render(name string, args []Operand) string {
	var words []string
	for _, arg := range args {
		if arg != nil {
			words = append(words, arg.String())
		}
	}
	if len(words) == 0 {
		return name
	}
	return name + " " + strings.Join(words, ", ")
}

type textStringer struct {
	Instruction
}

func (ts textStringer) String() string {
	return Text(ts.Instruction)
}

// resolveAll resolves operands in order.
func resolveAll(cpu *Cpu, ops ...Operand) (values []int, err error) {
	values = make([]int, len(ops))
	for n, op := range ops {
		values[n], err = op.Resolve(cpu)
		if err != nil {
			return
		}
	}
	return
}

// defaultOutput applies the output defaulting rule: an explicit output wins,
// otherwise the first input is used when it is itself a reference.
func defaultOutput(a Operand, out Reference) (Reference, error) {
	if out != nil {
		return out, nil
	}
	if ref, ok := a.(Reference); ok {
		return ref, nil
	}
	return nil, ErrOutputMissing
}
