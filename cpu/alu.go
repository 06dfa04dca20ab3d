package cpu

import (
	"errors"
)

// Binary applies a BinaryOp to A and B, storing the result in Out.
type Binary struct {
	Sequential
	Op   BinaryOp
	A, B Operand
	Out  Reference
}

var _ Storer = Binary{}

// NewBinary builds a binary operation. When out is nil the result is stored
// to a, which must then be a register or memory reference.
func NewBinary(op BinaryOp, a, b Operand, out Reference) (inst Binary, err error) {
	if a == nil || b == nil {
		err = errors.Join(ErrConfiguration, ErrArgumentCount, errors.New(op.String()))
		return
	}
	out, err = defaultOutput(a, out)
	if err != nil {
		err = errors.Join(ErrConfiguration, err, errors.New(op.String()))
		return
	}
	inst = Binary{Op: op, A: a, B: b, Out: out}
	return
}

func (inst Binary) Name() string {
	return inst.Op.String()
}

func (inst Binary) Arguments() []Operand {
	if Operand(inst.Out) == inst.A {
		return []Operand{inst.A, inst.B}
	}
	return []Operand{inst.A, inst.B, inst.Out}
}

func (inst Binary) AllArguments() []Operand {
	return []Operand{inst.A, inst.B, inst.Out}
}

func (inst Binary) Output() Reference {
	return inst.Out
}

func (inst Binary) Compute(cpu *Cpu) (value int, err error) {
	a, err := inst.A.Resolve(cpu)
	if err != nil {
		return
	}
	b, err := inst.B.Resolve(cpu)
	if err != nil {
		return
	}
	return inst.Op.Apply(a, b)
}

// Unary applies a UnaryOp to A, storing the result in Out.
type Unary struct {
	Sequential
	Op  UnaryOp
	A   Operand
	Out Reference
}

var _ Storer = Unary{}

// NewUnary builds a unary operation, with the same output defaulting as NewBinary.
func NewUnary(op UnaryOp, a Operand, out Reference) (inst Unary, err error) {
	if a == nil {
		err = errors.Join(ErrConfiguration, ErrArgumentCount, errors.New(op.String()))
		return
	}
	out, err = defaultOutput(a, out)
	if err != nil {
		err = errors.Join(ErrConfiguration, err, errors.New(op.String()))
		return
	}
	inst = Unary{Op: op, A: a, Out: out}
	return
}

func (inst Unary) Name() string {
	return inst.Op.String()
}

func (inst Unary) Arguments() []Operand {
	if Operand(inst.Out) == inst.A {
		return []Operand{inst.A}
	}
	return []Operand{inst.A, inst.Out}
}

func (inst Unary) AllArguments() []Operand {
	return []Operand{inst.A, inst.Out}
}

func (inst Unary) Output() Reference {
	return inst.Out
}

func (inst Unary) Compute(cpu *Cpu) (value int, err error) {
	a, err := inst.A.Resolve(cpu)
	if err != nil {
		return
	}
	return inst.Op.Apply(a)
}

// Copy stores Src to Out.
type Copy struct {
	Sequential
	Src Operand
	Out Reference
}

var _ Storer = Copy{}

// NewCopy builds a copy; both operands are required.
func NewCopy(src Operand, out Reference) (inst Copy, err error) {
	if src == nil {
		err = errors.Join(ErrConfiguration, ErrArgumentCount, errors.New("CP"))
		return
	}
	if out == nil {
		err = errors.Join(ErrConfiguration, ErrOutputMissing, errors.New("CP"))
		return
	}
	inst = Copy{Src: src, Out: out}
	return
}

func (inst Copy) Name() string {
	return "CP"
}

func (inst Copy) Arguments() []Operand {
	return []Operand{inst.Src, inst.Out}
}

func (inst Copy) Output() Reference {
	return inst.Out
}

func (inst Copy) Compute(cpu *Cpu) (value int, err error) {
	return inst.Src.Resolve(cpu)
}
