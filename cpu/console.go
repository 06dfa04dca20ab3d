package cpu

import (
	"errors"
)

// newline is the default trailing-newline flag of the output instructions.
var newline = Literal(0)

func console(cpu *Cpu) (Console, error) {
	if cpu.Console == nil {
		return nil, ErrConsoleMissing
	}
	return cpu.Console, nil
}

func outputArguments(a, nl Operand) []Operand {
	if nl == newline {
		return []Operand{a}
	}
	return []Operand{a, nl}
}

// NumberOut writes A as a decimal number, then a newline if Newline is truthy.
type NumberOut struct {
	Sequential
	A       Operand
	Newline Operand
}

func NewNumberOut(a Operand, nl Operand) (inst NumberOut, err error) {
	if a == nil {
		err = errors.Join(ErrConfiguration, ErrArgumentCount, errors.New("NOUT"))
		return
	}
	if nl == nil {
		nl = newline
	}
	inst = NumberOut{A: a, Newline: nl}
	return
}

func (inst NumberOut) Name() string {
	return "NOUT"
}

func (inst NumberOut) Arguments() []Operand {
	return outputArguments(inst.A, inst.Newline)
}

func (inst NumberOut) AllArguments() []Operand {
	return []Operand{inst.A, inst.Newline}
}

func (inst NumberOut) Compute(cpu *Cpu) (value int, err error) {
	con, err := console(cpu)
	if err != nil {
		return
	}
	values, err := resolveAll(cpu, inst.A, inst.Newline)
	if err != nil {
		return
	}
	err = con.WriteNumber(values[0], values[1] != 0)
	return
}

// CharOut writes A as a character, then a newline if Newline is truthy.
type CharOut struct {
	Sequential
	A       Operand
	Newline Operand
}

func NewCharOut(a Operand, nl Operand) (inst CharOut, err error) {
	if a == nil {
		err = errors.Join(ErrConfiguration, ErrArgumentCount, errors.New("COUT"))
		return
	}
	if nl == nil {
		nl = newline
	}
	inst = CharOut{A: a, Newline: nl}
	return
}

func (inst CharOut) Name() string {
	return "COUT"
}

func (inst CharOut) Arguments() []Operand {
	return outputArguments(inst.A, inst.Newline)
}

func (inst CharOut) AllArguments() []Operand {
	return []Operand{inst.A, inst.Newline}
}

func (inst CharOut) Compute(cpu *Cpu) (value int, err error) {
	con, err := console(cpu)
	if err != nil {
		return
	}
	values, err := resolveAll(cpu, inst.A, inst.Newline)
	if err != nil {
		return
	}
	err = con.WriteChar(rune(values[0]), values[1] != 0)
	return
}

// NumberIn reads a number into Out.
type NumberIn struct {
	Sequential
	Out Reference
}

var _ Storer = NumberIn{}

func NewNumberIn(out Reference) (inst NumberIn, err error) {
	if out == nil {
		err = errors.Join(ErrConfiguration, ErrOutputMissing, errors.New("NIN"))
		return
	}
	inst = NumberIn{Out: out}
	return
}

func (inst NumberIn) Name() string {
	return "NIN"
}

func (inst NumberIn) Arguments() []Operand {
	return []Operand{inst.Out}
}

func (inst NumberIn) Output() Reference {
	return inst.Out
}

func (inst NumberIn) Compute(cpu *Cpu) (value int, err error) {
	con, err := console(cpu)
	if err != nil {
		return
	}
	return con.ReadNumber()
}

// CharIn reads a character code into Out.
type CharIn struct {
	Sequential
	Out Reference
}

var _ Storer = CharIn{}

func NewCharIn(out Reference) (inst CharIn, err error) {
	if out == nil {
		err = errors.Join(ErrConfiguration, ErrOutputMissing, errors.New("CIN"))
		return
	}
	inst = CharIn{Out: out}
	return
}

func (inst CharIn) Name() string {
	return "CIN"
}

func (inst CharIn) Arguments() []Operand {
	return []Operand{inst.Out}
}

func (inst CharIn) Output() Reference {
	return inst.Out
}

func (inst CharIn) Compute(cpu *Cpu) (value int, err error) {
	con, err := console(cpu)
	if err != nil {
		return
	}
	ch, err := con.ReadChar()
	value = int(ch)
	return
}
