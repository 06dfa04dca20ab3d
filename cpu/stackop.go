package cpu

import (
	"errors"
)

// Push resolves A and pushes it.
type Push struct {
	Sequential
	A Operand
}

func NewPush(a Operand) (inst Push, err error) {
	if a == nil {
		err = errors.Join(ErrConfiguration, ErrArgumentCount, errors.New("PUSH"))
		return
	}
	inst = Push{A: a}
	return
}

func (inst Push) Name() string {
	return "PUSH"
}

func (inst Push) Arguments() []Operand {
	return []Operand{inst.A}
}

func (inst Push) Compute(cpu *Cpu) (value int, err error) {
	value, err = inst.A.Resolve(cpu)
	if err != nil {
		return
	}
	err = cpu.Push(value)
	return
}

// Pop pops a value, storing it to Out when one is given.
type Pop struct {
	Sequential
	Out Reference // Optional.
}

var _ Storer = Pop{}

func (inst Pop) Name() string {
	return "POP"
}

func (inst Pop) Arguments() []Operand {
	if inst.Out == nil {
		return nil
	}
	return []Operand{inst.Out}
}

func (inst Pop) Output() Reference {
	return inst.Out
}

func (inst Pop) Compute(cpu *Cpu) (value int, err error) {
	return cpu.Pop()
}

// StackEmpty stores 1 to Out if the stack is empty, 0 otherwise.
type StackEmpty struct {
	Sequential
	Out Reference
}

var _ Storer = StackEmpty{}

func NewStackEmpty(out Reference) (inst StackEmpty, err error) {
	if out == nil {
		err = errors.Join(ErrConfiguration, ErrOutputMissing, errors.New("SEMP"))
		return
	}
	inst = StackEmpty{Out: out}
	return
}

func (inst StackEmpty) Name() string {
	return "SEMP"
}

func (inst StackEmpty) Arguments() []Operand {
	return []Operand{inst.Out}
}

func (inst StackEmpty) Output() Reference {
	return inst.Out
}

func (inst StackEmpty) Compute(cpu *Cpu) (value int, err error) {
	value = truth(cpu.Stack.Empty())
	return
}
