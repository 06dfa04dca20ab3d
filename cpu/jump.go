package cpu

import (
	"errors"
)

// Jump transfers control to Dest when Cond holds for its inputs A and B.
// With ADDR_RELATIVE, Dest is a signed delta from the jump's own position.
type Jump struct {
	Mode Addressing
	Cond Condition
	Dest Operand
	A, B Operand // Condition inputs; unused inputs are nil.
}

var _ Destined = Jump{}

// NewJump builds a jump. args supplies exactly Cond.Arity() condition inputs.
func NewJump(mode Addressing, cond Condition, dest Operand, args ...Operand) (inst Jump, err error) {
	inst = Jump{Mode: mode, Cond: cond, Dest: dest}
	if dest == nil || len(args) != cond.Arity() {
		err = errors.Join(ErrConfiguration, ErrArgumentCount, errors.New(inst.Name()))
		return
	}
	for _, arg := range args {
		if arg == nil {
			err = errors.Join(ErrConfiguration, ErrArgumentCount, errors.New(inst.Name()))
			return
		}
	}
	if len(args) > 0 {
		inst.A = args[0]
	}
	if len(args) > 1 {
		inst.B = args[1]
	}
	return
}

func (inst Jump) Name() string {
	name := jumpMnemonic[inst.Cond]
	if inst.Mode == ADDR_RELATIVE {
		name = "R" + name
	}
	return name
}

func (inst Jump) Arguments() (args []Operand) {
	args = []Operand{inst.Dest}
	if inst.A != nil {
		args = append(args, inst.A)
	}
	if inst.B != nil {
		args = append(args, inst.B)
	}
	return
}

func (inst Jump) Destination() Operand {
	return inst.Dest
}

func (inst Jump) Addressing() Addressing {
	return inst.Mode
}

func (inst Jump) WithDestination(dest Operand) Instruction {
	inst.Dest = dest
	return inst
}

func (inst Jump) Compute(cpu *Cpu) (value int, err error) {
	return
}

func (inst Jump) Advance(cpu *Cpu) (err error) {
	inputs, err := resolveAll(cpu, inst.Arguments()[1:]...)
	if err != nil {
		return
	}
	if !inst.Cond.Test(inputs...) {
		cpu.Next()
		return
	}
	return jumpTo(cpu, inst.Mode, inst.Dest)
}

// jumpTo sets ip from a destination operand.
func jumpTo(cpu *Cpu, mode Addressing, dest Operand) (err error) {
	target, err := dest.Resolve(cpu)
	if err != nil {
		return
	}
	if mode == ADDR_RELATIVE {
		target += cpu.Ip()
	}
	cpu.SetIp(target)
	return
}

// Call pushes the address of the following instruction, then jumps to Dest.
type Call struct {
	Mode Addressing
	Dest Operand
}

var _ Destined = Call{}

func NewCall(mode Addressing, dest Operand) (inst Call, err error) {
	inst = Call{Mode: mode, Dest: dest}
	if dest == nil {
		err = errors.Join(ErrConfiguration, ErrArgumentCount, errors.New(inst.Name()))
	}
	return
}

func (inst Call) Name() string {
	if inst.Mode == ADDR_RELATIVE {
		return "RCALL"
	}
	return "CALL"
}

func (inst Call) Arguments() []Operand {
	return []Operand{inst.Dest}
}

func (inst Call) Destination() Operand {
	return inst.Dest
}

func (inst Call) Addressing() Addressing {
	return inst.Mode
}

func (inst Call) WithDestination(dest Operand) Instruction {
	inst.Dest = dest
	return inst
}

func (inst Call) Compute(cpu *Cpu) (value int, err error) {
	err = cpu.Push(cpu.Ip() + 1)
	return
}

func (inst Call) Advance(cpu *Cpu) error {
	return jumpTo(cpu, inst.Mode, inst.Dest)
}

// Return pops the instruction pointer from the stack.
type Return struct{}

func (Return) Name() string {
	return "RET"
}

func (Return) Arguments() []Operand {
	return nil
}

func (Return) Compute(cpu *Cpu) (value int, err error) {
	return
}

func (Return) Advance(cpu *Cpu) (err error) {
	ip, err := cpu.Pop()
	if err != nil {
		return
	}
	cpu.SetIp(ip)
	return
}
