package cpu

import (
	"go.uber.org/zap"
)

// NoOp does nothing.
type NoOp struct {
	Sequential
}

func (NoOp) Name() string {
	return "NOOP"
}

func (NoOp) Arguments() []Operand {
	return nil
}

func (NoOp) Compute(cpu *Cpu) (value int, err error) {
	return
}

// Exit ends the program with Status.
type Exit struct {
	Status Operand
}

func NewExit(status Operand) Exit {
	if status == nil {
		status = Literal(0)
	}
	return Exit{Status: status}
}

func (inst Exit) Name() string {
	return "EXIT"
}

func (inst Exit) Arguments() []Operand {
	if inst.Status == nil || inst.Status == Literal(0) {
		return nil
	}
	return []Operand{inst.Status}
}

func (inst Exit) AllArguments() []Operand {
	if inst.Status == nil {
		return []Operand{Literal(0)}
	}
	return []Operand{inst.Status}
}

func (inst Exit) Compute(cpu *Cpu) (value int, err error) {
	if inst.Status != nil {
		value, err = inst.Status.Resolve(cpu)
		if err != nil {
			return
		}
	}
	cpu.exit(value)
	return
}

func (inst Exit) Advance(cpu *Cpu) error {
	return nil
}

// Break is a breakpoint. The host pauses after it executes; a Sticky
// breakpoint (BRKD) also leaves the CPU in debug mode.
type Break struct {
	Sequential
	Sticky bool
}

func (inst Break) Name() string {
	if inst.Sticky {
		return "BRKD"
	}
	return "BRK"
}

func (inst Break) Arguments() []Operand {
	return nil
}

func (inst Break) Compute(cpu *Cpu) (value int, err error) {
	if inst.Sticky {
		cpu.Debug = true
	}
	if cpu.Verbose {
		cpu.logger.Debug("break", zap.Int("ip", cpu.Ip()), zap.Bool("sticky", inst.Sticky))
	}
	return
}
