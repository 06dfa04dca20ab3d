// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"strconv"
)

// Operand is a value source resolvable to an integer against CPU state.
type Operand interface {
	fmt.Stringer
	// Resolve the operand to its value. Resolution never modifies the CPU.
	Resolve(cpu *Cpu) (value int, err error)
}

// Reference is an Operand that names a storage location.
type Reference interface {
	Operand
	// Store value at the referenced location.
	Store(cpu *Cpu, value int) error
}

// Literal is a constant value.
type Literal int

func (lit Literal) Resolve(cpu *Cpu) (value int, err error) {
	value = int(lit)
	return
}

func (lit Literal) String() string {
	return strconv.Itoa(int(lit))
}

// Character is a constant value written as a character.
type Character rune

func (ch Character) Resolve(cpu *Cpu) (value int, err error) {
	value = int(ch)
	return
}

var characterEscape = map[rune]string{
	'\n':   `\n`,
	'\t':   `\t`,
	'\r':   `\r`,
	0:      `\0`,
	'\033': `\e`,
	'\\':   `\\`,
	'\'':   `\'`,
}

func (ch Character) String() string {
	if esc, ok := characterEscape[rune(ch)]; ok {
		return "'" + esc + "'"
	}
	return "'" + string(rune(ch)) + "'"
}

// Register references a named CPU register.
type Register string

func (reg Register) Resolve(cpu *Cpu) (value int, err error) {
	return cpu.GetRegister(string(reg))
}

func (reg Register) Store(cpu *Cpu, value int) error {
	return cpu.SetRegister(string(reg), value)
}

func (reg Register) String() string {
	return "R." + string(reg)
}

// Memory references the memory cell at Address. The address may itself be
// any operand, allowing indirection of arbitrary depth.
type Memory struct {
	Address Operand
}

// Mem returns a memory reference to address.
func Mem(address Operand) Memory {
	return Memory{Address: address}
}

func (mem Memory) Resolve(cpu *Cpu) (value int, err error) {
	index, err := mem.Address.Resolve(cpu)
	if err != nil {
		return
	}
	return cpu.GetMemory(index)
}

func (mem Memory) Store(cpu *Cpu, value int) (err error) {
	index, err := mem.Address.Resolve(cpu)
	if err != nil {
		return
	}
	return cpu.SetMemory(index, value)
}

func (mem Memory) String() string {
	return "[" + mem.Address.String() + "]"
}

// Label is a symbolic program position. It exists only before assembly.
type Label string

func (label Label) Resolve(cpu *Cpu) (value int, err error) {
	err = ErrLabelUnresolved(label)
	return
}

func (label Label) String() string {
	return string(label)
}

// AsOperand coerces Go integers into a Literal, and passes through any Operand.
func AsOperand(arg any) (op Operand, err error) {
	switch v := arg.(type) {
	case Operand:
		op = v
		return
	case int:
		op = Literal(v)
		return
	case int8:
		op = Literal(v)
		return
	case int16:
		op = Literal(v)
		return
	case int32:
		op = Literal(v)
		return
	case int64:
		op = Literal(v)
		return
	case uint:
		op = Literal(v)
		return
	case uint8:
		op = Literal(v)
		return
	case uint16:
		op = Literal(v)
		return
	case uint32:
		op = Literal(v)
		return
	}

	err = errors.Join(ErrConfiguration, ErrOperandInvalid, errors.New(f("can't coerce value %v (%T) into operand", arg, arg)))
	return
}

// AsReference coerces arg into a Reference. A nil arg yields a nil Reference.
func AsReference(arg any) (ref Reference, err error) {
	if arg == nil {
		return
	}
	ref, ok := arg.(Reference)
	if !ok {
		err = errors.Join(ErrConfiguration, ErrOutputInvalid, fmt.Errorf("%v", arg))
	}
	return
}

// walkOperand calls yield for op and every operand nested inside it.
func walkOperand(op Operand, yield func(Operand) bool) bool {
	if op == nil {
		return true
	}
	if !yield(op) {
		return false
	}
	if mem, ok := op.(Memory); ok {
		return walkOperand(mem.Address, yield)
	}
	return true
}
