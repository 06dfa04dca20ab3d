package cpu

import (
	"errors"
	"iter"
	"slices"

	"github.com/ezrec/dt31/internal"
)

// Statement is one element of a symbolic program: a label definition,
// an instruction, a comment, or a label followed by its instruction.
type Statement struct {
	LineNo      int         // Source line number; 0 when built in code.
	Label       Label       // Label defined at this position, if any.
	Instruction Instruction // Instruction, if any.
	Comment     string      // Comment text, without the leading ';'.
}

// Program is a symbolic program: instructions interleaved with labels.
type Program []Statement

// NewProgram builds a program from Label and Instruction values, in order.
func NewProgram(items ...any) (prog Program, err error) {
	for _, item := range items {
		switch v := item.(type) {
		case Label:
			prog = append(prog, Statement{Label: v})
		case Instruction:
			prog = append(prog, Statement{Instruction: v})
		default:
			err = errors.Join(ErrConfiguration, errors.New(f("program item %v (%T) is not a label or instruction", item, item)))
			return
		}
	}
	return
}

// Instructions yields the instructions of the program, in order.
func (prog Program) Instructions() iter.Seq[Instruction] {
	return func(yield func(Instruction) bool) {
		for _, stmt := range prog {
			if stmt.Instruction == nil {
				continue
			}
			if !yield(stmt.Instruction) {
				return
			}
		}
	}
}

// Debug returns the statement holding the ip-th instruction.
func (prog Program) Debug(ip int) (stmt Statement, ok bool) {
	if ip < 0 {
		return
	}
	for _, stmt = range prog {
		if stmt.Instruction == nil {
			continue
		}
		if ip == 0 {
			ok = true
			return
		}
		ip--
	}
	stmt = Statement{}
	return
}

// Operands yields every operand of every instruction, including operands
// nested in memory references.
func (prog Program) Operands() iter.Seq[Operand] {
	return func(yield func(Operand) bool) {
		for inst := range prog.Instructions() {
			for _, arg := range inst.Arguments() {
				if !walkOperand(arg, yield) {
					return
				}
			}
		}
	}
}

// Registers returns the sorted names of the registers the program uses,
// excluding ip.
func (prog Program) Registers() (names []string) {
	isRegister := func(op Operand) bool {
		reg, ok := op.(Register)
		return ok && reg != IP
	}
	for op := range internal.IterSeqFilter(prog.Operands(), isRegister) {
		name := string(op.(Register))
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return
}
