// Package cpu implements the dt31 virtual machine and its assembler.
//
// The CPU consists of named integer registers plus the reserved instruction
// pointer (ip), a fixed-size memory array with optional wraparound, and a
// bounded stack. Instructions are immutable values that compute a result,
// advance ip, and optionally store the result to a register or memory cell.
//
// The assembler turns a symbolic Program, instructions interleaved with
// labels, into a resolved instruction list in two passes. Program text is
// parsed with an Assembler, which supports labels, character literals,
// equates, and compile-time $(...) expressions.
package cpu
