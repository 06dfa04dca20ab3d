package cpu

import (
	"errors"

	"github.com/ezrec/dt31/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrConfiguration  = errors.New(f("configuration invalid"))
	ErrEndOfProgram   = errors.New(f("end of program"))
	ErrStackOverflow  = errors.New(f("stack overflow"))
	ErrStackUnderflow = errors.New(f("stack underflow"))
	ErrDivisionByZero = errors.New(f("division by zero"))
	ErrShiftNegative  = errors.New(f("negative shift count"))
	ErrConsoleMissing = errors.New(f("console missing"))

	// Construction errors
	ErrMemorySize      = errors.New(f("memory_size must be greater than 0"))
	ErrStackSize       = errors.New(f("stack_size must be greater than 0"))
	ErrRegisterIp      = errors.New(f("register name 'ip' is reserved"))
	ErrRegisterEmpty   = errors.New(f("register name empty"))
	ErrOperandInvalid  = errors.New(f("operand invalid"))
	ErrOutputMissing   = errors.New(f("output reference missing"))
	ErrOutputInvalid   = errors.New(f("output must be a register or memory reference"))
	ErrArgumentCount   = errors.New(f("argument count"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOpcodeDuplicate = errors.New(f("opcode duplicated"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelInvalid    = errors.New(f("label name invalid"))
	ErrLabelAddress    = errors.New(f("labels cannot be used as memory addresses"))
)

// ErrRegisterUnknown names a register absent from the register file.
type ErrRegisterUnknown string

func (err ErrRegisterUnknown) Error() string {
	return f("unknown register %v", string(err))
}

// ErrRegisterInvalid names a register that cannot be written as R.name.
type ErrRegisterInvalid string

func (err ErrRegisterInvalid) Error() string {
	return f("register name '%v' is not a word", string(err))
}

// ErrMemoryBounds is an out-of-range memory index.
type ErrMemoryBounds int

func (err ErrMemoryBounds) Error() string {
	return f("memory has no index %d", int(err))
}

func (err ErrMemoryBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrMemoryBounds)
	return
}

type ErrLabelDuplicate string

func (err ErrLabelDuplicate) Error() string {
	return f("label %v used more than once", string(err))
}

type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label %v missing", string(err))
}

// ErrLabelUnresolved is raised when a label reaches execution; it always
// indicates a program that was not assembled.
type ErrLabelUnresolved string

func (err ErrLabelUnresolved) Error() string {
	return f("label %v resolved at runtime", string(err))
}

// ErrLabelOperand is a label in an operand position the assembler
// does not resolve.
type ErrLabelOperand struct {
	Label       string
	Instruction string
}

func (err ErrLabelOperand) Error() string {
	return f("%v: label %v is not a destination", err.Instruction, err.Label)
}

// ErrStateField names a field missing from a CPU snapshot.
type ErrStateField string

func (err ErrStateField) Error() string {
	return f("state missing required field %v", string(err))
}

func (err ErrStateField) Unwrap() error {
	return ErrConfiguration
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value, register, memory reference or label", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a single character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax locates a parse failure in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrInstruction locates a runtime failure at an instruction.
type ErrInstruction struct {
	Ip          int
	Instruction Instruction
	Err         error
}

func (err *ErrInstruction) Error() string {
	return f("ip %d %v: %v", err.Ip, Text(err.Instruction), err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}
