package cpu

// BinaryOp is a two-input ALU, comparison or logic operation.
type BinaryOp int

//go:generate go tool stringer -linecomment -type=BinaryOp
const (
	OP_ADD  = BinaryOp(0)  // ADD
	OP_SUB  = BinaryOp(1)  // SUB
	OP_MUL  = BinaryOp(2)  // MUL
	OP_DIV  = BinaryOp(3)  // DIV
	OP_MOD  = BinaryOp(4)  // MOD
	OP_BSL  = BinaryOp(5)  // BSL
	OP_BSR  = BinaryOp(6)  // BSR
	OP_BAND = BinaryOp(7)  // BAND
	OP_BOR  = BinaryOp(8)  // BOR
	OP_BXOR = BinaryOp(9)  // BXOR
	OP_LT   = BinaryOp(10) // LT
	OP_GT   = BinaryOp(11) // GT
	OP_LE   = BinaryOp(12) // LE
	OP_GE   = BinaryOp(13) // GE
	OP_EQ   = BinaryOp(14) // EQ
	OP_NE   = BinaryOp(15) // NE
	OP_AND  = BinaryOp(16) // AND
	OP_OR   = BinaryOp(17) // OR
	OP_XOR  = BinaryOp(18) // XOR
)

// UnaryOp is a single-input operation.
type UnaryOp int

//go:generate go tool stringer -linecomment -type=UnaryOp
const (
	OP_BNOT = UnaryOp(0) // BNOT
	OP_NOT  = UnaryOp(1) // NOT
)

// Addressing selects how a jump destination is interpreted.
type Addressing int

//go:generate go tool stringer -linecomment -type=Addressing
const (
	ADDR_ABSOLUTE = Addressing(0) // absolute
	ADDR_RELATIVE = Addressing(1) // relative
)

// Condition selects when a jump is taken.
type Condition int

//go:generate go tool stringer -linecomment -type=Condition
const (
	COND_ALWAYS = Condition(0) // always
	COND_EQ     = Condition(1) // eq
	COND_NE     = Condition(2) // ne
	COND_GT     = Condition(3) // gt
	COND_GE     = Condition(4) // ge
	COND_TRUTHY = Condition(5) // if
)

// Arity is the number of comparison inputs the condition consumes.
func (cond Condition) Arity() int {
	switch cond {
	case COND_ALWAYS:
		return 0
	case COND_TRUTHY:
		return 1
	default:
		return 2
	}
}

// Test evaluates the condition on its inputs.
func (cond Condition) Test(args ...int) bool {
	switch cond {
	case COND_ALWAYS:
		return true
	case COND_EQ:
		return args[0] == args[1]
	case COND_NE:
		return args[0] != args[1]
	case COND_GT:
		return args[0] > args[1]
	case COND_GE:
		return args[0] >= args[1]
	case COND_TRUTHY:
		return args[0] != 0
	}
	return false
}

var jumpMnemonic = map[Condition]string{
	COND_ALWAYS: "JMP",
	COND_EQ:     "JEQ",
	COND_NE:     "JNE",
	COND_GT:     "JGT",
	COND_GE:     "JGE",
	COND_TRUTHY: "JIF",
}

func truth(b bool) int {
	if b {
		return 1
	}
	return 0
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod is the remainder of floorDiv; it takes the sign of b.
func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

// Apply performs the operation.
func (op BinaryOp) Apply(a, b int) (value int, err error) {
	switch op {
	case OP_ADD:
		value = a + b
	case OP_SUB:
		value = a - b
	case OP_MUL:
		value = a * b
	case OP_DIV:
		if b == 0 {
			err = ErrDivisionByZero
			return
		}
		value = floorDiv(a, b)
	case OP_MOD:
		if b == 0 {
			err = ErrDivisionByZero
			return
		}
		value = floorMod(a, b)
	case OP_BSL:
		if b < 0 {
			err = ErrShiftNegative
			return
		}
		value = a << b
	case OP_BSR:
		if b < 0 {
			err = ErrShiftNegative
			return
		}
		value = a >> b
	case OP_BAND:
		value = a & b
	case OP_BOR:
		value = a | b
	case OP_BXOR:
		value = a ^ b
	case OP_LT:
		value = truth(a < b)
	case OP_GT:
		value = truth(a > b)
	case OP_LE:
		value = truth(a <= b)
	case OP_GE:
		value = truth(a >= b)
	case OP_EQ:
		value = truth(a == b)
	case OP_NE:
		value = truth(a != b)
	case OP_AND:
		value = truth(a != 0 && b != 0)
	case OP_OR:
		value = truth(a != 0 || b != 0)
	case OP_XOR:
		value = truth((a != 0) != (b != 0))
	default:
		err = ErrOpcodeInvalid
	}
	return
}

// Apply performs the operation.
func (op UnaryOp) Apply(a int) (value int, err error) {
	switch op {
	case OP_BNOT:
		value = ^a
	case OP_NOT:
		value = truth(a == 0)
	default:
		err = ErrOpcodeInvalid
	}
	return
}
