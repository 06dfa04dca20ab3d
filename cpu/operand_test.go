package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperand_Resolve(t *testing.T) {
	assert := assert.New(t)

	cpu := mustCpu(t)
	cpu.SetRegister("a", 3)
	cpu.SetMemory(3, 8)
	cpu.SetMemory(8, -4)

	table := [](struct {
		op       Operand
		expected int
	}){
		{Literal(-12), -12},
		{Character('A'), 65},
		{a, 3},
		{Mem(Literal(3)), 8},
		{Mem(a), 8},
		{Mem(Mem(a)), -4},
	}

	for _, entry := range table {
		value, err := entry.op.Resolve(cpu)
		assert.NoError(err, entry.op.String())
		assert.Equal(entry.expected, value, entry.op.String())
	}

	_, err := Register("q").Resolve(cpu)
	assert.ErrorIs(err, ErrRegisterUnknown("q"))

	_, err = Mem(Literal(MEMORY_SIZE)).Resolve(cpu)
	assert.ErrorIs(err, ErrMemoryBounds(MEMORY_SIZE))

	_, err = Label("x").Resolve(cpu)
	assert.ErrorIs(err, ErrLabelUnresolved("x"))
}

func TestOperand_Store(t *testing.T) {
	assert := assert.New(t)

	cpu := mustCpu(t)
	cpu.SetRegister("a", 5)

	assert.NoError(Mem(a).Store(cpu, 11))
	value, _ := cpu.GetMemory(5)
	assert.Equal(11, value)

	assert.NoError(b.Store(cpu, 7))
	value, _ = cpu.GetRegister("b")
	assert.Equal(7, value)

	assert.ErrorIs(Mem(Literal(-1)).Store(cpu, 1), ErrMemoryBounds(-1))
	assert.ErrorIs(Register("q").Store(cpu, 1), ErrRegisterUnknown("q"))
}

func TestOperand_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("-3", Literal(-3).String())
	assert.Equal("'a'", Character('a').String())
	assert.Equal(`'\t'`, Character('\t').String())
	assert.Equal(`'\e'`, Character('\033').String())
	assert.Equal("R.ip", Register(IP).String())
	assert.Equal("[[R.a]]", Mem(Mem(a)).String())
	assert.Equal("loop", Label("loop").String())
}

func TestAsOperand(t *testing.T) {
	assert := assert.New(t)

	for _, arg := range []any{7, int8(7), int16(7), int32(7), int64(7), uint(7), uint8(7), uint16(7), uint32(7)} {
		op, err := AsOperand(arg)
		assert.NoError(err)
		assert.Equal(Literal(7), op)
	}

	op, err := AsOperand(a)
	assert.NoError(err)
	assert.Equal(a, op)

	_, err = AsOperand(1.5)
	assert.ErrorIs(err, ErrConfiguration)
	assert.ErrorIs(err, ErrOperandInvalid)

	ref, err := AsReference(Mem(Literal(1)))
	assert.NoError(err)
	assert.Equal(Mem(Literal(1)), ref)

	ref, err = AsReference(nil)
	assert.NoError(err)
	assert.Nil(ref)

	_, err = AsReference(Literal(1))
	assert.ErrorIs(err, ErrOutputInvalid)
}
