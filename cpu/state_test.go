package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestState_Resume(t *testing.T) {
	assert := assert.New(t)

	insts := mustAssemble(t,
		"    CP 5, R.a",
		"    CP 1, R.b",
		"loop:",
		"    MUL R.b, R.a",
		"    PUSH R.b",
		"    CP R.b, [R.a]",
		"    SUB R.a, 1",
		"    JGT loop, R.a, 0",
	)

	original := mustCpu(t)
	original.Load(insts)
	for range 9 {
		_, err := original.Step()
		require.NoError(t, err)
	}

	data, err := yaml.Marshal(original.Dump())
	require.NoError(t, err)

	var state State
	require.NoError(t, yaml.Unmarshal(data, &state))

	resumed, err := Restore(state)
	require.NoError(t, err)
	assert.Equal(original.Dump(), resumed.Dump())
	assert.Equal(original.Program(), resumed.Program())

	for _, cpu := range []*Cpu{original, resumed} {
		for {
			_, err := cpu.Step()
			if err == ErrEndOfProgram {
				break
			}
			require.NoError(t, err)
		}
	}

	assert.Equal(original.Dump(), resumed.Dump())
	value, _ := resumed.GetRegister("b")
	assert.Equal(120, value)
	assert.Equal([]int{5, 20, 60, 120, 120}, resumed.Stack.Data)
}

func TestState_Dump(t *testing.T) {
	assert := assert.New(t)

	cpu, err := NewCpu(Config{Registers: []string{"x"}, MemorySize: 4, StackSize: 3, WrapMemory: true})
	require.NoError(t, err)
	cpu.SetRegister("x", 2)
	cpu.SetMemory(1, 9)

	state := cpu.Dump()
	assert.Equal(State{
		Registers:  map[string]int{"x": 2, IP: 0},
		Memory:     []int{0, 9, 0, 0},
		Stack:      []int{},
		MemorySize: 4,
		StackSize:  3,
		WrapMemory: true,
	}, state)

	// The snapshot is a copy.
	state.Memory[1] = 0
	value, _ := cpu.GetMemory(1)
	assert.Equal(9, value)
}

func TestState_Missing(t *testing.T) {
	assert := assert.New(t)

	full := map[string]any{
		"registers":   map[string]int{"ip": 0},
		"memory":      []int{0},
		"stack":       []int{},
		"memory_size": 1,
		"stack_size":  1,
		"wrap_memory": false,
	}

	for _, name := range stateRequired {
		partial := map[string]any{}
		for key, value := range full {
			if key != name {
				partial[key] = value
			}
		}
		data, err := yaml.Marshal(partial)
		require.NoError(t, err)

		var state State
		err = yaml.Unmarshal(data, &state)
		assert.ErrorIs(err, ErrStateField(name), name)
		assert.ErrorIs(err, ErrConfiguration, name)
		assert.Contains(err.Error(), name)
	}

	data, err := yaml.Marshal(full)
	require.NoError(t, err)
	var state State
	assert.NoError(yaml.Unmarshal(data, &state))
	assert.Nil(state.Program)
}

func TestState_Restore_Invalid(t *testing.T) {
	assert := assert.New(t)

	_, err := Restore(State{Memory: []int{0}, MemorySize: 1, StackSize: 1})
	assert.ErrorIs(err, ErrStateField("registers"))

	_, err = Restore(State{Registers: map[string]int{IP: 0}, MemorySize: 1, StackSize: 1})
	assert.ErrorIs(err, ErrStateField("memory"))

	_, err = Restore(State{Registers: map[string]int{"a": 0}, Memory: []int{0}, MemorySize: 1, StackSize: 1})
	assert.ErrorIs(err, ErrStateField("registers.ip"))

	_, err = Restore(State{Registers: map[string]int{IP: 0}, Memory: []int{0, 0}, MemorySize: 1, StackSize: 1})
	assert.ErrorIs(err, ErrConfiguration)

	_, err = Restore(State{Registers: map[string]int{IP: 0}, Memory: []int{0}, Stack: []int{1, 2}, MemorySize: 1, StackSize: 1})
	assert.ErrorIs(err, ErrStackOverflow)

	text := "FROB 1\n"
	_, err = Restore(State{Registers: map[string]int{IP: 0}, Memory: []int{0}, MemorySize: 1, StackSize: 1, Program: &text})
	assert.ErrorIs(err, ErrOpcodeInvalid)
}

func TestState_Restore_Registers(t *testing.T) {
	assert := assert.New(t)

	insts := mustAssemble(t, "CP 1, R.count_2", "ADD R.count_2, R.X")
	cpu, err := NewCpu(Config{Registers: []string{"count_2", "X"}, MemorySize: 2, StackSize: 1}, WithProgram(insts))
	require.NoError(t, err)
	assert.Equal(insts, cpu.Program())
	assert.NoError(cpu.SetRegister("X", 4))
	_, err = cpu.Step()
	require.NoError(t, err)

	resumed, err := Restore(cpu.Dump())
	require.NoError(t, err)
	assert.Equal(cpu.Dump(), resumed.Dump())

	_, err = resumed.Step()
	assert.NoError(err)
	value, _ := resumed.GetRegister("count_2")
	assert.Equal(5, value)

	_, err = Restore(State{Registers: map[string]int{"x-y": 0, IP: 0}, Memory: []int{0}, MemorySize: 1, StackSize: 1})
	assert.ErrorIs(err, ErrConfiguration)
	assert.ErrorIs(err, ErrRegisterInvalid("x-y"))
}

func TestState_Exit(t *testing.T) {
	assert := assert.New(t)

	cpu := mustCpu(t)
	err := cpu.Run(mustAssemble(t, "CP 1, R.a", "EXIT 3", "CP 2, R.a"))
	require.NoError(t, err)

	data, err := yaml.Marshal(cpu.Dump())
	require.NoError(t, err)
	assert.Contains(string(data), "exit_status: 3")

	var state State
	require.NoError(t, yaml.Unmarshal(data, &state))
	resumed, err := Restore(state)
	require.NoError(t, err)

	status, ok := resumed.Exited()
	assert.True(ok)
	assert.Equal(3, status)
	assert.Equal(3, resumed.Ip())
	_, err = resumed.Step()
	assert.ErrorIs(err, ErrEndOfProgram)

	// A CPU that has not exited carries no status.
	fresh := mustCpu(t)
	assert.Nil(fresh.Dump().ExitStatus)
	data, err = yaml.Marshal(fresh.Dump())
	require.NoError(t, err)
	assert.NotContains(string(data), "exit_status")
}
