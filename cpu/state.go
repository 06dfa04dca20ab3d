package cpu

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// State is a complete CPU snapshot, sufficient to resume execution in a
// fresh CPU.
type State struct {
	Registers  map[string]int `yaml:"registers"` // All registers, including ip.
	Memory     []int          `yaml:"memory"`    // The entire memory array.
	Stack      []int          `yaml:"stack"`     // Bottom to top.
	MemorySize int            `yaml:"memory_size"`
	StackSize  int            `yaml:"stack_size"`
	WrapMemory bool           `yaml:"wrap_memory"`
	Program    *string        `yaml:"program,omitempty"` // Text of the loaded program.
	ExitStatus *int           `yaml:"exit_status,omitempty"` // Set once EXIT has run.
}

var stateRequired = []string{"registers", "memory", "stack", "memory_size", "stack_size", "wrap_memory"}

// UnmarshalYAML decodes a snapshot, failing with ErrStateField when a
// required key is absent.
func (state *State) UnmarshalYAML(node *yaml.Node) (err error) {
	var fields map[string]yaml.Node
	err = node.Decode(&fields)
	if err != nil {
		return
	}
	for _, name := range stateRequired {
		if _, ok := fields[name]; !ok {
			err = ErrStateField(name)
			return
		}
	}

	type plain State
	return node.Decode((*plain)(state))
}

// Dump returns a snapshot of the CPU.
func (cpu *Cpu) Dump() (state State) {
	state = State{
		Registers:  cpu.registerValues(),
		Memory:     slices.Clone(cpu.memory),
		Stack:      slices.Clone(cpu.Stack.Data),
		MemorySize: cpu.config.MemorySize,
		StackSize:  cpu.config.StackSize,
		WrapMemory: cpu.config.WrapMemory,
	}
	if state.Stack == nil {
		state.Stack = []int{}
	}
	if status, ok := cpu.Exited(); ok {
		state.ExitStatus = &status
	}

	if len(cpu.program) > 0 {
		lines := make([]string, len(cpu.program))
		for n, inst := range cpu.program {
			lines[n] = Text(inst)
		}
		text := strings.Join(lines, "\n") + "\n"
		state.Program = &text
	}

	return
}

// Restore builds a CPU from a snapshot. A program text in the snapshot is
// parsed with the CPU's registry and loaded without resetting ip.
func Restore(state State, opts ...Option) (cpu *Cpu, err error) {
	switch {
	case state.Registers == nil:
		err = ErrStateField("registers")
	case state.Memory == nil:
		err = ErrStateField("memory")
	}
	if err != nil {
		return
	}
	ip, ok := state.Registers[IP]
	if !ok {
		err = ErrStateField("registers.ip")
		return
	}
	if len(state.Memory) != state.MemorySize {
		err = errors.Join(ErrConfiguration, errors.New(f("memory has %d cells, memory_size is %d", len(state.Memory), state.MemorySize)))
		return
	}
	if len(state.Stack) > state.StackSize {
		err = errors.Join(ErrConfiguration, ErrStackOverflow)
		return
	}

	names := slices.Sorted(maps.Keys(state.Registers))
	names = slices.DeleteFunc(names, func(name string) bool { return name == IP })

	config := Config{
		Registers:  names,
		MemorySize: state.MemorySize,
		StackSize:  state.StackSize,
		WrapMemory: state.WrapMemory,
	}

	cpu, err = NewCpu(config, opts...)
	if err != nil {
		return
	}

	if state.Program != nil {
		asm := &Assembler{Registry: cpu.registry, Logger: cpu.logger}
		var prog Program
		prog, err = asm.Parse(strings.NewReader(*state.Program))
		if err == nil {
			cpu.program, err = Assemble(prog)
		}
		if err != nil {
			cpu = nil
			return
		}
	}

	maps.Copy(cpu.register, state.Registers)
	copy(cpu.memory, state.Memory)
	cpu.Stack.Data = slices.Clone(state.Stack)
	cpu.register[IP] = ip
	if state.ExitStatus != nil {
		cpu.exited = true
		cpu.exitState = *state.ExitStatus
	}

	return
}
