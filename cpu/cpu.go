// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// IP is the reserved name of the instruction pointer register.
const IP = "ip"

const (
	MEMORY_SIZE = 256 // Default memory cell count.
)

// DefaultRegisters are the general purpose registers of a default CPU.
var DefaultRegisters = []string{"a", "b", "c"}

// Config is the construction-time shape of a CPU.
type Config struct {
	Registers  []string `json:"registers,omitempty" yaml:"registers,omitempty"`
	MemorySize int      `json:"memory_size" yaml:"memory_size"`
	StackSize  int      `json:"stack_size" yaml:"stack_size"`
	WrapMemory bool     `json:"wrap_memory" yaml:"wrap_memory"`
}

// DefaultConfig returns the configuration of a default CPU.
func DefaultConfig() Config {
	return Config{
		MemorySize: MEMORY_SIZE,
		StackSize:  STACK_LIMIT,
	}
}

// Validate checks the configuration for construction errors.
func (config Config) Validate() (err error) {
	if config.MemorySize <= 0 {
		return errors.Join(ErrConfiguration, ErrMemorySize)
	}
	if config.StackSize <= 0 {
		return errors.Join(ErrConfiguration, ErrStackSize)
	}
	for _, name := range config.Registers {
		switch name {
		case IP:
			return errors.Join(ErrConfiguration, ErrRegisterIp)
		case "":
			return errors.Join(ErrConfiguration, ErrRegisterEmpty)
		}
		if !reName.MatchString(name) {
			return errors.Join(ErrConfiguration, ErrRegisterInvalid(name))
		}
	}
	return
}

// Console is the external environment of the numeric and character
// I/O instructions.
type Console interface {
	ReadNumber() (value int, err error)
	ReadChar() (value rune, err error)
	WriteNumber(value int, newline bool) error
	WriteChar(value rune, newline bool) error
}

// Option adjusts a CPU at construction.
type Option func(cpu *Cpu)

// WithLogger sets the logger used for verbose tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(cpu *Cpu) {
		cpu.logger = logger
	}
}

// WithConsole attaches the console used by I/O instructions.
func WithConsole(console Console) Option {
	return func(cpu *Cpu) {
		cpu.Console = console
	}
}

// WithRegistry sets the opcode registry used when a CPU parses program text,
// as Restore does.
func WithRegistry(registry *Registry) Option {
	return func(cpu *Cpu) {
		cpu.registry = registry
	}
}

// WithProgram loads instructions at construction. Restore keeps them when
// the snapshot carries no program text.
func WithProgram(instructions []Instruction) Option {
	return func(cpu *Cpu) {
		cpu.program = instructions
	}
}

// Cpu is the simulation context of the virtual machine. A Cpu is not safe
// for concurrent use; independent Cpus share no state.
type Cpu struct {
	Verbose bool    // Set to enable verbose logging.
	Debug   bool    // Set by BRKD; requests step-by-step tracing from the host.
	Console Console // I/O environment.

	Stack Stack // Stack simulation.

	config    Config
	names     []string       // Register names in declaration order, ip last.
	register  map[string]int // Register file.
	memory    []int          // Memory cells.
	program   []Instruction  // Loaded instructions.
	exited    bool
	exitState int

	registry *Registry
	logger   *zap.Logger
}

// NewCpu creates a CPU from config.
func NewCpu(config Config, opts ...Option) (cpu *Cpu, err error) {
	err = config.Validate()
	if err != nil {
		return
	}

	names := config.Registers
	if names == nil {
		names = DefaultRegisters
	}
	config.Registers = slices.Clone(names)

	cpu = &Cpu{
		config:   config,
		register: make(map[string]int, len(names)+1),
		memory:   make([]int, config.MemorySize),
		Stack:    Stack{Limit: config.StackSize},
	}
	for _, name := range names {
		if _, ok := cpu.register[name]; ok {
			continue
		}
		cpu.register[name] = 0
		cpu.names = append(cpu.names, name)
	}
	cpu.register[IP] = 0
	cpu.names = append(cpu.names, IP)

	for _, opt := range opts {
		opt(cpu)
	}

	if cpu.logger == nil {
		cpu.logger = zap.L()
	}
	cpu.logger = cpu.logger.Named("cpu")

	return
}

// Config returns the configuration the CPU was built from.
func (cpu *Cpu) Config() Config {
	config := cpu.config
	config.Registers = slices.Clone(config.Registers)
	return config
}

// Registers returns the register names, ip last.
func (cpu *Cpu) Registers() []string {
	return slices.Clone(cpu.names)
}

// GetRegister reads a register.
func (cpu *Cpu) GetRegister(name string) (value int, err error) {
	value, ok := cpu.register[name]
	if !ok {
		err = ErrRegisterUnknown(name)
	}
	return
}

// SetRegister writes a register.
func (cpu *Cpu) SetRegister(name string, value int) (err error) {
	if _, ok := cpu.register[name]; !ok {
		err = ErrRegisterUnknown(name)
		return
	}
	cpu.register[name] = value
	return
}

// Ip returns the instruction pointer.
func (cpu *Cpu) Ip() int {
	return cpu.register[IP]
}

// SetIp sets the instruction pointer.
func (cpu *Cpu) SetIp(ip int) {
	cpu.register[IP] = ip
}

// index maps a memory index to a cell, honoring the wrap policy.
func (cpu *Cpu) index(index int) (cell int, err error) {
	size := len(cpu.memory)
	if cpu.config.WrapMemory {
		cell = ((index % size) + size) % size
		return
	}
	if index < 0 || index >= size {
		err = ErrMemoryBounds(index)
		return
	}
	cell = index
	return
}

// GetMemory reads a memory cell.
func (cpu *Cpu) GetMemory(index int) (value int, err error) {
	cell, err := cpu.index(index)
	if err != nil {
		return
	}
	value = cpu.memory[cell]
	return
}

// SetMemory writes a memory cell.
func (cpu *Cpu) SetMemory(index int, value int) (err error) {
	cell, err := cpu.index(index)
	if err != nil {
		return
	}
	cpu.memory[cell] = value
	return
}

// Push a value on the stack.
func (cpu *Cpu) Push(value int) error {
	return cpu.Stack.Push(value)
}

// Pop a value from the stack.
func (cpu *Cpu) Pop() (value int, err error) {
	return cpu.Stack.Pop()
}

// Next advances the instruction pointer to the following instruction.
func (cpu *Cpu) Next() {
	cpu.register[IP]++
}

// Program returns the loaded instructions.
func (cpu *Cpu) Program() []Instruction {
	return cpu.program
}

// Exited reports whether an EXIT instruction ran, and its status.
func (cpu *Cpu) Exited() (status int, ok bool) {
	return cpu.exitState, cpu.exited
}

// exit records an exit status and moves ip past the end of the program.
func (cpu *Cpu) exit(status int) {
	cpu.exited = true
	cpu.exitState = status
	cpu.register[IP] = len(cpu.program)
}

// Load installs instructions and resets the instruction pointer.
func (cpu *Cpu) Load(instructions []Instruction) {
	cpu.register[IP] = 0
	cpu.program = instructions
	cpu.exited = false
	cpu.exitState = 0
}

// Current returns the instruction at ip, if any.
func (cpu *Cpu) Current() (inst Instruction, ok bool) {
	ip := cpu.register[IP]
	if ip < 0 || ip >= len(cpu.program) {
		return
	}
	return cpu.program[ip], true
}

// Step executes the instruction at ip and returns its computed value.
// ErrEndOfProgram is returned when ip is outside of the program.
func (cpu *Cpu) Step() (value int, err error) {
	ip := cpu.register[IP]
	inst, ok := cpu.Current()
	if !ok {
		err = ErrEndOfProgram
		return
	}

	defer func() {
		if err != nil {
			err = &ErrInstruction{Ip: ip, Instruction: inst, Err: err}
		}
	}()

	value, err = cpu.Execute(inst)

	if cpu.Verbose {
		cpu.logger.Debug("step",
			zap.Int("ip", ip),
			zap.Stringer("instruction", textStringer{inst}),
			zap.Int("value", value),
			zap.Error(err))
	}

	return
}

// Execute runs a single instruction: compute, advance, then store any output.
func (cpu *Cpu) Execute(inst Instruction) (value int, err error) {
	value, err = inst.Compute(cpu)
	if err != nil {
		return
	}

	err = inst.Advance(cpu)
	if err != nil {
		return
	}

	if storer, ok := inst.(Storer); ok {
		if out := storer.Output(); out != nil {
			err = out.Store(cpu, value)
		}
	}

	return
}

// Run loads instructions and steps until the program ends or fails.
func (cpu *Cpu) Run(instructions []Instruction) (err error) {
	cpu.Load(instructions)
	for {
		_, err = cpu.Step()
		if errors.Is(err, ErrEndOfProgram) {
			return nil
		}
		if err != nil {
			return
		}
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	for _, name := range cpu.names {
		fmt.Fprintf(&sb, "% 6s: %v\n", "R."+name, cpu.register[name])
	}

	stack := make([]string, len(cpu.Stack.Data))
	for n, value := range cpu.Stack.Data {
		stack[n] = fmt.Sprint(value)
	}
	fmt.Fprintf(&sb, "% 6s: [%v]\n", "stack", strings.Join(stack, " "))

	for n, value := range cpu.memory {
		if value != 0 {
			fmt.Fprintf(&sb, "% 6s: %v\n", fmt.Sprintf("M[%d]", n), value)
		}
	}

	text = sb.String()
	return
}

// registerValues returns a copy of the register file.
func (cpu *Cpu) registerValues() map[string]int {
	return maps.Clone(cpu.register)
}
