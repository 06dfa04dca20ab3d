// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	goio "io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/dt31/cpu"
	"github.com/ezrec/dt31/io"
)

var _ cpu.Console = (*io.Tape)(nil)

// Emulator state. CPU + program listing + console tape.
type Emulator struct {
	Verbose  bool        // If set, enables verbose logging.
	Debug    bool        // If set, traces and pauses after every instruction.
	*cpu.Cpu             // Reference to the CPU simulation.
	Program  cpu.Program // The currently running program listing.

	Tape     io.Tape       // Console I/O.
	Registry *cpu.Registry // Opcode registry; the built-in set if nil.
	Logger   *zap.Logger

	Steps int // Instructions executed since the last reset.
}

// NewEmulator creates a new emulator with a CPU built from config.
func NewEmulator(config cpu.Config, logger *zap.Logger) (emu *Emulator, err error) {
	if logger == nil {
		logger = zap.L()
	}

	emu = &Emulator{
		Logger: logger.Named("emulator"),
	}

	emu.Cpu, err = cpu.NewCpu(config, emu.options()...)
	if err != nil {
		emu = nil
		return
	}

	return
}

func (emu *Emulator) options() []cpu.Option {
	opts := []cpu.Option{
		cpu.WithConsole(&emu.Tape),
		cpu.WithLogger(emu.Logger),
	}
	if emu.Registry != nil {
		opts = append(opts, cpu.WithRegistry(emu.Registry))
	}
	return opts
}

func (emu *Emulator) assembler() *cpu.Assembler {
	return &cpu.Assembler{
		Verbose:  emu.Verbose,
		Logger:   emu.Logger,
		Registry: emu.Registry,
	}
}

// Parse reads program text into the emulator's program listing.
func (emu *Emulator) Parse(input goio.Reader) (err error) {
	prog, err := emu.assembler().Parse(input)
	if err != nil {
		return
	}
	emu.Program = prog
	return
}

// Reset assembles the program listing and loads it into the CPU.
func (emu *Emulator) Reset() (err error) {
	insts, err := emu.assembler().Assemble(emu.Program)
	if err != nil {
		return
	}

	emu.Cpu.Load(insts)
	emu.Steps = 0

	if emu.Verbose {
		emu.Logger.Debug("reset", zap.Int("instructions", len(insts)))
	}

	return
}

// LineNo returns the current line number for the executing instruction,
// or 0 if there is none.
func (emu *Emulator) LineNo() int {
	stmt, ok := emu.Program.Debug(emu.Cpu.Ip())
	if !ok {
		return 0
	}
	return stmt.LineNo
}

// Tick executes a single instruction. done is set when the program has ended.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	inst, _ := emu.Cpu.Current()
	value, err := emu.Cpu.Step()
	if errors.Is(err, cpu.ErrEndOfProgram) {
		err = nil
		done = true
		if status, ok := emu.Cpu.Exited(); ok && emu.Verbose {
			emu.Logger.Debug("exit", zap.Int("status", status), zap.Int("steps", emu.Steps))
		}
		return
	}
	if err != nil {
		return
	}

	emu.Steps++

	_, isBreak := inst.(cpu.Break)
	if emu.Debug || emu.Cpu.Debug || isBreak {
		err = emu.trace(inst, value)
	}

	return
}

// Run ticks until the program ends or fails.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}
}

// trace writes the executed instruction, its value and the CPU state to the
// tape, then waits for a line of input. End of input does not pause.
func (emu *Emulator) trace(inst cpu.Instruction, value int) (err error) {
	if emu.Tape.Output != nil {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%v -> %v\n", cpu.Text(inst), value)
		sb.WriteString(emu.Cpu.String())
		_, err = goio.WriteString(emu.Tape.Output, sb.String())
		if err != nil {
			return
		}
	}

	if emu.Tape.Input == nil {
		return
	}

	_, err = emu.Tape.ReadLine()
	if errors.Is(err, goio.EOF) {
		err = nil
	}

	return
}

// SaveState writes a YAML snapshot of the CPU to path.
func (emu *Emulator) SaveState(path string) (err error) {
	data, err := yaml.Marshal(emu.Cpu.Dump())
	if err != nil {
		return
	}
	err = os.WriteFile(path, data, 0o644)
	return
}

// LoadState replaces the CPU with one restored from a YAML snapshot at path.
// A snapshot without program text resumes the emulator's program listing.
func (emu *Emulator) LoadState(path string) (err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var state cpu.State
	err = yaml.Unmarshal(data, &state)
	if err != nil {
		err = &ErrState{Path: path, Err: err}
		return
	}

	opts := emu.options()
	if state.Program == nil {
		var insts []cpu.Instruction
		insts, err = emu.assembler().Assemble(emu.Program)
		if err != nil {
			return
		}
		opts = append(opts, cpu.WithProgram(insts))
	}

	restored, err := cpu.Restore(state, opts...)
	if err != nil {
		err = &ErrState{Path: path, Err: err}
		return
	}

	if state.Program != nil {
		err = emu.Parse(strings.NewReader(*state.Program))
		if err != nil {
			return
		}
	}

	emu.Cpu = restored
	emu.Steps = 0

	return
}
