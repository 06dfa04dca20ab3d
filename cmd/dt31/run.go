package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ezrec/dt31/config"
	"github.com/ezrec/dt31/cpu"
	"github.com/ezrec/dt31/emulator"
)

var runOpts struct {
	debug      bool
	registers  []string
	memory     int
	stackSize  int
	wrapMemory bool
	configs    []string
	dump       string
	resume     string
}

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Assemble and execute a program",
	Long: `Run assembles FILE and executes it until it runs off the end of the
program or executes EXIT, whose status becomes the exit code.

The machine is configured from the --config CUE files, then from flags.
Without --registers the registers are those the program uses.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		prog, err := parseFile(args[0])
		if err != nil {
			return
		}

		machine, err := machineConfig(cmd, prog)
		if err != nil {
			return
		}

		emu, err := emulator.NewEmulator(machine, zap.L())
		if err != nil {
			return
		}
		emu.Verbose = verbose
		emu.Debug = runOpts.debug
		emu.Program = prog
		emu.Tape.Input = cmd.InOrStdin()
		emu.Tape.Output = cmd.OutOrStdout()

		err = emu.Reset()
		if err != nil {
			return
		}

		if len(runOpts.resume) != 0 {
			err = emu.LoadState(runOpts.resume)
			if err != nil {
				return
			}
		}

		err = emu.Run()

		if len(runOpts.dump) != 0 {
			dumpErr := emu.SaveState(runOpts.dump)
			if dumpErr != nil {
				err = errors.Join(err, dumpErr)
			}
		}

		if err != nil {
			if runOpts.debug {
				fmt.Fprintf(cmd.ErrOrStderr(), "CPU state at error:\n%v", emu.Cpu.String())
			}
			return
		}

		if status, ok := emu.Exited(); ok && status != 0 {
			err = ErrExit(status)
		}

		return
	},
}

// machineConfig merges the CUE configuration files, the flags, and the
// registers used by prog.
func machineConfig(cmd *cobra.Command, prog cpu.Program) (machine cpu.Config, err error) {
	machine, err = config.Load(runOpts.configs...)
	if err != nil {
		return
	}

	flags := cmd.Flags()
	if flags.Changed("memory") {
		machine.MemorySize = runOpts.memory
	}
	if flags.Changed("stack-size") {
		machine.StackSize = runOpts.stackSize
	}
	if flags.Changed("wrap-memory") {
		machine.WrapMemory = runOpts.wrapMemory
	}
	if flags.Changed("registers") {
		machine.Registers = runOpts.registers
	}

	used := prog.Registers()
	if machine.Registers == nil {
		if len(used) > 0 {
			machine.Registers = used
		}
		return
	}

	var missing []string
	for _, name := range used {
		if !slices.Contains(machine.Registers, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		err = errors.Join(cpu.ErrConfiguration, fmt.Errorf("program uses registers %v not in %v", missing, machine.Registers))
	}

	return
}

func init() {
	flags := runCmd.Flags()
	flags.BoolVarP(&runOpts.debug, "debug", "d", false, "Trace and pause after every instruction")
	flags.StringSliceVar(&runOpts.registers, "registers", nil, "Comma-separated register names")
	flags.IntVar(&runOpts.memory, "memory", cpu.MEMORY_SIZE, "Memory size in cells")
	flags.IntVar(&runOpts.stackSize, "stack-size", cpu.STACK_LIMIT, "Stack size")
	flags.BoolVar(&runOpts.wrapMemory, "wrap-memory", false, "Wrap memory indexes around the memory size")
	flags.StringSliceVar(&runOpts.configs, "config", nil, "CUE machine configuration files")
	flags.StringVar(&runOpts.dump, "dump", "", "Write a YAML state snapshot here when execution ends")
	flags.StringVar(&runOpts.resume, "resume", "", "Resume from a YAML state snapshot")

	rootCmd.AddCommand(runCmd)
}
