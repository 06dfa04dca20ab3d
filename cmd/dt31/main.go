// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command dt31 parses, checks, formats and executes dt31 assembly programs.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ezrec/dt31/cpu"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "dt31",
	Short: "The dt31 virtual CPU and assembler",
	Long: `Dt31 runs programs for a small virtual CPU with named registers,
a flat memory array and a bounded stack.

Programs are written in a line-oriented assembly language: one instruction
per line, 'name:' labels, ';' comments, R.x registers and [x] memory
references. The run command assembles and executes a program, check only
validates it, and fmt rewrites it in canonical layout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		var logger *zap.Logger
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return
		}
		zap.ReplaceGlobals(logger)
		return
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
}

// ErrExit carries the status of a program that executed EXIT.
type ErrExit int

func (err ErrExit) Error() string {
	return fmt.Sprintf("exit status %d", int(err))
}

// exitCode maps a command error to a process exit code.
func exitCode(err error) int {
	var status ErrExit
	switch {
	case err == nil:
		return 0
	case errors.As(err, &status):
		return int(status)
	default:
		return 1
	}
}

// parseFile reads and parses a program file.
func parseFile(path string) (prog cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	prog, err = asm.Parse(inf)
	return
}

func main() {
	err := rootCmd.Execute()
	code := exitCode(err)
	if code != 0 && !errors.As(err, new(ErrExit)) {
		fmt.Fprintf(os.Stderr, "%v: %v\n", rootCmd.Name(), err)
	}
	zap.L().Sync()
	os.Exit(code)
}
