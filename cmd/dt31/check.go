package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/dt31/cpu"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Parse and assemble a program without executing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		prog, err := parseFile(args[0])
		if err != nil {
			return
		}

		asm := &cpu.Assembler{Verbose: verbose}
		insts, err := asm.Assemble(prog)
		if err != nil {
			return
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "%v: ok, %d instructions, registers %v\n", args[0], len(insts), prog.Registers())
		return
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
