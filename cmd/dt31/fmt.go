package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/dt31/cpu"
)

var fmtOpts = struct {
	cpu.FormatOptions
	write bool
}{FormatOptions: cpu.DefaultFormat()}

// fmtCmd represents the fmt command
var fmtCmd = &cobra.Command{
	Use:   "fmt FILE",
	Short: "Reformat a program",
	Long: `Fmt parses FILE and prints it in canonical layout, or rewrites FILE
in place with --write.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		prog, err := parseFile(args[0])
		if err != nil {
			return
		}

		text := cpu.Format(prog, fmtOpts.FormatOptions)

		if fmtOpts.write {
			var info os.FileInfo
			info, err = os.Stat(args[0])
			if err != nil {
				return
			}
			err = os.WriteFile(args[0], []byte(text), info.Mode().Perm())
			return
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return
	},
}

func init() {
	flags := fmtCmd.Flags()
	opts := &fmtOpts.FormatOptions
	flags.BoolVarP(&fmtOpts.write, "write", "w", false, "Rewrite the file in place")
	flags.IntVar(&opts.IndentSize, "indent", opts.IndentSize, "Instruction indent")
	flags.IntVar(&opts.CommentSpacing, "comment-spacing", opts.CommentSpacing, "Spaces before an inline comment")
	flags.BoolVar(&opts.LabelInline, "label-inline", opts.LabelInline, "Put labels on the line of their instruction")
	flags.BoolVar(&opts.BlankLineBeforeLabel, "blank-line-before-label", opts.BlankLineBeforeLabel, "Separate labels with a blank line")
	flags.BoolVar(&opts.AlignComments, "align-comments", opts.AlignComments, "Align inline comments")
	flags.IntVar(&opts.CommentColumn, "comment-column", opts.CommentColumn, "Column of aligned comments")
	flags.BoolVar(&opts.StripComments, "strip-comments", opts.StripComments, "Remove comments")
	flags.BoolVar(&opts.HideDefaultOut, "hide-default-out", opts.HideDefaultOut, "Omit operands left at their defaults")

	rootCmd.AddCommand(fmtCmd)
}
