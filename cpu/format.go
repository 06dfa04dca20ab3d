package cpu

import (
	"strings"
)

// FormatOptions controls how Format renders a Program as text.
type FormatOptions struct {
	IndentSize           int  // Spaces before each instruction.
	CommentSpacing       int  // Spaces before an inline ';'.
	LabelInline          bool // Place labels on the line of the following instruction.
	BlankLineBeforeLabel bool // Separate label groups with a blank line.
	AlignComments        bool // Align inline comments at CommentColumn.
	CommentColumn        int
	StripComments        bool // Drop all comments.
	HideDefaultOut       bool // Omit operands left at their defaults.
}

// DefaultFormat returns the default formatting options.
func DefaultFormat() FormatOptions {
	return FormatOptions{
		IndentSize:           4,
		CommentSpacing:       1,
		BlankLineBeforeLabel: true,
		CommentColumn:        40,
	}
}

func (opts FormatOptions) withComment(text string, comment string) string {
	if opts.StripComments || len(comment) == 0 {
		return text
	}
	pad := opts.CommentSpacing
	if opts.AlignComments && len(text) < opts.CommentColumn {
		pad = opts.CommentColumn - len(text)
	}
	return text + strings.Repeat(" ", pad) + "; " + comment
}

// Format renders a program as text, one statement per line, ending with
// a newline unless the result is empty.
func Format(prog Program, opts FormatOptions) string {
	indent := strings.Repeat(" ", opts.IndentSize)

	var lines []string
	var pending []Statement
	prevLabel := false

	flushLabels := func() {
		for _, stmt := range pending {
			lines = append(lines, opts.withComment(string(stmt.Label)+":", stmt.Comment))
		}
		pending = nil
	}

	for _, stmt := range prog {
		if len(stmt.Label) != 0 {
			if opts.BlankLineBeforeLabel && len(lines) > 0 && !prevLabel {
				lines = append(lines, "")
			}
			prevLabel = true
			labelOnly := stmt
			labelOnly.Instruction = nil
			if stmt.Instruction != nil {
				labelOnly.Comment = ""
			}
			if opts.LabelInline {
				pending = append(pending, labelOnly)
			} else {
				lines = append(lines, opts.withComment(string(stmt.Label)+":", labelOnly.Comment))
			}
			if stmt.Instruction == nil {
				continue
			}
		}

		if stmt.Instruction == nil {
			// Standalone comment.
			if !opts.StripComments && len(stmt.Comment) != 0 {
				flushLabels()
				lines = append(lines, "; "+stmt.Comment)
			}
			prevLabel = false
			continue
		}

		prevLabel = false
		prefix := indent
		comment := stmt.Comment
		if len(pending) > 0 {
			var names []string
			for _, label := range pending {
				names = append(names, string(label.Label)+":")
			}
			prefix = strings.Join(names, " ") + " "
			if len(comment) == 0 {
				comment = pending[len(pending)-1].Comment
			}
			pending = nil
		}

		text := TextAll(stmt.Instruction)
		if opts.HideDefaultOut {
			text = Text(stmt.Instruction)
		}
		lines = append(lines, opts.withComment(prefix+text, comment))
	}

	flushLabels()

	text := strings.Join(lines, "\n")
	if len(text) > 0 {
		text += "\n"
	}
	return text
}
