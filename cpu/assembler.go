// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"go.uber.org/zap"
)

// Assemble resolves the labels of a symbolic program, returning the
// executable instruction list. Jump and call destinations naming a label
// become literal positions (absolute) or signed deltas from the jump's own
// position (relative). The input program is not modified.
func Assemble(prog Program) (insts []Instruction, err error) {
	// First pass: record every label position.
	label := make(map[Label]int, 16)
	ip := 0
	for _, stmt := range prog {
		if len(stmt.Label) != 0 {
			if _, ok := label[stmt.Label]; ok {
				err = ErrLabelDuplicate(stmt.Label)
				return
			}
			label[stmt.Label] = ip
		}
		if stmt.Instruction != nil {
			ip++
		}
	}

	// Second pass: resolve destinations.
	insts = make([]Instruction, 0, ip)
	for inst := range prog.Instructions() {
		ip = len(insts)
		args := inst.Arguments()

		destined, isDestined := inst.(Destined)
		if isDestined {
			if name, ok := destined.Destination().(Label); ok {
				target, ok := label[name]
				if !ok {
					err = ErrLabelMissing(name)
					insts = nil
					return
				}
				if destined.Addressing() == ADDR_RELATIVE {
					target -= ip
				}
				inst = destined.WithDestination(Literal(target))
				args = args[1:]
			}
		}

		for _, arg := range args {
			walkOperand(arg, func(op Operand) bool {
				if name, ok := op.(Label); ok {
					err = ErrLabelOperand{Label: string(name), Instruction: inst.Name()}
					return false
				}
				return true
			})
			if err != nil {
				insts = nil
				return
			}
		}

		insts = append(insts, inst)
	}

	return
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
	"STACK_LIMIT": fmt.Sprintf("%d", STACK_LIMIT),
}

// Assembler parses program text into a symbolic Program, and assembles it.
type Assembler struct {
	Verbose  bool        // If set, verbosely logs the assembler actions.
	Logger   *zap.Logger // Logger for verbose output; zap.L() if nil.
	Registry *Registry   // Opcode registry; the built-in set if nil.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

func (asm *Assembler) logger() *zap.Logger {
	if asm.Logger == nil {
		return zap.L().Named("asm")
	}
	return asm.Logger.Named("asm")
}

func (asm *Assembler) registry() *Registry {
	if asm.Registry == nil {
		return builtinRegistry
	}
	return asm.Registry
}

// Assemble resolves the labels of prog, logging the result when verbose.
func (asm *Assembler) Assemble(prog Program) (insts []Instruction, err error) {
	insts, err = Assemble(prog)
	if err != nil {
		return
	}
	if asm.Verbose {
		logger := asm.logger()
		for ip, inst := range insts {
			logger.Debug("assembled", zap.Int("ip", ip), zap.Stringer("instruction", textStringer{inst}))
		}
	}
	return
}

var (
	reToken    = regexp.MustCompile(`'(?:\\.|[^'\\])+'|[^\s,]+`)
	reLabel    = regexp.MustCompile(`^([^\s:']+)\s*:(.*)$`)
	reName     = regexp.MustCompile(`^\w+$`)
	reMemory   = regexp.MustCompile(`^M?\[(.+)\]$`)
	reRegister = regexp.MustCompile(`^R\.(\w+)$`)
	reNumber   = regexp.MustCompile(`^[-+]?[0-9]`)
	reParen    = regexp.MustCompile(`\$\(([^\$]*)\)`)
)

var characterUnescape = map[string]rune{
	`\n`: '\n',
	`\t`: '\t',
	`\r`: '\r',
	`\0`: 0,
	`\e`: '\033',
	`\\`: '\\',
	`\'`: '\'',
}

// valueOf parses a decimal or 0x-prefixed hexadecimal integer literal.
// Leading zeros do not select octal.
func valueOf(word string) (value int, err error) {
	digits, base := word, 10
	sign := ""
	if len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
		sign, digits = digits[:1], digits[1:]
	}
	if hex, ok := strings.CutPrefix(strings.ToLower(digits), "0x"); ok {
		digits, base = hex, 16
	}
	v64, err := strconv.ParseInt(sign+digits, base, 64)
	if err == nil && len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
		err = strconv.ErrSyntax
	}
	if err != nil {
		err = ErrParseNumber(word)
		return
	}
	value = int(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var equ int
		equ, err = valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(equ)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// splitComment separates the code of a line from its ';' comment.
func splitComment(line string) (code string, comment string) {
	quoted := false
	for n := 0; n < len(line); n++ {
		switch line[n] {
		case '\\':
			if quoted {
				n++
			}
		case '\'':
			quoted = !quoted
		case ';':
			if !quoted {
				return line[:n], strings.TrimSpace(line[n+1:])
			}
		}
	}
	return line, ""
}

// parseCharacter decodes a quoted character literal.
func parseCharacter(word string) (ch Character, err error) {
	body := word[1 : len(word)-1]
	if r, ok := characterUnescape[body]; ok {
		ch = Character(r)
		return
	}
	if utf8.RuneCountInString(body) != 1 || body == `\` {
		err = ErrParseCharacter(body)
		return
	}
	r, _ := utf8.DecodeRuneInString(body)
	ch = Character(r)
	return
}

// parseOperand parses a single operand word.
func (asm *Assembler) parseOperand(word string) (op Operand, err error) {
	if equ, ok := asm.Equate[word]; ok {
		word = equ
	}

	if len(word) >= 3 && word[0] == '\'' && word[len(word)-1] == '\'' {
		return parseCharacter(word)
	}

	if match := reMemory.FindStringSubmatch(word); match != nil {
		var addr Operand
		addr, err = asm.parseOperand(match[1])
		if err != nil {
			return
		}
		if _, ok := addr.(Label); ok {
			err = errors.Join(ErrLabelAddress, ErrParseValue(word))
			return
		}
		op = Mem(addr)
		return
	}

	if match := reRegister.FindStringSubmatch(word); match != nil {
		op = Register(match[1])
		return
	}

	if reNumber.MatchString(word) {
		var value int
		value, err = valueOf(word)
		op = Literal(value)
		return
	}

	if reName.MatchString(word) {
		op = Label(word)
		return
	}

	err = ErrParseValue(word)
	return
}

// parseLine parses a single line of program text into statements.
func (asm *Assembler) parseLine(text string, lineno int) (stmts []Statement, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line, comment := splitComment(text)
	line = strings.TrimSpace(line)

	if len(line) == 0 {
		if len(comment) != 0 {
			stmts = append(stmts, Statement{LineNo: lineno, Comment: comment})
		}
		return
	}

	// .equ CONST VALUE
	if words := strings.Fields(line); words[0] == ".equ" {
		if len(words) != 3 || !reName.MatchString(words[1]) {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	// Labels: one or more 'name:' prefixes.
	for {
		match := reLabel.FindStringSubmatch(line)
		if match == nil {
			break
		}
		if !reName.MatchString(match[1]) {
			err = errors.Join(ErrLabelInvalid, ErrParseValue(match[1]))
			return
		}
		stmts = append(stmts, Statement{LineNo: lineno, Label: Label(match[1])})
		line = strings.TrimSpace(match[2])
	}

	if len(line) == 0 {
		if len(stmts) > 0 {
			stmts[len(stmts)-1].Comment = comment
		}
		return
	}

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words := reToken.FindAllString(line, -1)

	name := words[0]
	factory, ok := asm.registry().Lookup(name)
	if !ok {
		err = errors.Join(ErrOpcodeInvalid, errors.New(name))
		return
	}

	args := make([]Operand, len(words)-1)
	for n, word := range words[1:] {
		args[n], err = asm.parseOperand(word)
		if err != nil {
			return
		}
	}

	inst, err := factory(args...)
	if err != nil {
		return
	}

	stmts = append(stmts, Statement{LineNo: lineno, Instruction: inst, Comment: comment})

	return
}

// Parse parses an input stream into a symbolic Program.
func (asm *Assembler) Parse(input io.Reader) (prog Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			prog = nil
		}
	}()

	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	logger := asm.logger()

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			logger.Debug("parse", zap.Int("line", lineno), zap.String("text", line))
		}

		var stmts []Statement
		stmts, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		prog = append(prog, stmts...)
	}

	err = scanner.Err()

	return
}
