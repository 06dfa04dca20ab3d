package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Tape provides line-oriented console I/O over byte streams.
// Numeric and character input are read one line at a time.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	reader *bufio.Reader
	source io.Reader
}

// input returns the buffered reader of Input, rebuilding it if Input changed.
func (tc *Tape) input() (reader *bufio.Reader, err error) {
	if tc.Input == nil {
		err = ErrTapeInput
		return
	}
	if tc.reader == nil || tc.source != tc.Input {
		tc.reader = bufio.NewReader(tc.Input)
		tc.source = tc.Input
	}
	reader = tc.reader
	return
}

// ReadLine reads a line of input, without its line terminator.
// io.EOF is returned only when no characters remain.
func (tc *Tape) ReadLine() (line string, err error) {
	reader, err := tc.input()
	if err != nil {
		return
	}
	line, err = reader.ReadString('\n')
	if err == io.EOF && len(line) > 0 {
		err = nil
	}
	line = strings.TrimRight(line, "\r\n")
	return
}

// ReadNumber reads a line holding a decimal integer.
func (tc *Tape) ReadNumber() (value int, err error) {
	line, err := tc.ReadLine()
	if err != nil {
		return
	}
	v64, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		err = ErrInputInvalid(line)
		return
	}
	value = int(v64)
	return
}

// ReadChar reads a line holding exactly one character.
func (tc *Tape) ReadChar() (value rune, err error) {
	line, err := tc.ReadLine()
	if err != nil {
		return
	}
	if utf8.RuneCountInString(line) != 1 {
		err = ErrInputInvalid(line)
		return
	}
	value, _ = utf8.DecodeRuneInString(line)
	return
}

func (tc *Tape) write(value any, newline bool) (err error) {
	if tc.Output == nil {
		err = ErrTapeOutput
		return
	}
	if newline {
		_, err = fmt.Fprintln(tc.Output, value)
	} else {
		_, err = fmt.Fprint(tc.Output, value)
	}
	return
}

// WriteNumber writes value in decimal, optionally followed by a newline.
func (tc *Tape) WriteNumber(value int, newline bool) error {
	return tc.write(value, newline)
}

// WriteChar writes a character, optionally followed by a newline.
func (tc *Tape) WriteChar(value rune, newline bool) error {
	return tc.write(string(value), newline)
}
