package io

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape_ReadLine(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("first\r\nsecond\nlast")}

	line, err := tape.ReadLine()
	assert.NoError(err)
	assert.Equal("first", line)

	line, err = tape.ReadLine()
	assert.NoError(err)
	assert.Equal("second", line)

	line, err = tape.ReadLine()
	assert.NoError(err)
	assert.Equal("last", line)

	_, err = tape.ReadLine()
	assert.ErrorIs(err, io.EOF)
}

func TestTape_ReadNumber(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("42\n -7 \nseven\n")}

	value, err := tape.ReadNumber()
	assert.NoError(err)
	assert.Equal(42, value)

	value, err = tape.ReadNumber()
	assert.NoError(err)
	assert.Equal(-7, value)

	_, err = tape.ReadNumber()
	assert.ErrorIs(err, ErrInputInvalid("seven"))
}

func TestTape_ReadChar(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("x\nλ\nxy\n")}

	value, err := tape.ReadChar()
	assert.NoError(err)
	assert.Equal('x', value)

	value, err = tape.ReadChar()
	assert.NoError(err)
	assert.Equal('λ', value)

	_, err = tape.ReadChar()
	assert.ErrorIs(err, ErrInputInvalid("xy"))
}

func TestTape_Write(t *testing.T) {
	assert := assert.New(t)

	var buff bytes.Buffer
	tape := &Tape{Output: &buff}

	assert.NoError(tape.WriteNumber(6, false))
	assert.NoError(tape.WriteNumber(-12, true))
	assert.NoError(tape.WriteChar('H', false))
	assert.NoError(tape.WriteChar('i', true))

	assert.Equal("6-12\nHi\n", buff.String())
}

func TestTape_Missing(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}

	_, err := tape.ReadNumber()
	assert.ErrorIs(err, ErrTapeInput)

	err = tape.WriteChar('a', false)
	assert.ErrorIs(err, ErrTapeOutput)
}

func TestTape_InputChanged(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("1\n")}
	value, err := tape.ReadNumber()
	assert.NoError(err)
	assert.Equal(1, value)

	tape.Input = strings.NewReader("2\n")
	value, err = tape.ReadNumber()
	assert.NoError(err)
	assert.Equal(2, value)
}
