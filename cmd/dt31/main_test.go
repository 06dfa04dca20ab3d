package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/dt31/cpu"
)

const countdown = `; countdown
CP 3, R.a
loop: NOUT R.a, 1
SUB R.a, 1
JGT loop, R.a, 0
`

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		if slice, ok := flag.Value.(pflag.SliceValue); ok {
			slice.Replace(nil)
		} else {
			flag.Value.Set(flag.DefValue)
		}
		flag.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func execute(t *testing.T, input string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)

	var outBuf, errBuf bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "countdown.dt", countdown)
	stdout, _, err := execute(t, "", "run", path)
	assert.NoError(err)
	assert.Equal("3\n2\n1\n", stdout)
	assert.Equal(0, exitCode(err))
}

func TestRun_Exit(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "exit.dt", "NIN R.a\nEXIT R.a\n")
	_, _, err := execute(t, "4\n", "run", path)
	assert.ErrorIs(err, ErrExit(4))
	assert.Equal(4, exitCode(err))
}

func TestRun_Error(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "bad.dt", "POP\n")
	_, stderr, err := execute(t, "", "run", "--debug", path)
	assert.ErrorIs(err, cpu.ErrStackUnderflow)
	assert.Equal(1, exitCode(err))
	assert.Contains(stderr, "CPU state at error")

	_, _, err = execute(t, "", "run", filepath.Join(t.TempDir(), "missing.dt"))
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestRun_Registers(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "regs.dt", "CP 2, R.x\nADD R.x, R.y\nNOUT R.x\n")

	stdout, _, err := execute(t, "", "run", path)
	assert.NoError(err)
	assert.Equal("2", stdout)

	_, _, err = execute(t, "", "run", "--registers", "x,z", path)
	assert.ErrorIs(err, cpu.ErrConfiguration)

	stdout, _, err = execute(t, "", "run", "--registers", "y,x,z", path)
	assert.NoError(err)
	assert.Equal("2", stdout)
}

func TestRun_Config(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "mem.dt", "CP 5, [-1]\nNOUT [7]\n")
	config := writeFile(t, "machine.cue", "memory_size: 8\nwrap_memory: true\n")

	stdout, _, err := execute(t, "", "run", "--config", config, path)
	assert.NoError(err)
	assert.Equal("5", stdout)

	_, _, err = execute(t, "", "run", "--config", config, "--wrap-memory=false", path)
	assert.ErrorIs(err, cpu.ErrMemoryBounds(-1))

	_, _, err = execute(t, "", "run", "--memory", "0", path)
	assert.ErrorIs(err, cpu.ErrConfiguration)
}

func TestRun_DumpResume(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "brk.dt", "CP 3, R.a\nNOUT R.a\nPOP\nNOUT 9\n")
	dump := filepath.Join(t.TempDir(), "state.yaml")

	stdout, _, err := execute(t, "", "run", "--dump", dump, path)
	assert.ErrorIs(err, cpu.ErrStackUnderflow)
	assert.Equal("3", stdout)

	data, err := os.ReadFile(dump)
	assert.NoError(err)
	assert.Contains(string(data), "ip: 2")

	// Resume past the failing POP.
	state := strings.Replace(string(data), "ip: 2", "ip: 3", 1)
	resume := writeFile(t, "resume.yaml", state)
	stdout, _, err = execute(t, "", "run", "--resume", resume, path)
	assert.NoError(err)
	assert.Equal("9", stdout)
}

func TestRun_DumpExit(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "exit.dt", "EXIT 3\nNOUT 9\n")
	dump := filepath.Join(t.TempDir(), "state.yaml")

	_, _, err := execute(t, "", "run", "--dump", dump, path)
	assert.Equal(3, exitCode(err))

	stdout, _, err := execute(t, "", "run", "--resume", dump, path)
	assert.ErrorIs(err, ErrExit(3))
	assert.Empty(stdout)
}

func TestCheck(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "countdown.dt", countdown)
	_, stderr, err := execute(t, "", "check", path)
	assert.NoError(err)
	assert.Contains(stderr, "ok, 4 instructions, registers [a]")

	bad := writeFile(t, "bad.dt", "JMP nowhere\n")
	_, _, err = execute(t, "", "check", bad)
	assert.ErrorIs(err, cpu.ErrLabelMissing("nowhere"))

	bad = writeFile(t, "syntax.dt", "NOOP\nFROB\n")
	_, _, err = execute(t, "", "check", bad)
	var syntaxErr *cpu.ErrSyntax
	assert.ErrorAs(err, &syntaxErr)
	assert.Equal(2, syntaxErr.LineNo)
}

func TestFmt(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "countdown.dt", countdown)
	expected := "; countdown\n    CP 3, R.a\n\nloop:\n    NOUT R.a, 1\n    SUB R.a, 1, R.a\n    JGT loop, R.a, 0\n"

	stdout, _, err := execute(t, "", "fmt", path)
	assert.NoError(err)
	assert.Equal(expected, stdout)

	stdout, _, err = execute(t, "", "fmt", "--label-inline", "--blank-line-before-label=false", "--indent", "2", "--strip-comments", "--hide-default-out", path)
	assert.NoError(err)
	assert.Equal("  CP 3, R.a\nloop: NOUT R.a, 1\n  SUB R.a, 1\n  JGT loop, R.a, 0\n", stdout)

	stdout, _, err = execute(t, "", "fmt", "--write", path)
	assert.NoError(err)
	assert.Empty(stdout)
	data, err := os.ReadFile(path)
	assert.NoError(err)
	assert.Equal(expected, string(data))
}
