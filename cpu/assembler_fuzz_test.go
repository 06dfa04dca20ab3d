package cpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// FuzzAssemble builds programs from a byte script and checks the resolved
// destinations of every jump against the label positions.
func FuzzAssemble(f *testing.F) {
	f.Add([]byte{0x00, 0x41, 0x82, 0xc3})
	f.Add([]byte{0x80, 0x80, 0x00, 0x40, 0xc0})
	f.Add([]byte{})
	f.Add([]byte{0x01, 0x01, 0x41})

	f.Fuzz(func(t *testing.T, script []byte) {
		assert := assert.New(t)

		var prog Program
		labels := map[Label]int{}
		duplicate := false
		ip := 0
		for _, code := range script {
			name := Label(fmt.Sprintf("L%d", code&0x7))
			switch code >> 6 {
			case 0:
				if _, ok := labels[name]; ok {
					duplicate = true
				}
				labels[name] = ip
				prog = append(prog, Statement{Label: name})
			case 1:
				prog = append(prog, Statement{Instruction: mustMake(t, "JMP", name)})
				ip++
			case 2:
				prog = append(prog, Statement{Instruction: mustMake(t, "RJNE", name, a, 0)})
				ip++
			default:
				prog = append(prog, Statement{Instruction: NoOp{}})
				ip++
			}
		}

		insts, err := Assemble(prog)
		if duplicate {
			var dup ErrLabelDuplicate
			assert.True(errors.As(err, &dup))
			return
		}

		var missing ErrLabelMissing
		if errors.As(err, &missing) {
			_, ok := labels[Label(missing)]
			assert.False(ok)
			return
		}
		if !assert.NoError(err) {
			return
		}

		assert.Len(insts, ip)

		n := 0
		for inst := range prog.Instructions() {
			if jump, ok := inst.(Jump); ok {
				target := labels[jump.Dest.(Label)]
				resolved := insts[n].(Jump)
				if jump.Mode == ADDR_RELATIVE {
					assert.Equal(Literal(target-n), resolved.Dest)
				} else {
					assert.Equal(Literal(target), resolved.Dest)
				}
				assert.Equal(jump.Cond, resolved.Cond)
				assert.Equal(jump.A, resolved.A)
			} else {
				assert.Equal(inst, insts[n])
			}
			n++
		}
	})
}
