// Package config loads CPU configurations from CUE files.
//
// Files are unified with a closed schema, so unknown keys and invalid
// values are rejected, and absent keys take the CPU defaults. Several
// files may be given; their values must agree.
package config

import (
	"fmt"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/ezrec/dt31/cpu"
)

// Schema is the CUE schema of a CPU configuration.
var Schema = fmt.Sprintf(`
registers?:  [...string & =~"^\\w+$" & !=%q]
memory_size: int & >0 | *%d
stack_size:  int & >0 | *%d
wrap_memory: bool | *false
`, cpu.IP, cpu.MEMORY_SIZE, cpu.STACK_LIMIT)

// Loader loads a configuration once, on first use.
type Loader struct {
	getConfig func() (cpu.Config, error)
}

type source struct {
	name    string
	content []byte
}

// NewLoader returns a loader of the CUE files at paths.
func NewLoader(paths ...string) Loader {
	return Loader{
		getConfig: sync.OnceValues(func() (config cpu.Config, err error) {
			var sources []source
			for _, path := range paths {
				var content []byte
				content, err = os.ReadFile(path)
				if err != nil {
					return
				}
				sources = append(sources, source{name: path, content: content})
			}
			return compile(sources...)
		}),
	}
}

// Config returns the loaded configuration.
func (l Loader) Config() (cpu.Config, error) {
	return l.getConfig()
}

// Load loads and merges the CUE files at paths.
func Load(paths ...string) (cpu.Config, error) {
	return NewLoader(paths...).Config()
}

// LoadString loads a configuration from CUE source text.
func LoadString(src string) (cpu.Config, error) {
	return compile(source{name: "config", content: []byte(src)})
}

func compile(sources ...source) (config cpu.Config, err error) {
	ctx := cuecontext.New()

	value := ctx.CompileString("close({"+Schema+"})", cue.Filename("schema"))
	if err = value.Err(); err != nil {
		return
	}

	for _, src := range sources {
		file := ctx.CompileBytes(src.content, cue.Filename(src.name))
		if err = file.Err(); err != nil {
			err = &ErrConfig{Name: src.name, Err: err}
			return
		}
		value = value.Unify(file)
		if err = value.Validate(); err != nil {
			err = &ErrConfig{Name: src.name, Err: err}
			return
		}
	}

	err = value.Decode(&config)
	if err != nil {
		err = &ErrConfig{Name: "config", Err: err}
		return
	}

	err = config.Validate()
	return
}
