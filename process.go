package cascade

import (
	"os"
	"runtime"
)

type osProcess struct{}

// OSProcess returns the Process backed by os.Args, os.Environ and runtime.GOOS.
func OSProcess() Process {
	return osProcess{}
}

func (osProcess) Args() []string    { return os.Args }
func (osProcess) Environ() []string { return os.Environ() }
func (osProcess) Platform() string  { return runtime.GOOS }

func (osProcess) MkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// StaticProcess is a fixed Process. Directories are created on the real
// filesystem unless SkipMkdir is set.
type StaticProcess struct {
	Argv      []string
	Env       []string
	OS        string
	SkipMkdir bool
}

func (p StaticProcess) Args() []string    { return p.Argv }
func (p StaticProcess) Environ() []string { return p.Env }
func (p StaticProcess) Platform() string  { return p.OS }

func (p StaticProcess) MkdirAll(dir string) error {
	if p.SkipMkdir {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
