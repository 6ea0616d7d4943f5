package ucjs

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lunixbochs/ucjs/go/cpu/sim"
	"github.com/lunixbochs/ucjs/go/cpu/unicorn"
	"github.com/lunixbochs/ucjs/go/cpu/wasm"
	"github.com/lunixbochs/ucjs/go/models"
	"github.com/lunixbochs/ucjs/go/models/cpu"
)

var Backends = []string{"unicorn", "wasm", "sim"}

// Env owns state shared between machines, like the wasm runtime.
type Env struct {
	logger  *zap.Logger
	runtime *wasm.Runtime
}

func NewEnv(logger *zap.Logger) *Env {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Env{logger: logger}
}

// Builder picks the engine backend named by config.Backend.
func (e *Env) Builder(arch *models.Arch, config *models.Config) (cpu.Builder, error) {
	switch config.Backend {
	case "", "unicorn":
		return &unicorn.Builder{Arch: arch.UC_ARCH, Mode: arch.UC_MODE}, nil
	case "sim":
		return &sim.Builder{Arch: arch}, nil
	case "wasm":
		if config.WasmPath == "" {
			return nil, errors.New("wasm backend needs a module path (-wasm)")
		}
		if e.runtime == nil {
			rt, err := wasm.NewRuntime(context.Background(), e.logger)
			if err != nil {
				return nil, err
			}
			e.runtime = rt
		}
		return &wasm.Builder{Runtime: e.runtime, Path: config.WasmPath, Arch: arch.UC_ARCH, Mode: arch.UC_MODE}, nil
	}
	return nil, errors.Errorf("unknown backend %q (want one of %v)", config.Backend, Backends)
}

// Machine opens a machine for config.Arch on the configured backend.
func (e *Env) Machine(config *models.Config, arch *models.Arch) (*Machine, error) {
	builder, err := e.Builder(arch, config)
	if err != nil {
		return nil, err
	}
	return NewMachine(arch, builder, config, e.logger)
}

func (e *Env) Close() error {
	if e.runtime != nil {
		return e.runtime.Close(context.Background())
	}
	return nil
}
