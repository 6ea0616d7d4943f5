package wasm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
)

// Runtime hosts engine modules. Compiled modules are cached by name and
// every engine instance gets its own module instance.
type Runtime struct {
	runtime wazero.Runtime
	logger  *zap.Logger

	// name -> wazero.CompiledModule
	modules sync.Map
	// the env host module is built once, from the imports of the first module compiled
	envOnce sync.Once
	envErr  error

	seq       uint64
	closeOnce sync.Once
	closed    chan struct{}
}

func NewRuntime(ctx context.Context, logger *zap.Logger) (*Runtime, error) {
	r := wazero.NewRuntime(ctx)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		r.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate wasi: %w", err)
	}
	logger.Debug("wasm runtime initialized")
	return &Runtime{
		runtime: r,
		logger:  logger.With(zap.String("component", "wasm-runtime")),
		closed:  make(chan struct{}),
	}, nil
}

// Close shuts the runtime and every engine instance down. Safe to call more than once.
func (r *Runtime) Close(ctx context.Context) error {
	var err error
	r.closeOnce.Do(func() {
		err = r.runtime.Close(ctx)
		close(r.closed)
		r.logger.Debug("wasm runtime closed")
	})
	return err
}

func (r *Runtime) IsClosed() bool {
	select {
	case <-r.closed:
		return true
	default:
		return false
	}
}

// CompileFile compiles the engine module at path, or returns the cached copy.
func (r *Runtime) CompileFile(ctx context.Context, path string) (wazero.CompiledModule, error) {
	if cached, ok := r.modules.Load(path); ok {
		return cached.(wazero.CompiledModule), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CompilationError{ModuleName: path, Err: err}
	}
	return r.Compile(ctx, path, data)
}

func (r *Runtime) Compile(ctx context.Context, name string, data []byte) (wazero.CompiledModule, error) {
	if cached, ok := r.modules.Load(name); ok {
		return cached.(wazero.CompiledModule), nil
	}
	compiled, err := r.runtime.CompileModule(ctx, data)
	if err != nil {
		return nil, &CompilationError{ModuleName: name, Err: err}
	}
	r.envOnce.Do(func() { r.envErr = r.instantiateEnv(ctx, compiled) })
	if r.envErr != nil {
		return nil, &CompilationError{ModuleName: name, Err: r.envErr}
	}
	r.logger.Debug("compiled engine module", zap.String("module", name), zap.Int("size_bytes", len(data)))
	actual, _ := r.modules.LoadOrStore(name, compiled)
	return actual.(wazero.CompiledModule), nil
}

// instantiateEnv satisfies the "env" imports of an emscripten build.
// Memory growth notifications are ignored, abort-style imports trap, anything
// else returns zeros.
func (r *Runtime) instantiateEnv(ctx context.Context, compiled wazero.CompiledModule) error {
	builder := r.runtime.NewHostModuleBuilder("env")
	count := 0
	for _, fn := range compiled.ImportedFunctions() {
		module, name, _ := fn.Import()
		if module != "env" {
			continue
		}
		params, results := fn.ParamTypes(), fn.ResultTypes()
		builder.NewFunctionBuilder().
			WithGoModuleFunction(r.envStub(name, len(results)), params, results).
			Export(name)
		count++
	}
	if count == 0 {
		return nil
	}
	_, err := builder.Instantiate(ctx)
	return err
}

func (r *Runtime) envStub(name string, nresults int) api.GoModuleFunc {
	fatal := strings.Contains(name, "abort") || strings.HasPrefix(name, "__assert") || name == "exit"
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		if fatal {
			panic(fmt.Errorf("engine called env.%s", name))
		}
		if name != "emscripten_notify_memory_growth" {
			r.logger.Debug("env import stubbed", zap.String("name", name))
		}
		for i := 0; i < nresults && i < len(stack); i++ {
			stack[i] = 0
		}
	}
}

// instantiate creates a fresh module instance for one engine.
func (r *Runtime) instantiate(ctx context.Context, name string, compiled wazero.CompiledModule) (api.Module, error) {
	id := fmt.Sprintf("unicorn-%d", atomic.AddUint64(&r.seq, 1))
	config := wazero.NewModuleConfig().
		WithName(id).
		WithStartFunctions("_initialize")
	mod, err := r.runtime.InstantiateModule(ctx, compiled, config)
	if err != nil {
		return nil, &InstantiationError{ModuleName: name, InstanceID: id, Err: err}
	}
	r.logger.Debug("engine instance created", zap.String("module", name), zap.String("instance_id", id))
	return mod, nil
}
