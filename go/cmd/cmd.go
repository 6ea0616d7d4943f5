package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	ucjs "github.com/lunixbochs/ucjs/go"
	"github.com/lunixbochs/ucjs/go/arch"
	"github.com/lunixbochs/ucjs/go/models"
)

// UcCmd is the shared flag, config and machine setup behind every subcommand.
type UcCmd struct {
	Usage string
	Flags *flag.FlagSet

	Config *models.Config
	Logger *zap.Logger
	Arch   *models.Arch

	// skip opening an engine, for commands that only need the arch
	NoMachine bool

	SetupFlags func() error
	RunMachine func(m *ucjs.Machine, args []string) error
	RunArch    func(a *models.Arch, args []string) error

	Stdout io.Writer
	Stderr io.Writer
}

func NewUcCmd(usage string) *UcCmd {
	return &UcCmd{
		Usage:  usage,
		Flags:  flag.NewFlagSet("ucjs", flag.ContinueOnError),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// PrintError prints err, plus its stack when -v is set and one was recorded.
func (c *UcCmd) PrintError(err error) {
	fmt.Fprintf(c.Stderr, "Error: %s\n", err)
	if c.Config == nil || !c.Config.Verbose {
		return
	}
	if st, ok := errors.Cause(err).(stackTracer); ok {
		err = st.(error)
	}
	if st, ok := err.(stackTracer); ok {
		for _, f := range st.StackTrace() {
			method := fmt.Sprintf("%n", f)
			fmt.Fprintf(c.Stderr, "  %s:%d | %s()\n", f, f, method)
			if method == "main" {
				break
			}
		}
	}
}

// NewLogger builds a console logger on stderr. Verbose forces debug level.
func NewLogger(level string, verbose bool) (*zap.Logger, error) {
	var config zap.Config
	if verbose {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, errors.Wrapf(err, "bad log level %q", level)
		}
		config.Level = lvl
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}

type cmdFlags struct {
	arch, backend, wasm, config string
	verbose                     bool
	addr                        uint64
}

func (c *UcCmd) usage() {
	fmt.Fprintf(c.Stderr, "Usage: %s [options] %s\n\nOptions:\n", os.Args[0], c.Usage)
	models.PrintFlags(c.Stderr, models.FlagList(c.Flags))
	fmt.Fprintf(c.Stderr, "\nArchitectures: %s\n", strings.Join(arch.Names(), ", "))
	fmt.Fprintf(c.Stderr, "Backends: %s\n", strings.Join(ucjs.Backends, ", "))
}

// configure parses argv and layers explicitly set flags over the loaded config.
func (c *UcCmd) configure(argv []string) ([]string, error) {
	fs := c.Flags
	var f cmdFlags
	fs.StringVar(&f.arch, "arch", "", "target architecture (default from config: x86_64)")
	fs.StringVar(&f.backend, "backend", "", "engine backend: unicorn, wasm or sim")
	fs.StringVar(&f.wasm, "wasm", "", "path to the engine's wasm build (with -backend wasm)")
	fs.StringVar(&f.config, "config", "", "config file (yaml, json or toml)")
	fs.BoolVar(&f.verbose, "v", false, "verbose output and debug logging")
	fs.Uint64Var(&f.addr, "addr", 0, "code address (default from config: 0x10000)")
	fs.Usage = c.usage
	fs.SetOutput(c.Stderr)
	if c.SetupFlags != nil {
		if err := c.SetupFlags(); err != nil {
			return nil, err
		}
	}
	if err := fs.Parse(argv[1:]); err != nil {
		return nil, err
	}

	config, err := models.LoadConfig(f.config)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "arch":
			config.Arch = f.arch
		case "backend":
			config.Backend = f.backend
		case "wasm":
			config.WasmPath = f.wasm
			if config.Backend == "unicorn" && !isSet(fs, "backend") {
				config.Backend = "wasm"
			}
		case "v":
			config.Verbose = f.verbose
		case "addr":
			config.Addr = f.addr
		}
	})
	c.Config = config
	return fs.Args(), nil
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// Run parses flags, opens the machine and hands off. It returns the process exit code.
func (c *UcCmd) Run(argv []string) int {
	args, err := c.configure(argv)
	if err == flag.ErrHelp {
		return 0
	} else if err != nil {
		fmt.Fprintln(c.Stderr, err)
		return 2
	}
	if c.Logger == nil {
		if c.Logger, err = NewLogger(c.Config.LogLevel, c.Config.Verbose); err != nil {
			fmt.Fprintln(c.Stderr, err)
			return 2
		}
	}
	defer c.Logger.Sync()

	if c.Arch, err = arch.GetArch(c.Config.Arch); err != nil {
		c.PrintError(err)
		return 1
	}
	if c.NoMachine {
		if err := c.RunArch(c.Arch, args); err != nil {
			c.PrintError(err)
			return 1
		}
		return 0
	}

	env := ucjs.NewEnv(c.Logger)
	defer env.Close()
	m, err := env.Machine(c.Config, c.Arch)
	if err != nil {
		c.PrintError(err)
		return 1
	}
	defer m.Close()
	m.SetOutput(c.Stderr)
	if err := c.RunMachine(m, args); err != nil {
		c.PrintError(err)
		return 1
	}
	return 0
}
