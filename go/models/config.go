package models

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Arch     string `mapstructure:"arch"`
	Backend  string `mapstructure:"backend"`
	WasmPath string `mapstructure:"wasm"`

	// base of the code mapping the assembler writes to
	Addr    uint64 `mapstructure:"addr"`
	MemSize uint64 `mapstructure:"mem_size"`
	// optional stack mapping, disabled when StackSize is 0
	StackBase uint64 `mapstructure:"stack_base"`
	StackSize uint64 `mapstructure:"stack_size"`

	// uc_emu_start() limits: microseconds and instruction count, 0 is unlimited
	Timeout uint64 `mapstructure:"timeout"`
	Count   uint64 `mapstructure:"count"`

	Color    bool   `mapstructure:"color"`
	Verbose  bool   `mapstructure:"verbose"`
	LogLevel string `mapstructure:"log_level"`
	History  string `mapstructure:"history"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("arch", "x86_64")
	v.SetDefault("backend", "unicorn")
	v.SetDefault("wasm", "")
	v.SetDefault("addr", 0x10000)
	v.SetDefault("mem_size", 0x10000)
	v.SetDefault("stack_base", 0x7f000000)
	v.SetDefault("stack_size", 0x10000)
	v.SetDefault("timeout", 0)
	v.SetDefault("count", 0)
	v.SetDefault("color", isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "warn")
	v.SetDefault("history", "")
}

func DefaultConfig() *Config {
	c, err := LoadConfig("")
	if err != nil {
		// defaults alone can't fail to decode
		panic(err)
	}
	return c
}

// LoadConfig layers defaults, UCJS_* environment variables and an optional config file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("ucjs")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	return &c, nil
}
