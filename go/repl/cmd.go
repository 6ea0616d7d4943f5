// Package repl holds the inspector's command registry. Commands are parsed
// with shell quoting and their arguments converted with argjoy.
package repl

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/lunixbochs/argjoy"
	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
)

type Command struct {
	Name  string
	Usage string
	Desc  string
	Run   interface{}
}

var Commands = make(map[string]*Command)

func cmd(c *Command) *Command {
	fn := reflect.ValueOf(c.Run)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		panic(fmt.Sprintf("Command.Run must be a func: got (%T) %#v\n", c.Run, c.Run))
	}
	Commands[c.Name] = c
	return c
}

// Names lists registered commands alphabetically.
func Names() []string {
	names := make([]string, 0, len(Commands))
	for name := range Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var aj = argjoy.NewArgjoy()

// Run executes one command line. Failures are printed to the context, and
// also returned so scripted callers can stop.
func Run(c *Context, line string) error {
	args, err := shellwords.Parse(line)
	if err != nil {
		c.Printf("parse error: %v\n", err)
		return err
	}
	if len(args) == 0 {
		return nil
	}
	name, args := args[0], args[1:]
	cmd, ok := Commands[name]
	if !ok {
		c.Printf("command not found: %s\n", name)
		return errors.Errorf("command not found: %s", name)
	}
	out, err := aj.Call(cmd.Run, c, args)
	if err != nil {
		c.Printf("error: %v\n", err)
		return err
	}
	if len(out) > 0 {
		if err, ok := out[0].(error); ok {
			c.Printf("error: %v\n", err)
			return err
		}
	}
	return nil
}

// parseNum accepts decimal, 0x hex, 0o octal and 0b binary.
func parseNum(s string) (uint64, error) {
	if strings.HasPrefix(s, "-") {
		n, err := strconv.ParseInt(s, 0, 64)
		return uint64(n), err
	}
	return strconv.ParseUint(s, 0, 64)
}

// optNum parses args[i] when present, or returns def.
func optNum(args []string, i int, def uint64) (uint64, error) {
	if i >= len(args) {
		return def, nil
	}
	n, err := parseNum(args[i])
	if err != nil {
		return 0, errors.Wrapf(err, "bad number %q", args[i])
	}
	return n, nil
}

func usage(name string) error {
	c := Commands[name]
	return errors.Errorf("usage: %s %s", c.Name, c.Usage)
}
