package repl

import (
	"fmt"
	"io"

	"github.com/lunixbochs/ucjs/go/models"
)

type Context struct {
	io.Writer
	M models.Machine
}

func (c *Context) Printf(format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(c, format, a...)
}
