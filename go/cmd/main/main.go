package main

import (
	"github.com/lunixbochs/ucjs/go/cmd"

	_ "github.com/lunixbochs/ucjs/go/cmd/tui"
	_ "github.com/lunixbochs/ucjs/go/cmd/repl"

	_ "github.com/lunixbochs/ucjs/go/cmd/asm"
	_ "github.com/lunixbochs/ucjs/go/cmd/consts"
	_ "github.com/lunixbochs/ucjs/go/cmd/dis"
	_ "github.com/lunixbochs/ucjs/go/cmd/script"
)

func main() { cmd.Main() }
