package main

import (
	"github.com/driftloom/photofs/cmd"
	"github.com/driftloom/photofs/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
