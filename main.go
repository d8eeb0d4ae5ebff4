// main is the entry point of the gamepulse CLI.
package main

import (
	"github.com/huangsam/gamepulse/cmd"
	"github.com/huangsam/gamepulse/internal/contract"
)

func main() {
	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	if err != nil {
		contract.LogFatal("Cannot run command", err)
	}
}
