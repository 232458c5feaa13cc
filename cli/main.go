package main

import (
	"os"

	"github.com/eno-lang/enotok/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
