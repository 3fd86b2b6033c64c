package main

import (
	"os"

	"github.com/thiagonache/gcbench"
)

func main() {
	if err := gcbench.RunCLI(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
