package main

import (
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/synthgen/cmd"
	"github.com/fatih/color"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Errors go to stderr so --quiet never hides them.
		fmt.Fprintln(os.Stderr, color.RedString("❌ %v", err))
		os.Exit(cmd.ExitCode(err))
	}
}
