package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		msg := styled(errorStyle, "error: "+err.Error(), isatty.IsTerminal(os.Stderr.Fd()))
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}
