package config

import (
	"fmt"
	"io"
	"os"
)

var (
	exitOutput io.Writer = os.Stderr
	exitFunc             = os.Exit
)

// Exitf writes a formatted error message to stderr and exits with code 1.
// It is for failures that happen before a logger exists.
func Exitf(format string, args ...any) {
	fmt.Fprintf(exitOutput, format+"\n", args...)
	exitFunc(1)
}
