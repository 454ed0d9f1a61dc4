// Command retained runs the retained-mode UI demo in a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/retained/cmd/retained/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
