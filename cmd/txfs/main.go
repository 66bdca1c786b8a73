package main

import (
	"fmt"
	"os"

	"github.com/marmos91/txfs/cmd/txfs/commands"

	// Import prometheus metrics to register init() functions
	_ "github.com/marmos91/txfs/pkg/metrics/prometheus"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
