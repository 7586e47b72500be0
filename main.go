package main

import (
	"fmt"
	"os"

	"github.com/dxpr/content-intel/cmd"
	"github.com/dxpr/content-intel/logging"
)

// Version is overridden by ldflags at release time.
var Version = "dev"

func main() {
	defer logging.Sync()

	if err := cmd.NewRootCommand(Version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
