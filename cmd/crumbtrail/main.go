// crumbtrail replays host lifecycle sessions through the breadcrumb bridge
// and prints or exports the resulting breadcrumbs.
package main

import (
	"fmt"
	"os"
)

// Version information injected by GoReleaser at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
