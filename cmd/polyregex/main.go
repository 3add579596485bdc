// Command polyregex validates, inspects and executes regular expressions.
package main

import (
	"os"

	"github.com/coregx/polyregex/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
