// Command listq translates HTTP list queries into parameterized SQL.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/listq/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
