// Command thermex evaluates thermal expansion, stress and uncertainty for
// precision materials.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/thermex/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
