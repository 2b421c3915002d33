package main

import (
	"fmt"
	"os"

	"github.com/vfg2006/margin-dashboard-api/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
