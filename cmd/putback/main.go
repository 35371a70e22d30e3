package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/babarot/putback/internal/cli"
)

const appName = "putback"

// These variables are set in build step
var (
	Version   = "unset"
	Revision  = "unset"
	BuildDate = "unset"
)

func main() {
	v := cli.Version{
		AppName:   appName,
		Version:   Version,
		Revision:  Revision,
		BuildDate: BuildDate,
	}
	if err := cli.Run(v); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", color.New(color.FgRed, color.Bold).Sprint(appName), err)
		os.Exit(1)
	}
}
