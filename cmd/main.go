package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"telwrap/cmd/connect"
	"telwrap/cmd/run"
	"telwrap/cmd/version"
)

func main() {
	cmd := &cli.Command{
		Name:  "telwrap",
		Usage: "telnet client over pluggable transports",
		Commands: []*cli.Command{
			connect.GetCommand(),
			run.GetCommand(),
			version.GetCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Printf("[!] Error: %s\n", err)
	}
}
