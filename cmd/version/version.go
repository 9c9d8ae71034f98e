// Package version implements the version command.
package version

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Version is overwritten with the release tag during release builds.
var Version = "dev"

// GetCommand returns the version command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("telwrap %s\n", Version)
			return nil
		},
	}
}
