// Package run implements the scripted expect/send command.
package run

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"telwrap/cmd/shared"
	"telwrap/pkg/telnet"
)

const expectFlag = "expect"
const sendFlag = "send"
const readTimeoutFlag = "read-timeout"

// GetCommand returns the run command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:        "run",
		Usage:       "Wait for a prompt, send one line, print the response",
		ArgsUsage:   shared.GetArgsUsage(),
		Description: shared.GetBaseDescription(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := shared.BuildConfig(cmd)
			if err != nil {
				return err
			}

			if errors := cfg.Validate(); len(errors) > 0 {
				for _, err := range errors {
					cfg.Logger.ErrorMsg("%s\n", err)
				}
				return fmt.Errorf("invalid arguments")
			}

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()
			shared.SetupSignalHandling(cancel)

			expect := []byte(cmd.String(expectFlag))
			send := cmd.String(sendFlag)
			readTimeout := time.Duration(cmd.Int(readTimeoutFlag)) * time.Millisecond

			return telnet.With(ctx, cfg, func(c *telnet.Client) error {
				if len(expect) > 0 {
					out, err := c.ReadUntil(expect, readTimeout)
					if err != nil {
						return fmt.Errorf("waiting for %q: %w", expect, err)
					}
					os.Stdout.Write(out)
				}

				if send != "" {
					if err := c.Write([]byte(send + "\n")); err != nil {
						return fmt.Errorf("sending %q: %w", send, err)
					}
				}

				// collect whatever the peer says in response
				out, err := c.ReadUntil([]byte("\n"), readTimeout)
				if err != nil {
					return fmt.Errorf("reading response: %w", err)
				}
				os.Stdout.Write(out)

				return nil
			})
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     expectFlag,
				Aliases:  []string{"e"},
				Usage:    "Pattern to wait for before sending",
				Value:    "",
				Required: false,
			},
			&cli.StringFlag{
				Name:     sendFlag,
				Aliases:  []string{"s"},
				Usage:    "Line to send once the pattern appeared",
				Value:    "",
				Required: false,
			},
			&cli.IntFlag{
				Name:     readTimeoutFlag,
				Usage:    "Timeout in milliseconds for each read",
				Value:    5000,
				Required: false,
			},
		}, shared.GetCommonFlags()...),
	}
}
