// Package connect implements the interactive session command.
package connect

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/muesli/cancelreader"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"telwrap/cmd/shared"
	"telwrap/pkg/telnet"
)

const rawFlag = "raw"

// GetCommand returns the connect command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:        "connect",
		Usage:       "Open an interactive session with a remote host",
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

			c, err := telnet.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			if cmd.Bool(rawFlag) {
				oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
				if err != nil {
					return fmt.Errorf("setting terminal to raw mode: %w", err)
				}
				defer func() {
					term.Restore(int(os.Stdin.Fd()), oldState)
					fmt.Printf("\033[2K\r") // clear line
				}()
			}

			return session(ctx, cancel, c)
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:     rawFlag,
				Aliases:  []string{"r"},
				Usage:    "Put the local terminal into raw mode",
				Value:    false,
				Required: false,
			},
		}, shared.GetCommonFlags()...),
	}
}

// session bridges stdin to the remote side and the remote side to stdout
// until either end goes away or the context is cancelled. Remote data is
// collected with eager reads on a short tick so local input is never
// starved behind a blocked read.
func session(ctx context.Context, cancel context.CancelFunc, c *telnet.Client) error {
	stdin, err := cancelreader.NewReader(os.Stdin)
	if err != nil {
		return fmt.Errorf("cancelreader.NewReader(stdin): %w", err)
	}

	go func() {
		<-ctx.Done()
		stdin.Cancel()
	}()

	// local keyboard → remote
	go func() {
		defer cancel()

		buf := make([]byte, 1024)
		for {
			n, err := stdin.Read(buf)
			if n > 0 {
				if werr := c.Write(buf[:n]); werr != nil {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	// remote → local screen
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			out, err := c.ReadEager()
			if err != nil {
				return nil
			}
			if len(out) > 0 {
				os.Stdout.Write(out)
			}
		}
	}
}
