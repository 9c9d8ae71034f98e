// Package shared provides common CLI flag definitions and utility functions
// used across telwrap's command-line interface.
package shared

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"telwrap/pkg/config"
	"telwrap/pkg/log"
)

const categoryCommon = "common"

// ForceBlockingFlag is the name of the flag that forces the blocking backend.
const ForceBlockingFlag = "force-blocking"

// TimeoutFlag is the name of the flag for the connect timeout in milliseconds.
const TimeoutFlag = "timeout"

// VerboseFlag is the name of the flag to enable verbose logging.
const VerboseFlag = "verbose"

// LogFileFlag is the name of the flag for the session transcript file.
const LogFileFlag = "log"

// GetBaseDescription returns the base description text for transport
// specifications used in CLI commands.
func GetBaseDescription() string {
	return strings.Join([]string{
		"Specify the remote side like this: tcp://host:23 (supports tcp|ws|wss|udp)",
		"The port can be omitted and defaults to 23.",
	}, "\n")
}

// GetArgsUsage returns the arguments usage string for CLI commands.
func GetArgsUsage() string {
	return "transport"
}

// GetCommonFlags returns the flags shared by all connecting commands.
func GetCommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:     ForceBlockingFlag,
			Aliases:  []string{"b"},
			Usage:    "Force the blocking backend instead of the event loop backend",
			Category: categoryCommon,
			Value:    false,
			Required: false,
		},
		&cli.IntFlag{
			Name:     TimeoutFlag,
			Aliases:  []string{"t"},
			Usage:    "Connect timeout in milliseconds",
			Category: categoryCommon,
			Value:    10000,
			Required: false,
		},
		&cli.StringFlag{
			Name:     LogFileFlag,
			Aliases:  []string{"l"},
			Usage:    "Session transcript file",
			Category: categoryCommon,
			Value:    "",
			Required: false,
		},
		&cli.BoolFlag{
			Name:     VerboseFlag,
			Aliases:  []string{"v"},
			Usage:    "Verbose logging",
			Category: categoryCommon,
			Value:    false,
			Required: false,
		},
	}
}

// BuildConfig assembles the client configuration from the transport
// argument and the common flags.
func BuildConfig(cmd *cli.Command) (*config.Shared, error) {
	args := cmd.Args()
	if args.Len() != 1 {
		return nil, fmt.Errorf("must provide exactly one argument, got %d (%s)", args.Len(), strings.Join(args.Slice(), ", "))
	}

	proto, host, port, err := ParseTransport(args.Get(0))
	if err != nil {
		return nil, fmt.Errorf("parsing transport: %w", err)
	}

	cfg := &config.Shared{
		Host:          host,
		Port:          port,
		Protocol:      proto,
		Timeout:       time.Duration(cmd.Int(TimeoutFlag)) * time.Millisecond,
		ForceBlocking: cmd.Bool(ForceBlockingFlag),
		LogFile:       cmd.String(LogFileFlag),
		Verbose:       cmd.Bool(VerboseFlag),
	}
	cfg.Logger = log.New(cfg.Verbose)

	return cfg, nil
}
