package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/ghetzel/cli"
	"github.com/ghetzel/go-stockutil/log"
	"github.com/ghetzel/go-stockutil/typeutil"
	"github.com/ghetzel/quickserve"
	"github.com/ghetzel/quickserve/util"
)

func main() {
	var app = newApp()

	app.Action = func(c *cli.Context) {
		var server, err = configure(c)

		if err != nil {
			exitMsg(err.Error())
		}

		var ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := server.Initialize(ctx); err != nil {
			exitMsg(err.Error())
		}

		server.Announce()

		if err := server.ListenAndServe(ctx); err != nil {
			exitMsg(err.Error())
		}
	}

	app.Run(hoistFlags(os.Args, app.Flags))
}

func newApp() *cli.App {
	var app = cli.NewApp()
	app.Name = quickserve.ApplicationName
	app.Usage = quickserve.ApplicationSummary
	app.Version = quickserve.ApplicationVersion
	app.EnableBashCompletion = false
	app.Commands = util.Register(os.Stdout)

	// -v is --verbose here
	cli.VersionFlag = cli.BoolFlag{
		Name:  `version, V`,
		Usage: `print the version`,
	}

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   `log-level, L`,
			Usage:  `Level of log output verbosity`,
			Value:  `warning`,
			EnvVar: `LOGLEVEL`,
		},
		cli.StringFlag{
			Name:   `config, c`,
			Usage:  `The configuration file to load (if present)`,
			Value:  quickserve.DefaultConfigPath(),
			EnvVar: `QUICKSERVE_CONFIG`,
		},
		cli.StringFlag{
			Name:  `bind, b`,
			Usage: `Interface name or address to bind to (overrides the configured bind list)`,
		},
		cli.IntFlag{
			Name:  `status-code, s`,
			Usage: `HTTP status to report when a directory request matches nothing`,
		},
		cli.BoolFlag{
			Name:  `ssl`,
			Usage: `Serve HTTPS with a freshly generated self-signed certificate`,
		},
		cli.BoolFlag{
			Name:  `verbose, v`,
			Usage: `Print request headers and bodies after each access log line`,
		},
		cli.StringSliceFlag{
			Name:  `header, H`,
			Usage: `Add a response header (formatted as "KEY:VALUE"); may be repeated`,
		},
		cli.StringSliceFlag{
			Name:  `replace, r`,
			Usage: `Replace text in the served file (formatted as "MATCH:REPLACEMENT"); may be repeated`,
		},
		cli.StringFlag{
			Name:  `redirect, R`,
			Usage: `Redirect every request to the given location`,
		},
		cli.BoolFlag{
			Name:  `no-clipboard`,
			Usage: `Print the download suggestion instead of copying it to the clipboard`,
		},
	}

	app.Before = func(c *cli.Context) error {
		log.SetLevelString(c.String(`log-level`))
		return nil
	}

	return app
}

func configure(c *cli.Context) (*quickserve.Server, error) {
	var config = quickserve.LoadConfig(c.String(`config`))
	var server = quickserve.NewServer(config)

	log.Debugf("config: %v", config)

	if c.NArg() > 2 {
		return nil, fmt.Errorf("Too many arguments: expected [ASSET] [PORT], got %q", []string(c.Args()))
	}

	server.Asset = c.Args().First()
	server.Bind = c.String(`bind`)
	server.TLS = c.Bool(`ssl`)
	server.Verbose = c.Bool(`verbose`)
	server.Redirect = c.String(`redirect`)

	if portArg := c.Args().Get(1); portArg != `` {
		if port, err := strconv.ParseUint(portArg, 10, 16); err == nil {
			server.RequestedPort = int(port)
		} else {
			return nil, fmt.Errorf("Invalid port %q", portArg)
		}
	}

	if c.IsSet(`status-code`) {
		if code := c.Int(`status-code`); code >= 200 && code <= 999 {
			server.StatusCode = code
		} else {
			// 1xx would go out as an informational response followed by a 200
			return nil, fmt.Errorf("Invalid status code %d (must be 200-999)", code)
		}
	}

	for _, pair := range c.StringSlice(`header`) {
		if header, err := quickserve.ParseHeader(pair); err == nil {
			server.Headers = append(server.Headers, header)
		} else {
			return nil, err
		}
	}

	for _, pair := range c.StringSlice(`replace`) {
		if sub, err := quickserve.ParseSubstitution(pair); err == nil {
			server.Substitutions = append(server.Substitutions, sub)
		} else {
			return nil, err
		}
	}

	if !c.Bool(`no-clipboard`) {
		server.Clipboard = quickserve.SystemClipboard{}
	}

	log.Debugf("serving %s", typeutil.OrString(server.Asset, `.`))

	return server, nil
}

// Move flags ahead of the positional arguments so they may be given anywhere on the command line.
// Anything after a "--" is left positional.
func hoistFlags(args []string, flags []cli.Flag) []string {
	if len(args) < 2 {
		return args
	}

	var takesValue = make(map[string]bool)

	for _, flag := range flags {
		var _, isBool = flag.(cli.BoolFlag)

		for _, name := range strings.Split(flag.GetName(), `,`) {
			if name = strings.TrimSpace(name); name != `` {
				takesValue[name] = !isBool
			}
		}
	}

	var hoisted = []string{args[0]}
	var positional []string
	var terminated []string

	for i := 1; i < len(args); i++ {
		var arg = args[i]

		if arg == `--` {
			terminated = args[i+1:]
			break
		} else if len(arg) > 1 && strings.HasPrefix(arg, `-`) {
			hoisted = append(hoisted, arg)

			if name := strings.TrimLeft(arg, `-`); !strings.Contains(name, `=`) && takesValue[name] && i+1 < len(args) {
				i++
				hoisted = append(hoisted, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}

	if terminated != nil {
		hoisted = append(hoisted, `--`)
		positional = append(positional, terminated...)
	}

	return append(hoisted, positional...)
}

func exitMsg(msg string) {
	color.New(color.FgRed).Fprintln(os.Stdout, msg)
	os.Exit(1)
}
