package util

import (
	"fmt"
	"io"

	"github.com/ghetzel/cli"
)

const ApplicationName = `quickserve`
const ApplicationSummary = `serve a single file or directory over HTTP(S) on the first free address and port`
const ApplicationVersion = `0.3.1`

// Subcommands shared by every entrypoint.
func Register(out io.Writer) []cli.Command {
	return []cli.Command{
		{
			Name:  `version`,
			Usage: `Output only the version string and exit`,
			Action: func(c *cli.Context) {
				fmt.Fprintln(out, ApplicationVersion)
			},
		},
	}
}
