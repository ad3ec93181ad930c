// Command tripsearch composes storefront queries, shows their listings and
// talks to the travel concierge from a terminal.
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "tripsearch",
		Usage: "Search travel packages and chat with the concierge",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "Storefront API base URL",
				Value:   "http://localhost:8080",
				Sources: cli.EnvVars("TRIPS_SERVER"),
			},
		},
		Commands: []*cli.Command{
			searchCommand(),
			linkCommand(),
			dealsCommand(),
			chatCommand(),
		},
	}
}
