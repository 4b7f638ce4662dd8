package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "yatube"
	app.Usage = "Blogging platform with groups, comments and subscriptions"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to a toml file overriding the environment configs",
			EnvVars: []string{"YATUBE_CONFIG"},
		},
	}
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start the http server serving every page of the site.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database",
			Category:    "Database",
			Description: `Used to create or update the tables of every entity.`,
		},
		{
			Name:     "cache",
			Usage:    "Manage the page cache",
			Category: "Cache",
			Subcommands: []*cli.Command{
				{
					Action: server.clearCache,
					Name:   "clear",
					Usage:  "Drop every cached page",
				},
			},
		},
	}

	s.app = app
}
