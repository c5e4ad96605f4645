package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Athlon"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `The main service, included all apis.`,
		},
		{
			Action:      server.startWsProxy,
			Name:        "proxy",
			Usage:       "Start service proxy",
			Flags:       []cli.Flag{},
			Category:    "Websocket",
			Description: `Pushes challenge and submission changes to clients via websocket.`,
		},
		{
			Action:      server.startCron,
			Name:        "cron",
			Usage:       "Start service cron",
			Flags:       []cli.Flag{},
			Category:    "Worker",
			Description: `Runs scheduled jobs, currently the challenge activation sweep.`,
		},
		{
			Action:   server.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate database to the latest version",
			Flags:    []cli.Flag{},
			Category: "Worker",
		},
	}

	s.app = app
}
