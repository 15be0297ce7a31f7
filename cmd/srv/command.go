package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "Questboard"
	s.app.Usage = "Quest rewards and leaderboard rankings"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to the TOML configuration file",
			EnvVars: []string{"CONFIG_FILE"},
		},
	}
	s.app.Before = s.loadConfig
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used to serve the reward and leaderboard apis.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Category:    "Worker",
			Description: `Used to refresh every enabled leaderboard daily.`,
		},
		{
			Action:      s.startNotifier,
			Name:        "notifier",
			Usage:       "Start service notifier",
			Category:    "Worker",
			Description: `Used to store reward notifications consumed from the message queue.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database",
			Category:    "Database",
			Description: `Used to apply pending database migrations.`,
		},
	}
}
