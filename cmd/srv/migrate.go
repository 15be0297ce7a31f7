package main

import (
	"github.com/questx-lab/questboard/migration"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.loadDatabase()
	if err := migration.Migrate(s.ctx); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Database is up to date")
	return nil
}
