package main

import (
	"log"

	"github.com/urfave/cli/v2"
	"github.com/yatube-lab/backend/internal/entity"
)

func (s *srv) startMigrate(ct *cli.Context) error {
	s.loadBase(ct)
	s.loadDatabase()

	if err := entity.MigrateTable(s.ctx); err != nil {
		return err
	}

	log.Println("Migrated all tables")
	return nil
}
