package main

import (
	"errors"
	"log"

	"github.com/urfave/cli/v2"
)

// The memory backend lives inside the api process, a separate command only
// sees its own empty copy.
var errClearMemoryCache = errors.New("memory cache backend cannot be cleared out of process, restart the api instead")

func (s *srv) clearCache(ct *cli.Context) error {
	s.loadBase(ct)
	if s.configs.Cache.Backend == "memory" {
		return errClearMemoryCache
	}

	s.loadCache()

	if err := s.cache.Clear(s.ctx); err != nil {
		return err
	}

	log.Println("Cleared the page cache")
	return nil
}
