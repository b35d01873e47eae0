// Package main runs the in-memory devserver implementing the Directory and
// Ledger collaborator contract for local development.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/go-petr/bank-client/cmd/devserver"
	"github.com/go-petr/bank-client/internal/memstore"
	"github.com/go-petr/bank-client/internal/middleware"
	"github.com/go-petr/bank-client/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	server := devserver.New(memstore.New(), logger, config)

	logger.Info().Msg("BANK DEVSERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
