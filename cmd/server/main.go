package main

import (
	log "github.com/sirupsen/logrus"

	"taskboard/internal/config"
	"taskboard/internal/server"
)

func main() {
	cfg := config.Load()
	logger := log.New()

	s, err := server.Init(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("server initialization failed")
	}

	s.Run()
}
