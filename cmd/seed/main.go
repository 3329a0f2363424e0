package main

import (
	"flag"
	"log/slog"
	"os"

	"postboard/internal/logger"
	"postboard/internal/seed"
)

func main() {
	out := flag.String("out", "seed.yaml", "path of the seed file to write")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log := logger.Setup(*level)

	users := seed.Default()
	if err := seed.Write(*out, users); err != nil {
		log.Error("write seed file", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("seed file written", slog.String("path", *out), slog.Int("users", len(users)))
}
