// Command advisor is the materials advisor CLI and HTTP server.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/materials-advisor/advisor/internal/adapters/driving/cli"
	"github.com/materials-advisor/advisor/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("loading .env: %v", err)
	}

	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
