// Package main seeds the herbalism reference data from a catalog file.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/louisbranch/verdant-engine/internal/platform/config"
	"github.com/louisbranch/verdant-engine/internal/seed"
)

func main() {
	cfg, err := seed.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	log.SetPrefix("[SEED] ")

	if err := seed.Run(context.Background(), cfg); err != nil {
		config.Exitf("Error: %v", err)
	}
}
