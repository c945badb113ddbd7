package main

import (
	"flag"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brequin/brequin/soc/api"
	"github.com/brequin/brequin/soc/config"
	"github.com/brequin/brequin/soc/logger"
	"github.com/brequin/brequin/soc/snapshot"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	input := flag.String("in", "", "catalog snapshot to serve (defaults to output.enriched)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *input == "" {
		*input = cfg.Output.Enriched
	}

	l, err := logger.New(cfg.Logging.Mode)
	if err != nil {
		log.Fatal(err)
	}
	defer l.Sync()
	l = l.With("run_id", uuid.NewString())

	c, err := snapshot.ReadCatalog(*input)
	if err != nil {
		l.Fatal("Unable to read catalog", "path", *input, "error", err)
	}

	gin.SetMode(cfg.Server.Mode)
	router := api.NewRouter(c, l)
	l.Info("Serving catalog", "path", *input, "address", cfg.Server.Address, "departments", len(c.Departments()))
	if err := router.Run(cfg.Server.Address); err != nil {
		l.Fatal("Server stopped", "error", err)
	}
}
