package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/stemsi/exstem-survey/internal/config"
	"github.com/stemsi/exstem-survey/internal/database"
	"github.com/stemsi/exstem-survey/internal/logger"
	"github.com/stemsi/exstem-survey/internal/model"
	"github.com/stemsi/exstem-survey/internal/repository"
	"github.com/stemsi/exstem-survey/internal/service"
	"github.com/stemsi/exstem-survey/internal/survey"
	"gopkg.in/yaml.v3"
)

func main() {
	var (
		file   string
		dryRun bool
	)
	flag.StringVar(&file, "file", "configs/catalog.example.yaml", "Path to the catalog YAML file")
	flag.BoolVar(&dryRun, "dry-run", false, "Validate the file without writing")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	catalog, err := loadCatalog(file)
	if err != nil {
		log.Fatal().Err(err).Str("file", file).Msg("Invalid catalog file")
	}
	fmt.Printf("Loaded %d questions from %s\n", len(catalog), file)
	if dryRun {
		fmt.Println("Dry run, nothing written")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool)
	if err := questionRepo.ReplaceCatalog(ctx, catalog); err != nil {
		log.Fatal().Err(err).Msg("Failed to store catalog")
	}
	fmt.Println("Catalog stored")

	// Running servers would otherwise keep serving the old snapshot until the TTL lapses.
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, cached catalog not refreshed")
		return
	}
	defer rdb.Close()

	catalogService := service.NewCatalogService(questionRepo, service.NewRedisCatalogCache(rdb), cfg.CatalogCacheTTL, log)
	if _, err := catalogService.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("Catalog cache refresh failed")
		return
	}
	fmt.Println("Catalog cache refreshed")
}

func loadCatalog(path string) (survey.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var doc model.CatalogFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	catalog := survey.Catalog(doc.Questions)
	if err := catalog.Check(); err != nil {
		return nil, err
	}
	return catalog, nil
}
