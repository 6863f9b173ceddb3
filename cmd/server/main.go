package main

import (
	"fmt"
	"log"

	"reqlens/internal/config"
	"reqlens/internal/docimport"
	"reqlens/internal/handler"
	"reqlens/internal/jama"
	"reqlens/internal/port"
	"reqlens/internal/provider"
	"reqlens/internal/provider/claude"
	"reqlens/internal/provider/gemini"
	"reqlens/internal/provider/openai"
	"reqlens/internal/recordcheck"
	"reqlens/internal/repository/postgres"
	"reqlens/internal/respparse"
	"reqlens/internal/router"
	"reqlens/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	requirementRepo := postgres.NewRequirementRepo(db)
	analysisRepo := postgres.NewAnalysisRepo(db)

	// Initialize import pipeline
	idPatterns := append(docimport.DefaultIDPatterns(), cfg.Import.ExtraIDPatterns...)
	matcher, err := docimport.NewIDMatcher(idPatterns...)
	if err != nil {
		return fmt.Errorf("failed to compile id patterns: %w", err)
	}
	labels := append(append([]string{}, docimport.DefaultFieldLabels...), cfg.Import.ExtraFieldLabels...)
	detector := docimport.NewDetector(labels, matcher)
	importOrch := docimport.NewOrchestrator(detector, docimport.NewStructuredParser(), docimport.NewGenericParser(matcher))

	// Initialize analysis provider chain
	analysisProvider, err := buildProvider(&cfg.Analyzer)
	if err != nil {
		return fmt.Errorf("failed to initialize analysis providers: %w", err)
	}

	// Initialize services
	var source port.RequirementSource
	if cfg.Jama.BaseURL != "" {
		source = jama.NewClient(&cfg.Jama)
	}
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	importSvc := service.NewImportService(importOrch, requirementRepo, source)
	analysisSvc := service.NewAnalysisService(analysisProvider, respparse.NewOrchestrator(), requirementRepo, analysisRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	importH := handler.NewImportHandler(importSvc, recordcheck.NewDefaultEngine(matcher))
	requirementH := handler.NewRequirementHandler(importSvc)
	analysisH := handler.NewAnalysisHandler(analysisSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, importH, requirementH, analysisH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildProvider wires the configured LLM providers behind the fallback chain.
func buildProvider(cfg *config.AnalyzerConfig) (port.AnalysisProvider, error) {
	provider.Register("claude", func(c *config.AnalyzerProviderConfig) (port.AnalysisProvider, error) {
		return claude.NewProvider(c), nil
	})
	provider.Register("gemini", func(c *config.AnalyzerProviderConfig) (port.AnalysisProvider, error) {
		return gemini.NewProvider(c), nil
	})
	provider.Register("openai", func(c *config.AnalyzerProviderConfig) (port.AnalysisProvider, error) {
		return openai.NewProvider(c), nil
	})

	configured := cfg.Configured()
	if len(configured) == 0 {
		return nil, fmt.Errorf("no analysis provider configured")
	}

	providers := make([]port.AnalysisProvider, 0, len(configured))
	names := make([]string, 0, len(configured))
	for _, pc := range configured {
		p, err := provider.New(pc)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
		names = append(names, pc.Provider)
	}

	if len(providers) == 1 {
		return providers[0], nil
	}
	return provider.NewFallback(providers, names), nil
}
