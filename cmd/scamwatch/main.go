package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/scamwatch/scamwatch/pkg/audit"
	"github.com/scamwatch/scamwatch/pkg/cache"
	"github.com/scamwatch/scamwatch/pkg/config"
	"github.com/scamwatch/scamwatch/pkg/engine"
	"github.com/scamwatch/scamwatch/pkg/ml"
	"github.com/scamwatch/scamwatch/pkg/phrases"
)

const Version = "0.1.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cfg := config.NewDefaultConfig()
		if len(os.Args) > 2 {
			cfg.Port = os.Args[2]
		}
		runHTTPServer(cfg)
	case "classify":
		if len(os.Args) < 3 {
			fmt.Println("Usage: scamwatch classify <text>")
			os.Exit(1)
		}
		runCLIClassify(strings.Join(os.Args[2:], " "))
	case "version":
		fmt.Printf("scamwatch v%s\n", Version)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("scamwatch v%s - scam text classification service\n\n", Version)
	fmt.Println("Usage:")
	fmt.Println("  scamwatch serve [port]      Start HTTP server (default: 5000)")
	fmt.Println("  scamwatch classify <text>   Classify a message on the command line")
	fmt.Println("  scamwatch version           Show version")
	fmt.Println("")
	fmt.Println("Environment Variables:")
	fmt.Println("  SCAMWATCH_MODEL_PATH    Path to ONNX model directory")
	fmt.Println("  SCAMWATCH_MODEL_NAME    HuggingFace model to download if path missing")
	fmt.Println("  SCAMWATCH_ONNX_LIB      libonnxruntime directory (empty = Go backend)")
	fmt.Println("  SCAMWATCH_PHRASE_FILE   YAML file with extra phrase lists")
	fmt.Println("  SCAMWATCH_REDIS_ADDR    Enable verdict cache (host:port)")
	fmt.Println("  SCAMWATCH_POSTGRES_DSN  Enable classification audit log")
}

// buildEngine assembles the classification engine from configuration.
// Registry or model load failures are fatal: the process must not serve
// requests it cannot classify.
func buildEngine(cfg *config.Config) (*engine.Engine, func()) {
	cfg.MustValidate()

	lists := phrases.DefaultLists()
	if cfg.PhraseFile != "" {
		extra, err := phrases.LoadFile(cfg.PhraseFile)
		if err != nil {
			log.Fatalf("[STARTUP] FATAL: %v", err)
		}
		lists = lists.Merge(extra)
		log.Printf("[STARTUP] merged phrase lists from %s", cfg.PhraseFile)
	}
	registry := phrases.NewRegistry(lists)
	greetings, vocab, genuine, keywords := registry.Counts()
	log.Printf("[STARTUP] phrase registry: %d greetings, %d vocab, %d genuine, %d keywords",
		greetings, vocab, genuine, keywords)

	classifier, err := ml.NewHugotClassifier(ml.HugotConfig{
		ModelPath:       cfg.ModelPath,
		ModelName:       cfg.ModelName,
		OnnxLibraryPath: cfg.OnnxLibraryPath,
	})
	if err != nil {
		log.Fatalf("[STARTUP] FATAL: classifier load failed: %v", err)
	}

	eng := engine.New(registry, classifier, engine.Options{
		DowngradeProbability: cfg.DowngradeProbability,
		DowngradeTokenLimit:  cfg.DowngradeTokenLimit,
	})

	closers := []func(){func() { _ = classifier.Close() }}

	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		vc, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
		cancel()
		if err != nil {
			log.Fatalf("[STARTUP] FATAL: verdict cache: %v", err)
		}
		eng.WithVerdictCache(vc)
		closers = append(closers, func() { _ = vc.Close() })
		log.Printf("[STARTUP] verdict cache enabled (%s, ttl %s)", cfg.RedisAddr, cfg.CacheTTL)
	}

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return eng, cleanup
}

// buildAuditSink returns nil when auditing is not configured.
func buildAuditSink(cfg *config.Config) *audit.AsyncSink {
	if cfg.PostgresDSN == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sink, err := audit.NewPostgresSink(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[STARTUP] FATAL: audit sink: %v", err)
	}
	log.Printf("[STARTUP] audit sink enabled (max %d in-flight writes)", cfg.AuditInflight)
	return audit.NewAsyncSink(sink, cfg.AuditInflight)
}

// ============================================================================
// HTTP Server Mode
// ============================================================================

func runHTTPServer(cfg *config.Config) {
	eng, cleanup := buildEngine(cfg)
	defer cleanup()

	auditSink := buildAuditSink(cfg)
	if auditSink != nil {
		defer auditSink.Close()
	}

	app := fiber.New(fiber.Config{
		AppName: "scamwatch",
	})

	app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "Scam Text Detection API",
			"version": Version,
			"status":  "running",
			"endpoints": fiber.Map{
				"/health":  "GET",
				"/predict": "POST",
			},
		})
	})

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/predict", func(c fiber.Ctx) error {
		var req struct {
			Message any `json:"message"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Request must be JSON"})
		}
		if req.Message == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing 'message' field in request body"})
		}
		message, ok := req.Message.(string)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "'message' field must be a string"})
		}

		start := time.Now()
		result := eng.Classify(c.Context(), message)

		if auditSink != nil {
			auditSink.Record(audit.NewRecord(
				message, result.Label, result.Confidence, result.Reason,
				result.Rule, result.Cached, time.Since(start)))
		}
		return c.JSON(result)
	})

	log.Printf("[STARTUP] scamwatch HTTP server starting on :%s", cfg.Port)
	log.Printf("Endpoints:")
	log.Printf("  GET  /         - Service info")
	log.Printf("  GET  /health   - Health check")
	log.Printf("  POST /predict  - Classify a message")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// ============================================================================
// CLI Mode
// ============================================================================

func runCLIClassify(text string) {
	cfg := config.NewDefaultConfig()
	eng, cleanup := buildEngine(cfg)
	defer cleanup()

	result := eng.Classify(context.Background(), text)

	output, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(output))
}
