// Package main is the mitra CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/digiraksha/mitra/internal/chat"
	"github.com/digiraksha/mitra/internal/classifier"
	"github.com/digiraksha/mitra/internal/cli"
	"github.com/digiraksha/mitra/internal/config"
	"github.com/digiraksha/mitra/internal/conversation"
	"github.com/digiraksha/mitra/internal/embedding"
	"github.com/digiraksha/mitra/internal/emotion"
	"github.com/digiraksha/mitra/internal/fraud"
	"github.com/digiraksha/mitra/internal/knowledge"
	"github.com/digiraksha/mitra/internal/models"
	"github.com/digiraksha/mitra/internal/personality"
	"github.com/digiraksha/mitra/internal/qastore"
	"github.com/digiraksha/mitra/internal/resolver"
	"github.com/digiraksha/mitra/internal/server"
	"github.com/digiraksha/mitra/internal/trainer"
	"github.com/digiraksha/mitra/internal/watcher"
	"github.com/digiraksha/mitra/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/mitra/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. When neither exists, built-in defaults apply. Returns the config
// and the path that was actually loaded (empty for built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ask":
		runAsk()
	case "train":
		runTrain()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("mitra version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Training.Watch && len(cfg.Training.Directories) > 0 {
		tr := components.Trainer
		watchSvc := watcher.New(cfg.Training.Directories, func(path string) {
			if _, err := tr.TrainFile(context.Background(), path); err != nil {
				logger.Warn("watch train failed", zap.String("path", path), zap.Error(err))
			}
		}, logger)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start training watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	srv := server.NewServer(
		components.Orchestrator,
		components.Trainer,
		components.Store,
		components.Profiles,
		components.Checker,
		cfg,
		resolvedConfigPath,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildAskMessage joins all positional args with spaces so multi-word
// questions work the same with or without shell quoting.
func buildAskMessage(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// askArgsReorder moves any flags (and their values) that appear after the
// question to the front of the slice so that flag.Parse() sees them. Go's
// flag package stops at the first non-flag argument.
func askArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runAsk() {
	askArgs := askArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = answer locally)")
	userID := fs.String("user", "cli", "user id for conversation context")
	personalityFlag := fs.String("personality", "", "personality profile (compassionate_guardian, knowledgeable_mentor, friendly_companion)")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	fs.Usage = func() { printAskUsage(fs) }
	_ = fs.Parse(askArgs)

	message := buildAskMessage(fs.Args())
	if message == "" {
		printAskUsage(fs)
		os.Exit(1)
	}

	format := cli.OutputText
	switch *outputFormat {
	case "text":
		format = cli.OutputText
	case "compact":
		format = cli.OutputCompact
	case "json":
		format = cli.OutputJSON
	default:
		fmt.Printf("Unknown output format %q; use text, compact, or json\n", *outputFormat)
		os.Exit(1)
	}

	req := &models.ChatRequest{
		Message:     message,
		UserID:      *userID,
		Personality: *personalityFlag,
	}

	if *serverURL != "" {
		resp, err := chatViaHTTP(*serverURL, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteChatResponse(os.Stdout, resp, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	resp, err := components.Orchestrator.Chat(context.Background(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteChatResponse(os.Stdout, resp, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func chatViaHTTP(serverURL string, req *models.ChatRequest) (*models.ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runTrain() {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: mitra train [flags] <training-file.json>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	res, err := components.Trainer.TrainFile(context.Background(), path)
	if err != nil {
		fmt.Printf("Training failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Trained %s: %d added, %d skipped, %d total records\n",
		path, res.Added, res.Skipped, res.Total)
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = local status)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status map[string]interface{}
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger)
		if err != nil {
			logger.Fatal("Failed to initialize", zap.Error(err))
		}
		defer components.Close()
		status = map[string]interface{}{
			"qa_records":        components.Store.Count(),
			"vector_index_size": components.Store.IndexSize(),
			"personality":       cfg.Chat.DefaultPersonality,
			"fraud_model":       components.Checker.Available(),
		}
	}

	if *outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(status)
		return
	}
	fmt.Printf("QA records:        %v\n", status["qa_records"])
	fmt.Printf("Vector index size: %v\n", status["vector_index_size"])
	fmt.Printf("Personality:       %v\n", status["personality"])
	fmt.Printf("Fraud model:       %v\n", status["fraud_model"])
}

func statusViaHTTP(serverURL string) (map[string]interface{}, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var status map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return status, nil
}

// Components holds initialized services.
type Components struct {
	Store        *qastore.Store
	Embedder     embedding.Embedder
	Knowledge    *knowledge.Base
	Profiles     *personality.Registry
	Orchestrator *chat.Orchestrator
	Trainer      *trainer.Trainer
	Checker      *fraud.Checker
}

func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
	if c.Knowledge != nil {
		_ = c.Knowledge.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	embedder, onnx, err := embedding.New(
		cfg.Embedding.ModelPath,
		cfg.Embedding.Dimensions,
		cfg.Embedding.MaxTokens,
		cfg.Embedding.CacheSize,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}
	logger.Info("embedder initialized", zap.Bool("onnx", onnx))

	store, err := qastore.Open(
		context.Background(),
		cfg.Storage.DatabasePath,
		cfg.Storage.VectorIndexPath,
		embedder,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open qa store: %w", err)
	}

	kb := knowledge.New(logger)
	registry := personality.NewRegistry()

	res := resolver.New(store, embedder, resolver.Options{
		SemanticThreshold: cfg.Resolver.SemanticThreshold,
		FuzzyThreshold:    cfg.Resolver.FuzzyThreshold,
		KeywordThreshold:  cfg.Resolver.KeywordThreshold,
		EmbedTimeout:      time.Duration(cfg.Resolver.EmbedTimeoutMS) * time.Millisecond,
	}, logger)

	orchestrator := chat.New(
		classifier.New(logger),
		emotion.NewAnalyzer(nil, logger),
		res,
		knowledge.NewComposer(kb),
		personality.NewShaper(registry, logger),
		registry,
		conversation.NewTracker(logger),
		logger,
	)

	return &Components{
		Store:        store,
		Embedder:     embedder,
		Knowledge:    kb,
		Profiles:     registry,
		Orchestrator: orchestrator,
		Trainer:      trainer.New(store, logger),
		Checker:      fraud.NewChecker(nil, logger),
	}, nil
}

func printAskUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: mitra ask [flags] <question>\n\n")
	fmt.Fprintf(fs.Output(), "Question is all remaining arguments joined by spaces. Multi-word questions work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  mitra ask how do I block my card
  mitra ask "is this UPI request a scam?"
  mitra ask --personality friendly_companion hello
  mitra ask --output json what are the RBI transaction limits
  mitra ask --server http://localhost:8080 my account was hacked
`)
}

func printUsage() {
	fmt.Println(`mitra - payment security assistant

Usage:
  mitra server [flags]            Start the HTTP server
  mitra ask [flags] <question>    Ask a question
  mitra train [flags] <file>      Ingest a QA training file
  mitra status [flags]            Show engine status
  mitra version                   Show version
  mitra help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/mitra/config.yaml)
  --debug            Enable debug logging

Ask Flags:
  --config string       Config file path (for local mode)
  --server string       Server URL (empty = answer locally, default)
  --user string         User id for conversation context (default: cli)
  --personality string  Personality profile
  --output string       Output format: text, compact, or json (default: text)

Train Flags:
  --config string    Config file path

Status Flags:
  --config string    Config file path (for local mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for local status.
  --output string    Output format: text or json (default: text)

Examples:
  mitra server
  mitra ask how do I report a UPI fraud
  mitra ask --output json "is my account safe?"
  mitra train training_data.json
  mitra status --output json`)
}
