package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"rfq-match/internal/api"
	"rfq-match/internal/compliance"
	"rfq-match/internal/extractor"
	"rfq-match/internal/fetcher"
	"rfq-match/internal/match"
	"rfq-match/internal/notifier"
	"rfq-match/internal/proposal"
	"rfq-match/internal/requirement"
	"rfq-match/internal/scheduler"
	"rfq-match/internal/storage"
)

// AppConfig 应用配置。
type AppConfig struct {
	Server     ServerConfig         `yaml:"server"`
	Database   DatabaseConfig       `yaml:"database"`
	Match      match.Config         `yaml:"match"`
	Compliance compliance.Config    `yaml:"compliance"`
	Extractor  extractor.Config     `yaml:"extractor"`
	Fetcher    fetcher.Config       `yaml:"fetcher"`
	Scheduler  scheduler.Config     `yaml:"scheduler"`
	Email      notifier.EmailConfig `yaml:"email"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	Seed bool   `yaml:"seed"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Printf("load config error: %v", err)
		return
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = "rfq.db"
	}

	store, err := storage.NewStore(dbPath)
	if err != nil {
		log.Printf("init store error: %v", err)
		return
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Seed {
		if err := store.Seed(ctx); err != nil {
			log.Printf("seed catalog error: %v", err)
			return
		}
	}

	advisor := compliance.NewAdvisor(cfg.Compliance)
	engine := match.NewEngine(cfg.Match, advisor)
	rfqs := requirement.NewService(store)

	var extract extractor.Extractor
	var llm proposal.LLMClient
	if cfg.Extractor.OpenAI.APIKey != "" {
		client := extractor.NewOpenAIClient(cfg.Extractor.OpenAI, nil)
		extract = extractor.New(cfg.Extractor, client)
		llm = client
	} else {
		log.Printf("requirement extraction disabled: missing openai api key")
	}

	proposals := proposal.NewService(store, llm, buildNotifier(cfg.Email))

	var sched api.Scheduler
	var catalogSched *scheduler.Scheduler
	if len(cfg.Fetcher.Sources) > 0 {
		client := &http.Client{Timeout: 15 * time.Second}
		catalog := fetcher.NewHTMLCatalogFetcher(cfg.Fetcher, client)
		catalogSched = scheduler.NewScheduler(catalog, store, cfg.Scheduler)
		sched = catalogSched
	} else {
		log.Printf("catalog refresh disabled: no fetcher sources configured")
	}

	handler := api.NewHandler(api.Deps{
		Store:     store,
		RFQs:      rfqs,
		Extractor: extract,
		Engine:    engine,
		Advisor:   advisor,
		Proposals: proposals,
		Scheduler: sched,
		Cache:     match.NewCache(),
	})

	addr := cfg.Server.Addr
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{Addr: addr, Handler: handler}

	if catalogSched != nil {
		go func() {
			if err := catalogSched.Start(ctx); err != nil && err != context.Canceled {
				log.Printf("scheduler stopped: %v", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("server error: %v", err)
	}
}

func loadConfig() (AppConfig, error) {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func buildNotifier(cfg notifier.EmailConfig) proposal.Notifier {
	if cfg.Host == "" || cfg.Port == 0 || cfg.From == "" {
		log.Printf("email notifier disabled: missing host/port/from")
		return notifier.NewLogNotifier(nil)
	}
	return notifier.NewEmailNotifier(cfg, nil)
}
