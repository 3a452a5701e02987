package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"rfq-match/internal/fetcher"
	"rfq-match/internal/model"
	"rfq-match/internal/storage"
)

// Config 用于调度配置。
type Config struct {
	Interval string `yaml:"interval" json:"interval"`
	Timeout  string `yaml:"timeout" json:"timeout"`
}

// Store 抽象存储接口，便于测试替换。
type Store interface {
	UpsertProducts(ctx context.Context, products []model.Product) (storage.UpsertResult, error)
}

// Scheduler 负责周期性刷新供应商目录并写入存储。
type Scheduler struct {
	fetcher   fetcher.CatalogFetcher
	store     Store
	interval  time.Duration
	timeout   time.Duration
	running   atomic.Bool
	newTicker func(time.Duration) ticker
	logger    *log.Logger
}

type ticker interface {
	C() <-chan time.Time
	Stop()
}

// NewScheduler 创建 Scheduler，解析配置的间隔与超时。
func NewScheduler(f fetcher.CatalogFetcher, s Store, cfg Config) *Scheduler {
	interval := time.Hour
	if cfg.Interval != "" {
		if d, err := time.ParseDuration(cfg.Interval); err == nil && d > 0 {
			interval = d
		}
	}
	timeout := 30 * time.Second
	if cfg.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil && d > 0 {
			timeout = d
		}
	}

	return &Scheduler{
		fetcher:   f,
		store:     s,
		interval:  interval,
		timeout:   timeout,
		newTicker: defaultTicker,
		logger:    log.New(os.Stdout, "[scheduler] ", log.LstdFlags),
	}
}

// Start 启动调度循环，直到上下文取消。
func (s *Scheduler) Start(ctx context.Context) error {
	if s.fetcher == nil || s.store == nil {
		return fmt.Errorf("scheduler missing dependencies")
	}

	g, ctx := errgroup.WithContext(ctx)

	tick := s.newTicker(s.interval)
	ch := tick.C()

	g.Go(func() error {
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ch:
				if _, err := s.runOnce(ctx); err != nil {
					return err
				}
			drain:
				for {
					select {
					case <-ch:
						continue
					default:
						break drain
					}
				}
			}
		}
	})

	return g.Wait()
}

// RunOnce 对外暴露单次刷新接口，便于手动触发。
func (s *Scheduler) RunOnce(ctx context.Context) (storage.UpsertResult, error) {
	return s.runOnce(ctx)
}

func (s *Scheduler) runOnce(ctx context.Context) (storage.UpsertResult, error) {
	if s.running.Swap(true) {
		return storage.UpsertResult{}, nil
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	products, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return storage.UpsertResult{}, fmt.Errorf("fetch catalog: %w", err)
	}
	if len(products) == 0 {
		return storage.UpsertResult{}, nil
	}

	res, err := s.store.UpsertProducts(ctx, products)
	if err != nil {
		return storage.UpsertResult{}, fmt.Errorf("upsert products: %w", err)
	}
	s.logger.Printf("catalog refresh: created=%d updated=%d", res.Created, res.Updated)
	return res, nil
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

func defaultTicker(d time.Duration) ticker {
	return realTicker{t: time.NewTicker(d)}
}
