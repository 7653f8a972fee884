package xchanger

import (
	"context"

	"xchanger/internal/adapter/cache"
	"xchanger/internal/adapter/exporter"
	"xchanger/internal/adapter/extractor"
	"xchanger/internal/adapter/fetcher"
	"xchanger/internal/config"
	"xchanger/internal/domain/model"
	"xchanger/internal/domain/ports"
	"xchanger/internal/metrics"
	"xchanger/internal/service"
	"xchanger/pkg/logger"
)

// Setup carries the optional collaborators of Build.
type Setup struct {
	Metrics  *metrics.Metrics
	Progress ports.ProgressReporter
	// ExportDir is where files are written; empty means the working directory.
	ExportDir string
}

// Build assembles a Client from configuration. The returned func releases
// the response cache.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger, setup Setup) (*Client, func() error, error) {
	store, closeStore, err := cache.Open(ctx, cfg.Cache, log)
	if err != nil {
		return nil, nil, err
	}

	proxies := fetcher.NewProxyChecker(cfg.Scrape.IPEchoURL, cfg.Scrape.Timeout, log, setup.Metrics)

	pages := fetcher.NewHTTPFetcher(store, proxies, fetcher.Options{
		Timeout:   cfg.Scrape.Timeout,
		UserAgent: cfg.Scrape.UserAgent,
		Supported: model.SupportedCurrencies,
	}, log, setup.Metrics)

	rates := extractor.NewGoQuery(extractor.Locator{
		Tag:   cfg.Extract.Tag,
		Class: cfg.Extract.Class,
	}, log, setup.Metrics)

	opts := []service.Option{}
	if setup.Progress != nil {
		opts = append(opts, service.WithProgress(setup.Progress))
	}
	svc := service.NewExchangeService(pages, rates, cfg.Scrape.BaseURL, log, opts...)

	defaults := Defaults{
		Amount: cfg.Defaults.Amount,
		From:   cfg.Defaults.From,
		To:     cfg.Defaults.To,
		Proxy:  cfg.Defaults.Proxy,
	}

	client := NewClient(svc, exporter.NewExporter(setup.ExportDir, log), proxies, defaults, log)
	client.cache = store

	return client, closeStore, nil
}
