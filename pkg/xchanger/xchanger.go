// Package xchanger scrapes exchange rates from an online currency converter
// and exports full conversion tables to spreadsheet, CSV or JSON lines files.
package xchanger

import (
	"context"

	"xchanger/internal/adapter/exporter"
	"xchanger/internal/domain/model"
	"xchanger/internal/domain/ports"
	"xchanger/pkg/logger"
)

// Defaults fill in any field a query leaves empty.
type Defaults struct {
	Amount float64
	From   string
	To     string
	Proxy  string
}

func DefaultDefaults() Defaults {
	return Defaults{Amount: 1, From: "USD", To: "PKR"}
}

// Query selects a conversion. Zero fields take the client's defaults. For
// tables, set exactly one of From and To; when both are empty the default
// From is used.
type Query struct {
	Amount float64
	From   string
	To     string
	Proxy  string
}

type Client struct {
	defaults Defaults
	service  ports.ExchangeService
	exporter ports.TableExporter
	proxies  ports.ProxyValidator
	cache    ports.ResponseCache
	log      *logger.Logger
}

func NewClient(service ports.ExchangeService, exp ports.TableExporter, proxies ports.ProxyValidator, defaults Defaults, log *logger.Logger) *Client {
	return &Client{
		defaults: defaults,
		service:  service,
		exporter: exp,
		proxies:  proxies,
		log:      log,
	}
}

func (c *Client) Service() ports.ExchangeService {
	return c.service
}

func (c *Client) Defaults() Defaults {
	return c.defaults
}

// GetRate returns the converted rate for one currency pair.
func (c *Client) GetRate(ctx context.Context, q Query) (*model.RateResult, error) {
	from, to := q.From, q.To
	if from == "" {
		from = c.defaults.From
	}
	if to == "" {
		to = c.defaults.To
	}

	return c.service.GetRate(ctx, model.ConversionRequest{
		Amount:       c.amount(q),
		FromCurrency: model.Normalize(from),
		ToCurrency:   model.Normalize(to),
		Proxy:        c.proxy(q),
	})
}

// GetTable returns one rate per supported currency.
func (c *Client) GetTable(ctx context.Context, q Query) (*model.RateTable, error) {
	from, to := q.From, q.To
	if from == "" && to == "" {
		from = c.defaults.From
	}

	return c.service.GetTable(ctx, model.TableRequest{
		Amount:       c.amount(q),
		FromCurrency: model.Normalize(from),
		ToCurrency:   model.Normalize(to),
		Proxy:        c.proxy(q),
	})
}

func (c *Client) ExportToSpreadsheet(ctx context.Context, q Query) (string, error) {
	return c.Export(ctx, q, model.FormatXLSX)
}

func (c *Client) ExportToCSV(ctx context.Context, q Query) (string, error) {
	return c.Export(ctx, q, model.FormatCSV)
}

func (c *Client) ExportToJSON(ctx context.Context, q Query) (string, error) {
	return c.Export(ctx, q, model.FormatJSONL)
}

// Export builds the table for q and writes it as "{amount} {code} data.ext",
// returning the path actually written.
func (c *Client) Export(ctx context.Context, q Query, format model.ExportFormat) (string, error) {
	table, err := c.GetTable(ctx, q)
	if err != nil {
		return "", err
	}
	return c.exporter.Export(table, format, exporter.BaseName(table, format))
}

// CheckProxy validates the proxy and describes the public address it
// exposes.
func (c *Client) CheckProxy(ctx context.Context, proxy string) (string, error) {
	if proxy == "" {
		proxy = c.defaults.Proxy
	}
	return c.proxies.Describe(ctx, proxy)
}

// PurgeExpired drops stale responses from the cache Build opened.
func (c *Client) PurgeExpired(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.ClearExpired(ctx)
}

func (c *Client) amount(q Query) float64 {
	if q.Amount != 0 {
		return q.Amount
	}
	return c.defaults.Amount
}

func (c *Client) proxy(q Query) string {
	if q.Proxy != "" {
		return q.Proxy
	}
	return c.defaults.Proxy
}
