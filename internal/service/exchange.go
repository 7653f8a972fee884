package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"xchanger/internal/domain/model"
	"xchanger/internal/domain/ports"
	"xchanger/pkg/logger"
	"xchanger/pkg/utils"
)

const convertPath = "/currencyconverter/convert/"

type ExchangeService struct {
	fetcher    ports.PageFetcher
	extractor  ports.RateExtractor
	baseURL    string
	currencies []model.Currency
	progress   ports.ProgressReporter
	log        *logger.Logger
	now        func() time.Time
}

type Option func(*ExchangeService)

// WithCurrencies replaces the supported currency list. Batch tables follow
// its order.
func WithCurrencies(currencies []model.Currency) Option {
	return func(s *ExchangeService) { s.currencies = currencies }
}

func WithProgress(progress ports.ProgressReporter) Option {
	return func(s *ExchangeService) { s.progress = progress }
}

func NewExchangeService(fetcher ports.PageFetcher, extractor ports.RateExtractor, baseURL string, log *logger.Logger, opts ...Option) *ExchangeService {
	s := &ExchangeService{
		fetcher:    fetcher,
		extractor:  extractor,
		baseURL:    baseURL,
		currencies: model.SupportedCurrencies,
		progress:   nopProgress{},
		log:        log,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ExchangeService) Currencies() []model.Currency {
	return s.currencies
}

// URL builds the converter page address for one conversion.
func (s *ExchangeService) URL(amount float64, from, to model.Currency) string {
	return fmt.Sprintf("%s%s?Amount=%s&From=%s&To=%s", s.baseURL, convertPath, utils.FormatAmount(amount), from, to)
}

// GetRate scrapes a single conversion. Any failure aborts the call; a page
// without a rate is an ExtractionError.
func (s *ExchangeService) GetRate(ctx context.Context, request model.ConversionRequest) (*model.RateResult, error) {
	if err := validateAmount(request.Amount); err != nil {
		return nil, err
	}
	if err := s.validateCurrency("from", request.FromCurrency); err != nil {
		return nil, err
	}
	if err := s.validateCurrency("to", request.ToCurrency); err != nil {
		return nil, err
	}

	url := s.URL(request.Amount, request.FromCurrency, request.ToCurrency)
	log := s.log.With("run_id", uuid.NewString(), "pair", request.Pair().String())

	log.Info("Fetching exchange rate", "amount", request.Amount)
	body, err := s.fetcher.Fetch(ctx, url, request.Proxy)
	if err != nil {
		log.Error("Failed to fetch exchange rate", "error", err)
		return nil, err
	}

	rate, ok := s.extractor.Extract(body)
	if !ok {
		log.Error("Exchange rate not found in page", "url", url)
		return nil, &model.ExtractionError{URL: url}
	}

	return &model.RateResult{
		Request:   request,
		Rate:      rate,
		FetchedAt: s.now(),
	}, nil
}

// GetTable scrapes one rate per supported currency, holding the requested
// side fixed. Entries follow the currency list order. A page that fails to
// load or parse yields an Unavailable entry; only invalid input, a broken
// proxy or cancellation abort the batch.
func (s *ExchangeService) GetTable(ctx context.Context, request model.TableRequest) (*model.RateTable, error) {
	side, code, ok := request.Fixed()
	if !ok {
		return nil, &model.ValidationError{
			Field:  "currencies",
			Value:  fmt.Sprintf("from=%s to=%s", request.FromCurrency, request.ToCurrency),
			Reason: "specify exactly one of from and to, leaving the other empty",
		}
	}
	if err := s.validateCurrency(string(side), code); err != nil {
		return nil, err
	}
	if err := validateAmount(request.Amount); err != nil {
		return nil, err
	}

	log := s.log.With("run_id", uuid.NewString(), "side", side, "code", code)
	log.Info("Building rate table", "amount", request.Amount, "currencies", len(s.currencies))

	table := &model.RateTable{
		Amount:    request.Amount,
		FixedSide: side,
		FixedCode: code,
		Entries:   make([]model.TableEntry, 0, len(s.currencies)),
	}

	s.progress.Start(len(s.currencies), "Fetching rates")
	defer s.progress.Finish()

	for _, currency := range s.currencies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		conversion := request.Conversion(currency)
		url := s.URL(conversion.Amount, conversion.FromCurrency, conversion.ToCurrency)
		entry := model.TableEntry{Currency: currency}

		body, err := s.fetcher.Fetch(ctx, url, request.Proxy)
		switch {
		case err != nil && (errors.Is(err, model.ErrProxy) || ctx.Err() != nil):
			log.Error("Aborting rate table", "currency", currency, "error", err)
			return nil, err
		case err != nil:
			log.Warn("Rate unavailable", "currency", currency, "error", err)
		default:
			if rate, ok := s.extractor.Extract(body); ok {
				entry.Rate = rate
				entry.Available = true
			} else {
				log.Warn("Rate not found in page", "currency", currency, "url", url)
			}
		}

		table.Entries = append(table.Entries, entry)
		s.progress.Advance()
	}

	table.FetchedAt = s.now()
	log.Info("Rate table complete", "available", table.Available(), "total", len(table.Entries))

	return table, nil
}

func (s *ExchangeService) validateCurrency(field string, c model.Currency) error {
	if !c.In(s.currencies) {
		return &model.ValidationError{
			Field:     field,
			Value:     string(c),
			Reason:    "unsupported currency",
			Supported: s.currencies,
		}
	}
	return nil
}

func validateAmount(amount float64) error {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return &model.ValidationError{
			Field:  "amount",
			Value:  utils.FormatAmount(amount),
			Reason: "must be a positive number",
		}
	}
	return nil
}

type nopProgress struct{}

func (nopProgress) Start(int, string) {}
func (nopProgress) Advance()          {}
func (nopProgress) Finish()           {}
