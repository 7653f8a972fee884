package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"xchanger/internal/adapter/exporter"
	"xchanger/internal/domain/model"
	"xchanger/internal/domain/ports"
	"xchanger/internal/metrics"
	"xchanger/pkg/logger"
	"xchanger/pkg/utils"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type RateResponse struct {
	Amount    float64        `json:"amount"`
	From      model.Currency `json:"from"`
	To        model.Currency `json:"to"`
	Rate      string         `json:"rate"`
	Text      string         `json:"text"`
	FetchedAt time.Time      `json:"fetched_at"`
}

var contentTypes = map[model.ExportFormat]string{
	model.FormatCSV:   "text/csv",
	model.FormatJSONL: "application/x-ndjson",
	model.FormatXLSX:  "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type Handler struct {
	service ports.ExchangeService
	proxy   string
	log     *logger.Logger
	metrics *metrics.Metrics
	write   func(w io.Writer, table *model.RateTable, format model.ExportFormat) error
}

// NewHandler serves the pipelines over HTTP. proxy, if set, is used for
// every outbound fetch.
func NewHandler(service ports.ExchangeService, proxy string, log *logger.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		proxy:   proxy,
		log:     log,
		metrics: metrics,
		write:   exporter.Write,
	}
}

func parseAmount(r *http.Request) (float64, error) {
	s := r.URL.Query().Get("amount")
	if s == "" {
		return 1, nil
	}
	return utils.ParseAmount(s)
}

func (h *Handler) GetRateHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.RateRequestsTotal.Inc()

	from := model.Normalize(r.URL.Query().Get("from"))
	to := model.Normalize(r.URL.Query().Get("to"))

	if from == "" || to == "" {
		h.sendErrorResponse(w, http.StatusBadRequest, "missing required parameters: from and to")
		return
	}

	amount, err := parseAmount(r)
	if err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid amount parameter")
		return
	}

	result, err := h.service.GetRate(r.Context(), model.ConversionRequest{
		Amount:       amount,
		FromCurrency: from,
		ToCurrency:   to,
		Proxy:        h.proxy,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.sendSuccessResponse(w, RateResponse{
		Amount:    result.Request.Amount,
		From:      result.Request.FromCurrency,
		To:        result.Request.ToCurrency,
		Rate:      result.Rate,
		Text:      result.String(),
		FetchedAt: result.FetchedAt,
	})
}

// GetTableHandler builds a full rate table. With ?format=csv|jsonl|xlsx the
// table is returned as a file download instead of JSON.
func (h *Handler) GetTableHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.TableRequestsTotal.Inc()

	query := r.URL.Query()
	amount, err := parseAmount(r)
	if err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid amount parameter")
		return
	}

	var format model.ExportFormat
	if f := query.Get("format"); f != "" {
		format, err = model.ParseExportFormat(f)
		if err != nil {
			h.handleServiceError(w, err)
			return
		}
	}

	table, err := h.service.GetTable(r.Context(), model.TableRequest{
		Amount:       amount,
		FromCurrency: model.Normalize(query.Get("from")),
		ToCurrency:   model.Normalize(query.Get("to")),
		Proxy:        h.proxy,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if format == "" {
		h.sendSuccessResponse(w, table)
		return
	}

	var buf bytes.Buffer
	if err := h.write(&buf, table, format); err != nil {
		h.log.Error("Failed to write table", "error", err, "format", format)
		h.sendErrorResponse(w, http.StatusInternalServerError, "failed to export table")
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exporter.BaseName(table, format)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Error("Failed to send table", "error", err, "format", format)
	}
}

func (h *Handler) sendSuccessResponse(w http.ResponseWriter, data interface{}) {
	response := Response{
		Success: true,
		Data:    data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	response := Response{
		Success: false,
		Error:   message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("Failed to encode error response", "error", err)
	}
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	errorMessage := "internal server error"

	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		statusCode = http.StatusBadRequest
		errorMessage = fmt.Sprintf("invalid %s %q: %s", validationErr.Field, validationErr.Value, validationErr.Reason)
	case errors.Is(err, model.ErrExtraction):
		statusCode = http.StatusNotFound
		errorMessage = "exchange rate not found"
	case errors.Is(err, model.ErrProxy):
		statusCode = http.StatusBadGateway
		errorMessage = "proxy is not working"
	case errors.Is(err, model.ErrFetch):
		statusCode = http.StatusServiceUnavailable
		errorMessage = "converter site failure"
	}

	h.log.Error("Service error", "error", err, "status_code", statusCode)
	h.sendErrorResponse(w, statusCode, errorMessage)
}
