package ports

import (
	"context"

	"xchanger/internal/domain/model"
)

type ExchangeService interface {
	GetRate(ctx context.Context, request model.ConversionRequest) (*model.RateResult, error)
	GetTable(ctx context.Context, request model.TableRequest) (*model.RateTable, error)
}

type TableExporter interface {
	Export(table *model.RateTable, format model.ExportFormat, baseName string) (string, error)
}
