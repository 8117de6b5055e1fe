package interfaces

import (
	"context"

	"stock-lens/src/models"
)

// -----------------------------------------------------------------------------
// IDataProvider is the market-data source consumed by the lookup engine.
// Every method returns a *helpers.ProviderFailure on transport or provider errors.
// -----------------------------------------------------------------------------

type IDataProvider interface {

	// Name returns the unique identifier of the provider
	Name() string

	// -----------------------------------------------------------------------------

	// FetchPriceHistory retrieves the raw OHLCV table for a symbol.
	// period is a range such as "6mo"; interval a bar size such as "1d".
	FetchPriceHistory(ctx context.Context, symbol, period, interval string) (*models.MRawPriceTable, error)

	// -----------------------------------------------------------------------------

	// FetchCompanyInfo retrieves descriptive and valuation fields.
	FetchCompanyInfo(ctx context.Context, symbol string) (models.MCompanyInfo, error)

	// -----------------------------------------------------------------------------

	FetchQuarterlyIncomeStatement(ctx context.Context, symbol string) (*models.MStatement, error)
	FetchQuarterlyBalanceSheet(ctx context.Context, symbol string) (*models.MStatement, error)
	FetchQuarterlyCashFlow(ctx context.Context, symbol string) (*models.MStatement, error)
}
