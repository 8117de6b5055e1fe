package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"stock-lens/src/helpers"
	"stock-lens/src/interfaces"
	"stock-lens/src/logger"
	"stock-lens/src/models"
)

const (
	DefaultBaseURL   = "https://query2.finance.yahoo.com"
	DefaultCookieURL = "https://fc.yahoo.com"
	ProviderName     = "yahoo"
)

// YahooFinanceSource implements interfaces.IDataProvider over the public
// Yahoo Finance JSON endpoints.
type YahooFinanceSource struct {
	Config    *models.MConfig
	Network   interfaces.INetworkManager
	Logger    *logger.Logger
	BaseURL   string
	CookieURL string

	session *crumbSession
	now     func() time.Time
}

// -----------------------------------------------------------------------------

func NewYahooFinanceSource(cfg *models.MConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *YahooFinanceSource {
	base := DefaultBaseURL
	cookie := DefaultCookieURL
	if cfg.Provider.BaseURL != "" {
		base = strings.TrimRight(cfg.Provider.BaseURL, "/")
		cookie = base + "/"
	}

	s := &YahooFinanceSource{
		Config:    cfg,
		Network:   netMgr,
		Logger:    log,
		BaseURL:   base,
		CookieURL: cookie,
		now:       time.Now,
	}
	s.session = newCrumbSession(s)
	return s
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) Name() string {
	return ProviderName
}

// -----------------------------------------------------------------------------

// FetchPriceHistory downloads daily bars from the chart endpoint.
func (s *YahooFinanceSource) FetchPriceHistory(ctx context.Context, symbol, period, interval string) (*models.MRawPriceTable, error) {
	params := map[string]string{
		"range":          period,
		"interval":       interval,
		"includePrePost": "false",
	}

	body, err := s.Network.Get(ctx, s.endpoint("/v8/finance/chart/%s", symbol), params)
	if err != nil {
		return nil, helpers.NewProviderFailure(ProviderName, "history", symbol, err)
	}

	table, err := parseChartResponse(symbol, body)
	if err != nil {
		return nil, helpers.NewProviderFailure(ProviderName, "history", symbol, err)
	}

	s.Logger.Debug("Fetched %s: %d rows", symbol, len(table.Flat.Index))
	return table, nil
}

// -----------------------------------------------------------------------------

// FetchCompanyInfo merges the quoteSummary modules into one flat mapping.
func (s *YahooFinanceSource) FetchCompanyInfo(ctx context.Context, symbol string) (models.MCompanyInfo, error) {
	info, err := s.fetchQuoteSummary(ctx, symbol)
	if err != nil {
		return nil, helpers.NewProviderFailure(ProviderName, "info", symbol, err)
	}
	return info, nil
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) FetchQuarterlyIncomeStatement(ctx context.Context, symbol string) (*models.MStatement, error) {
	return s.fetchStatement(ctx, symbol, models.StatementIncome)
}

func (s *YahooFinanceSource) FetchQuarterlyBalanceSheet(ctx context.Context, symbol string) (*models.MStatement, error) {
	return s.fetchStatement(ctx, symbol, models.StatementBalance)
}

func (s *YahooFinanceSource) FetchQuarterlyCashFlow(ctx context.Context, symbol string) (*models.MStatement, error) {
	return s.fetchStatement(ctx, symbol, models.StatementCashFlow)
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) fetchStatement(ctx context.Context, symbol string, kind models.StatementKind) (*models.MStatement, error) {
	keys := statementKeys[kind]
	types := make([]string, len(keys))
	for i, k := range keys {
		types[i] = quarterlyPrefix + k
	}

	params := map[string]string{
		"symbol":  symbol,
		"type":    strings.Join(types, ","),
		"period1": fmt.Sprintf("%d", timeseriesStart.Unix()),
		"period2": fmt.Sprintf("%d", s.now().Unix()),
	}

	body, err := s.Network.Get(ctx, s.endpoint("/ws/fundamentals-timeseries/v1/finance/timeseries/%s", symbol), params)
	if err != nil {
		return nil, helpers.NewProviderFailure(ProviderName, string(kind), symbol, err)
	}

	stmt, err := parseTimeseries(body, keys)
	if err != nil {
		return nil, helpers.NewProviderFailure(ProviderName, string(kind), symbol, err)
	}
	return stmt, nil
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) endpoint(pathFormat, symbol string) string {
	return s.BaseURL + fmt.Sprintf(pathFormat, url.PathEscape(symbol))
}
