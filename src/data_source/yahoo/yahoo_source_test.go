package yahoo

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"stock-lens/src/helpers"
	"stock-lens/src/logger"
	"stock-lens/src/models"
	"stock-lens/src/network"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartFixture = `{"chart":{"result":[{"meta":{"currency":"TWD","symbol":"2330.TW",
"exchangeTimezoneName":"Asia/Taipei","gmtoffset":28800},
"timestamp":[1719795600,1719882000,1719968400],
"indicators":{"quote":[{"open":[985.0,1000.0,null],"high":[990.0,1010.0,1020.0],
"low":[980.0,995.0,1005.0],"close":[988.0,1005.0,1015.0],"volume":[25000000,31000000,28000000]}]}}],
"error":null}}`

const chartNotFound = `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

const timeseriesFixture = `{"timeseries":{"result":[
{"meta":{"symbol":["2330.TW"],"type":["quarterlyTotalRevenue"]},"timestamp":[1711843200,1719705600],
 "quarterlyTotalRevenue":[
  {"asOfDate":"2024-03-31","periodType":"3M","reportedValue":{"raw":592644201000,"fmt":"592.64B"}},
  {"asOfDate":"2024-06-30","periodType":"3M","reportedValue":{"raw":673510177000,"fmt":"673.51B"}}]},
{"meta":{"symbol":["2330.TW"],"type":["quarterlyNetIncomeCommonStockholders"]},"timestamp":[1711843200,1719705600],
 "quarterlyNetIncomeCommonStockholders":[null,
  {"asOfDate":"2024-06-30","periodType":"3M","reportedValue":{"raw":247845347000,"fmt":"247.85B"}}]},
{"meta":{"symbol":["2330.TW"],"type":["quarterlyBasicEPS"]}},
{"meta":{"symbol":["2330.TW"],"type":["trailingTotalRevenue"]},
 "trailingTotalRevenue":[{"asOfDate":"2024-06-30","reportedValue":{"raw":1}}]}
],"error":null}}`

const quoteSummaryFixture = `{"quoteSummary":{"result":[{
"price":{"longName":"Taiwan Semiconductor Manufacturing Company Limited","shortName":"TSMC","currency":"TWD",
 "marketCap":{"raw":25000000000000,"fmt":"25T"}},
"summaryDetail":{"dividendYield":{"raw":0.0125,"fmt":"1.25%"},"trailingPE":{"raw":28.5,"fmt":"28.50"},
 "currency":"USD","forwardPE":{}},
"financialData":{"profitMargins":{"raw":0.38,"fmt":"38%"}},
"assetProfile":{"sector":"Technology","companyOfficers":[{"name":"x"}]}}],"error":null}}`

type fixtureServer struct {
	*httptest.Server
	crumbCalls   atomic.Int32
	summaryCalls atomic.Int32
	rejectFirst  bool
}

func newFixtureServer(t *testing.T) *fixtureServer {
	fs := &fixtureServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "A3", Value: "session", Path: "/"})
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/v1/test/getcrumb", func(w http.ResponseWriter, r *http.Request) {
		fs.crumbCalls.Add(1)
		if _, err := r.Cookie("A3"); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		io.WriteString(w, "abc123")
	})
	mux.HandleFunc("/v8/finance/chart/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "6mo", r.URL.Query().Get("range"))
		if strings.HasSuffix(r.URL.Path, "/2330.TW") {
			io.WriteString(w, chartFixture)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, chartNotFound)
	})
	mux.HandleFunc("/ws/fundamentals-timeseries/v1/finance/timeseries/", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("type"), "quarterlyTotalRevenue")
		io.WriteString(w, timeseriesFixture)
	})
	mux.HandleFunc("/v10/finance/quoteSummary/", func(w http.ResponseWriter, r *http.Request) {
		n := fs.summaryCalls.Add(1)
		if fs.rejectFirst && n == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "abc123", r.URL.Query().Get("crumb"))
		io.WriteString(w, quoteSummaryFixture)
	})
	fs.Server = httptest.NewServer(mux)
	t.Cleanup(fs.Close)
	return fs
}

func newTestSource(baseURL string) *YahooFinanceSource {
	cfg := &models.MConfig{
		Network:  models.MNetworkConfig{RequestTimeout: 5},
		Provider: models.MProviderConfig{Name: "yahoo", BaseURL: baseURL},
	}
	log := logger.NewLogger(nil, "test")
	log.SetOutput(io.Discard)
	return NewYahooFinanceSource(cfg, network.NewAsyncNetworkManager(cfg, log), log)
}

func TestFetchPriceHistory(t *testing.T) {
	fs := newFixtureServer(t)
	src := newTestSource(fs.URL)

	table, err := src.FetchPriceHistory(context.Background(), "2330.TW", "6mo", "1d")
	require.NoError(t, err)
	require.Equal(t, models.PriceTableFlat, table.Kind)

	flat := table.Flat
	require.Len(t, flat.Index, 3)
	assert.Equal(t, "Asia/Taipei", flat.Index[0].Location().String())
	assert.Equal(t, "2024-07-01", flat.Index[0].Format("2006-01-02"))
	assert.Nil(t, flat.Columns[models.FieldOpen][2])
	assert.Equal(t, 1015.0, flat.Columns[models.FieldClose][2])
	assert.Equal(t, 25000000.0, flat.Columns[models.FieldVolume][0])
}

func TestFetchPriceHistoryUnknownSymbol(t *testing.T) {
	fs := newFixtureServer(t)
	src := newTestSource(fs.URL)

	_, err := src.FetchPriceHistory(context.Background(), "XXXX.TW", "6mo", "1d")
	require.Error(t, err)
	assert.ErrorIs(t, err, helpers.ErrProviderFailure)

	var pf *helpers.ProviderFailure
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, "XXXX.TW", pf.Symbol)
}

func TestParseChartError(t *testing.T) {
	_, err := parseChartResponse("X", []byte(chartNotFound))
	assert.ErrorContains(t, err, "Not Found")
}

func TestFetchQuarterlyIncomeStatement(t *testing.T) {
	fs := newFixtureServer(t)
	src := newTestSource(fs.URL)
	src.now = func() time.Time { return time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC) }

	stmt, err := src.FetchQuarterlyIncomeStatement(context.Background(), "2330.TW")
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-06-30", "2024-03-31"}, stmt.Periods)
	require.Len(t, stmt.Rows, 2)
	assert.Equal(t, "Total Revenue", stmt.Rows[0].Label)
	assert.Equal(t, 592644201000.0, stmt.Rows[0].Values["2024-03-31"])
	assert.Equal(t, "Net Income Common Stockholders", stmt.Rows[1].Label)
	assert.NotContains(t, stmt.Rows[1].Values, "2024-03-31")
}

func TestSplitCamel(t *testing.T) {
	tests := map[string]string{
		"TotalRevenue": "Total Revenue",
		"BasicEPS":     "Basic EPS",
		"EBITDA":       "EBITDA",
		"NetIncomeFromContinuingOperationNetMinorityInterest": "Net Income From Continuing Operation Net Minority Interest",
		"TotalLiabilitiesNetMinorityInterest":                 "Total Liabilities Net Minority Interest",
	}
	for in, want := range tests {
		assert.Equal(t, want, splitCamel(in), in)
	}
}

func TestFetchCompanyInfo(t *testing.T) {
	fs := newFixtureServer(t)
	src := newTestSource(fs.URL)

	info, err := src.FetchCompanyInfo(context.Background(), "2330.TW")
	require.NoError(t, err)

	assert.Equal(t, "Taiwan Semiconductor Manufacturing Company Limited", info["longName"])
	assert.Equal(t, "TWD", info["currency"])
	assert.Equal(t, 25000000000000.0, info["marketCap"])
	assert.Equal(t, 0.0125, info["dividendYield"])
	assert.Equal(t, "Technology", info["sector"])
	assert.NotContains(t, info, "forwardPE")
	assert.NotContains(t, info, "companyOfficers")

	_, err = src.FetchCompanyInfo(context.Background(), "2330.TW")
	require.NoError(t, err)
	assert.Equal(t, int32(1), fs.crumbCalls.Load())
}

func TestFetchCompanyInfoRefreshesCrumb(t *testing.T) {
	fs := newFixtureServer(t)
	fs.rejectFirst = true
	src := newTestSource(fs.URL)

	info, err := src.FetchCompanyInfo(context.Background(), "2330.TW")
	require.NoError(t, err)
	assert.Equal(t, "TSMC", info["shortName"])
	assert.Equal(t, int32(2), fs.crumbCalls.Load())
	assert.Equal(t, int32(2), fs.summaryCalls.Load())
}
