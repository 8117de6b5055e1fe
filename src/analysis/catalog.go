package analysis

import "stock-lens/src/models"

// Label synonyms, preferred variant first.
var (
	RevenueLabels = []string{"Total Revenue", "Operating Revenue", "Revenue", "營業收入"}

	GrossProfitLabels = []string{"Gross Profit", "營業毛利"}

	OperatingIncomeLabels = []string{"Operating Income", "Total Operating Income As Reported", "營業利益"}

	NetIncomeLabels = []string{
		"Net Income",
		"Net Income Common Stockholders",
		"Net Income From Continuing Operation Net Minority Interest",
		"本期淨利",
	}

	OperatingCashFlowLabels = []string{
		"Operating Cash Flow",
		"Cash Flow From Continuing Operating Activities",
		"Total Cash From Operating Activities",
	}

	TotalAssetsLabels = []string{"Total Assets"}

	TotalLiabilitiesLabels = []string{"Total Liabilities Net Minority Interest", "Total Liab", "Total Liabilities"}
)

// -----------------------------------------------------------------------------

// MetricSpec names one fundamentals series and where it comes from.
type MetricSpec struct {
	Name      string
	Statement models.StatementKind
	Labels    []string
	Ratio     *models.MRatioSpec
}

// FundamentalsCatalog is the fixed set of series in every payload.
var FundamentalsCatalog = []MetricSpec{
	{Name: "revenue", Statement: models.StatementIncome, Labels: RevenueLabels},
	{Name: "operatingIncome", Statement: models.StatementIncome, Labels: OperatingIncomeLabels},
	{Name: "netIncome", Statement: models.StatementIncome, Labels: NetIncomeLabels},
	{Name: "grossMargin", Statement: models.StatementIncome, Labels: GrossProfitLabels,
		Ratio: &models.MRatioSpec{Numerator: GrossProfitLabels, Denominator: RevenueLabels, AsPercent: true}},
	{Name: "operatingMargin", Statement: models.StatementIncome, Labels: OperatingIncomeLabels,
		Ratio: &models.MRatioSpec{Numerator: OperatingIncomeLabels, Denominator: RevenueLabels, AsPercent: true}},
	{Name: "netMargin", Statement: models.StatementIncome, Labels: NetIncomeLabels,
		Ratio: &models.MRatioSpec{Numerator: NetIncomeLabels, Denominator: RevenueLabels, AsPercent: true}},
	{Name: "operatingCashFlow", Statement: models.StatementCashFlow, Labels: OperatingCashFlowLabels},
	{Name: "totalAssets", Statement: models.StatementBalance, Labels: TotalAssetsLabels},
	{Name: "totalLiabilities", Statement: models.StatementBalance, Labels: TotalLiabilitiesLabels},
}

// -----------------------------------------------------------------------------

// InfoField is a scalar copied from company info into the payload.
type InfoField struct {
	Key     string
	Text    bool // descriptive string, copied verbatim
	Percent bool // provider reports a fraction
}

var InfoCatalog = []InfoField{
	{Key: "longName", Text: true},
	{Key: "shortName", Text: true},
	{Key: "sector", Text: true},
	{Key: "industry", Text: true},
	{Key: "currency", Text: true},
	{Key: "exchange", Text: true},
	{Key: "marketCap"},
	{Key: "trailingPE"},
	{Key: "forwardPE"},
	{Key: "priceToBook"},
	{Key: "trailingEps"},
	{Key: "beta"},
	{Key: "fiftyTwoWeekHigh"},
	{Key: "fiftyTwoWeekLow"},
	{Key: "dividendYield", Percent: true},
	{Key: "payoutRatio", Percent: true},
	{Key: "profitMargins", Percent: true},
	{Key: "grossMargins", Percent: true},
	{Key: "operatingMargins", Percent: true},
	{Key: "returnOnEquity", Percent: true},
	{Key: "returnOnAssets", Percent: true},
	{Key: "revenueGrowth", Percent: true},
	{Key: "earningsGrowth", Percent: true},
}
