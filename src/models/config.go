package models

// MConfig Structure
type MConfig struct {
	Name      string           `yaml:"name" validate:"required"`
	Host      string           `yaml:"host" validate:"required"`
	Port      int              `yaml:"port"`
	LogLevel  string           `yaml:"log_level" validate:"omitempty,oneof=DEBUG INFO WARNING ERROR"`
	GrpcHost  string           `yaml:"grpc_host"`
	GrpcPort  int              `yaml:"grpc_port"`
	Storage   MStorageConfig   `yaml:"storage"`
	Network   MNetworkConfig   `yaml:"network"`
	Provider  MProviderConfig  `yaml:"provider"`
	Resolver  MResolverConfig  `yaml:"resolver"`
	Windows   MWindowConfig    `yaml:"windows"`
	Watchlist MWatchlistConfig `yaml:"watchlist"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type" validate:"required,oneof=sqlite postgres none"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	RetentionDays      int    `yaml:"retention_days" validate:"gte=0"`
}

type MNetworkConfig struct {
	Enabled           bool     `yaml:"enabled"`
	Proxies           []string `yaml:"proxies,omitempty"`
	RequestTimeout    int      `yaml:"timeout"`
	MaxRetries        int      `yaml:"retries"`
	RequestsPerSecond int      `yaml:"requests_per_second"`
	UserAgent         string   `yaml:"user_agent"`
}

// MProviderConfig selects and parameterizes the market-data provider.
type MProviderConfig struct {
	Name     string `yaml:"name" validate:"required"`
	Period   string `yaml:"period"`   // price history range, e.g. "6mo"
	Interval string `yaml:"interval"` // bar size, e.g. "1d"
	BaseURL  string `yaml:"base_url"`

	// TimeoutSeconds bounds one full lookup (resolution plus fundamentals).
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"gte=0"`
}

// MResolverConfig holds the market-preference suffix policy.
type MResolverConfig struct {
	Delimiter       string `yaml:"delimiter"`
	PrimarySuffix   string `yaml:"primary_suffix"`
	SecondarySuffix string `yaml:"secondary_suffix"`
}

// MWindowConfig caps the size of derived series and tables.
type MWindowConfig struct {
	MaxPoints    int  `yaml:"max_points" validate:"gte=0"`
	MaxTableRows int  `yaml:"max_table_rows" validate:"gte=0"`
	MaxTableCols int  `yaml:"max_table_cols" validate:"gte=0"`
	Transpose    bool `yaml:"transpose"`
}

type MWatchlistConfig struct {
	Symbols           []string `yaml:"symbols,omitempty"`
	Cron              string   `yaml:"cron"`
	RespectMarketOpen bool     `yaml:"respect_market_open"`
	TimeoutSeconds    int      `yaml:"timeout_seconds"`
}
