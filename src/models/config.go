package models

// MConfig Structure
type MConfig struct {
	Name      string           `yaml:"name"`
	Host      string           `yaml:"host"`
	Port      int              `yaml:"port"`
	LogLevel  string           `yaml:"log_level"`
	Storage   MStorageConfig   `yaml:"storage"`
	Network   MNetworkConfig   `yaml:"network"`
	Quote     MQuoteConfig     `yaml:"quote"`
	Portfolio MPortfolioConfig `yaml:"portfolio"`
	Refresh   MRefreshConfig   `yaml:"refresh"`
}

type MStorageConfig struct {
	SlotType           string `yaml:"slot_type"` // "file", "sqlite" or "postgres"
	SlotPath           string `yaml:"slot_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MNetworkConfig struct {
	RequestTimeout     int    `yaml:"timeout"`
	ConcurrentRequests int    `yaml:"concurrent_requests"`
	UserAgent          string `yaml:"user_agent"`
	Referer            string `yaml:"referer"`
}

type MQuoteConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type MPortfolioConfig struct {
	IndexSymbol string      `yaml:"index_symbol"`
	Positions   []MPosition `yaml:"positions"`
}

type MPosition struct {
	Symbol string  `yaml:"symbol"`
	Name   string  `yaml:"name"`
	Cost   float64 `yaml:"cost"` // zero means no cost basis configured
}

type MRefreshConfig struct {
	IntervalSeconds int    `yaml:"interval_seconds"`
	OffHoursPolicy  string `yaml:"off_hours_policy"` // "reschedule" or "suspend"
	ThresholdPolicy string `yaml:"threshold_policy"` // "segment" or "flat"
	Timezone        string `yaml:"timezone"`
}
