package models

import "time"

// CoinQuote - рыночные данные по одной монете.
// Отсутствующие у провайдера значения остаются nil и сериализуются как null.
type CoinQuote struct {
	Price       *float64 `json:"price"`
	Change24h   *float64 `json:"change24h"`
	Change7d    *float64 `json:"change7d"`
	Volume24h   *float64 `json:"volume24h"`
	MarketCap   *float64 `json:"marketCap"`
	LastUpdated string   `json:"lastUpdated"`

	// статические индикаторы сети, не живые измерения
	FeeLevel      string `json:"feeLevel,omitempty"`
	FeeLevelValue string `json:"feeLevelValue,omitempty"`
	Activity      string `json:"activity,omitempty"`
	GasIndicator  string `json:"gasIndicator,omitempty"`
	GasValue      string `json:"gasValue,omitempty"`
	BaseFee       string `json:"baseFee,omitempty"`
	FeeRate       string `json:"feeRate,omitempty"`
	FeeRateValue  string `json:"feeRateValue,omitempty"`
	MempoolLevel  string `json:"mempoolLevel,omitempty"`
}

// MarketSnapshot - агрегированный срез рынка по всем отслеживаемым монетам
type MarketSnapshot struct {
	OK           bool                  `json:"ok"`
	Coins        map[string]*CoinQuote `json:"coins"`
	Timestamp    time.Time             `json:"timestamp"`
	ProviderUsed string                `json:"providerUsed"`
}
