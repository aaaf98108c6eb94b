package models

// PricePoint - пара [timestampMs, price]
type PricePoint [2]float64

// ChartSeries - упорядоченный по времени ряд цен для монеты за период
type ChartSeries struct {
	Coin     string       `json:"coin"`
	Period   string       `json:"period"`
	Prices   []PricePoint `json:"prices"`
	Source   string       `json:"source"`
	Fallback bool         `json:"fallback"`
}
