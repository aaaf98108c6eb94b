// Package catalog содержит справочник поддерживаемых цепочек и шагов онбординга.
package catalog

import "sort"

const (
	ChainSOL = "sol"
	ChainETH = "eth"
	ChainBTC = "btc"
)

// Metric описывает показатель сети, который отображается на странице цепочки
type Metric struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// FeeTerms - единицы и типичный размер комиссии
type FeeTerms struct {
	Unit    string `json:"unit"`
	Typical string `json:"typical"`
}

// Chain - поддерживаемая криптовалюта
type Chain struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Symbol       string   `json:"symbol"`
	CoingeckoID  string   `json:"coingeckoId"`
	Description  string   `json:"description"`
	ExplorerURL  string   `json:"explorerUrl"`
	ExplorerName string   `json:"explorerName"`
	WalletNote   string   `json:"walletNote"`
	Metrics      []Metric `json:"metrics"`
	FeeTerms     FeeTerms `json:"feeTerms"`
	order        int
}

var chains = map[string]Chain{
	ChainSOL: {
		ID:           ChainSOL,
		Name:         "Solana",
		Symbol:       "SOL",
		CoingeckoID:  "solana",
		Description:  "A high-speed blockchain built for fast, low-cost transactions and decentralized apps.",
		ExplorerURL:  "https://explorer.solana.com",
		ExplorerName: "Solana Explorer",
		WalletNote:   "Phantom supports Solana natively.",
		Metrics: []Metric{
			{Key: "feeLevel", Label: "Fee Level", Description: "Current transaction fee tier"},
			{Key: "activity", Label: "Network Activity", Description: "Transaction volume indicator"},
		},
		FeeTerms: FeeTerms{Unit: "lamports", Typical: "~0.000005 SOL per transaction"},
		order:    0,
	},
	ChainETH: {
		ID:           ChainETH,
		Name:         "Ethereum",
		Symbol:       "ETH",
		CoingeckoID:  "ethereum",
		Description:  "The leading smart contract platform powering DeFi, NFTs, and decentralized applications.",
		ExplorerURL:  "https://etherscan.io",
		ExplorerName: "Etherscan",
		WalletNote:   "Phantom supports Ethereum alongside Solana.",
		Metrics: []Metric{
			{Key: "gasIndicator", Label: "Gas Price", Description: "Current gas price indicator (gwei)"},
			{Key: "baseFee", Label: "Network Fee Level", Description: "Base fee trend"},
		},
		FeeTerms: FeeTerms{Unit: "gwei", Typical: "Varies with network congestion"},
		order:    1,
	},
	ChainBTC: {
		ID:           ChainBTC,
		Name:         "Bitcoin",
		Symbol:       "BTC",
		CoingeckoID:  "bitcoin",
		Description:  "The original cryptocurrency, a decentralized digital store of value and payment network.",
		ExplorerURL:  "https://mempool.space",
		ExplorerName: "Mempool.space",
		WalletNote:   "Phantom supports Bitcoin alongside Solana and Ethereum.",
		Metrics: []Metric{
			{Key: "feeRate", Label: "Fee Rate", Description: "Current fee rate indicator (sat/vB)"},
			{Key: "mempoolLevel", Label: "Mempool Pressure", Description: "Pending transaction congestion"},
		},
		FeeTerms: FeeTerms{Unit: "sat/vB", Typical: "Varies with mempool congestion"},
		order:    2,
	},
}

// Chains возвращает список цепочек в фиксированном порядке (sol, eth, btc)
func Chains() []Chain {
	list := make([]Chain, 0, len(chains))
	for _, c := range chains {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].order < list[j].order })
	return list
}

// ChainIDs возвращает идентификаторы цепочек в том же порядке, что и Chains
func ChainIDs() []string {
	list := Chains()
	ids := make([]string, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ID)
	}
	return ids
}

// Lookup ищет цепочку по идентификатору
func Lookup(id string) (Chain, bool) {
	c, ok := chains[id]
	return c, ok
}

// IsChain проверяет, поддерживается ли цепочка
func IsChain(id string) bool {
	_, ok := chains[id]
	return ok
}
