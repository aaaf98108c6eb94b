package catalog

import (
	"fmt"
	"strings"
)

const (
	FirstWaypoint = 1
	LastWaypoint  = 6
)

// Waypoint - один шаг чек-листа онбординга
type Waypoint struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Goal       string   `json:"goal"`
	Points     []string `json:"points"`
	Action     string   `json:"action"`
	ActionLink string   `json:"actionLink,omitempty"`
	Checkbox   string   `json:"checkbox"`
}

// IsWaypoint проверяет, что номер шага попадает в диапазон [1,6]
func IsWaypoint(n int) bool {
	return n >= FirstWaypoint && n <= LastWaypoint
}

// Waypoints возвращает шаги для цепочки; второй результат false, если цепочка неизвестна
func Waypoints(chainID string) ([]Waypoint, bool) {
	chain, ok := Lookup(chainID)
	if !ok {
		return nil, false
	}
	sym := strings.ToUpper(chain.ID)

	return []Waypoint{
		{
			ID:    1,
			Title: "Create a Coinbase Account",
			Goal:  "Set up a trusted custodial platform as your starting point.",
			Points: []string{
				"Visit coinbase.com to create a free account.",
				"Complete identity verification (KYC) as per standard regulations.",
				"Use a unique password and an email you control.",
			},
			Action:     "Create your account at coinbase.com.",
			ActionLink: "https://coinbase.com/join/ZKU75L5?src=referral-link",
			Checkbox:   "I have created a Coinbase account.",
		},
		{
			ID:    2,
			Title: "Secure + Fund Coinbase",
			Goal:  "Enable 2FA and add a small starting balance.",
			Points: []string{
				"Enable two-factor authentication (2FA) using an authenticator app.",
				"Deposit a small amount to your account to learn with.",
				"Never share your login credentials or 2FA codes.",
			},
			Action:   "Enable 2FA and fund your account.",
			Checkbox: "I have enabled 2FA and funded my Coinbase account.",
		},
		{
			ID:    3,
			Title: "Download Phantom",
			Goal:  "Install Phantom wallet, your self-custody tool.",
			Points: []string{
				"Download the app or extension ONLY from phantom.app.",
				"Secure your 12-word seed phrase on paper, never digitally.",
				"Phantom supports Solana, Ethereum, and Bitcoin.",
			},
			Action:     "Install Phantom and secure your seed phrase offline.",
			ActionLink: "https://phantom.app",
			Checkbox:   "I have installed Phantom and secured my seed phrase offline.",
		},
		{
			ID:    4,
			Title: "Find Your Address",
			Goal:  fmt.Sprintf("Locate your %s receive address in Phantom.", sym),
			Points: []string{
				fmt.Sprintf("Tap \"Receive\" and select %s to see your address.", chain.Name),
				"Copy your address; never attempt to type it manually.",
				"Double-check every character before sending or receiving.",
			},
			Action:   fmt.Sprintf("Copy your %s address from Phantom.", sym),
			Checkbox: fmt.Sprintf("I can locate my %s receive address in Phantom.", sym),
		},
		{
			ID:    5,
			Title: "First Safe Transaction",
			Goal:  fmt.Sprintf("Send a test amount of %s from Coinbase to Phantom.", sym),
			Points: []string{
				"Always send a small test amount first to confirm receipt.",
				"Verify you are using the correct network for the transaction.",
				"Wait for confirmation in Phantom before sending the rest.",
			},
			Action:   "Complete a test transaction from Coinbase to Phantom.",
			Checkbox: "I have completed a test transaction and confirmed it arrived.",
		},
		{
			ID:    6,
			Title: "Final Checklist",
			Goal:  "Confirm your foundation is complete and ready for trading.",
			Points: []string{
				"Coinbase account secured and funded.",
				"Phantom installed with seed phrase stored offline.",
				"Tested the full-amount transaction workflow successfully.",
			},
			Action:   "Review your steps and you are ready for on-chain trading.",
			Checkbox: "I have completed this voyage.",
		},
	}, true
}
