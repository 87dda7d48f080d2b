// Package common holds the identifiers shared by the engine, the ledger and
// the registry: assets, accounts and order sides. Keeping them here (rather
// than in internal/engine) avoids an import cycle between internal/engine
// and internal/ledger, which both need to name an asset.
package common

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Asset identifies a token by its contract address. Decimals are not part of
// the identifier itself; callers obtain them from a Ledger (see
// internal/ledger.Ledger.Decimals).
type Asset = ethcommon.Address

// Account identifies a trader by wallet address.
type Account = ethcommon.Address

// Side is BUY or SELL.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Sell {
		return "SELL"
	}
	return "BUY"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}
