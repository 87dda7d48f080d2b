// Command vaultbookd demonstrates a running matching engine: it wires an
// in-memory ledger, a pair registry with one whitelisted quote asset and
// one created pair, funds two demo accounts, and places a few orders
// before exiting on signal.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"

	vcommon "vaultbook/internal/common"
	"vaultbook/internal/engine"
	"vaultbook/internal/events"
	"vaultbook/internal/ledger"
	"vaultbook/internal/registry"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	base := common.HexToAddress("0x000000000000000000000000000000000000b1")
	quote := common.HexToAddress("0x000000000000000000000000000000000000b2")

	mem := ledger.NewMemory()
	mem.SetDecimals(base, 8)
	mem.SetDecimals(quote, 6)

	alice := common.HexToAddress("0x000000000000000000000000000000000000a1")
	bob := common.HexToAddress("0x000000000000000000000000000000000000a2")
	mem.Fund(alice, quote, 1_000_000_000)
	mem.Fund(bob, base, 1_000_000_000)

	emitter := events.LogEmitter{}
	reg := registry.New(mem, emitter)
	if err := reg.AddQuote(quote); err != nil {
		log.Fatal().Err(err).Msg("add quote asset")
	}

	pair, err := reg.Create(base, quote)
	if err != nil {
		log.Fatal().Err(err).Msg("create pair")
	}

	if _, err := pair.Place(ctx, bob, vcommon.Sell, []engine.Leg{{Price: 100_00, Amount: 5_00000000}}); err != nil {
		log.Fatal().Err(err).Msg("place sell")
	}
	if _, err := pair.Place(ctx, alice, vcommon.Buy, []engine.Leg{{Price: 100_00, Amount: 5_00000000}}); err != nil {
		log.Fatal().Err(err).Msg("place buy")
	}

	log.Info().Uint64("lastTradePrice", pair.LastTradePrice()).Msg("demo orders settled")

	<-ctx.Done()
}
