package events

import "github.com/rs/zerolog/log"

// LogEmitter logs every event via the package-level zerolog logger.
type LogEmitter struct{}

func (LogEmitter) OrderCreated(e OrderCreated) {
	log.Info().
		Uint64("orderID", e.ID).
		Str("trader", e.Trader.Hex()).
		Uint64("price", e.Price).
		Uint64("amount", e.Amount).
		Str("side", e.Side.String()).
		Msg("order created")
}

func (LogEmitter) OrderCancelled(e OrderCancelled) {
	log.Info().
		Uint64("orderID", e.ID).
		Str("trader", e.Trader.Hex()).
		Msg("order cancelled")
}

func (LogEmitter) OrderAmended(e OrderAmended) {
	log.Info().
		Uint64("orderID", e.ID).
		Str("trader", e.Trader.Hex()).
		Uint64("newAmount", e.NewAmount).
		Msg("order amended")
}

func (LogEmitter) OrderFilled(e OrderFilled) {
	log.Info().
		Uint64("orderID", e.ID).
		Str("trader", e.Trader.Hex()).
		Uint64("amount", e.Amount).
		Uint64("filled", e.Filled).
		Uint64("remaining", e.Remaining).
		Str("side", e.Side.String()).
		Msg("order filled")
}

func (LogEmitter) TradeExecuted(e TradeExecuted) {
	log.Info().
		Str("tradeID", e.ID).
		Str("buyer", e.Buyer.Hex()).
		Str("seller", e.Seller.Hex()).
		Uint64("baseAmount", e.BaseAmount).
		Uint64("price", e.Price).
		Msg("trade executed")
}

func (LogEmitter) PairCreated(e PairCreated) {
	log.Info().
		Str("base", e.Base.Hex()).
		Str("quote", e.Quote.Hex()).
		Msg("pair created")
}

func (LogEmitter) QuoteTokenAdded(e QuoteTokenAdded) {
	log.Info().
		Str("asset", e.Asset.Hex()).
		Msg("quote token whitelisted")
}
