package engine

import "github.com/holiman/uint256"

// pow10 is 10^decimals, the divisor used to scale amount*price into the
// other asset's units.
func pow10(decimals uint8) *uint256.Int {
	d := uint256.NewInt(1)
	ten := uint256.NewInt(10)
	for i := uint8(0); i < decimals; i++ {
		d.Mul(d, ten)
	}
	return d
}

// scaleDown computes floor(amount*price/D) where D = 10^baseDecimals. It
// uses 256-bit widened arithmetic since amount*price can exceed 64 bits
// for large inputs, and performs no zero-rejection: a legitimately dust
// result (e.g. refunding the quote value of 1 leftover base unit) is a
// valid zero, not an error. Callers that must reject dust use
// QuoteUnits/BaseUnits below.
func scaleDown(amount, price uint64, baseDecimals uint8) uint64 {
	d := pow10(baseDecimals)
	v := uint256.NewInt(amount)
	v.Mul(v, uint256.NewInt(price))
	v.Div(v, d)
	if !v.IsUint64() {
		// Saturate rather than wrap: a result this large can never be a
		// legitimate unit count for either asset in this engine.
		return ^uint64(0)
	}
	return v.Uint64()
}

// scaleUp computes floor(quote*D/price), the inverse of scaleDown, used to
// convert a quote-unit budget into the maximum base units it can buy at
// price. price must be non-zero; callers are expected to have already
// validated that (orders always carry price > 0).
func scaleUp(quote, price uint64, baseDecimals uint8) uint64 {
	if price == 0 {
		return 0
	}
	d := pow10(baseDecimals)
	v := uint256.NewInt(quote)
	v.Mul(v, d)
	v.Div(v, uint256.NewInt(price))
	if !v.IsUint64() {
		return ^uint64(0)
	}
	return v.Uint64()
}

// QuoteUnits is the quote-asset value of a base amount at price,
// floor-divided by D = 10^baseDecimals. Rejects a zero result so dust can
// never cross as a trade.
func QuoteUnits(base, price uint64, baseDecimals uint8) (uint64, error) {
	v := scaleDown(base, price, baseDecimals)
	if v == 0 {
		return 0, ErrQuoteAmountTooSmall
	}
	return v, nil
}

// BaseUnits is the base amount a quote budget buys at price. Rejects a
// zero result.
func BaseUnits(quote, price uint64, baseDecimals uint8) (uint64, error) {
	v := scaleUp(quote, price, baseDecimals)
	if v == 0 {
		return 0, ErrBaseAmountTooSmall
	}
	return v, nil
}
