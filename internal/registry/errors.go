package registry

import "errors"

var (
	ErrIdenticalTokens          = errors.New("registry: base and quote must differ")
	ErrInvalidBaseToken         = errors.New("registry: base asset must not be the zero address")
	ErrInvalidQuoteToken        = errors.New("registry: quote asset must not be the zero address")
	ErrQuoteTokenNotWhitelisted = errors.New("registry: quote asset not whitelisted")
	ErrQuoteAlreadyWhitelisted  = errors.New("registry: quote asset already whitelisted")
	ErrPairAlreadyExists        = errors.New("registry: pair already exists")
	ErrPairNotFound             = errors.New("registry: pair not found")
	ErrIndexOutOfRange          = errors.New("registry: index out of range")
)
