package models

import "errors"

// ErrInvalidInput marks validation failures: negative quantities or prices,
// non-finite rates, malformed tickers. This is the only error class that
// halts an engine; missing market data degrades to stale/sentinel results
// instead.
var ErrInvalidInput = errors.New("invalid input")
