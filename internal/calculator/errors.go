package calculator

import "errors"

// Failure kinds for the numerical core. Callers match with errors.Is to
// distinguish bad input from solver breakdown from stale reference data;
// the core never substitutes a fabricated number for any of these.
var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrNoFutureCashflows       = errors.New("no cash flows after settlement")
	ErrDomain                  = errors.New("rate left the valid domain (1+r <= 0)")
	ErrStalledDerivative       = errors.New("derivative too small to continue")
	ErrNotConverged            = errors.New("did not converge within iteration budget")
	ErrCannotDetermineMaturity = errors.New("cannot determine maturity date")
	ErrAlreadyMatured          = errors.New("instrument already matured")
	ErrMissingCERData          = errors.New("CER index unavailable")
)
