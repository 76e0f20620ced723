// Package options implements closed-form Black-Scholes pricing with the
// five standard Greeks for European calls and puts.
package options

import (
	"errors"
	"fmt"
	"math"

	"analyst_terminal/pkg/core/dist"
)

// ErrInvalidInput is returned for quotes the model cannot price, such as
// a non-positive underlying or strike.
var ErrInvalidInput = errors.New("options: invalid input")

// Kind selects the option side.
type Kind string

const (
	Call Kind = "call"
	Put  Kind = "put"
)

// ParseKind maps a user-supplied string onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Call, Put:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: option kind %q", ErrInvalidInput, s)
	}
}

// Quote holds the contract parameters for a single pricing request.
type Quote struct {
	S     float64 // underlying price, > 0
	K     float64 // strike, > 0
	T     float64 // time to expiry in years, >= 0
	R     float64 // continuously compounded risk-free rate
	Sigma float64 // annualized volatility, >= 0
	Kind  Kind
}

// Greeks are the price sensitivities. Theta and rho are per annum; any
// per-day or per-percentage-point scaling is the display layer's job.
// Rho for a put follows the historical convention of this system and is
// reported without a leading minus.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// PricedOption is the pricing result. Greeks is nil in the degenerate
// branch (T <= 0 or sigma <= 0), where only intrinsic value is defined.
type PricedOption struct {
	Price  float64 `json:"price"`
	Greeks *Greeks `json:"greeks,omitempty"`
}

// Price evaluates the Black-Scholes closed form for the quote.
func Price(q Quote) (PricedOption, error) {
	if q.S <= 0 || q.K <= 0 {
		return PricedOption{}, fmt.Errorf("%w: S=%v K=%v (both must be positive)", ErrInvalidInput, q.S, q.K)
	}
	if q.Kind != Call && q.Kind != Put {
		return PricedOption{}, fmt.Errorf("%w: option kind %q", ErrInvalidInput, q.Kind)
	}

	// Degenerate contract: no time value, price collapses to intrinsic.
	if q.T <= 0 || q.Sigma <= 0 {
		return PricedOption{Price: intrinsic(q)}, nil
	}

	sqrtT := math.Sqrt(q.T)
	d1 := (math.Log(q.S/q.K) + (q.R+0.5*q.Sigma*q.Sigma)*q.T) / (q.Sigma * sqrtT)
	d2 := d1 - q.Sigma*sqrtT
	disc := math.Exp(-q.R * q.T)

	var price, delta, theta, rho float64
	if q.Kind == Call {
		price = q.S*dist.Cdf(d1) - q.K*disc*dist.Cdf(d2)
		delta = dist.Cdf(d1)
		theta = -(q.S*dist.Pdf(d1)*q.Sigma)/(2*sqrtT) - q.R*q.K*disc*dist.Cdf(d2)
		rho = q.K * q.T * disc * dist.Cdf(d2)
	} else {
		price = q.K*disc*dist.Cdf(-d2) - q.S*dist.Cdf(-d1)
		delta = -dist.Cdf(-d1)
		theta = -(q.S*dist.Pdf(d1)*q.Sigma)/(2*sqrtT) - q.R*q.K*disc*dist.Cdf(-d2)
		rho = q.K * q.T * disc * dist.Cdf(-d2)
	}

	return PricedOption{
		Price: price,
		Greeks: &Greeks{
			Delta: delta,
			Gamma: dist.Pdf(d1) / (q.S * q.Sigma * sqrtT),
			Theta: theta,
			Vega:  q.S * dist.Pdf(d1) * sqrtT,
			Rho:   rho,
		},
	}, nil
}

func intrinsic(q Quote) float64 {
	if q.Kind == Call {
		return math.Max(0, q.S-q.K)
	}
	return math.Max(0, q.K-q.S)
}
