package stat

import (
	"fmt"
	"slices"
)

// Parameter is a derived stat computed as an additive accumulator times a
// multiplicative cache. The cache is the product of all multiplicative source
// values divided by the product of all divisor source values.
type Parameter struct {
	base
	add                   float64
	multiplicativeSources []string
	divisorSources        []string
	multiplicativeCache   float64
}

// NewParameter creates a parameter with add=0, cache=1 and value=0.
func NewParameter(name string) *Parameter {
	return &Parameter{
		base:                base{name: name},
		multiplicativeCache: 1,
	}
}

func (p *Parameter) Kind() Kind { return KindParameter }

// Add returns the additive accumulator.
func (p *Parameter) Add() float64 { return p.add }

// MultiplicativeCache returns the cached product of the multiplicative sources
// divided by the divisor sources.
func (p *Parameter) MultiplicativeCache() float64 { return p.multiplicativeCache }

// MultiplicativeSources returns the names of the multiplicative sources.
func (p *Parameter) MultiplicativeSources() []string { return slices.Clone(p.multiplicativeSources) }

// DivisorSources returns the names of the divisor sources.
func (p *Parameter) DivisorSources() []string { return slices.Clone(p.divisorSources) }

// Clone implements Stat.
func (p *Parameter) Clone() Stat {
	c := *p
	c.multiplicativeSources = slices.Clone(p.multiplicativeSources)
	c.divisorSources = slices.Clone(p.divisorSources)
	return &c
}

// AdjustAdd adds delta to the accumulator and recomputes the value.
func (p *Parameter) AdjustAdd(delta float64) (prev, cur float64) {
	p.add += delta
	return p.recompute()
}

// ValueOf resolves the current value of a named source stat.
type ValueOf func(name string) (float64, error)

// AddMultiplicativeSource records source as a factor of the cache and
// recomputes the cache from the current source values. On a lookup error
// nothing is recorded.
func (p *Parameter) AddMultiplicativeSource(source string, valueOf ValueOf) (prev, cur float64, err error) {
	return p.linkSource(append(slices.Clone(p.multiplicativeSources), source), p.divisorSources, valueOf)
}

// AddDivisorSource records source as a divisor of the cache, like
// AddMultiplicativeSource.
func (p *Parameter) AddDivisorSource(source string, valueOf ValueOf) (prev, cur float64, err error) {
	return p.linkSource(p.multiplicativeSources, append(slices.Clone(p.divisorSources), source), valueOf)
}

// UpdateCache replaces the cache with one computed from the current values of
// every multiplicative and divisor source, then recomputes the value.
func (p *Parameter) UpdateCache(valueOf ValueOf) (prev, cur float64, err error) {
	return p.linkSource(p.multiplicativeSources, p.divisorSources, valueOf)
}

func (p *Parameter) linkSource(multiplicative, divisors []string, valueOf ValueOf) (prev, cur float64, err error) {
	mul, err := resolve(multiplicative, valueOf)
	if err != nil {
		return p.value, p.value, fmt.Errorf("multiplicative sources of %q: %w", p.name, err)
	}
	div, err := resolve(divisors, valueOf)
	if err != nil {
		return p.value, p.value, fmt.Errorf("divisor sources of %q: %w", p.name, err)
	}
	p.multiplicativeSources = multiplicative
	p.divisorSources = divisors
	p.multiplicativeCache = Cache(mul, div)
	prev, cur = p.recompute()
	return prev, cur, nil
}

func resolve(names []string, valueOf ValueOf) ([]float64, error) {
	values := make([]float64, 0, len(names))
	for _, name := range names {
		v, err := valueOf(name)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func (p *Parameter) recompute() (prev, cur float64) {
	return p.commit(p.add * p.multiplicativeCache)
}

// Cache computes Π(multiplicative) / Π(divisors). A zero divisor counts as 1
// so that a zero-valued source never produces an infinity or NaN.
func Cache(multiplicative, divisors []float64) float64 {
	product := 1.0
	for _, v := range multiplicative {
		product *= v
	}
	divisor := 1.0
	for _, v := range divisors {
		if v == 0 {
			continue
		}
		divisor *= v
	}
	return product / divisor
}
