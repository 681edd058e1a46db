package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/codyseavey/lookout/internal/models"
)

var ErrInvalidMultiplier = errors.New("downscale multiplier must be within [0, 1]")

// Downscaler returns a multiplier in [0, 1] applied to an item's match strength.
type Downscaler[T any] interface {
	Multiplier(item T) float64
}

func checkMultiplier(m float64) error {
	if math.IsNaN(m) || m < 0 || m > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidMultiplier, m)
	}
	return nil
}

// UncollectibleCardDownscaler de-emphasizes tokens and level-up forms.
type UncollectibleCardDownscaler struct {
	multiplier float64
}

func NewUncollectibleCardDownscaler(multiplier float64) (*UncollectibleCardDownscaler, error) {
	if err := checkMultiplier(multiplier); err != nil {
		return nil, err
	}
	return &UncollectibleCardDownscaler{multiplier: multiplier}, nil
}

func (d *UncollectibleCardDownscaler) Multiplier(card *models.Card) float64 {
	if card.Collectible {
		return 1
	}
	return d.multiplier
}

// GlobalDownscaler applies the same multiplier to every item of a kind.
type GlobalDownscaler[T any] struct {
	multiplier float64
}

func NewGlobalDownscaler[T any](multiplier float64) (*GlobalDownscaler[T], error) {
	if err := checkMultiplier(multiplier); err != nil {
		return nil, err
	}
	return &GlobalDownscaler[T]{multiplier: multiplier}, nil
}

func (d *GlobalDownscaler[T]) Multiplier(T) float64 {
	return d.multiplier
}
