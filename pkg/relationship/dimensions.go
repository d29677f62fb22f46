// Package relationship tracks the multi-dimensional social bonds one
// character holds toward its partners. Updates scale with closeness, so
// close relationships swing harder, and every change is recorded in an
// append-only history.
package relationship

import (
	"fmt"
	"math"
	"time"
)

// Dimension identifies one of the five bond dimensions.
type Dimension string

const (
	Trust      Dimension = "trust"      // belief they won't betray or harm you
	Respect    Dimension = "respect"    // admiration for capability or character
	Affection  Dimension = "affection"  // personal liking or love
	Dependency Dimension = "dependency" // how much you need them
	Fear       Dimension = "fear"       // how afraid of them you are
)

// AllDimensions lists every dimension in declaration order.
var AllDimensions = []Dimension{Trust, Respect, Affection, Dependency, Fear}

// ChangeRecord captures one dimension update.
type ChangeRecord struct {
	Dimension Dimension `json:"dimension"`
	OldValue  float64   `json:"old_value"`
	NewValue  float64   `json:"new_value"`
	Change    float64   `json:"change"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// Dimensions is the bond state toward a single partner. New entries start
// neutral: trust/respect/affection at 0.5, dependency and fear at zero.
type Dimensions struct {
	Trust      float64 `json:"trust"`
	Respect    float64 `json:"respect"`
	Affection  float64 `json:"affection"`
	Dependency float64 `json:"dependency"`
	Fear       float64 `json:"fear"`

	History []ChangeRecord `json:"relationship_history,omitempty"`
}

// NewDimensions returns a neutral bond.
func NewDimensions() *Dimensions {
	return &Dimensions{Trust: 0.5, Respect: 0.5, Affection: 0.5}
}

// Get returns the value of one dimension.
func (d *Dimensions) Get(dim Dimension) (float64, error) {
	switch dim {
	case Trust:
		return d.Trust, nil
	case Respect:
		return d.Respect, nil
	case Affection:
		return d.Affection, nil
	case Dependency:
		return d.Dependency, nil
	case Fear:
		return d.Fear, nil
	default:
		return 0, fmt.Errorf("unknown relationship dimension: %s (available: trust, respect, affection, dependency, fear)", dim)
	}
}

func (d *Dimensions) set(dim Dimension, v float64) {
	switch dim {
	case Trust:
		d.Trust = v
	case Respect:
		d.Respect = v
	case Affection:
		d.Affection = v
	case Dependency:
		d.Dependency = v
	case Fear:
		d.Fear = v
	}
}

// Sentiment is the overall positive/negative feeling in [-1,1].
func (d *Dimensions) Sentiment() float64 {
	positive := (d.Trust + d.Respect + d.Affection) / 3.0
	sentiment := (positive*2 - 1.0) - d.Fear
	return math.Max(-1.0, math.Min(1.0, sentiment))
}

// Closeness combines affection, trust, and dependency, penalized by fear.
func (d *Dimensions) Closeness() float64 {
	base := (d.Affection + d.Trust + d.Dependency) / 3.0
	return math.Max(0.0, base-d.Fear*0.5)
}

// InfluencePotential estimates how much the partner could sway decisions.
// It is the larger of earned influence (respect and trust) and coerced
// influence (fear, discounted as less reliable).
func (d *Dimensions) InfluencePotential() float64 {
	earned := (d.Respect + d.Trust) / 2.0
	coerced := d.Fear * 0.8
	return math.Max(earned, coerced)
}

// Type labels the relationship. The rules run top to bottom; the first
// match wins.
func (d *Dimensions) Type() string {
	sentiment := d.Sentiment()
	closeness := d.Closeness()

	switch {
	case d.Fear > 0.7:
		if sentiment < -0.3 {
			return "feared enemy"
		}
		return "feared authority"
	case sentiment > 0.6 && closeness > 0.7:
		if d.Affection > 0.8 {
			return "close friend"
		}
		return "trusted ally"
	case sentiment > 0.3 && closeness > 0.5:
		return "friend"
	case sentiment > 0.0:
		return "acquaintance"
	case sentiment > -0.3:
		return "neutral"
	case sentiment > -0.6:
		return "disliked"
	default:
		return "enemy"
	}
}

// Update applies a delta to one dimension, clamped to [0,1], and logs the
// change. When scaleByCloseness is set the delta is multiplied by
// 1+closeness, so close relationships feel events more strongly. Unknown
// dimensions are rejected without mutation.
func (d *Dimensions) Update(dim Dimension, delta float64, reason string, scaleByCloseness bool) error {
	current, err := d.Get(dim)
	if err != nil {
		return err
	}

	adjusted := delta
	if scaleByCloseness {
		adjusted = delta * (1.0 + d.Closeness())
	}

	next := math.Max(0.0, math.Min(1.0, current+adjusted))
	d.set(dim, next)

	d.History = append(d.History, ChangeRecord{
		Dimension: dim,
		OldValue:  current,
		NewValue:  next,
		Change:    adjusted,
		Reason:    reason,
		Timestamp: time.Now(),
	})
	return nil
}

// ApplyEvent applies a named event's delta bundle, each delta scaled by
// strength. Unknown events are rejected before any dimension changes.
func (d *Dimensions) ApplyEvent(event Event, strength float64) error {
	bundle, ok := eventDeltas[event]
	if !ok {
		return fmt.Errorf("unknown relationship event: %s (available: %s)", event, availableEvents())
	}
	for _, dim := range AllDimensions {
		delta, ok := bundle[dim]
		if !ok {
			continue
		}
		if err := d.Update(dim, delta*strength, string(event), true); err != nil {
			return err
		}
	}
	return nil
}

// RecentChanges returns the last n history records.
func (d *Dimensions) RecentChanges(n int) []ChangeRecord {
	if n >= len(d.History) {
		return d.History
	}
	return d.History[len(d.History)-n:]
}
