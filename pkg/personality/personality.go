// Package personality models the fixed trait vector that shapes an NPC's
// behavior. Traits are set at character creation and rarely change afterward.
package personality

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Trait identifies one of the eight personality traits.
type Trait string

const (
	Greed         Trait = "greed"         // resource hoarding vs sharing
	Sociability   Trait = "sociability"   // social interaction preference
	Laziness      Trait = "laziness"      // work avoidance
	Ambition      Trait = "ambition"      // leadership and power seeking
	Forgiveness   Trait = "forgiveness"   // ability to forgive betrayals
	Courage       Trait = "courage"       // risk-taking, facing threats
	Analytical    Trait = "analytical"    // logical vs emotional decisions
	Impulsiveness Trait = "impulsiveness" // quick decisions vs deliberation
)

// AllTraits lists every trait in declaration order. Summary fragments and
// iteration order depend on this ordering.
var AllTraits = []Trait{
	Greed, Sociability, Laziness, Ambition,
	Forgiveness, Courage, Analytical, Impulsiveness,
}

const (
	// DominantThreshold marks a trait as significantly high.
	DominantThreshold = 0.7
	// WeakThreshold marks a trait as significantly low.
	WeakThreshold = 0.3
)

// Traits holds the bounded [0,1] trait values for one character.
type Traits struct {
	Greed         float64 `json:"greed"`
	Sociability   float64 `json:"sociability"`
	Laziness      float64 `json:"laziness"`
	Ambition      float64 `json:"ambition"`
	Forgiveness   float64 `json:"forgiveness"`
	Courage       float64 `json:"courage"`
	Analytical    float64 `json:"analytical"`
	Impulsiveness float64 `json:"impulsiveness"`
}

// NewNeutral returns a trait set with every trait at 0.5.
func NewNeutral() Traits {
	return Traits{
		Greed:         0.5,
		Sociability:   0.5,
		Laziness:      0.5,
		Ambition:      0.5,
		Forgiveness:   0.5,
		Courage:       0.5,
		Analytical:    0.5,
		Impulsiveness: 0.5,
	}
}

// New constructs a trait set from explicit values and validates every one.
func New(greed, sociability, laziness, ambition, forgiveness, courage, analytical, impulsiveness float64) (Traits, error) {
	t := Traits{
		Greed:         greed,
		Sociability:   sociability,
		Laziness:      laziness,
		Ambition:      ambition,
		Forgiveness:   forgiveness,
		Courage:       courage,
		Analytical:    analytical,
		Impulsiveness: impulsiveness,
	}
	if err := t.Validate(); err != nil {
		return Traits{}, err
	}
	return t, nil
}

// GenerateRandom draws every trait uniformly from [0,1]. A nil rng uses the
// package-default source.
func GenerateRandom(rng *rand.Rand) Traits {
	f := rand.Float64
	if rng != nil {
		f = rng.Float64
	}
	return Traits{
		Greed:         f(),
		Sociability:   f(),
		Laziness:      f(),
		Ambition:      f(),
		Forgiveness:   f(),
		Courage:       f(),
		Analytical:    f(),
		Impulsiveness: f(),
	}
}

// archetypes are preset trait bundles. Unspecified traits stay at 0.5.
var archetypes = map[string]Traits{
	"greedy_loner":         withOverrides(map[Trait]float64{Greed: 0.9, Sociability: 0.2, Ambition: 0.3, Forgiveness: 0.1}),
	"social_leader":        withOverrides(map[Trait]float64{Greed: 0.2, Sociability: 0.9, Ambition: 0.8, Forgiveness: 0.7}),
	"lazy_follower":        withOverrides(map[Trait]float64{Greed: 0.4, Sociability: 0.6, Laziness: 0.9, Ambition: 0.1}),
	"analytical_planner":   withOverrides(map[Trait]float64{Greed: 0.3, Sociability: 0.4, Analytical: 0.9, Impulsiveness: 0.1}),
	"traumatized_survivor": withOverrides(map[Trait]float64{Greed: 0.7, Sociability: 0.2, Courage: 0.3, Forgiveness: 0.2}),
	"balanced_human":       NewNeutral(),
}

func withOverrides(values map[Trait]float64) Traits {
	t := NewNeutral()
	for trait, v := range values {
		// Preset values are within range; Set cannot fail here.
		_ = t.Set(trait, v)
	}
	return t
}

// Archetypes returns the available archetype names in sorted order.
func Archetypes() []string {
	names := make([]string, 0, len(archetypes))
	for name := range archetypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromArchetype builds a trait set from a named preset.
func FromArchetype(name string) (Traits, error) {
	t, ok := archetypes[name]
	if !ok {
		return Traits{}, fmt.Errorf("unknown archetype: %s (available: %s)", name, strings.Join(Archetypes(), ", "))
	}
	return t, nil
}

// Validate checks every trait is within [0,1].
func (t Traits) Validate() error {
	for _, trait := range AllTraits {
		v, _ := t.Get(trait)
		if v < 0.0 || v > 1.0 {
			return fmt.Errorf("trait %s must be between 0.0 and 1.0, got %g", trait, v)
		}
	}
	return nil
}

// Get returns the value of a single trait.
func (t Traits) Get(trait Trait) (float64, error) {
	switch trait {
	case Greed:
		return t.Greed, nil
	case Sociability:
		return t.Sociability, nil
	case Laziness:
		return t.Laziness, nil
	case Ambition:
		return t.Ambition, nil
	case Forgiveness:
		return t.Forgiveness, nil
	case Courage:
		return t.Courage, nil
	case Analytical:
		return t.Analytical, nil
	case Impulsiveness:
		return t.Impulsiveness, nil
	default:
		return 0, fmt.Errorf("unknown trait: %s", trait)
	}
}

// Set assigns a single trait value. Unknown traits and out-of-range values
// are rejected without mutating anything.
func (t *Traits) Set(trait Trait, value float64) error {
	if _, err := t.Get(trait); err != nil {
		return err
	}
	if value < 0.0 || value > 1.0 {
		return fmt.Errorf("trait value must be between 0.0 and 1.0, got %g", value)
	}
	switch trait {
	case Greed:
		t.Greed = value
	case Sociability:
		t.Sociability = value
	case Laziness:
		t.Laziness = value
	case Ambition:
		t.Ambition = value
	case Forgiveness:
		t.Forgiveness = value
	case Courage:
		t.Courage = value
	case Analytical:
		t.Analytical = value
	case Impulsiveness:
		t.Impulsiveness = value
	}
	return nil
}

// Values returns all trait values keyed by trait.
func (t Traits) Values() map[Trait]float64 {
	values := make(map[Trait]float64, len(AllTraits))
	for _, trait := range AllTraits {
		v, _ := t.Get(trait)
		values[trait] = v
	}
	return values
}

// Dominant returns traits at or above DominantThreshold.
func (t Traits) Dominant() map[Trait]float64 {
	dominant := make(map[Trait]float64)
	for _, trait := range AllTraits {
		v, _ := t.Get(trait)
		if v >= DominantThreshold {
			dominant[trait] = v
		}
	}
	return dominant
}

// Weak returns traits at or below WeakThreshold.
func (t Traits) Weak() map[Trait]float64 {
	weak := make(map[Trait]float64)
	for _, trait := range AllTraits {
		v, _ := t.Get(trait)
		if v <= WeakThreshold {
			weak[trait] = v
		}
	}
	return weak
}

// Summary builds a human-readable personality description by concatenating
// fixed fragments for dominant and weak traits, in trait declaration order.
func (t Traits) Summary() string {
	dominant := t.Dominant()
	weak := t.Weak()

	dominantFragments := map[Trait]string{
		Greed:         "hoards resources",
		Sociability:   "very social",
		Laziness:      "avoids work",
		Ambition:      "seeks leadership",
		Forgiveness:   "very forgiving",
		Courage:       "brave",
		Analytical:    "logical thinker",
		Impulsiveness: "acts quickly",
	}
	weakFragments := map[Trait]string{
		Sociability: "antisocial",
		Courage:     "cowardly",
		Forgiveness: "holds grudges",
		Analytical:  "emotional decision-maker",
	}

	var parts []string
	for _, trait := range AllTraits {
		if _, ok := dominant[trait]; ok {
			parts = append(parts, dominantFragments[trait])
		}
	}
	for _, trait := range AllTraits {
		fragment, has := weakFragments[trait]
		if !has {
			continue
		}
		if _, ok := weak[trait]; ok {
			parts = append(parts, fragment)
		}
	}

	if len(parts) == 0 {
		return "balanced personality"
	}
	return strings.Join(parts, ", ")
}
