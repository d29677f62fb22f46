// Package npc integrates the four psychological subsystems — personality,
// experience, trauma, and relationships — behind a single character
// aggregate. All mutation flows through the action-processing and
// day-tick entry points so the subsystems stay coherent.
//
// A Character is exclusively owned by its caller. Concurrent mutating
// calls against the same instance must be serialized externally.
package npc

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/villagesim/npc-engine/pkg/experience"
	"github.com/villagesim/npc-engine/pkg/personality"
	"github.com/villagesim/npc-engine/pkg/relationship"
	"github.com/villagesim/npc-engine/pkg/trauma"
)

// Default vital levels for a newly created character.
const (
	DefaultAge    = 25
	DefaultHealth = 0.8
	DefaultHunger = 0.5
	DefaultEnergy = 0.7
)

// Character is the full state of one NPC. Relationship entries reference
// partners by id only, never by pointer, so characters can be advanced
// independently.
type Character struct {
	ID   string `json:"npc_id"`
	Name string `json:"name,omitempty"`
	Age  int    `json:"age"`

	// Physical vitals, all in [0,1]. Hunger reads as 0 = well fed,
	// 1 = starving; energy as 0 = exhausted, 1 = fully rested.
	Health float64 `json:"health"`
	Hunger float64 `json:"hunger_level"`
	Energy float64 `json:"energy_level"`

	Personality   personality.Traits  `json:"personality"`
	Experience    *experience.Tracker `json:"experience"`
	Trauma        *trauma.Ledger      `json:"trauma"`
	Relationships *relationship.Graph `json:"relationships"`

	LastAction        string `json:"last_action,omitempty"`
	LastActionSuccess *bool  `json:"last_action_success,omitempty"`
	DaysAlive         int    `json:"days_alive"`

	CreatedAt time.Time `json:"creation_timestamp"`

	rng *rand.Rand
}

// New creates a character with neutral personality and default vitals.
func New(id string) (*Character, error) {
	return newCharacter(id, "", DefaultAge, personality.NewNeutral())
}

func newCharacter(id, name string, age int, traits personality.Traits) (*Character, error) {
	if age < 0 {
		return nil, fmt.Errorf("age cannot be negative, got %d", age)
	}
	if err := traits.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		name = "NPC_" + id
	}
	return &Character{
		ID:            id,
		Name:          name,
		Age:           age,
		Health:        DefaultHealth,
		Hunger:        DefaultHunger,
		Energy:        DefaultEnergy,
		Personality:   traits,
		Experience:    experience.NewTracker(),
		Trauma:        trauma.NewLedger(),
		Relationships: relationship.NewGraph(),
		CreatedAt:     time.Now(),
	}, nil
}

// WithRand sets the random source used for stochastic daily drift and
// generated histories. Tests use this for determinism; a nil source falls
// back to the package default.
func (c *Character) WithRand(rng *rand.Rand) *Character {
	c.rng = rng
	return c
}

func (c *Character) f64() float64 {
	if c.rng != nil {
		return c.rng.Float64()
	}
	return rand.Float64()
}

func (c *Character) intn(n int) int {
	if c.rng != nil {
		return c.rng.Intn(n)
	}
	return rand.Intn(n)
}

// uniform draws from [lo, hi).
func (c *Character) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*c.f64()
}

// NewRandom creates a character with a generated id, random traits, varied
// vitals, and a generated life history.
func NewRandom(name string, minAge, maxAge int, rng *rand.Rand) (*Character, error) {
	id := uuid.NewString()
	c, err := newCharacter(id, name, minAge, personality.GenerateRandom(rng))
	if err != nil {
		return nil, err
	}
	c.rng = rng
	if maxAge > minAge {
		c.Age = minAge + c.intn(maxAge-minAge+1)
	}
	c.Health = c.uniform(0.6, 1.0)
	c.Hunger = c.uniform(0.1, 0.7)
	c.Energy = c.uniform(0.4, 0.9)
	c.generateLifeHistory()
	return c, nil
}

// NewWithArchetype creates a character from a personality archetype,
// seeded with experience and trauma appropriate to it.
func NewWithArchetype(id, archetype, name string, age int, rng *rand.Rand) (*Character, error) {
	traits, err := personality.FromArchetype(archetype)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = archetype + "_" + id
	}
	c, err := newCharacter(id, name, age, traits)
	if err != nil {
		return nil, err
	}
	c.rng = rng
	c.generateArchetypeHistory(archetype)
	return c, nil
}

// generateLifeHistory seeds random backstory experience and trauma scaled
// by age. Older characters carry more of both.
func (c *Character) generateLifeHistory() {
	expMultiplier := float64(c.Age) / 30.0
	if expMultiplier > 2.0 {
		expMultiplier = 2.0
	}
	traumaProbability := float64(c.Age) / 50.0
	if traumaProbability > 0.6 {
		traumaProbability = 0.6
	}

	backstorySkills := []experience.Category{
		experience.Leadership, experience.Negotiation, experience.Survival,
		experience.Crafting, experience.ResourceManagement,
	}
	for _, skill := range backstorySkills {
		if c.f64() < 0.4 {
			amount := c.uniform(0.05, 0.3) * expMultiplier
			_, _ = c.Experience.Gain(skill, amount, "life_history", true)
		}
	}

	if c.f64() < traumaProbability {
		types := []trauma.EventType{
			trauma.Betrayal, trauma.SocialRejection,
			trauma.ResourceLoss, trauma.LeadershipFailure,
		}
		severities := []string{trauma.SeverityMild, trauma.SeverityModerate, trauma.SeveritySevere}

		traumaAge := c.backstoryAge(20)
		m, err := trauma.NewCommonMemory(
			types[c.intn(len(types))],
			severities[c.intn(len(severities))],
			traumaAge, "", nil, c.f64(),
		)
		if err == nil {
			c.Trauma.Memories = append(c.Trauma.Memories, m)
			c.Trauma.ApplyDailyHealing(c.Personality, (c.Age-traumaAge)*365)
		}
	}
}

// archetypeHistories seeds experience and likely trauma per archetype.
var archetypeHistories = map[string]struct {
	skills  []experience.Skill
	traumas []struct {
		Type     trauma.EventType
		Severity string
	}
}{
	"social_leader": {
		skills: []experience.Skill{
			{Category: experience.Leadership, Level: 0.4},
			{Category: experience.Negotiation, Level: 0.3},
			{Category: experience.SocialManipulation, Level: 0.2},
		},
		traumas: []struct {
			Type     trauma.EventType
			Severity string
		}{{trauma.LeadershipFailure, trauma.SeverityModerate}},
	},
	"greedy_loner": {
		skills: []experience.Skill{
			{Category: experience.ResourceManagement, Level: 0.5},
			{Category: experience.Survival, Level: 0.3},
		},
		traumas: []struct {
			Type     trauma.EventType
			Severity string
		}{{trauma.Betrayal, trauma.SeveritySevere}, {trauma.SocialRejection, trauma.SeverityModerate}},
	},
	"analytical_planner": {
		skills: []experience.Skill{
			{Category: experience.Crafting, Level: 0.4},
			{Category: experience.ResourceManagement, Level: 0.3},
			{Category: experience.Leadership, Level: 0.2},
		},
		traumas: []struct {
			Type     trauma.EventType
			Severity string
		}{{trauma.LeadershipFailure, trauma.SeverityMild}},
	},
	"traumatized_survivor": {
		skills: []experience.Skill{
			{Category: experience.Survival, Level: 0.6},
			{Category: experience.ResourceManagement, Level: 0.4},
		},
		traumas: []struct {
			Type     trauma.EventType
			Severity string
		}{{trauma.Violence, trauma.SeveritySevere}, {trauma.Abandonment, trauma.SeverityModerate}},
	},
}

func (c *Character) generateArchetypeHistory(archetype string) {
	history, ok := archetypeHistories[archetype]
	if !ok {
		return
	}

	for _, s := range history.skills {
		_, _ = c.Experience.Gain(s.Category, s.Level, "archetype_"+archetype, true)
	}

	for _, t := range history.traumas {
		if c.f64() >= 0.7 {
			continue
		}
		traumaAge := c.backstoryAge(15)
		m, err := trauma.NewCommonMemory(t.Type, t.Severity, traumaAge, "", nil, c.f64())
		if err != nil {
			continue
		}
		c.Trauma.Memories = append(c.Trauma.Memories, m)
		c.Trauma.ApplyDailyHealing(c.Personality, (c.Age-traumaAge)*365)
	}
}

// backstoryAge picks an age within the last window years, at least 5 and
// strictly before the current age.
func (c *Character) backstoryAge(window int) int {
	lo := c.Age - window
	if lo < 5 {
		lo = 5
	}
	hi := c.Age - 1
	if hi <= lo {
		return lo
	}
	return lo + c.intn(hi-lo+1)
}

// UpdateVitals applies deltas to the physical vitals, clamping each to
// [0,1].
func (c *Character) UpdateVitals(healthDelta, hungerDelta, energyDelta float64) {
	c.Health = clamp(c.Health+healthDelta, 0, 1)
	c.Hunger = clamp(c.Hunger+hungerDelta, 0, 1)
	c.Energy = clamp(c.Energy+energyDelta, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PhysicalCondition labels the character's current physical state, worst
// problem first.
func (c *Character) PhysicalCondition() string {
	switch {
	case c.Health < 0.2:
		return "critically injured"
	case c.Health < 0.5:
		return "injured"
	case c.Hunger > 0.8:
		return "starving"
	case c.Hunger > 0.6:
		return "very hungry"
	case c.Energy < 0.2:
		return "exhausted"
	case c.Energy < 0.4:
		return "tired"
	default:
		return "healthy"
	}
}

// UrgentNeeds lists physical needs requiring immediate attention.
func (c *Character) UrgentNeeds() []string {
	var needs []string
	if c.Health < 0.3 {
		needs = append(needs, "medical_attention")
	}
	if c.Hunger > 0.7 {
		needs = append(needs, "food")
	}
	if c.Energy < 0.2 {
		needs = append(needs, "rest")
	}
	return needs
}
