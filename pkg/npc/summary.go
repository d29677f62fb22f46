package npc

import (
	"github.com/villagesim/npc-engine/pkg/experience"
	"github.com/villagesim/npc-engine/pkg/personality"
	"github.com/villagesim/npc-engine/pkg/relationship"
	"github.com/villagesim/npc-engine/pkg/trauma"
)

// DecisionContext is the flattened snapshot an external decision-making
// module reads when choosing the character's next action.
type DecisionContext struct {
	Health      float64  `json:"health"`
	Hunger      float64  `json:"hunger"`
	Energy      float64  `json:"energy"`
	UrgentNeeds []string `json:"urgent_needs,omitempty"`

	PersonalityTraits map[personality.Trait]float64   `json:"personality_traits"`
	ExperienceLevels  map[experience.Category]float64 `json:"experience_levels"`
	ActiveTraumas     map[trauma.EventType]float64    `json:"active_traumas"`
	TraumaInfluences  map[trauma.Influence]float64    `json:"trauma_influences"`
	TrustedPartners   []string                        `json:"trusted_npcs,omitempty"`
	FearedPartners    []string                        `json:"feared_npcs,omitempty"`
	SocialIsolation   float64                         `json:"social_isolation"`
	Conflicts         []relationship.Conflict         `json:"relationship_conflicts,omitempty"`
}

// GetDecisionContext snapshots the character for decision-making.
func (c *Character) GetDecisionContext() DecisionContext {
	return DecisionContext{
		Health:            c.Health,
		Hunger:            c.Hunger,
		Energy:            c.Energy,
		UrgentNeeds:       c.UrgentNeeds(),
		PersonalityTraits: c.Personality.Values(),
		ExperienceLevels:  c.Experience.Levels(),
		ActiveTraumas:     c.Trauma.ActiveTypes(trauma.ActiveThreshold),
		TraumaInfluences:  c.Trauma.BehaviorInfluences(),
		TrustedPartners:   c.Relationships.Trusted(),
		FearedPartners:    c.Relationships.Feared(),
		SocialIsolation:   c.Relationships.SocialIsolation(),
		Conflicts:         c.Relationships.Conflicts(),
	}
}

// Summary is the display/analytics snapshot of a character.
type Summary struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Age               int      `json:"age"`
	DaysAlive         int      `json:"days_alive"`
	PhysicalCondition string   `json:"physical_condition"`
	UrgentNeeds       []string `json:"urgent_needs,omitempty"`

	PersonalitySummary string                        `json:"personality_summary"`
	DominantTraits     map[personality.Trait]float64 `json:"dominant_traits"`
	WeakTraits         map[personality.Trait]float64 `json:"weak_traits"`

	TotalExperience float64            `json:"total_experience"`
	TopSkills       []experience.Skill `json:"top_skills"`
	Specialization  float64            `json:"specialization"`

	TraumaCount        int                          `json:"trauma_count"`
	MostSevereTrauma   *trauma.MostSevereInfo       `json:"most_severe_trauma,omitempty"`
	HealingProgress    float64                      `json:"healing_progress"`
	BehaviorInfluences map[trauma.Influence]float64 `json:"behavioral_influences"`

	TotalRelationships int                        `json:"total_relationships"`
	SocialIsolation    float64                    `json:"social_isolation"`
	SocialInfluence    float64                    `json:"social_influence"`
	ClosestPartners    []relationship.PartnerRank `json:"closest_relationships,omitempty"`
	Conflicts          []relationship.Conflict    `json:"conflicts,omitempty"`

	LastAction        string `json:"last_action,omitempty"`
	LastActionSuccess *bool  `json:"last_action_success,omitempty"`
}

// Summarize builds the character summary from every subsystem.
func (c *Character) Summarize() Summary {
	expSummary := c.Experience.Summarize()
	traumaSummary := c.Trauma.Summarize()
	relSummary := c.Relationships.Summarize()

	closest := relSummary.Closest
	if len(closest) > 3 {
		closest = closest[:3]
	}

	return Summary{
		ID:                c.ID,
		Name:              c.Name,
		Age:               c.Age,
		DaysAlive:         c.DaysAlive,
		PhysicalCondition: c.PhysicalCondition(),
		UrgentNeeds:       c.UrgentNeeds(),

		PersonalitySummary: c.Personality.Summary(),
		DominantTraits:     c.Personality.Dominant(),
		WeakTraits:         c.Personality.Weak(),

		TotalExperience: expSummary.Total,
		TopSkills:       expSummary.TopSkills,
		Specialization:  expSummary.Specialization,

		TraumaCount:        traumaSummary.TotalCount,
		MostSevereTrauma:   traumaSummary.MostSevere,
		HealingProgress:    traumaSummary.HealingProgress,
		BehaviorInfluences: c.Trauma.BehaviorInfluences(),

		TotalRelationships: relSummary.TotalRelationships,
		SocialIsolation:    relSummary.SocialIsolation,
		SocialInfluence:    relSummary.SocialInfluence,
		ClosestPartners:    closest,
		Conflicts:          relSummary.Conflicts,

		LastAction:        c.LastAction,
		LastActionSuccess: c.LastActionSuccess,
	}
}
