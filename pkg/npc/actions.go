package npc

import (
	"fmt"

	"github.com/villagesim/npc-engine/pkg/action"
	"github.com/villagesim/npc-engine/pkg/experience"
	"github.com/villagesim/npc-engine/pkg/relationship"
	"github.com/villagesim/npc-engine/pkg/trauma"
)

// TraumaEvent describes a traumatic event carried in an action outcome.
type TraumaEvent struct {
	Type        trauma.EventType `json:"type"`
	Impact      float64          `json:"impact"`
	Description string           `json:"description,omitempty"`
	Related     []string         `json:"related_npcs,omitempty"`
}

// Outcome carries the externally rolled results of an action back into the
// character core.
type Outcome struct {
	TargetNPC  string       `json:"target_npc,omitempty"`
	FoodGained float64      `json:"food_gained,omitempty"`
	Traumatic  *TraumaEvent `json:"traumatic_event,omitempty"`
}

// PerformAction routes an action outcome into every subsystem: experience
// gain, physical effects, relationship effects toward the outcome's
// target, and trauma creation when the outcome was traumatic. It returns
// the per-category significance map from the experience gain.
func (c *Character) PerformAction(a action.Type, success bool, outcome *Outcome) map[experience.Category]bool {
	c.LastAction = string(a)
	s := success
	c.LastActionSuccess = &s

	if outcome == nil {
		outcome = &Outcome{}
	}

	results := c.Experience.GainFromAction(a, success)

	c.applyPhysicalEffects(a, success, outcome)

	if outcome.TargetNPC != "" {
		c.applyRelationshipEffects(a, success, outcome.TargetNPC)
	}

	if outcome.Traumatic != nil {
		c.recordTrauma(outcome.Traumatic)
	}

	return results
}

func (c *Character) applyPhysicalEffects(a action.Type, success bool, outcome *Outcome) {
	meta := action.GetMetadata(a)
	c.UpdateVitals(0, 0, -meta.EnergyCost)

	switch {
	case a == action.GatherFood && success:
		reduction := outcome.FoodGained
		if reduction == 0 {
			reduction = 0.1
		}
		c.UpdateVitals(0, -reduction, 0)

	case a == action.Rest:
		restored := 0.2
		if success {
			restored = 0.4
		}
		healthRestored := 0.0
		if c.Health < 0.8 {
			healthRestored = 0.1
		}
		c.UpdateVitals(healthRestored, 0, restored)

	case (a == action.BuildShelter || a == action.CraftTools) && success:
		// Physical work improves health slightly.
		c.UpdateVitals(0.02, 0, 0)
	}
}

// applyRelationshipEffects routes social actions into relationship events
// toward the target.
func (c *Character) applyRelationshipEffects(a action.Type, success bool, target string) {
	switch a {
	case action.HelpNPC:
		if success {
			_ = c.Relationships.ApplyEvent(target, relationship.HelpedInCrisis, 1.0)
		}
	case action.ShareResources:
		if success {
			_ = c.Relationships.ApplyEvent(target, relationship.SharedResources, 1.0)
		}
	case action.FormAlliance:
		if success {
			_ = c.Relationships.Update(target, relationship.Trust, 0.1, "formed_alliance")
			_ = c.Relationships.Update(target, relationship.Respect, 0.05, "formed_alliance")
		}
	case action.StartConversation:
		if success {
			_ = c.Relationships.Update(target, relationship.Affection, 0.05, "conversation")
		}
	}
}

func (c *Character) recordTrauma(event *TraumaEvent) {
	eventType := event.Type
	if eventType == "" {
		eventType = "generic"
	}
	impact := event.Impact
	if impact == 0 {
		impact = 0.5
	}
	description := event.Description
	if description == "" {
		description = fmt.Sprintf("Experienced %s", eventType)
	}
	_, _ = c.Trauma.Add(eventType, impact, c.Age, description, event.Related)
}

// InteractionType names a direct NPC-to-NPC interaction.
type InteractionType string

const (
	CasualConversation InteractionType = "casual_conversation"
	HelpRequest        InteractionType = "help_request"
	ResourceSharing    InteractionType = "resource_sharing"
	Conflict           InteractionType = "conflict"
	Betrayal           InteractionType = "betrayal"
)

// interactionEffects maps interaction type and outcome to dimension deltas.
// This table is independent of the action→relationship-event routing.
var interactionEffects = map[InteractionType]map[bool]map[relationship.Dimension]float64{
	CasualConversation: {
		true:  {relationship.Affection: 0.05, relationship.Trust: 0.02},
		false: {relationship.Affection: -0.02},
	},
	HelpRequest: {
		true:  {relationship.Trust: 0.1, relationship.Dependency: 0.05, relationship.Affection: 0.08},
		false: {relationship.Trust: -0.05, relationship.Respect: -0.03},
	},
	ResourceSharing: {
		true:  {relationship.Trust: 0.08, relationship.Affection: 0.06, relationship.Dependency: 0.03},
		false: {relationship.Trust: -0.1, relationship.Affection: -0.05},
	},
	Conflict: {
		true:  {relationship.Fear: 0.1, relationship.Respect: 0.05, relationship.Affection: -0.1},
		false: {relationship.Fear: -0.05, relationship.Respect: -0.1, relationship.Trust: -0.05},
	},
	Betrayal: {
		true: {relationship.Trust: -0.4, relationship.Affection: -0.3, relationship.Fear: 0.2, relationship.Respect: -0.2},
	},
}

// betrayalTraumaImpact is the fixed wound left by a successful betrayal.
const betrayalTraumaImpact = 0.6

// InteractionResult reports the applied effects of an interaction.
type InteractionResult struct {
	InteractionType InteractionType                    `json:"interaction_type"`
	Success         bool                               `json:"outcome"`
	Changes         map[relationship.Dimension]float64 `json:"relationship_changes"`
	NewType         string                             `json:"new_relationship_type"`
}

// InteractWithNPC applies a direct interaction with a partner. Unknown
// interaction types return an error without mutating any state. A
// successful betrayal additionally wounds the character with a betrayal
// trauma naming the partner.
func (c *Character) InteractWithNPC(partner string, interaction InteractionType, success bool) (*InteractionResult, error) {
	outcomes, ok := interactionEffects[interaction]
	if !ok {
		return nil, fmt.Errorf("unknown interaction type: %s", interaction)
	}

	reason := string(interaction) + "_failure"
	if success {
		reason = string(interaction) + "_success"
	}

	effects := outcomes[success]
	for _, dim := range relationship.AllDimensions {
		delta, ok := effects[dim]
		if !ok {
			continue
		}
		_ = c.Relationships.Update(partner, dim, delta, reason)
	}

	if interaction == Betrayal && success {
		c.recordTrauma(&TraumaEvent{
			Type:        trauma.Betrayal,
			Impact:      betrayalTraumaImpact,
			Description: fmt.Sprintf("Betrayed by %s", partner),
			Related:     []string{partner},
		})
	}

	return &InteractionResult{
		InteractionType: interaction,
		Success:         success,
		Changes:         effects,
		NewType:         c.Relationships.GetOrCreate(partner).Type(),
	}, nil
}

// lifeWisdomSkills are the categories eligible for the yearly wisdom gain.
var lifeWisdomSkills = []experience.Category{
	experience.Leadership, experience.Negotiation, experience.Survival,
}

// AdvanceDay advances one day of the character's life: hunger rises,
// energy drifts, trauma heals naturally and through the day's activities,
// and once a year the character ages and may pick up a little wisdom.
func (c *Character) AdvanceDay(activities []trauma.Activity) {
	c.DaysAlive++

	c.UpdateVitals(0, c.uniform(0.1, 0.2), c.uniform(-0.1, 0.1))

	c.Trauma.ApplyDailyHealing(c.Personality, 1)

	for _, activity := range activities {
		if !isHealingActivity(activity) {
			continue
		}
		amount := c.uniform(0.005, 0.02)
		_ = c.Trauma.ApplyActivityHealing(activity, amount, &c.Personality)
	}

	if c.DaysAlive%365 == 0 {
		c.Age++
		if c.f64() < 0.3 {
			skill := lifeWisdomSkills[c.intn(len(lifeWisdomSkills))]
			_, _ = c.Experience.Gain(skill, 0.01, "life_wisdom", true)
		}
	}
}

func isHealingActivity(a trauma.Activity) bool {
	switch a {
	case trauma.Meditation, trauma.Socializing, trauma.CraftingActivity,
		trauma.Prayer, trauma.HelpingOthers:
		return true
	default:
		return false
	}
}
