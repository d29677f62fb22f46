// Package experience tracks skill growth across seven categories. Gains
// apply diminishing returns as a level rises and every gain is recorded in
// an append-only history.
package experience

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/villagesim/npc-engine/pkg/action"
)

// Category identifies one of the seven skill categories.
type Category string

const (
	Leadership         Category = "leadership"
	Negotiation        Category = "negotiation"
	ResourceManagement Category = "resource_management"
	Crafting           Category = "crafting"
	SocialManipulation Category = "social_manipulation"
	Survival           Category = "survival"
	Combat             Category = "combat"
)

// AllCategories lists every category in declaration order. Tie-breaking in
// ranked queries follows this ordering.
var AllCategories = []Category{
	Leadership, Negotiation, ResourceManagement, Crafting,
	SocialManipulation, Survival, Combat,
}

const (
	// SignificantGainThreshold is the realized delta at which a gain counts
	// as notable.
	SignificantGainThreshold = 0.05
	// FailureMultiplier scales experience from failed actions. Characters
	// still learn something from failure.
	FailureMultiplier = 0.3
	// ExpertiseThreshold is the default level for expertise checks.
	ExpertiseThreshold = 0.7
)

// GainRecord captures one experience gain event.
type GainRecord struct {
	Category        Category `json:"category"`
	AmountAttempted float64  `json:"amount_attempted"`
	AmountGained    float64  `json:"amount_gained"`
	Source          string   `json:"source"`
	Success         bool     `json:"success"`
	OldLevel        float64  `json:"old_level"`
	NewLevel        float64  `json:"new_level"`
}

// Tracker holds per-category skill levels in [0,1] and the gain history.
type Tracker struct {
	Leadership         float64 `json:"leadership"`
	Negotiation        float64 `json:"negotiation"`
	ResourceManagement float64 `json:"resource_management"`
	Crafting           float64 `json:"crafting"`
	SocialManipulation float64 `json:"social_manipulation"`
	Survival           float64 `json:"survival"`
	Combat             float64 `json:"combat"`

	History []GainRecord `json:"experience_history,omitempty"`
}

// NewTracker returns a tracker with every skill at zero.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Level returns the current level for a category.
func (t *Tracker) Level(c Category) (float64, error) {
	switch c {
	case Leadership:
		return t.Leadership, nil
	case Negotiation:
		return t.Negotiation, nil
	case ResourceManagement:
		return t.ResourceManagement, nil
	case Crafting:
		return t.Crafting, nil
	case SocialManipulation:
		return t.SocialManipulation, nil
	case Survival:
		return t.Survival, nil
	case Combat:
		return t.Combat, nil
	default:
		return 0, fmt.Errorf("unknown experience category: %s (available: %s)", c, availableCategories())
	}
}

func (t *Tracker) setLevel(c Category, v float64) {
	switch c {
	case Leadership:
		t.Leadership = v
	case Negotiation:
		t.Negotiation = v
	case ResourceManagement:
		t.ResourceManagement = v
	case Crafting:
		t.Crafting = v
	case SocialManipulation:
		t.SocialManipulation = v
	case Survival:
		t.Survival = v
	case Combat:
		t.Combat = v
	}
}

func availableCategories() string {
	names := make([]string, len(AllCategories))
	for i, c := range AllCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Levels returns all category levels keyed by category.
func (t *Tracker) Levels() map[Category]float64 {
	levels := make(map[Category]float64, len(AllCategories))
	for _, c := range AllCategories {
		v, _ := t.Level(c)
		levels[c] = v
	}
	return levels
}

// Gain adds experience in a category, applying diminishing returns, and
// reports whether the realized gain was significant. Unknown categories and
// negative amounts are rejected before any mutation.
func (t *Tracker) Gain(c Category, amount float64, source string, success bool) (bool, error) {
	old, err := t.Level(c)
	if err != nil {
		return false, err
	}
	if amount < 0 {
		return false, fmt.Errorf("experience amount must be non-negative, got %g", amount)
	}

	// Harder to improve at higher levels: 30% reduction at max.
	diminishing := 1.0 - old*0.3
	newLevel := math.Min(1.0, old+amount*diminishing)
	t.setLevel(c, newLevel)

	t.History = append(t.History, GainRecord{
		Category:        c,
		AmountAttempted: amount,
		AmountGained:    newLevel - old,
		Source:          source,
		Success:         success,
		OldLevel:        old,
		NewLevel:        newLevel,
	})

	return newLevel-old >= SignificantGainThreshold, nil
}

// GainFromAction applies the fixed action experience table for an action
// outcome. Failed actions still grant 30% of the base amount. The returned
// map flags which categories saw a significant gain.
func (t *Tracker) GainFromAction(a action.Type, success bool) map[Category]bool {
	results := make(map[Category]bool)

	multiplier := 1.0
	if !success {
		multiplier = FailureMultiplier
	}

	for _, c := range AllCategories {
		base, ok := actionExperience[a][c]
		if !ok {
			continue
		}
		amount := base * multiplier
		if amount <= 0 {
			continue
		}
		significant, err := t.Gain(c, amount, "action_"+string(a), success)
		if err != nil {
			continue // table categories are always valid
		}
		results[c] = significant
	}

	return results
}

// CategoriesForAction returns the categories an action would train, without
// applying any gain.
func CategoriesForAction(a action.Type) []Category {
	var categories []Category
	for _, c := range AllCategories {
		if _, ok := actionExperience[a][c]; ok {
			categories = append(categories, c)
		}
	}
	return categories
}

// TierLabel returns the human-readable skill tier for a category.
func (t *Tracker) TierLabel(c Category) (string, error) {
	level, err := t.Level(c)
	if err != nil {
		return "", err
	}
	switch {
	case level < 0.1:
		return "Novice", nil
	case level < 0.3:
		return "Beginner", nil
	case level < 0.5:
		return "Intermediate", nil
	case level < 0.7:
		return "Advanced", nil
	case level < 0.9:
		return "Expert", nil
	default:
		return "Master", nil
	}
}

// Skill pairs a category with its level and tier label.
type Skill struct {
	Category Category `json:"category"`
	Level    float64  `json:"level"`
	Tier     string   `json:"tier"`
}

// TopSkills returns the top n skills sorted descending by level. Ties keep
// category declaration order.
func (t *Tracker) TopSkills(n int) []Skill {
	skills := make([]Skill, 0, len(AllCategories))
	for _, c := range AllCategories {
		level, _ := t.Level(c)
		tier, _ := t.TierLabel(c)
		skills = append(skills, Skill{Category: c, Level: level, Tier: tier})
	}
	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].Level > skills[j].Level
	})
	if n < len(skills) {
		skills = skills[:n]
	}
	return skills
}

// SkillsAbove returns skills at or above the given level threshold.
func (t *Tracker) SkillsAbove(threshold float64) []Skill {
	var skills []Skill
	for _, c := range AllCategories {
		level, _ := t.Level(c)
		if level >= threshold {
			tier, _ := t.TierLabel(c)
			skills = append(skills, Skill{Category: c, Level: level, Tier: tier})
		}
	}
	return skills
}

// ConfidenceModifier grows linearly with experience: 1.0 at zero experience,
// 2.0 at mastery.
func (t *Tracker) ConfidenceModifier(c Category) (float64, error) {
	level, err := t.Level(c)
	if err != nil {
		return 0, err
	}
	return 1.0 + level, nil
}

// CompetenceModifier grows faster than confidence: 1.0 at zero experience,
// 2.5 at mastery.
func (t *Tracker) CompetenceModifier(c Category) (float64, error) {
	level, err := t.Level(c)
	if err != nil {
		return 0, err
	}
	return 1.0 + level*1.5, nil
}

// LearningRate shrinks with experience: 1.0 at zero, 0.5 at mastery.
func (t *Tracker) LearningRate(c Category) (float64, error) {
	level, err := t.Level(c)
	if err != nil {
		return 0, err
	}
	return 1.0 - level*0.5, nil
}

// HasExpertise reports whether the level meets the threshold.
func (t *Tracker) HasExpertise(c Category, threshold float64) (bool, error) {
	level, err := t.Level(c)
	if err != nil {
		return false, err
	}
	return level >= threshold, nil
}

// SpecializationScore measures skill dispersion: near 0 for a generalist,
// approaching 1 for a narrow specialist. Computed as min(1, 2*stddev).
func (t *Tracker) SpecializationScore() float64 {
	var sum float64
	for _, c := range AllCategories {
		v, _ := t.Level(c)
		sum += v
	}
	mean := sum / float64(len(AllCategories))

	var variance float64
	for _, c := range AllCategories {
		v, _ := t.Level(c)
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(AllCategories))

	return math.Min(1.0, math.Sqrt(variance)*2.0)
}

// Summary aggregates the tracker for analysis output.
type Summary struct {
	Total          float64 `json:"total_experience"`
	Average        float64 `json:"average_experience"`
	TopSkills      []Skill `json:"top_skills"`
	SkilledAreas   []Skill `json:"skilled_areas"`
	WeakestSkills  []Skill `json:"weakest_skills"`
	EventCount     int     `json:"experience_events"`
	Specialization float64 `json:"specialization_score"`
}

// Summarize builds a comprehensive experience summary.
func (t *Tracker) Summarize() Summary {
	var total float64
	for _, c := range AllCategories {
		v, _ := t.Level(c)
		total += v
	}

	weakest := make([]Skill, 0, len(AllCategories))
	for _, c := range AllCategories {
		level, _ := t.Level(c)
		tier, _ := t.TierLabel(c)
		weakest = append(weakest, Skill{Category: c, Level: level, Tier: tier})
	}
	sort.SliceStable(weakest, func(i, j int) bool {
		return weakest[i].Level < weakest[j].Level
	})
	if len(weakest) > 3 {
		weakest = weakest[:3]
	}

	return Summary{
		Total:          total,
		Average:        total / float64(len(AllCategories)),
		TopSkills:      t.TopSkills(3),
		SkilledAreas:   t.SkillsAbove(0.4),
		WeakestSkills:  weakest,
		EventCount:     len(t.History),
		Specialization: t.SpecializationScore(),
	}
}

// SuccessProbability adjusts a base success rate by the competence modifier
// for an experience level, capped at 0.95 to keep some uncertainty. The
// outer control loop uses this when rolling action outcomes.
func SuccessProbability(baseRate, level float64) float64 {
	return math.Min(0.95, baseRate*(1.0+level*1.5))
}

// MostRelevantCategory returns the category with the highest base amount in
// the action's experience mapping, and the tracker's level in it. Actions
// with no mapping fall back to survival at the current level.
func MostRelevantCategory(a action.Type, t *Tracker) (Category, float64) {
	mapping := actionExperience[a]
	if len(mapping) == 0 {
		level, _ := t.Level(Survival)
		return Survival, level
	}
	best := Category("")
	bestAmount := math.Inf(-1)
	for _, c := range AllCategories {
		amount, ok := mapping[c]
		if ok && amount > bestAmount {
			best = c
			bestAmount = amount
		}
	}
	level, _ := t.Level(best)
	return best, level
}
