package trauma

import (
	"fmt"
	"math"

	"github.com/villagesim/npc-engine/pkg/personality"
)

// DefaultNaturalHealingRate is the base healing applied per simulated day
// before personality scaling.
const DefaultNaturalHealingRate = 0.001

// typeImpactCap bounds combined severity per trauma type.
const typeImpactCap = 2.0

// Ledger collects all trauma memories for one character.
type Ledger struct {
	Memories            []*Memory `json:"memories,omitempty"`
	LastHealingActivity string    `json:"last_healing_activity,omitempty"`
	NaturalHealingRate  float64   `json:"natural_healing_rate"`
}

// NewLedger returns an empty ledger with the default natural healing rate.
func NewLedger() *Ledger {
	return &Ledger{NaturalHealingRate: DefaultNaturalHealingRate}
}

// Add creates and appends a new memory. Negative impact or age is rejected
// without mutation.
func (l *Ledger) Add(eventType EventType, impact float64, age int, description string, related []string) (*Memory, error) {
	m, err := NewMemory(eventType, impact, age, description, related)
	if err != nil {
		return nil, err
	}
	l.Memories = append(l.Memories, m)
	return m, nil
}

// ImpactByType sums the current impact of all memories of a type, capped
// at 2.0 to bound combined severity.
func (l *Ledger) ImpactByType(t EventType) float64 {
	var total float64
	for _, m := range l.Memories {
		if m.EventType == t {
			total += m.CurrentImpact
		}
	}
	return math.Min(typeImpactCap, total)
}

// ActiveTypes returns every trauma type whose memories individually meet
// the threshold, with per-type totals capped at 2.0.
func (l *Ledger) ActiveTypes(threshold float64) map[EventType]float64 {
	totals := make(map[EventType]float64)
	for _, m := range l.Memories {
		if m.CurrentImpact >= threshold {
			totals[m.EventType] += m.CurrentImpact
		}
	}
	for t, v := range totals {
		totals[t] = math.Min(typeImpactCap, v)
	}
	return totals
}

// MemoriesByType returns all memories of a specific type.
func (l *Ledger) MemoriesByType(t EventType) []*Memory {
	var memories []*Memory
	for _, m := range l.Memories {
		if m.EventType == t {
			memories = append(memories, m)
		}
	}
	return memories
}

// MostSevere returns the memory with the highest current impact, or nil if
// the ledger is empty.
func (l *Ledger) MostSevere() *Memory {
	var most *Memory
	for _, m := range l.Memories {
		if most == nil || m.CurrentImpact > most.CurrentImpact {
			most = m
		}
	}
	return most
}

// ApplyDailyHealing applies natural healing to every not-fully-healed
// memory. The rate is gated by personality: forgiving, patient, analytical,
// and active characters heal faster.
func (l *Ledger) ApplyDailyHealing(traits personality.Traits, daysPassed int) {
	multiplier := traits.Forgiveness*0.5 +
		(1.0-traits.Impulsiveness)*0.3 +
		traits.Analytical*0.2 +
		(1.0-traits.Laziness)*0.2

	amount := l.NaturalHealingRate * multiplier * float64(daysPassed)

	for _, m := range l.Memories {
		if !m.IsFullyHealed() {
			_ = m.ApplyHealing(amount, "natural_healing")
		}
	}
}

// ApplyActivityHealing heals all not-fully-healed memories through a named
// activity. Activities are 1.5x effective against their mapped trauma types
// and 0.5x otherwise, with personality bonuses on top. Negative amounts are
// rejected without mutation.
func (l *Ledger) ApplyActivityHealing(activity Activity, amount float64, traits *personality.Traits) error {
	if amount < 0 {
		return fmt.Errorf("healing amount must be non-negative, got %g", amount)
	}

	l.LastHealingActivity = string(activity)

	cfg, ok := activityEffectiveness[activity]
	if !ok {
		cfg = activityConfig{effectiveness: 0.5}
	}

	for _, m := range l.Memories {
		if m.IsFullyHealed() {
			continue
		}

		effectiveness := cfg.effectiveness
		if cfg.matches(m.EventType) {
			effectiveness *= 1.5
		} else {
			effectiveness *= 0.5
		}

		if traits != nil {
			switch {
			case activity == Socializing && traits.Sociability > 0.7:
				effectiveness *= 1.3
			case activity == Meditation && traits.Analytical > 0.7:
				effectiveness *= 1.2
			case activity == HelpingOthers && traits.Forgiveness > 0.7:
				effectiveness *= 1.2
			}
		}

		_ = m.ApplyHealing(amount*effectiveness, "activity_"+string(activity))
	}
	return nil
}

// ApplyCounterExperienceHealing heals trauma through a positive experience
// that counters it, e.g. trust_restoration against betrayal. Counter
// experiences are very effective but never fully erase a wound in one step.
func (l *Ledger) ApplyCounterExperienceHealing(counterEvent string, positiveImpact float64) error {
	if positiveImpact < 0 {
		return fmt.Errorf("positive impact must be non-negative, got %g", positiveImpact)
	}

	for traumaType, counters := range counterExperiences {
		if !contains(counters, counterEvent) {
			continue
		}
		for _, m := range l.MemoriesByType(traumaType) {
			if m.IsFullyHealed() {
				continue
			}
			amount := math.Min(positiveImpact*0.6, m.CurrentImpact*0.8)
			_ = m.ApplyHealing(amount, "counter_experience_"+counterEvent)
		}
	}
	return nil
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// MostSevereInfo describes the worst active memory in a summary.
type MostSevereInfo struct {
	Type        EventType `json:"type"`
	Impact      float64   `json:"impact"`
	Description string    `json:"description"`
	Intensity   string    `json:"intensity"`
}

// Summary aggregates the ledger for analysis output.
type Summary struct {
	TotalCount            int                   `json:"total_trauma_count"`
	ActiveTraumas         map[EventType]float64 `json:"active_traumas"`
	MostSevere            *MostSevereInfo       `json:"most_severe,omitempty"`
	OverallLevel          float64               `json:"overall_trauma_level"`
	HealingProgress       float64               `json:"healing_progress"`
	FullyHealedCount      int                   `json:"fully_healed_count"`
	RecentHealingActivity string                `json:"recent_healing_activity,omitempty"`
}

// Summarize builds a comprehensive trauma summary. An empty ledger reports
// full healing progress.
func (l *Ledger) Summarize() Summary {
	if len(l.Memories) == 0 {
		return Summary{
			ActiveTraumas:   map[EventType]float64{},
			HealingProgress: 1.0,
		}
	}

	var totalCurrent, totalPossible, totalActual float64
	fullyHealed := 0
	for _, m := range l.Memories {
		totalCurrent += m.CurrentImpact
		totalPossible += m.OriginalImpact - m.ScarThreshold()
		totalActual += m.OriginalImpact - m.CurrentImpact
		if m.IsFullyHealed() {
			fullyHealed++
		}
	}

	progress := 0.0
	if totalPossible > 0 {
		progress = totalActual / totalPossible
	}

	summary := Summary{
		TotalCount:            len(l.Memories),
		ActiveTraumas:         l.ActiveTypes(ActiveThreshold),
		OverallLevel:          totalCurrent,
		HealingProgress:       progress,
		FullyHealedCount:      fullyHealed,
		RecentHealingActivity: l.LastHealingActivity,
	}

	if most := l.MostSevere(); most != nil {
		summary.MostSevere = &MostSevereInfo{
			Type:        most.EventType,
			Impact:      most.CurrentImpact,
			Description: most.Description,
			Intensity:   most.IntensityLabel(),
		}
	}
	return summary
}

// ActiveThreshold is the default impact below which a trauma type is
// considered inactive.
const ActiveThreshold = 0.1

// BehaviorInfluences derives how active trauma should steer behavior. Each
// influence accumulates impact times a fixed weight and is capped at 1.0.
// Trauma types outside the fixed vocabulary contribute nothing.
func (l *Ledger) BehaviorInfluences() map[Influence]float64 {
	influences := map[Influence]float64{
		TrustIssues:         0,
		SocialWithdrawal:    0,
		LeadershipAvoidance: 0,
		ResourceHoarding:    0,
		ConflictAvoidance:   0,
		RiskAversion:        0,
	}

	for traumaType, impact := range l.ActiveTypes(ActiveThreshold) {
		for influence, weight := range behaviorWeights[traumaType] {
			influences[influence] += impact * weight
		}
	}

	for k, v := range influences {
		influences[k] = math.Min(1.0, v)
	}
	return influences
}
