// Package trauma models wound records and their healing: natural healing
// gated by personality, activity-based healing, and counter-experience
// healing. A memory's impact only ever decreases, and severe wounds keep a
// permanent scar.
package trauma

import (
	"fmt"
	"time"
)

// EventType tags a traumatic event. The behavioral mappings recognize a
// fixed vocabulary, but arbitrary tags are accepted: unknown types simply
// produce no behavioral influence and no counter-experience healing.
type EventType string

const (
	Betrayal          EventType = "betrayal"
	LeadershipFailure EventType = "leadership_failure"
	SocialRejection   EventType = "social_rejection"
	ResourceLoss      EventType = "resource_loss"
	Violence          EventType = "violence"
	Abandonment       EventType = "abandonment"
)

// Memory is a single traumatic experience with healing tracking.
type Memory struct {
	EventType         EventType `json:"event_type"`
	OriginalImpact    float64   `json:"original_impact"` // may exceed 1.0 for severe events
	CurrentImpact     float64   `json:"current_impact"`
	AgeWhenOccurred   int       `json:"age_when_occurred"`
	Description       string    `json:"description"`
	RelatedPartners   []string  `json:"related_npcs,omitempty"`
	HealingActivities []string  `json:"healing_activities,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}

// NewMemory constructs a validated memory with current impact equal to the
// original impact.
func NewMemory(eventType EventType, impact float64, age int, description string, related []string) (*Memory, error) {
	if impact < 0 {
		return nil, fmt.Errorf("trauma impact must be non-negative, got %g", impact)
	}
	if age < 0 {
		return nil, fmt.Errorf("age must be non-negative, got %d", age)
	}
	return &Memory{
		EventType:       eventType,
		OriginalImpact:  impact,
		CurrentImpact:   impact,
		AgeWhenOccurred: age,
		Description:     description,
		RelatedPartners: related,
		Timestamp:       time.Now(),
	}, nil
}

// ScarThreshold is the floor healing can never cross. Minor trauma heals
// completely; moderate trauma keeps a 10% scar; severe trauma keeps 30%.
func (m *Memory) ScarThreshold() float64 {
	switch {
	case m.OriginalImpact <= 0.5:
		return 0.0
	case m.OriginalImpact <= 1.0:
		return m.OriginalImpact * 0.1
	default:
		return m.OriginalImpact * 0.3
	}
}

// IsFullyHealed reports whether the memory has healed as far as it can.
func (m *Memory) IsFullyHealed() bool {
	return m.CurrentImpact <= m.ScarThreshold()
}

// HealingProgress returns healing as a ratio of the maximum possible
// healing, 1.0 when nothing remains to heal.
func (m *Memory) HealingProgress() float64 {
	if m.OriginalImpact == 0 {
		return 1.0
	}
	maxPossible := m.OriginalImpact - m.ScarThreshold()
	if maxPossible == 0 {
		return 1.0
	}
	actual := m.OriginalImpact - m.CurrentImpact
	progress := actual / maxPossible
	if progress > 1.0 {
		return 1.0
	}
	return progress
}

// ApplyHealing reduces current impact by amount, floored at the scar
// threshold, and records the realized reduction tagged by source.
func (m *Memory) ApplyHealing(amount float64, source string) error {
	if amount < 0 {
		return fmt.Errorf("healing amount must be non-negative, got %g", amount)
	}

	old := m.CurrentImpact
	next := m.CurrentImpact - amount
	if floor := m.ScarThreshold(); next < floor {
		next = floor
	}
	m.CurrentImpact = next

	if healed := old - m.CurrentImpact; healed > 0 {
		m.HealingActivities = append(m.HealingActivities, fmt.Sprintf("%s:%.3f", source, healed))
	}
	return nil
}

// IntensityLabel returns a human-readable description of current intensity.
func (m *Memory) IntensityLabel() string {
	switch {
	case m.CurrentImpact <= 0.1:
		return "minimal"
	case m.CurrentImpact <= 0.3:
		return "mild"
	case m.CurrentImpact <= 0.6:
		return "moderate"
	case m.CurrentImpact <= 0.9:
		return "severe"
	default:
		return "overwhelming"
	}
}

// Severity bands for NewCommonMemory.
const (
	SeverityMild        = "mild"
	SeverityModerate    = "moderate"
	SeveritySevere      = "severe"
	SeverityDevastating = "devastating"
)

var severityBands = map[string][2]float64{
	SeverityMild:        {0.1, 0.3},
	SeverityModerate:    {0.3, 0.6},
	SeveritySevere:      {0.6, 1.0},
	SeverityDevastating: {1.0, 2.0},
}

var defaultDescriptions = map[EventType]string{
	Betrayal:          "Was betrayed by someone they trusted at age %d",
	LeadershipFailure: "Failed in a leadership role, causing harm to others at age %d",
	SocialRejection:   "Was rejected or ostracized by their community at age %d",
	ResourceLoss:      "Lost important resources or security at age %d",
	Violence:          "Experienced or witnessed violence at age %d",
	Abandonment:       "Was abandoned by someone important at age %d",
}

// NewCommonMemory creates a memory of a common trauma type at a named
// severity, drawing the impact uniformly from the severity band. roll must
// be in [0,1); it selects the point within the band.
func NewCommonMemory(eventType EventType, severity string, age int, description string, related []string, roll float64) (*Memory, error) {
	band, ok := severityBands[severity]
	if !ok {
		return nil, fmt.Errorf("unknown severity: %s (available: mild, moderate, severe, devastating)", severity)
	}
	impact := band[0] + (band[1]-band[0])*roll

	if description == "" {
		if tmpl, ok := defaultDescriptions[eventType]; ok {
			description = fmt.Sprintf(tmpl, age)
		} else {
			description = fmt.Sprintf("Experienced %s at age %d", eventType, age)
		}
	}

	return NewMemory(eventType, impact, age, description, related)
}
