package relationship

import (
	"sort"
	"strings"
)

// Event names a predefined relationship event with a fixed delta bundle.
type Event string

const (
	HelpedInCrisis         Event = "helped_in_crisis"
	BetrayedTrust          Event = "betrayed_trust"
	SharedResources        Event = "shared_resources"
	CompetedForLeadership  Event = "competed_for_leadership"
	SavedFromDanger        Event = "saved_from_danger"
	PublicHumiliation      Event = "public_humiliation"
	KeptSecret             Event = "kept_secret"
	BrokePromise           Event = "broke_promise"
	ShowedVulnerability    Event = "showed_vulnerability"
	DemonstratedCompetence Event = "demonstrated_competence"
)

// eventDeltas maps each event to its per-dimension delta bundle. Static;
// never mutated.
var eventDeltas = map[Event]map[Dimension]float64{
	HelpedInCrisis:         {Trust: 0.15, Respect: 0.1, Affection: 0.1, Dependency: 0.05},
	BetrayedTrust:          {Trust: -0.4, Respect: -0.2, Affection: -0.3, Fear: 0.1},
	SharedResources:        {Trust: 0.08, Affection: 0.06, Dependency: 0.03},
	CompetedForLeadership:  {Respect: 0.05, Fear: 0.03, Trust: -0.05},
	SavedFromDanger:        {Trust: 0.25, Respect: 0.2, Affection: 0.2, Dependency: 0.15},
	PublicHumiliation:      {Respect: -0.3, Affection: -0.2, Fear: 0.1},
	KeptSecret:             {Trust: 0.2, Affection: 0.1},
	BrokePromise:           {Trust: -0.25, Respect: -0.1, Affection: -0.15},
	ShowedVulnerability:    {Affection: 0.1, Trust: 0.05, Fear: -0.05},
	DemonstratedCompetence: {Respect: 0.15, Trust: 0.05},
}

func availableEvents() string {
	names := make([]string, 0, len(eventDeltas))
	for e := range eventDeltas {
		names = append(names, string(e))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
