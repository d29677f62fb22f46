package relationship

import (
	"math"
	"sort"
)

// Graph manages all of one character's relationships, keyed by partner id.
// Entries hold identifiers only, never references into another character's
// state, so the object graph between characters stays acyclic.
type Graph struct {
	Relationships map[string]*Dimensions `json:"relationships,omitempty"`

	// order preserves insertion order for deterministic ranked output.
	order []string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{Relationships: make(map[string]*Dimensions)}
}

// GetOrCreate returns the bond toward a partner, inserting a neutral entry
// on first reference.
func (g *Graph) GetOrCreate(partner string) *Dimensions {
	if g.Relationships == nil {
		g.Relationships = make(map[string]*Dimensions)
	}
	if d, ok := g.Relationships[partner]; ok {
		return d
	}
	d := NewDimensions()
	g.Relationships[partner] = d
	g.order = append(g.order, partner)
	return d
}

// Partners returns partner ids in insertion order.
func (g *Graph) Partners() []string {
	if len(g.order) == len(g.Relationships) {
		return g.order
	}
	// Entries loaded from serialized form have no recorded order; rebuild
	// one deterministically.
	ids := make([]string, 0, len(g.Relationships))
	for id := range g.Relationships {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	g.order = ids
	return ids
}

// Update applies a closeness-scaled delta to one dimension of the bond
// toward a partner, creating the bond if needed.
func (g *Graph) Update(partner string, dim Dimension, delta float64, reason string) error {
	return g.GetOrCreate(partner).Update(dim, delta, reason, true)
}

// ApplyEvent applies a named event toward a partner with the given strength.
func (g *Graph) ApplyEvent(partner string, event Event, strength float64) error {
	return g.GetOrCreate(partner).ApplyEvent(event, strength)
}

// PartnerRank pairs a partner with a score and relationship label for
// ranked queries.
type PartnerRank struct {
	Partner string  `json:"partner"`
	Score   float64 `json:"score"`
	Type    string  `json:"type"`
}

func (g *Graph) rankBy(n int, score func(*Dimensions) float64) []PartnerRank {
	ranks := make([]PartnerRank, 0, len(g.Relationships))
	for _, id := range g.Partners() {
		d := g.Relationships[id]
		ranks = append(ranks, PartnerRank{Partner: id, Score: score(d), Type: d.Type()})
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Score > ranks[j].Score })
	if n < len(ranks) {
		ranks = ranks[:n]
	}
	return ranks
}

// Closest returns the n partners with the highest closeness.
func (g *Graph) Closest(n int) []PartnerRank {
	return g.rankBy(n, (*Dimensions).Closeness)
}

// MostInfluential returns the n partners with the highest influence
// potential.
func (g *Graph) MostInfluential(n int) []PartnerRank {
	return g.rankBy(n, (*Dimensions).InfluencePotential)
}

// PartnersByDimension returns partners at or above a threshold on one
// dimension, sorted descending by value.
func (g *Graph) PartnersByDimension(dim Dimension, threshold float64) ([]PartnerRank, error) {
	var ranks []PartnerRank
	for _, id := range g.Partners() {
		d := g.Relationships[id]
		v, err := d.Get(dim)
		if err != nil {
			return nil, err
		}
		if v >= threshold {
			ranks = append(ranks, PartnerRank{Partner: id, Score: v, Type: d.Type()})
		}
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Score > ranks[j].Score })
	return ranks, nil
}

func (g *Graph) partnersAbove(dim Dimension, threshold float64) []string {
	ranks, _ := g.PartnersByDimension(dim, threshold)
	ids := make([]string, len(ranks))
	for i, r := range ranks {
		ids[i] = r.Partner
	}
	return ids
}

// Trusted returns partners with trust >= 0.6.
func (g *Graph) Trusted() []string { return g.partnersAbove(Trust, 0.6) }

// Feared returns partners with fear >= 0.4.
func (g *Graph) Feared() []string { return g.partnersAbove(Fear, 0.4) }

// Respected returns partners with respect >= 0.6.
func (g *Graph) Respected() []string { return g.partnersAbove(Respect, 0.6) }

// Loved returns partners with affection >= 0.7.
func (g *Graph) Loved() []string { return g.partnersAbove(Affection, 0.7) }

// ByType groups partner ids by relationship label.
func (g *Graph) ByType() map[string][]string {
	groups := make(map[string][]string)
	for _, id := range g.Partners() {
		t := g.Relationships[id].Type()
		groups[t] = append(groups[t], id)
	}
	return groups
}

// SocialIsolation measures disconnection in [0,1]. An empty graph is fully
// isolated.
func (g *Graph) SocialIsolation() float64 {
	if len(g.Relationships) == 0 {
		return 1.0
	}

	var totalCloseness float64
	positive := 0
	for _, d := range g.Relationships {
		totalCloseness += d.Closeness()
		if d.Sentiment() > 0.0 {
			positive++
		}
	}

	n := float64(len(g.Relationships))
	connection := (totalCloseness/n + float64(positive)/n) / 2.0
	return 1.0 - connection
}

// SocialInfluence measures overall sway in [0,1], weighted up by partner
// count (capped at 20 partners). An empty graph has none.
func (g *Graph) SocialInfluence() float64 {
	if len(g.Relationships) == 0 {
		return 0.0
	}

	var total float64
	for _, d := range g.Relationships {
		total += d.InfluencePotential()
	}
	average := total / float64(len(g.Relationships))

	bonus := math.Min(1.0, float64(len(g.Relationships))/20.0)
	return math.Min(1.0, average*(1.0+bonus))
}

// Conflict flags a contradictory bond toward one partner.
type Conflict struct {
	Partner     string `json:"partner"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// Conflicts detects contradictory bonds: fearing a dependency, loving
// without trust, respecting someone feared.
func (g *Graph) Conflicts() []Conflict {
	var conflicts []Conflict
	for _, id := range g.Partners() {
		d := g.Relationships[id]
		if d.Fear > 0.6 && d.Dependency > 0.6 {
			conflicts = append(conflicts, Conflict{id, "fear_dependency", "Fears someone they depend on"})
		}
		if d.Affection > 0.7 && d.Trust < 0.3 {
			conflicts = append(conflicts, Conflict{id, "love_distrust", "Loves someone they don't trust"})
		}
		if d.Respect > 0.7 && d.Fear > 0.6 {
			conflicts = append(conflicts, Conflict{id, "respect_fear", "Respects someone they fear"})
		}
	}
	return conflicts
}

// SentimentBuckets counts partners by sentiment: positive above 0.2,
// negative below -0.2, neutral between.
type SentimentBuckets struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Summary aggregates the graph for analysis output.
type Summary struct {
	TotalRelationships int                 `json:"total_relationships"`
	SocialIsolation    float64             `json:"social_isolation"`
	SocialInfluence    float64             `json:"social_influence"`
	Distribution       map[string][]string `json:"relationship_distribution"`
	Closest            []PartnerRank       `json:"closest_relationships,omitempty"`
	MostInfluential    []PartnerRank       `json:"most_influential,omitempty"`
	Sentiment          SentimentBuckets    `json:"sentiment_distribution"`
	Conflicts          []Conflict          `json:"conflicts,omitempty"`
	TrustNetworkSize   int                 `json:"trust_network_size"`
	FearTargets        int                 `json:"fear_targets"`
}

// Summarize builds a comprehensive relationship summary.
func (g *Graph) Summarize() Summary {
	if len(g.Relationships) == 0 {
		return Summary{
			SocialIsolation: 1.0,
			Distribution:    map[string][]string{},
		}
	}

	var buckets SentimentBuckets
	for _, d := range g.Relationships {
		s := d.Sentiment()
		switch {
		case s > 0.2:
			buckets.Positive++
		case s < -0.2:
			buckets.Negative++
		default:
			buckets.Neutral++
		}
	}

	return Summary{
		TotalRelationships: len(g.Relationships),
		SocialIsolation:    g.SocialIsolation(),
		SocialInfluence:    g.SocialInfluence(),
		Distribution:       g.ByType(),
		Closest:            g.Closest(3),
		MostInfluential:    g.MostInfluential(3),
		Sentiment:          buckets,
		Conflicts:          g.Conflicts(),
		TrustNetworkSize:   len(g.Trusted()),
		FearTargets:        len(g.Feared()),
	}
}

// ApplyDailyDrift moderates extreme bond values toward neutral over time.
// Fear fades fastest; entrenched trust and distrust both soften; extreme
// dependency slowly gives way to independence.
func (g *Graph) ApplyDailyDrift(partner string, daysPassed int) {
	d := g.GetOrCreate(partner)
	decay := 0.01 * float64(daysPassed)

	if d.Trust > 0.7 {
		_ = d.Update(Trust, -decay*0.5, "time_decay", true)
	} else if d.Trust < 0.3 {
		_ = d.Update(Trust, decay*0.3, "time_healing", true)
	}

	if d.Fear > 0.1 {
		_ = d.Update(Fear, -decay*2.0, "fear_decay", true)
	}

	if d.Dependency > 0.8 {
		_ = d.Update(Dependency, -decay*0.3, "independence_growth", true)
	}
}
