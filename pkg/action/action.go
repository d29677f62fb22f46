// Package action defines the closed action taxonomy consumed by the
// character core: per-action metadata, experience mappings, and the
// routing from actions to relationship events. The tables are static and
// never mutated at runtime.
package action

// Type identifies an action a character can attempt. The outer simulation
// loop decides which action runs and whether it succeeds; this core only
// consumes the outcome.
type Type string

const (
	// Resource actions
	GatherFood      Type = "gather_food"
	GatherMaterials Type = "gather_materials"
	CraftTools      Type = "craft_tools"
	BuildShelter    Type = "build_shelter"

	// Social actions
	HelpNPC           Type = "help_random_npc"
	ShareResources    Type = "share_resources"
	StartConversation Type = "start_conversation"
	FormAlliance      Type = "form_alliance"

	// Governance actions
	VoteOnProposal      Type = "vote_on_proposal"
	ProposeNewRule      Type = "propose_new_rule"
	ChallengeLeadership Type = "challenge_leadership"
	SupportLeader       Type = "support_leader"

	// Personal actions
	Rest           Type = "rest"
	PracticeSkills Type = "practice_skills"
	ObserveOthers  Type = "observe_others"
	DoNothing      Type = "do_nothing"
)

// Metadata describes the fixed mechanical properties of an action.
type Metadata struct {
	EnergyCost      float64 `json:"energy_cost"` // negative restores energy
	BaseSuccessRate float64 `json:"base_success_rate"`
	Category        string  `json:"category"`
}

var metadata = map[Type]Metadata{
	GatherFood:      {EnergyCost: 0.3, BaseSuccessRate: 0.7, Category: "resource"},
	GatherMaterials: {EnergyCost: 0.4, BaseSuccessRate: 0.8, Category: "resource"},
	CraftTools:      {EnergyCost: 0.2, BaseSuccessRate: 0.6, Category: "resource"},
	BuildShelter:    {EnergyCost: 0.5, BaseSuccessRate: 0.5, Category: "resource"},

	HelpNPC:           {EnergyCost: 0.2, BaseSuccessRate: 0.8, Category: "social"},
	ShareResources:    {EnergyCost: 0.1, BaseSuccessRate: 0.9, Category: "social"},
	StartConversation: {EnergyCost: 0.1, BaseSuccessRate: 0.7, Category: "social"},
	FormAlliance:      {EnergyCost: 0.1, BaseSuccessRate: 0.4, Category: "social"},

	VoteOnProposal:      {EnergyCost: 0.05, BaseSuccessRate: 0.9, Category: "governance"},
	ProposeNewRule:      {EnergyCost: 0.15, BaseSuccessRate: 0.3, Category: "governance"},
	ChallengeLeadership: {EnergyCost: 0.3, BaseSuccessRate: 0.2, Category: "governance"},
	SupportLeader:       {EnergyCost: 0.1, BaseSuccessRate: 0.8, Category: "governance"},

	Rest:           {EnergyCost: -0.4, BaseSuccessRate: 0.95, Category: "personal"},
	PracticeSkills: {EnergyCost: 0.2, BaseSuccessRate: 0.9, Category: "personal"},
	ObserveOthers:  {EnergyCost: 0.05, BaseSuccessRate: 0.8, Category: "personal"},
	DoNothing:      {EnergyCost: 0.0, BaseSuccessRate: 1.0, Category: "personal"},
}

// defaultMetadata covers actions the table does not know about.
var defaultMetadata = Metadata{EnergyCost: 0.1, BaseSuccessRate: 0.5, Category: "unknown"}

// GetMetadata returns the metadata for an action, falling back to defaults
// for unknown action types.
func GetMetadata(t Type) Metadata {
	if m, ok := metadata[t]; ok {
		return m
	}
	return defaultMetadata
}

// ByCategory returns all known actions in the given category.
func ByCategory(category string) []Type {
	var actions []Type
	for _, t := range All() {
		if metadata[t].Category == category {
			actions = append(actions, t)
		}
	}
	return actions
}

// All returns every known action in declaration order.
func All() []Type {
	return []Type{
		GatherFood, GatherMaterials, CraftTools, BuildShelter,
		HelpNPC, ShareResources, StartConversation, FormAlliance,
		VoteOnProposal, ProposeNewRule, ChallengeLeadership, SupportLeader,
		Rest, PracticeSkills, ObserveOthers, DoNothing,
	}
}
