package trauma

// Activity names a healing activity a character can engage in.
type Activity string

const (
	Prayer           Activity = "prayer"
	Meditation       Activity = "meditation"
	Socializing      Activity = "socializing"
	HelpingOthers    Activity = "helping_others"
	CraftingActivity Activity = "crafting"
	Storytelling     Activity = "storytelling"
	PhysicalExercise Activity = "physical_exercise"
)

// HealingActivities lists every recognized healing activity.
var HealingActivities = []Activity{
	Prayer, Meditation, Socializing, HelpingOthers,
	CraftingActivity, Storytelling, PhysicalExercise,
}

type activityConfig struct {
	effectiveTypes []EventType
	wildcard       bool // effective against every trauma type
	effectiveness  float64
}

func (c activityConfig) matches(t EventType) bool {
	if c.wildcard {
		return true
	}
	for _, et := range c.effectiveTypes {
		if et == t {
			return true
		}
	}
	return false
}

// activityEffectiveness maps activities to the trauma types they target
// and their base effectiveness. Storytelling helps process everything.
var activityEffectiveness = map[Activity]activityConfig{
	Prayer: {
		effectiveTypes: []EventType{"guilt", "loss_of_purpose", "moral_failure"},
		effectiveness:  0.8,
	},
	Meditation: {
		effectiveTypes: []EventType{"anxiety", LeadershipFailure, SocialRejection},
		effectiveness:  0.9,
	},
	Socializing: {
		effectiveTypes: []EventType{SocialRejection, "isolation", Betrayal},
		effectiveness:  0.7,
	},
	HelpingOthers: {
		effectiveTypes: []EventType{"guilt", "selfishness", LeadershipFailure},
		effectiveness:  0.8,
	},
	CraftingActivity: {
		effectiveTypes: []EventType{"depression", "purposelessness", ResourceLoss},
		effectiveness:  0.6,
	},
	Storytelling: {
		wildcard:      true,
		effectiveness: 1.0,
	},
	PhysicalExercise: {
		effectiveTypes: []EventType{"anxiety", "depression", Violence},
		effectiveness:  0.7,
	},
}

// counterExperiences maps trauma types to the positive event names that
// heal them.
var counterExperiences = map[EventType][]string{
	Betrayal:          {"trust_restoration", "loyalty_demonstrated"},
	LeadershipFailure: {"leadership_success", "recognition"},
	SocialRejection:   {"social_acceptance", "friendship_formed"},
	ResourceLoss:      {"resource_security", "abundance_experienced"},
	Violence:          {"safety_provided", "protection_received"},
	Abandonment:       {"loyalty_shown", "commitment_demonstrated"},
}

// Influence names a behavioral influence derived from active trauma.
type Influence string

const (
	TrustIssues         Influence = "trust_issues"
	SocialWithdrawal    Influence = "social_withdrawal"
	LeadershipAvoidance Influence = "leadership_avoidance"
	ResourceHoarding    Influence = "resource_hoarding"
	ConflictAvoidance   Influence = "conflict_avoidance"
	RiskAversion        Influence = "risk_aversion"
)

// behaviorWeights maps trauma types to weighted behavioral influences.
var behaviorWeights = map[EventType]map[Influence]float64{
	Betrayal:          {TrustIssues: 0.8, SocialWithdrawal: 0.4},
	LeadershipFailure: {LeadershipAvoidance: 0.9, SocialWithdrawal: 0.3},
	SocialRejection:   {SocialWithdrawal: 0.8, TrustIssues: 0.3},
	ResourceLoss:      {ResourceHoarding: 0.7, RiskAversion: 0.5},
	Violence:          {ConflictAvoidance: 0.9, RiskAversion: 0.6},
	Abandonment:       {TrustIssues: 0.6, SocialWithdrawal: 0.5},
}
