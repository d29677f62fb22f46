package experience

import "github.com/villagesim/npc-engine/pkg/action"

// actionExperience maps each action to the base experience amounts it
// grants per category. Loaded once; never mutated.
var actionExperience = map[action.Type]map[Category]float64{
	// Resource actions
	action.GatherFood: {
		Survival:           0.02,
		ResourceManagement: 0.015,
	},
	action.GatherMaterials: {
		Survival:           0.01,
		ResourceManagement: 0.025,
	},
	action.CraftTools: {
		Crafting:           0.03,
		ResourceManagement: 0.01,
	},
	action.BuildShelter: {
		Crafting:           0.025,
		Survival:           0.015,
		ResourceManagement: 0.01,
	},

	// Social actions
	action.HelpNPC: {
		SocialManipulation: 0.01,
		Negotiation:        0.01,
		Leadership:         0.005,
	},
	action.ShareResources: {
		Negotiation:        0.01,
		Leadership:         0.005,
		ResourceManagement: 0.005,
	},
	action.StartConversation: {
		SocialManipulation: 0.015,
		Negotiation:        0.01,
	},
	action.FormAlliance: {
		Negotiation:        0.025,
		SocialManipulation: 0.015,
		Leadership:         0.015,
	},

	// Governance actions
	action.VoteOnProposal: {
		Leadership: 0.005,
	},
	action.ProposeNewRule: {
		Leadership:  0.03,
		Negotiation: 0.015,
	},
	action.ChallengeLeadership: {
		Leadership:         0.04,
		Combat:             0.01,
		SocialManipulation: 0.01,
	},
	action.SupportLeader: {
		Leadership:  0.01,
		Negotiation: 0.005,
	},

	// Personal actions
	action.PracticeSkills: {
		Leadership: 0.01,
		Crafting:   0.01,
		Survival:   0.01,
	},
	action.ObserveOthers: {
		SocialManipulation: 0.02,
		Leadership:         0.005,
	},
}
