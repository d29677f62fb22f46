package npc

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/villagesim/npc-engine/pkg/action"
	"github.com/villagesim/npc-engine/pkg/experience"
	"github.com/villagesim/npc-engine/pkg/personality"
	"github.com/villagesim/npc-engine/pkg/trauma"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New("villager_1")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if c.Name != "NPC_villager_1" {
		t.Errorf("Expected generated name, got %q", c.Name)
	}
	if c.Age != DefaultAge || c.Health != DefaultHealth || c.Hunger != DefaultHunger || c.Energy != DefaultEnergy {
		t.Errorf("Unexpected defaults: age %d health %g hunger %g energy %g", c.Age, c.Health, c.Hunger, c.Energy)
	}
	if c.Experience == nil || c.Trauma == nil || c.Relationships == nil {
		t.Error("Expected subsystems initialized")
	}
	if c.Personality.Greed != 0.5 {
		t.Errorf("Expected neutral personality, got greed %g", c.Personality.Greed)
	}
}

func TestNewWithArchetype(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c, err := NewWithArchetype("s1", "traumatized_survivor", "Wren", 40, rng)
	if err != nil {
		t.Fatalf("NewWithArchetype failed: %v", err)
	}
	if c.Name != "Wren" {
		t.Errorf("Expected explicit name kept, got %q", c.Name)
	}
	if c.Personality.Greed != 0.7 {
		t.Errorf("Expected survivor greed 0.7, got %g", c.Personality.Greed)
	}
	if c.Experience.Survival <= 0 {
		t.Error("Expected seeded survival experience")
	}

	if _, err := NewWithArchetype("s2", "chaos_gremlin", "", 40, rng); err == nil {
		t.Error("Expected error for unknown archetype")
	}
}

func TestNewRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	c, err := NewRandom("Ivo", 20, 60, rng)
	if err != nil {
		t.Fatalf("NewRandom failed: %v", err)
	}
	if c.ID == "" {
		t.Error("Expected generated id")
	}
	if c.Age < 20 || c.Age > 60 {
		t.Errorf("Age out of range: %d", c.Age)
	}
	if c.Health < 0.6 || c.Health > 1.0 {
		t.Errorf("Health out of range: %g", c.Health)
	}
	if err := c.Personality.Validate(); err != nil {
		t.Errorf("Random personality out of bounds: %v", err)
	}
	// Backstory trauma, when present, must already be partially healed.
	for _, m := range c.Trauma.Memories {
		if m.CurrentImpact > m.OriginalImpact {
			t.Errorf("Backstory trauma impact rose: %g > %g", m.CurrentImpact, m.OriginalImpact)
		}
	}
}

func TestUpdateVitals_Clamped(t *testing.T) {
	c, _ := New("v")
	c.UpdateVitals(10, -10, 10)
	if c.Health != 1.0 || c.Hunger != 0.0 || c.Energy != 1.0 {
		t.Errorf("Expected clamped vitals, got %g/%g/%g", c.Health, c.Hunger, c.Energy)
	}
}

func TestPhysicalCondition(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*Character)
		expected string
	}{
		{name: "default healthy", modify: func(c *Character) {}, expected: "healthy"},
		{name: "critical health wins", modify: func(c *Character) { c.Health = 0.1; c.Hunger = 0.9 }, expected: "critically injured"},
		{name: "injured", modify: func(c *Character) { c.Health = 0.4 }, expected: "injured"},
		{name: "starving", modify: func(c *Character) { c.Hunger = 0.9 }, expected: "starving"},
		{name: "very hungry", modify: func(c *Character) { c.Hunger = 0.7 }, expected: "very hungry"},
		{name: "exhausted", modify: func(c *Character) { c.Energy = 0.1 }, expected: "exhausted"},
		{name: "tired", modify: func(c *Character) { c.Energy = 0.3 }, expected: "tired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := New("v")
			tt.modify(c)
			if got := c.PhysicalCondition(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUrgentNeeds(t *testing.T) {
	c, _ := New("v")
	if needs := c.UrgentNeeds(); len(needs) != 0 {
		t.Errorf("Expected no urgent needs at defaults, got %v", needs)
	}
	c.Health = 0.2
	c.Hunger = 0.8
	c.Energy = 0.1
	needs := c.UrgentNeeds()
	if len(needs) != 3 {
		t.Fatalf("Expected 3 urgent needs, got %v", needs)
	}
}

func TestPerformAction_GatherFoodSuccess(t *testing.T) {
	c, _ := New("v")
	results := c.PerformAction(action.GatherFood, true, &Outcome{FoodGained: 0.3})

	if c.LastAction != "gather_food" {
		t.Errorf("Expected last action recorded, got %q", c.LastAction)
	}
	if c.LastActionSuccess == nil || !*c.LastActionSuccess {
		t.Error("Expected last action success true")
	}
	// Energy drops by the action cost, hunger by food gained.
	if math.Abs(c.Energy-(DefaultEnergy-0.3)) > 1e-9 {
		t.Errorf("Expected energy %g, got %g", DefaultEnergy-0.3, c.Energy)
	}
	if math.Abs(c.Hunger-(DefaultHunger-0.3)) > 1e-9 {
		t.Errorf("Expected hunger %g, got %g", DefaultHunger-0.3, c.Hunger)
	}
	if c.Experience.Survival <= 0 || c.Experience.ResourceManagement <= 0 {
		t.Error("Expected survival and resource management gains")
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 category results, got %v", results)
	}
}

func TestPerformAction_FailureStillTeaches(t *testing.T) {
	c, _ := New("v")
	c.PerformAction(action.GatherFood, false, nil)

	if c.Experience.Survival <= 0 {
		t.Error("Expected reduced gain on failure, not zero")
	}
	if c.Hunger != DefaultHunger {
		t.Errorf("Expected no food on failure, hunger %g", c.Hunger)
	}
}

func TestPerformAction_RestRestores(t *testing.T) {
	c, _ := New("v")
	c.Energy = 0.2
	c.Health = 0.5
	c.PerformAction(action.Rest, true, nil)

	// Rest has negative energy cost plus the success restore.
	if c.Energy <= 0.2 {
		t.Errorf("Expected energy restored, got %g", c.Energy)
	}
	if math.Abs(c.Health-0.6) > 1e-9 {
		t.Errorf("Expected health 0.6 after rest, got %g", c.Health)
	}
}

func TestPerformAction_SocialTarget(t *testing.T) {
	c, _ := New("v")
	c.PerformAction(action.HelpNPC, true, &Outcome{TargetNPC: "marta"})

	d := c.Relationships.GetOrCreate("marta")
	if d.Trust <= 0.5 {
		t.Errorf("Expected trust to rise after helping, got %g", d.Trust)
	}

	// Failed help leaves the relationship untouched.
	c2, _ := New("v2")
	c2.PerformAction(action.HelpNPC, false, &Outcome{TargetNPC: "marta"})
	if d2 := c2.Relationships.GetOrCreate("marta"); d2.Trust != 0.5 {
		t.Errorf("Expected no change on failed help, got %g", d2.Trust)
	}
}

func TestPerformAction_TraumaticOutcome(t *testing.T) {
	c, _ := New("v")
	c.PerformAction(action.GatherMaterials, false, &Outcome{
		Traumatic: &TraumaEvent{Type: trauma.Violence, Impact: 0.7, Related: []string{"raider"}},
	})

	if len(c.Trauma.Memories) != 1 {
		t.Fatalf("Expected 1 trauma memory, got %d", len(c.Trauma.Memories))
	}
	m := c.Trauma.Memories[0]
	if m.EventType != trauma.Violence || m.OriginalImpact != 0.7 {
		t.Errorf("Unexpected memory: %+v", m)
	}
	if m.AgeWhenOccurred != c.Age {
		t.Errorf("Expected trauma at current age %d, got %d", c.Age, m.AgeWhenOccurred)
	}
}

func TestPerformAction_TraumaDefaults(t *testing.T) {
	c, _ := New("v")
	c.PerformAction(action.DoNothing, true, &Outcome{Traumatic: &TraumaEvent{}})

	m := c.Trauma.Memories[0]
	if m.EventType != "generic" || m.OriginalImpact != 0.5 {
		t.Errorf("Expected generic 0.5 defaults, got %+v", m)
	}
}

func TestInteractWithNPC(t *testing.T) {
	c, _ := New("v")
	result, err := c.InteractWithNPC("joren", HelpRequest, true)
	if err != nil {
		t.Fatalf("InteractWithNPC failed: %v", err)
	}
	if result.NewType == "" {
		t.Error("Expected relationship type in result")
	}
	d := c.Relationships.GetOrCreate("joren")
	if d.Trust <= 0.5 || d.Dependency <= 0 {
		t.Errorf("Expected trust and dependency to rise: %+v", d)
	}
}

func TestInteractWithNPC_UnknownTypeNoMutation(t *testing.T) {
	c, _ := New("v")
	_, err := c.InteractWithNPC("joren", "arm_wrestling", true)
	if err == nil {
		t.Fatal("Expected error for unknown interaction type")
	}
	if len(c.Relationships.Partners()) != 0 {
		t.Error("Rejected interaction created a relationship entry")
	}
	if len(c.Trauma.Memories) != 0 {
		t.Error("Rejected interaction recorded trauma")
	}
}

func TestInteractWithNPC_BetrayalWounds(t *testing.T) {
	c, _ := New("v")
	if _, err := c.InteractWithNPC("aldric", Betrayal, true); err != nil {
		t.Fatalf("InteractWithNPC failed: %v", err)
	}

	d := c.Relationships.GetOrCreate("aldric")
	if d.Trust >= 0.5 {
		t.Errorf("Expected trust to collapse, got %g", d.Trust)
	}
	if len(c.Trauma.Memories) != 1 {
		t.Fatalf("Expected betrayal trauma, got %d memories", len(c.Trauma.Memories))
	}
	m := c.Trauma.Memories[0]
	if m.EventType != trauma.Betrayal {
		t.Errorf("Expected betrayal type, got %s", m.EventType)
	}
	if len(m.RelatedPartners) != 1 || m.RelatedPartners[0] != "aldric" {
		t.Errorf("Expected partner named in trauma, got %v", m.RelatedPartners)
	}

	// Failed betrayal applies no table entry and no wound.
	c2, _ := New("v2")
	if _, err := c2.InteractWithNPC("aldric", Betrayal, false); err != nil {
		t.Fatalf("InteractWithNPC failed: %v", err)
	}
	if len(c2.Trauma.Memories) != 0 {
		t.Error("Expected no trauma from failed betrayal")
	}
}

func TestAdvanceDay(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c, _ := New("v")
	c.WithRand(rng)
	c.Trauma.Add(trauma.Betrayal, 0.5, 25, "", nil)
	before := c.Trauma.Memories[0].CurrentImpact

	c.AdvanceDay(nil)

	if c.DaysAlive != 1 {
		t.Errorf("Expected 1 day alive, got %d", c.DaysAlive)
	}
	if c.Hunger <= DefaultHunger {
		t.Errorf("Expected hunger to rise, got %g", c.Hunger)
	}
	if c.Trauma.Memories[0].CurrentImpact >= before {
		t.Error("Expected natural healing to reduce trauma")
	}
}

func TestAdvanceDay_HealingActivities(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	plain, _ := New("a")
	plain.WithRand(rand.New(rand.NewSource(3)))
	plain.Trauma.Add(trauma.SocialRejection, 0.6, 25, "", nil)

	withActivity, _ := New("b")
	withActivity.WithRand(rng)
	withActivity.Trauma.Add(trauma.SocialRejection, 0.6, 25, "", nil)

	plain.AdvanceDay(nil)
	withActivity.AdvanceDay([]trauma.Activity{trauma.Socializing})

	if withActivity.Trauma.Memories[0].CurrentImpact >= plain.Trauma.Memories[0].CurrentImpact {
		t.Errorf("Expected activity day to heal more: %g vs %g",
			withActivity.Trauma.Memories[0].CurrentImpact, plain.Trauma.Memories[0].CurrentImpact)
	}
}

func TestAdvanceDay_YearlyAging(t *testing.T) {
	c, _ := New("v")
	c.WithRand(rand.New(rand.NewSource(9)))
	startAge := c.Age

	for i := 0; i < 365; i++ {
		c.AdvanceDay(nil)
		// Keep vitals from mattering; aging is driven by day count alone.
		c.Health, c.Hunger, c.Energy = 0.8, 0.5, 0.7
	}

	if c.Age != startAge+1 {
		t.Errorf("Expected age %d after 365 days, got %d", startAge+1, c.Age)
	}
}

func TestGetDecisionContext(t *testing.T) {
	c, _ := New("v")
	c.Hunger = 0.9
	c.Trauma.Add(trauma.Betrayal, 0.5, 25, "", nil)
	c.Relationships.GetOrCreate("friend").Trust = 0.9

	ctx := c.GetDecisionContext()
	if len(ctx.UrgentNeeds) != 1 || ctx.UrgentNeeds[0] != "food" {
		t.Errorf("Expected food urgent, got %v", ctx.UrgentNeeds)
	}
	if ctx.ActiveTraumas[trauma.Betrayal] != 0.5 {
		t.Errorf("Expected active betrayal 0.5, got %v", ctx.ActiveTraumas)
	}
	if ctx.TraumaInfluences[trauma.TrustIssues] <= 0 {
		t.Error("Expected trust issues influence")
	}
	if len(ctx.TrustedPartners) != 1 {
		t.Errorf("Expected 1 trusted partner, got %v", ctx.TrustedPartners)
	}
	if len(ctx.PersonalityTraits) != len(personality.AllTraits) {
		t.Errorf("Expected all traits present, got %d", len(ctx.PersonalityTraits))
	}
	if len(ctx.ExperienceLevels) != len(experience.AllCategories) {
		t.Errorf("Expected all categories present, got %d", len(ctx.ExperienceLevels))
	}
}

func TestSummarize(t *testing.T) {
	c, _ := New("v")
	c.PerformAction(action.GatherFood, true, nil)
	c.Trauma.Add(trauma.Violence, 0.9, 25, "raid", nil)

	s := c.Summarize()
	if s.ID != "v" {
		t.Errorf("Expected id v, got %q", s.ID)
	}
	if s.LastAction != "gather_food" {
		t.Errorf("Expected last action, got %q", s.LastAction)
	}
	if s.TraumaCount != 1 || s.MostSevereTrauma == nil {
		t.Errorf("Expected trauma in summary: %+v", s)
	}
	if s.TotalExperience <= 0 {
		t.Error("Expected experience total above zero")
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"resource_management", "Resource Management"},
		{"gather_food", "Gather Food"},
		{"trust", "Trust"},
	}
	for _, tt := range tests {
		if got := DisplayLabel(tt.in); got != tt.expected {
			t.Errorf("DisplayLabel(%q): expected %q, got %q", tt.in, tt.expected, got)
		}
	}
}

func TestCharacter_JSONRoundTrip(t *testing.T) {
	c, _ := NewWithArchetype("rt", "greedy_loner", "Sable", 35, rand.New(rand.NewSource(5)))
	c.PerformAction(action.GatherFood, true, &Outcome{FoodGained: 0.2})
	if _, err := c.InteractWithNPC("marta", CasualConversation, true); err != nil {
		t.Fatalf("InteractWithNPC failed: %v", err)
	}
	c.AdvanceDay([]trauma.Activity{trauma.Storytelling})

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var restored Character
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if restored.ID != c.ID || restored.Name != c.Name || restored.Age != c.Age {
		t.Errorf("Identity mismatch: %+v", restored)
	}
	if restored.Personality != c.Personality {
		t.Errorf("Personality mismatch")
	}
	if restored.Experience.Survival != c.Experience.Survival {
		t.Errorf("Experience mismatch: %g vs %g", restored.Experience.Survival, c.Experience.Survival)
	}
	if len(restored.Trauma.Memories) != len(c.Trauma.Memories) {
		t.Errorf("Trauma count mismatch: %d vs %d", len(restored.Trauma.Memories), len(c.Trauma.Memories))
	}
	if len(restored.Relationships.Partners()) != len(c.Relationships.Partners()) {
		t.Errorf("Partner count mismatch")
	}
	if restored.DaysAlive != c.DaysAlive {
		t.Errorf("Days alive mismatch: %d vs %d", restored.DaysAlive, c.DaysAlive)
	}
}

func TestCharacter_UnmarshalJSON_Lenient(t *testing.T) {
	var c Character
	if err := json.Unmarshal([]byte(`{"npc_id": "old_save"}`), &c); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if c.Name != "NPC_old_save" {
		t.Errorf("Expected derived name, got %q", c.Name)
	}
	if c.Age != DefaultAge || c.Health != DefaultHealth || c.Hunger != DefaultHunger || c.Energy != DefaultEnergy {
		t.Errorf("Expected default vitals: %+v", c)
	}
	if c.Experience == nil || c.Trauma == nil || c.Relationships == nil {
		t.Error("Expected subsystems initialized")
	}
	if c.Trauma.NaturalHealingRate != trauma.DefaultNaturalHealingRate {
		t.Errorf("Expected default healing rate, got %g", c.Trauma.NaturalHealingRate)
	}
	if c.CreatedAt.IsZero() {
		t.Error("Expected timestamp backfilled")
	}

	// A partial save keeps what it has.
	var c2 Character
	if err := json.Unmarshal([]byte(`{"npc_id": "x", "age": 61, "health": 0.25, "personality": {"greed": 0.9}}`), &c2); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if c2.Age != 61 || c2.Health != 0.25 {
		t.Errorf("Expected explicit vitals kept: %+v", c2)
	}
	if c2.Personality.Greed != 0.9 || c2.Personality.Courage != 0.5 {
		t.Errorf("Expected lenient personality defaults: %+v", c2.Personality)
	}
}
