// Command simulate runs a headless multi-day settlement simulation and
// persists every character through the configured storage backend. It is
// the reference control loop for the character core: it picks actions,
// rolls outcomes, routes them through the characters, and advances days.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/villagesim/npc-engine/internal/config"
	"github.com/villagesim/npc-engine/internal/logger"
	"github.com/villagesim/npc-engine/internal/storage"
	"github.com/villagesim/npc-engine/pkg/action"
	"github.com/villagesim/npc-engine/pkg/experience"
	"github.com/villagesim/npc-engine/pkg/npc"
	"github.com/villagesim/npc-engine/pkg/personality"
	"github.com/villagesim/npc-engine/pkg/trauma"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logr := logger.Setup(cfg)
	logr.Info("Starting settlement simulation",
		"environment", cfg.Environment,
		"days", cfg.SimulationDays,
		"settlers", cfg.SettlementSize,
		"backend", cfg.StorageBackend)

	store, err := storage.Open(cfg, logr)
	if err != nil {
		logr.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logr.Error("Error closing storage", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		logr.Error("Storage not reachable", "error", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	settlement, err := buildSettlement(cfg.SettlementSize, rng)
	if err != nil {
		logr.Error("Failed to create settlement", "error", err)
		os.Exit(1)
	}
	for _, c := range settlement {
		logr.Info("Settler created",
			"id", c.ID,
			"name", c.Name,
			"age", c.Age,
			"personality", c.Personality.Summary())
	}

	sim := &simulation{
		characters: settlement,
		rng:        rng,
		logger:     logr,
	}

	for day := 1; day <= cfg.SimulationDays; day++ {
		sim.runDay(day)

		for _, c := range settlement {
			if err := store.SaveCharacter(ctx, c); err != nil {
				logr.Error("Failed to save character", "id", c.ID, "error", err)
				os.Exit(1)
			}
		}
	}

	for _, c := range settlement {
		s := c.Summarize()
		logr.Info("Final state",
			"name", s.Name,
			"condition", s.PhysicalCondition,
			"top_skill", topSkillLabel(s),
			"traumas", s.TraumaCount,
			"healing_progress", fmt.Sprintf("%.2f", s.HealingProgress),
			"relationships", s.TotalRelationships,
			"isolation", fmt.Sprintf("%.2f", s.SocialIsolation))
	}
	logr.Info("Simulation complete", "days", cfg.SimulationDays)
}

// buildSettlement creates one character per archetype, then fills the rest
// with random villagers.
func buildSettlement(size int, rng *rand.Rand) ([]*npc.Character, error) {
	archetypes := personality.Archetypes()
	characters := make([]*npc.Character, 0, size)

	for i := 0; i < size; i++ {
		var (
			c   *npc.Character
			err error
		)
		if i < len(archetypes) {
			id := fmt.Sprintf("settler_%d", i+1)
			c, err = npc.NewWithArchetype(id, archetypes[i], "", 20+rng.Intn(30), rng)
		} else {
			c, err = npc.NewRandom(fmt.Sprintf("Villager %d", i+1), 18, 60, rng)
		}
		if err != nil {
			return nil, err
		}
		characters = append(characters, c)
	}
	return characters, nil
}

type simulation struct {
	characters []*npc.Character
	rng        *rand.Rand
	logger     *slog.Logger
}

// runDay gives every character one action, a chance at an interaction, and
// a day tick with personality-flavored healing activities.
func (s *simulation) runDay(day int) {
	for _, c := range s.characters {
		a := s.chooseAction(c)
		meta := action.GetMetadata(a)

		_, level := experience.MostRelevantCategory(a, c.Experience)
		success := s.rng.Float64() < experience.SuccessProbability(meta.BaseSuccessRate, level)

		outcome := s.rollOutcome(c, a, success)
		c.PerformAction(a, success, outcome)

		s.logger.Debug("Action performed",
			"day", day, "name", c.Name, "action", string(a), "success", success)

		if s.rng.Float64() < 0.3 {
			s.runInteraction(c, day)
		}

		c.AdvanceDay(s.dayActivities(c))
	}
}

// chooseAction picks the day's action: urgent needs first, then a weighted
// draw over the taxonomy flavored by personality.
func (s *simulation) chooseAction(c *npc.Character) action.Type {
	for _, need := range c.UrgentNeeds() {
		switch need {
		case "food":
			return action.GatherFood
		case "rest":
			return action.Rest
		}
	}

	candidates := []action.Type{
		action.GatherFood, action.GatherMaterials, action.CraftTools,
		action.StartConversation, action.HelpNPC, action.PracticeSkills,
		action.ObserveOthers,
	}
	if c.Personality.Sociability > 0.6 {
		candidates = append(candidates, action.ShareResources, action.FormAlliance)
	}
	if c.Personality.Ambition > 0.6 {
		candidates = append(candidates, action.ProposeNewRule, action.SupportLeader)
	}
	if c.Personality.Laziness > 0.7 {
		candidates = append(candidates, action.DoNothing, action.Rest)
	}
	return candidates[s.rng.Intn(len(candidates))]
}

// rollOutcome fabricates the external consequences of the chosen action.
func (s *simulation) rollOutcome(c *npc.Character, a action.Type, success bool) *npc.Outcome {
	outcome := &npc.Outcome{}

	if meta := action.GetMetadata(a); meta.Category == "social" {
		if partner := s.randomPartner(c); partner != "" {
			outcome.TargetNPC = partner
		}
	}
	if a == action.GatherFood && success {
		outcome.FoodGained = 0.1 + s.rng.Float64()*0.3
	}
	// Risky work occasionally wounds.
	if !success && (a == action.GatherMaterials || a == action.ChallengeLeadership) && s.rng.Float64() < 0.1 {
		outcome.Traumatic = &npc.TraumaEvent{
			Type:   trauma.Violence,
			Impact: 0.3 + s.rng.Float64()*0.4,
		}
	}
	return outcome
}

func (s *simulation) runInteraction(c *npc.Character, day int) {
	partner := s.randomPartner(c)
	if partner == "" {
		return
	}

	interactions := []npc.InteractionType{
		npc.CasualConversation, npc.CasualConversation, npc.CasualConversation,
		npc.HelpRequest, npc.ResourceSharing, npc.Conflict,
	}
	interaction := interactions[s.rng.Intn(len(interactions))]
	success := s.rng.Float64() < 0.7

	result, err := c.InteractWithNPC(partner, interaction, success)
	if err != nil {
		return
	}
	s.logger.Debug("Interaction",
		"day", day, "name", c.Name, "partner", partner,
		"type", string(interaction), "relationship", result.NewType)
}

func (s *simulation) randomPartner(c *npc.Character) string {
	if len(s.characters) < 2 {
		return ""
	}
	for {
		other := s.characters[s.rng.Intn(len(s.characters))]
		if other.ID != c.ID {
			return other.ID
		}
	}
}

// dayActivities picks evening activities by temperament. Social characters
// seek company; analytical ones sit with their thoughts.
func (s *simulation) dayActivities(c *npc.Character) []trauma.Activity {
	if len(c.Trauma.Memories) == 0 || s.rng.Float64() < 0.4 {
		return nil
	}
	if c.Personality.Sociability > 0.6 {
		return []trauma.Activity{trauma.Socializing}
	}
	if c.Personality.Analytical > 0.6 {
		return []trauma.Activity{trauma.Meditation}
	}
	return []trauma.Activity{trauma.CraftingActivity}
}

func topSkillLabel(s npc.Summary) string {
	if len(s.TopSkills) == 0 {
		return "none"
	}
	top := s.TopSkills[0]
	return fmt.Sprintf("%s (%s)", npc.DisplayLabel(string(top.Category)), top.Tier)
}
