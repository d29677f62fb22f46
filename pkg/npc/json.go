package npc

import (
	"encoding/json"
	"time"

	"github.com/villagesim/npc-engine/pkg/experience"
	"github.com/villagesim/npc-engine/pkg/personality"
	"github.com/villagesim/npc-engine/pkg/relationship"
	"github.com/villagesim/npc-engine/pkg/trauma"
)

// UnmarshalJSON reconstructs a character leniently. Missing fields take
// the creation defaults: age 25, health 0.8, hunger 0.5, energy 0.7,
// neutral personality, empty subsystems, timestamp now.
func (c *Character) UnmarshalJSON(data []byte) error {
	aux := struct {
		ID                string              `json:"npc_id"`
		Name              string              `json:"name"`
		Age               *int                `json:"age"`
		Health            *float64            `json:"health"`
		Hunger            *float64            `json:"hunger_level"`
		Energy            *float64            `json:"energy_level"`
		Personality       *personality.Traits `json:"personality"`
		Experience        *experience.Tracker `json:"experience"`
		Trauma            *trauma.Ledger      `json:"trauma"`
		Relationships     *relationship.Graph `json:"relationships"`
		LastAction        string              `json:"last_action"`
		LastActionSuccess *bool               `json:"last_action_success"`
		DaysAlive         int                 `json:"days_alive"`
		CreatedAt         time.Time           `json:"creation_timestamp"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	c.ID = aux.ID
	c.Name = aux.Name
	if c.Name == "" {
		c.Name = "NPC_" + c.ID
	}

	c.Age = DefaultAge
	if aux.Age != nil {
		c.Age = *aux.Age
	}
	c.Health = DefaultHealth
	if aux.Health != nil {
		c.Health = *aux.Health
	}
	c.Hunger = DefaultHunger
	if aux.Hunger != nil {
		c.Hunger = *aux.Hunger
	}
	c.Energy = DefaultEnergy
	if aux.Energy != nil {
		c.Energy = *aux.Energy
	}

	c.Personality = personality.NewNeutral()
	if aux.Personality != nil {
		c.Personality = *aux.Personality
	}
	c.Experience = aux.Experience
	if c.Experience == nil {
		c.Experience = experience.NewTracker()
	}
	c.Trauma = aux.Trauma
	if c.Trauma == nil {
		c.Trauma = trauma.NewLedger()
	}
	c.Relationships = aux.Relationships
	if c.Relationships == nil {
		c.Relationships = relationship.NewGraph()
	}

	c.LastAction = aux.LastAction
	c.LastActionSuccess = aux.LastActionSuccess
	c.DaysAlive = aux.DaysAlive
	c.CreatedAt = aux.CreatedAt
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	return nil
}
