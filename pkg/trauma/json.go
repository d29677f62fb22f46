package trauma

import (
	"encoding/json"
	"time"
)

// UnmarshalJSON reconstructs a ledger leniently: a missing healing rate
// falls back to the default rather than zero, which would disable natural
// healing entirely.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	aux := struct {
		Memories            []*Memory `json:"memories"`
		LastHealingActivity string    `json:"last_healing_activity"`
		NaturalHealingRate  *float64  `json:"natural_healing_rate"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	l.Memories = aux.Memories
	l.LastHealingActivity = aux.LastHealingActivity
	l.NaturalHealingRate = DefaultNaturalHealingRate
	if aux.NaturalHealingRate != nil {
		l.NaturalHealingRate = *aux.NaturalHealingRate
	}
	return nil
}

// UnmarshalJSON reconstructs a memory leniently: a missing timestamp takes
// the current time.
func (m *Memory) UnmarshalJSON(data []byte) error {
	type alias Memory
	aux := (*alias)(m)
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	return nil
}
