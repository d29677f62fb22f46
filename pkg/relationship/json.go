package relationship

import "encoding/json"

// UnmarshalJSON reconstructs a bond leniently: missing trust, respect, or
// affection default to the neutral 0.5; dependency and fear default to 0.
func (d *Dimensions) UnmarshalJSON(data []byte) error {
	aux := struct {
		Trust      *float64       `json:"trust"`
		Respect    *float64       `json:"respect"`
		Affection  *float64       `json:"affection"`
		Dependency *float64       `json:"dependency"`
		Fear       *float64       `json:"fear"`
		History    []ChangeRecord `json:"relationship_history"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*d = *NewDimensions()
	if aux.Trust != nil {
		d.Trust = *aux.Trust
	}
	if aux.Respect != nil {
		d.Respect = *aux.Respect
	}
	if aux.Affection != nil {
		d.Affection = *aux.Affection
	}
	if aux.Dependency != nil {
		d.Dependency = *aux.Dependency
	}
	if aux.Fear != nil {
		d.Fear = *aux.Fear
	}
	d.History = aux.History
	return nil
}
