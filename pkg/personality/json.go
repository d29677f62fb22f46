package personality

import "encoding/json"

// UnmarshalJSON reconstructs traits leniently: any trait missing from the
// record defaults to 0.5 rather than zero.
func (t *Traits) UnmarshalJSON(data []byte) error {
	aux := struct {
		Greed         *float64 `json:"greed"`
		Sociability   *float64 `json:"sociability"`
		Laziness      *float64 `json:"laziness"`
		Ambition      *float64 `json:"ambition"`
		Forgiveness   *float64 `json:"forgiveness"`
		Courage       *float64 `json:"courage"`
		Analytical    *float64 `json:"analytical"`
		Impulsiveness *float64 `json:"impulsiveness"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*t = NewNeutral()
	assign := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&t.Greed, aux.Greed)
	assign(&t.Sociability, aux.Sociability)
	assign(&t.Laziness, aux.Laziness)
	assign(&t.Ambition, aux.Ambition)
	assign(&t.Forgiveness, aux.Forgiveness)
	assign(&t.Courage, aux.Courage)
	assign(&t.Analytical, aux.Analytical)
	assign(&t.Impulsiveness, aux.Impulsiveness)
	return nil
}
