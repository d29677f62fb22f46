package action

import "testing"

func TestGetMetadata(t *testing.T) {
	m := GetMetadata(GatherFood)
	if m.EnergyCost != 0.3 || m.BaseSuccessRate != 0.7 || m.Category != "resource" {
		t.Errorf("Unexpected gather_food metadata: %+v", m)
	}

	// Rest restores energy.
	if GetMetadata(Rest).EnergyCost >= 0 {
		t.Error("Expected rest to have negative energy cost")
	}

	// Unknown actions fall back to defaults.
	unknown := GetMetadata("dance_ritual")
	if unknown.Category != "unknown" || unknown.BaseSuccessRate != 0.5 {
		t.Errorf("Unexpected fallback metadata: %+v", unknown)
	}
}

func TestByCategory(t *testing.T) {
	social := ByCategory("social")
	if len(social) != 4 {
		t.Errorf("Expected 4 social actions, got %v", social)
	}
	if len(ByCategory("arcane")) != 0 {
		t.Error("Expected no actions in unknown category")
	}
}

func TestAll_CoversMetadata(t *testing.T) {
	all := All()
	if len(all) != 16 {
		t.Fatalf("Expected 16 actions, got %d", len(all))
	}
	for _, a := range all {
		if _, ok := metadata[a]; !ok {
			t.Errorf("Action %s missing metadata", a)
		}
	}
}
