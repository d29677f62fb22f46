package personality

import (
	"encoding/json"
	"math/rand"
	"testing"
)

func TestNewNeutral(t *testing.T) {
	traits := NewNeutral()
	for _, trait := range AllTraits {
		v, err := traits.Get(trait)
		if err != nil {
			t.Fatalf("Get(%s) returned error: %v", trait, err)
		}
		if v != 0.5 {
			t.Errorf("Expected trait %s to be 0.5, got %g", trait, v)
		}
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		greed       float64
		expectError bool
	}{
		{name: "valid bounds", greed: 0.5, expectError: false},
		{name: "lower bound", greed: 0.0, expectError: false},
		{name: "upper bound", greed: 1.0, expectError: false},
		{name: "below range", greed: -0.1, expectError: true},
		{name: "above range", greed: 1.5, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.greed, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5)
			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestSet_RejectsWithoutMutation(t *testing.T) {
	traits := NewNeutral()

	if err := traits.Set(Greed, 1.2); err == nil {
		t.Error("Expected error for out-of-range value")
	}
	if traits.Greed != 0.5 {
		t.Errorf("Rejected Set mutated trait: got %g", traits.Greed)
	}

	if err := traits.Set("charisma", 0.5); err == nil {
		t.Error("Expected error for unknown trait")
	}
}

func TestGet_UnknownTrait(t *testing.T) {
	traits := NewNeutral()
	if _, err := traits.Get("charisma"); err == nil {
		t.Error("Expected error for unknown trait")
	}
}

func TestDominantAndWeak(t *testing.T) {
	traits := NewNeutral()
	if err := traits.Set(Greed, 0.9); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := traits.Set(Courage, 0.7); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := traits.Set(Sociability, 0.2); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	dominant := traits.Dominant()
	if len(dominant) != 2 {
		t.Errorf("Expected 2 dominant traits, got %d: %v", len(dominant), dominant)
	}
	if _, ok := dominant[Courage]; !ok {
		t.Error("Expected courage at threshold 0.7 to count as dominant")
	}

	weak := traits.Weak()
	if len(weak) != 1 {
		t.Errorf("Expected 1 weak trait, got %d: %v", len(weak), weak)
	}
	if _, ok := weak[Sociability]; !ok {
		t.Error("Expected sociability to be weak")
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*Traits)
		expected string
	}{
		{
			name:     "neutral is balanced",
			modify:   func(t *Traits) {},
			expected: "balanced personality",
		},
		{
			name: "greedy loner",
			modify: func(tr *Traits) {
				tr.Greed = 0.9
				tr.Sociability = 0.2
			},
			expected: "hoards resources, antisocial",
		},
		{
			name: "fragments follow declaration order",
			modify: func(tr *Traits) {
				tr.Impulsiveness = 0.8
				tr.Greed = 0.8
				tr.Courage = 0.1
			},
			expected: "hoards resources, acts quickly, cowardly",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traits := NewNeutral()
			tt.modify(&traits)
			if got := traits.Summary(); got != tt.expected {
				t.Errorf("Expected summary %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFromArchetype(t *testing.T) {
	traits, err := FromArchetype("greedy_loner")
	if err != nil {
		t.Fatalf("FromArchetype failed: %v", err)
	}
	if traits.Greed != 0.9 {
		t.Errorf("Expected greed 0.9, got %g", traits.Greed)
	}
	// Unspecified traits stay neutral.
	if traits.Courage != 0.5 {
		t.Errorf("Expected courage 0.5, got %g", traits.Courage)
	}

	if _, err := FromArchetype("chaos_gremlin"); err == nil {
		t.Error("Expected error for unknown archetype")
	}
}

func TestGenerateRandom_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		traits := GenerateRandom(rng)
		if err := traits.Validate(); err != nil {
			t.Fatalf("Generated traits out of bounds: %v", err)
		}
	}
}

func TestUnmarshalJSON_MissingTraitsDefault(t *testing.T) {
	var traits Traits
	if err := json.Unmarshal([]byte(`{"greed": 0.9, "courage": 0.1}`), &traits); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if traits.Greed != 0.9 {
		t.Errorf("Expected greed 0.9, got %g", traits.Greed)
	}
	if traits.Courage != 0.1 {
		t.Errorf("Expected courage 0.1, got %g", traits.Courage)
	}
	if traits.Sociability != 0.5 {
		t.Errorf("Expected missing sociability to default to 0.5, got %g", traits.Sociability)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	original, err := New(0.1, 0.2, 0.3, 0.4, 0.6, 0.7, 0.8, 0.9)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var restored Traits
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if restored != original {
		t.Errorf("Round trip mismatch: got %+v, want %+v", restored, original)
	}
}
