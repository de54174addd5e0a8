package core

import "testing"

func floatPtr(v float64) *float64 { return &v }

func TestFreeText(t *testing.T) {
	testCases := []struct {
		name     string
		item     Item
		expected string
	}{
		{"content wins", Item{Content: "artigo", Text: "tweet", Caption: "legenda"}, "artigo"},
		{"text before caption", Item{Text: "tweet", Caption: "legenda"}, "tweet"},
		{"caption fallback", Item{Caption: "legenda"}, "legenda"},
		{"all empty", Item{}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.item.FreeText(); got != tc.expected {
				t.Errorf("FreeText() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestEngagementValue(t *testing.T) {
	testCases := []struct {
		name     string
		item     Item
		expected float64
	}{
		{"no engagement", Item{}, 0},
		{"total only", Item{Engagement: &Engagement{Total: 12.5}}, 12.5},
		{"normalized preferred", Item{Engagement: &Engagement{Total: 12.5, Normalized: floatPtr(0.4)}}, 0.4},
		{"normalized zero still wins", Item{Engagement: &Engagement{Total: 12.5, Normalized: floatPtr(0)}}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.item.EngagementValue(); got != tc.expected {
				t.Errorf("EngagementValue() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestKeyPrefersID(t *testing.T) {
	item := Item{ID: "tw-123", Text: "qualquer coisa"}
	if item.Key() != "tw-123" {
		t.Errorf("Key() should return the record ID, got %q", item.Key())
	}
}

func TestKeyContentHashIsStable(t *testing.T) {
	a := Item{Source: SourceG1, Title: "Eleições", Content: "Lula e Dilma se reuniram em Brasília"}
	b := Item{Source: SourceG1, Title: "Eleições", Content: "Lula e Dilma se reuniram em Brasília"}
	c := Item{Source: SourceG1, Title: "Eleições", Content: "outro conteúdo"}

	if a.Key() != b.Key() {
		t.Error("identical content must produce identical keys")
	}
	if a.Key() == c.Key() {
		t.Error("different content must produce different keys")
	}
}

func TestKeyDiffersBySource(t *testing.T) {
	a := Item{Source: SourceTwitter, Text: "mesmo texto"}
	b := Item{Source: SourceInstagram, Caption: "mesmo texto"}
	if a.Key() == b.Key() {
		t.Error("same text from different sources must not collide")
	}
}
