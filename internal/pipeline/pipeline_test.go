package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"pauta/internal/core"
)

func floatPtr(v float64) *float64 { return &v }

func itemWithEngagement(id string, source core.Source, normalized float64) core.Item {
	return core.Item{
		ID:         id,
		Source:     source,
		Engagement: &core.Engagement{Normalized: floatPtr(normalized)},
	}
}

func TestFilterByRelevance(t *testing.T) {
	items := []core.Item{
		{ID: "a", RelevanceScore: 0.9},
		{ID: "b", RelevanceScore: 0.6},
		{ID: "c", RelevanceScore: 0.59},
		{ID: "d"},
	}

	filtered := FilterByRelevance(items, 0.6)
	if len(filtered) != 2 || filtered[0].ID != "a" || filtered[1].ID != "b" {
		t.Errorf("FilterByRelevance kept %v, want [a b]", idsOf(filtered))
	}

	t.Run("zero threshold keeps everything", func(t *testing.T) {
		filtered := FilterByRelevance(items, 0)
		if !reflect.DeepEqual(filtered, items) {
			t.Errorf("min_score=0 must be the identity, got %v", idsOf(filtered))
		}
	})
}

func TestPercentile(t *testing.T) {
	testCases := []struct {
		name     string
		values   []float64
		p        float64
		expected float64
	}{
		{"empty", nil, 0.3, 0},
		{"single value", []float64{0.4}, 0.3, 0.4},
		{"median of pair", []float64{0, 1}, 0.5, 0.5},
		{"interpolated", []float64{0.1, 0.2, 0.5, 0.8}, 0.3, 0.19},
		{"p zero is min", []float64{3, 1, 2}, 0, 1},
		{"p one is max", []float64{3, 1, 2}, 1, 3},
		{"all equal", []float64{0.5, 0.5, 0.5}, 0.3, 0.5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Percentile(tc.values, tc.p)
			if diff := got - tc.expected; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tc.values, tc.p, got, tc.expected)
			}
		})
	}
}

func TestFilterByEngagementAllEqualPasses(t *testing.T) {
	items := []core.Item{
		itemWithEngagement("a", core.SourceTwitter, 0),
		itemWithEngagement("b", core.SourceTwitter, 0),
		itemWithEngagement("c", core.SourceInstagram, 0),
	}
	filtered := FilterByEngagement(items, 0.3)
	if len(filtered) != 3 {
		t.Errorf("all-equal values must all pass, kept %d of 3", len(filtered))
	}
}

func TestFilterByEngagementMonotonicity(t *testing.T) {
	items := []core.Item{
		itemWithEngagement("a", core.SourceTwitter, 0.2),
		itemWithEngagement("b", core.SourceTwitter, 0.8),
		itemWithEngagement("c", core.SourceTwitter, 0.5),
		itemWithEngagement("d", core.SourceInstagram, 0.1),
		itemWithEngagement("e", core.SourceG1, 0.9),
	}

	prev := len(items) + 1
	for _, p := range []float64{0, 0.2, 0.4, 0.6, 0.8, 1} {
		kept := len(FilterByEngagement(items, p))
		if kept > prev {
			t.Errorf("raising percentile to %v grew the filtered set: %d > %d", p, kept, prev)
		}
		prev = kept
	}
}

func TestGroupByTopic(t *testing.T) {
	items := []core.Item{
		{ID: "1", Source: core.SourceG1, Entities: []string{"Lula"}},
		{ID: "2", Source: core.SourceG1, Entities: []string{"Lula", "Dilma"}},
		{ID: "3", Source: core.SourceTwitter, Entities: []string{"Dilma"}},
		{ID: "4", Source: core.SourceInstagram},
	}

	topics := GroupByTopic(items)

	if got := idsOf(topics["Lula"]); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("Lula cluster = %v, want [1 2]", got)
	}
	if got := idsOf(topics["Dilma"]); !reflect.DeepEqual(got, []string{"2", "3"}) {
		t.Errorf("Dilma cluster = %v, want [2 3]", got)
	}
	if got := idsOf(topics[OutrosTopic]); !reflect.DeepEqual(got, []string{"4"}) {
		t.Errorf("outros = %v, want [4]", got)
	}
}

func TestGroupByTopicSingletonEntitiesGoToOutros(t *testing.T) {
	items := []core.Item{
		{ID: "1", Entities: []string{"Maceió"}},
		{ID: "2", Entities: []string{"Curitiba"}},
	}
	topics := GroupByTopic(items)
	if len(topics) != 1 {
		t.Fatalf("frequency 1 entities must not form clusters, got topics %v", topicNames(topics))
	}
	if got := idsOf(topics[OutrosTopic]); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("outros = %v, want [1 2]", got)
	}
}

func TestGroupByTopicOutrosUsesStableIdentity(t *testing.T) {
	// Two value-identical items without IDs: once one copy is claimed by a
	// named cluster, the equal copy must not resurface in outros.
	duplicated := core.Item{Source: core.SourceTwitter, Text: "Lula discursou", Entities: []string{"Lula"}}
	items := []core.Item{duplicated, duplicated}

	topics := GroupByTopic(items)
	if len(topics[OutrosTopic]) != 0 {
		t.Errorf("value-identical claimed items leaked into outros: %d", len(topics[OutrosTopic]))
	}
	if len(topics["Lula"]) != 2 {
		t.Errorf("Lula cluster = %d members, want 2", len(topics["Lula"]))
	}
}

func TestExtractTrendingTopicsMergesEntityAndHashtagCounts(t *testing.T) {
	items := []core.Item{
		{ID: "1", Entities: []string{"Lula", "Dilma"}, Hashtags: []string{"Lula"}},
		{ID: "2", Entities: []string{"Lula"}, Hashtags: []string{"Bolsonaro"}},
	}

	trending := ExtractTrendingTopics(items, 2)
	if len(trending) != 2 {
		t.Fatalf("got %d candidates, want 2", len(trending))
	}
	if trending[0].Topic != "Lula" || trending[0].Count != 3 {
		t.Errorf("first candidate = %s(%d), want Lula(3)", trending[0].Topic, trending[0].Count)
	}
	// Dilma and Bolsonaro tie at 1; Dilma was seen first.
	if trending[1].Topic != "Dilma" || trending[1].Count != 1 {
		t.Errorf("second candidate = %s(%d), want Dilma(1)", trending[1].Topic, trending[1].Count)
	}
}

func TestExtractTrendingTopicsCountVersusRelatedItems(t *testing.T) {
	// Lula appears as entity and hashtag of the same item: merged count 2,
	// related items 1.
	items := []core.Item{
		{ID: "1", Source: core.SourceTwitter, Entities: []string{"Lula"}, Hashtags: []string{"Lula"},
			Engagement: &core.Engagement{Normalized: floatPtr(0.6)}},
	}
	trending := ExtractTrendingTopics(items, 5)
	if len(trending) != 1 {
		t.Fatalf("got %d candidates, want 1", len(trending))
	}
	top := trending[0]
	if top.Count != 2 {
		t.Errorf("Count = %d, want 2 (token occurrences, not items)", top.Count)
	}
	if top.RelatedItemsCount != 1 {
		t.Errorf("RelatedItemsCount = %d, want 1", top.RelatedItemsCount)
	}
	if top.AvgEngagement != 0.6 {
		t.Errorf("AvgEngagement = %v, want 0.6", top.AvgEngagement)
	}
	if !reflect.DeepEqual(top.Sources, []core.Source{core.SourceTwitter}) {
		t.Errorf("Sources = %v, want [Twitter]", top.Sources)
	}
}

func TestExtractKeyFactsCapAndOrder(t *testing.T) {
	// 12 qualifying sentences across two items, two of them duplicated.
	var parts []string
	for i := 1; i <= 12; i++ {
		parts = append(parts, fmt.Sprintf("Lula fez o anúncio número %s em Brasília.", numberWord(i)))
	}
	items := []core.Item{
		{ID: "1", Content: strings.Join(parts[:6], " ")},
		{ID: "2", Content: parts[0] + " " + strings.Join(parts[6:], " ")},
	}

	facts := ExtractKeyFacts(items, "Lula", 10)
	if len(facts) != 10 {
		t.Fatalf("got %d facts, want 10", len(facts))
	}
	seen := make(map[string]bool)
	for _, f := range facts {
		if seen[f] {
			t.Errorf("duplicate fact survived: %q", f)
		}
		seen[f] = true
	}
	for i, f := range facts {
		if f != parts[i] {
			t.Errorf("fact %d = %q, want %q (original order)", i, f, parts[i])
		}
	}
}

func TestExtractKeyFactsDropsShortSentences(t *testing.T) {
	items := []core.Item{
		{ID: "1", Content: "Lula viajou hoje. Lula anunciou um novo pacote de medidas econômicas."},
	}
	facts := ExtractKeyFacts(items, "Lula", 10)
	if len(facts) != 1 || !strings.Contains(facts[0], "pacote") {
		t.Errorf("facts = %v, want only the long sentence", facts)
	}
}

func TestExtractKeyFactsSubstringMatch(t *testing.T) {
	// Item mentions the topic only in free text, not in entities/hashtags.
	items := []core.Item{
		{ID: "1", Text: "O governo de lula apresentou a proposta ao congresso nesta semana."},
	}
	facts := ExtractKeyFacts(items, "Lula", 10)
	if len(facts) != 1 {
		t.Errorf("case-insensitive substring match failed, facts = %v", facts)
	}
}

func endToEndItems() []core.Item {
	return []core.Item{
		{ID: "g1-1", Source: core.SourceG1, Title: "Reforma",
			Content:        "Lula defendeu a reforma tributária em discurso nesta terça.",
			Entities:       []string{"Lula"}, RelevanceScore: 0.9,
			Engagement:     &core.Engagement{Normalized: floatPtr(0.2)}},
		{ID: "g1-2", Source: core.SourceG1, Title: "Encontro",
			Content:        "Lula recebeu Dilma para discutir o novo banco de desenvolvimento.",
			Entities:       []string{"Lula", "Dilma"}, RelevanceScore: 0.8,
			Engagement:     &core.Engagement{Normalized: floatPtr(0.8)}},
		{ID: "tw-1", Source: core.SourceTwitter,
			Text:           "Dilma comentou a decisão do banco em entrevista longa hoje.",
			Entities:       []string{"Dilma"}, RelevanceScore: 0.7,
			Engagement:     &core.Engagement{Normalized: floatPtr(0.5)}},
		{ID: "ig-1", Source: core.SourceInstagram,
			Caption:        "Bastidores da cobertura de hoje na redação.",
			RelevanceScore: 0.7,
			Engagement:     &core.Engagement{Normalized: floatPtr(0.1)}},
	}
}

func TestEndToEndScenario(t *testing.T) {
	items := endToEndItems()

	filtered := FilterByRelevance(items, 0.6)
	filtered = FilterByEngagement(filtered, 0.3)

	if got := idsOf(filtered); !reflect.DeepEqual(got, []string{"g1-1", "g1-2", "tw-1"}) {
		t.Fatalf("filtered = %v, want the 0.1-engagement item dropped", got)
	}

	trending := ExtractTrendingTopics(filtered, 5)
	if len(trending) != 2 {
		t.Fatalf("got %d trending topics, want 2", len(trending))
	}
	for _, tt := range trending {
		if tt.Count != 2 {
			t.Errorf("topic %s count = %d, want 2", tt.Topic, tt.Count)
		}
	}
	if trending[0].Topic != "Lula" || trending[1].Topic != "Dilma" {
		t.Errorf("candidates = [%s %s], want [Lula Dilma] (first-seen tie-break)",
			trending[0].Topic, trending[1].Topic)
	}
}

func TestConsolidateIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	sourceDir := filepath.Join(dir, "g1")
	if err := os.MkdirAll(sourceDir, 0o755); err != nil {
		t.Fatal(err)
	}
	raw, err := json.Marshal(endToEndItems())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(sourceDir, "g1_processed.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewProcessor(Options{
		MinRelevanceScore: 0.6, MinPercentile: 0.3,
		TrendingThreshold: 0.7, EngagementThreshold: 0.5,
		TopN: 5, MaxKeyFacts: 10,
	})
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p.Now = func() time.Time { return fixed }

	first, err := json.Marshal(p.Consolidate([]string{path}))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(p.Consolidate([]string{path}))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("two runs over the same snapshot must serialize identically")
	}
}

func TestLoadItemsMissingFileDegradesToEmpty(t *testing.T) {
	p := NewProcessor(Options{})
	items := p.LoadItems(filepath.Join(t.TempDir(), "missing.json"))
	if len(items) != 0 {
		t.Errorf("missing file must load as empty, got %d items", len(items))
	}
}

func idsOf(items []core.Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func topicNames(topics map[string][]core.Item) []string {
	names := make([]string, 0, len(topics))
	for name := range topics {
		names = append(names, name)
	}
	return names
}

var numberWords = []string{"um", "dois", "três", "quatro", "cinco", "seis",
	"sete", "oito", "nove", "dez", "onze", "doze"}

func numberWord(n int) string { return numberWords[n-1] }
