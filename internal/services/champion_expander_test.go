package services

import (
	"context"
	"testing"

	"github.com/codyseavey/lookout/internal/models"
)

func codesOf(cards []*models.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Code
	}
	return out
}

func TestChampionExpanderExpand(t *testing.T) {
	en := newEnglishCatalog()
	expander := NewChampionExpander(newFakeCatalogs(en))

	tests := []struct {
		name string
		code string
		want []string
	}{
		{"single tier line", "01PZ045", []string{"01PZ045", "01PZ045T2"}},
		{"level up text marks tier 2", "06RU002", []string{"06RU002", "06RU002T3", "06RU002T4"}},
		{"ambiguous tiers", "01IO041", []string{"01IO041"}},
		{"champion without tiers", "01FR009", []string{"01FR009"}},
		{"follower", "01FR024", []string{"01FR024"}},
		{"tier card itself", "01PZ045T2", []string{"01PZ045T2"}},
		{"uncollectible spell", "01PZ045T1", []string{"01PZ045T1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expander.Expand(context.Background(), en.Cards[tt.code])
			if err != nil {
				t.Fatalf("Expand error: %v", err)
			}
			codes := codesOf(got)
			if len(codes) != len(tt.want) {
				t.Fatalf("Expand(%s) = %v, want %v", tt.code, codes, tt.want)
			}
			for i := range codes {
				if codes[i] != tt.want[i] {
					t.Errorf("Expand(%s)[%d] = %s, want %s", tt.code, i, codes[i], tt.want[i])
				}
			}
		})
	}
}

func TestChampionExpanderUsesDisplayLocale(t *testing.T) {
	fr := newFrenchCatalog()
	expander := NewChampionExpander(newFakeCatalogs(newEnglishCatalog(), fr))

	got, err := expander.Expand(context.Background(), fr.Cards["06RU002"])
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expand = %v, want three cards", codesOf(got))
	}
	for _, c := range got {
		if c.Locale != localeFrench {
			t.Errorf("%s resolved in %s, want fr_fr", c.Code, c.Locale)
		}
	}
}

func TestChampionTiersSingleNamedVariant(t *testing.T) {
	// A base champion whose only tier has a different name still expands.
	home := buildCatalog(models.LocaleEnglishUS, testRegions, []cardSpec{
		{"02FR002", "Braum", "Freljord", "Champion", "Unit", "Champion", true, "Survive 3 times"},
		{"02FR002T1", "Braum, Heart of the Freljord", "Freljord", "Champion", "Unit", "None", false, ""},
	})
	got := championTiers(home.Cards["02FR002"], home)
	if len(got) != 1 || got[0] != "02FR002T1" {
		t.Errorf("championTiers = %v, want [02FR002T1]", got)
	}
}

func TestChampionTiersWithSeveralNameGroups(t *testing.T) {
	tests := []struct {
		name  string
		specs []cardSpec
		want  []string
	}{
		{
			name: "group named like the base card wins",
			specs: []cardSpec{
				{"02FR002", "Braum", "Freljord", "Champion", "Unit", "Champion", true, "Survive 3 times"},
				{"02FR002T1", "Braum", "Freljord", "Champion", "Unit", "None", false, ""},
				{"02FR002T2", "Other Braum", "Freljord", "Champion", "Unit", "None", false, ""},
			},
			want: []string{"02FR002T1"},
		},
		{
			name: "no group named like the base card",
			specs: []cardSpec{
				{"02FR002", "Braum", "Freljord", "Champion", "Unit", "Champion", true, "Survive 3 times"},
				{"02FR002T1", "A", "Freljord", "Champion", "Unit", "None", false, ""},
				{"02FR002T2", "B", "Freljord", "Champion", "Unit", "None", false, ""},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := buildCatalog(models.LocaleEnglishUS, testRegions, tt.specs)
			got := championTiers(home.Cards["02FR002"], home)
			if len(got) != len(tt.want) {
				t.Fatalf("championTiers = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("championTiers[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}

			expanded, err := NewChampionExpander(newFakeCatalogs(home)).Expand(context.Background(), home.Cards["02FR002"])
			if err != nil {
				t.Fatalf("Expand error: %v", err)
			}
			if len(expanded) != 1+len(tt.want) || expanded[0].Code != "02FR002" {
				t.Errorf("Expand = %v, want the base card followed by %v", codesOf(expanded), tt.want)
			}
		})
	}
}
