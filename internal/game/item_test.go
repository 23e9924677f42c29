package game

import (
	"math/rand"
	"strings"
	"testing"

	"vocadrill/internal/models"
)

func TestStripHints(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no hint", "cat", "cat"},
		{"trailing hint", "bank [money]", "bank"},
		{"leading hint", "[informal] mate", "mate"},
		{"multiple hints", "to get [obtain] [informal]", "to get"},
		{"hint only", "[placeholder]", ""},
		{"whitespace trimmed", "  cat  ", "cat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripHints(tt.input); got != tt.expected {
				t.Errorf("stripHints(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWordItemsFrenchToEnglish(t *testing.T) {
	words := []models.Word{
		{ID: 1, Word: "chat", Translations: []string{"cat", "tomcat [male]"}, Article: "le"},
	}
	items, warnings := WordItems(words, DirectionFrenchToEnglish, rand.New(rand.NewSource(1)))
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.Prompt != "chat" {
		t.Errorf("expected prompt 'chat', got %q", item.Prompt)
	}
	if item.NeedsArticle {
		t.Error("foreign-to-native items should not require an article")
	}
	if len(item.Expected) != 2 || item.Expected[0] != "cat" || item.Expected[1] != "tomcat" {
		t.Errorf("unexpected expected set: %v", item.Expected)
	}
}

func TestWordItemsEnglishToFrench(t *testing.T) {
	tests := []struct {
		name        string
		word        models.Word
		wantAnswer  string
		wantArticle bool
	}{
		{
			name:        "with article",
			word:        models.Word{ID: 1, Word: "chat", Translations: []string{"cat"}, Article: "le"},
			wantAnswer:  "le chat",
			wantArticle: true,
		},
		{
			name:        "article none",
			word:        models.Word{ID: 2, Word: "manger", Translations: []string{"to eat"}, Article: "none"},
			wantAnswer:  "manger",
			wantArticle: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, _ := WordItems([]models.Word{tt.word}, DirectionEnglishToFrench, rand.New(rand.NewSource(1)))
			if len(items) != 1 {
				t.Fatalf("expected 1 item, got %d", len(items))
			}
			item := items[0]
			if item.Answer != tt.wantAnswer {
				t.Errorf("expected answer %q, got %q", tt.wantAnswer, item.Answer)
			}
			if item.NeedsArticle != tt.wantArticle {
				t.Errorf("expected needsArticle=%v, got %v", tt.wantArticle, item.NeedsArticle)
			}
			if len(item.Expected) != 1 || item.Expected[0] != strings.ToLower(tt.wantAnswer) {
				t.Errorf("unexpected expected set: %v", item.Expected)
			}
		})
	}
}

func TestWordItemsDropsUntranslatable(t *testing.T) {
	words := []models.Word{
		{ID: 1, Word: "chat", Translations: []string{"cat"}},
		{ID: 2, Word: "vide", Translations: []string{"[hint only]", "  "}},
		{ID: 3, Word: "rien", Translations: nil},
	}
	items, warnings := WordItems(words, DirectionFrenchToEnglish, rand.New(rand.NewSource(1)))
	if len(items) != 1 || items[0].ID != 1 {
		t.Fatalf("expected only the usable word to survive, got %d items", len(items))
	}
	if len(warnings) != 2 {
		t.Errorf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
}

func TestWordItemsBothDirectionFixedPerItem(t *testing.T) {
	words := make([]models.Word, 20)
	for i := range words {
		words[i] = models.Word{ID: int64(i + 1), Word: "mot", Translations: []string{"word"}}
	}
	items, _ := WordItems(words, DirectionBoth, rand.New(rand.NewSource(42)))

	sawForward, sawReverse := false, false
	for i, item := range items {
		switch item.Direction {
		case DirectionFrenchToEnglish:
			sawForward = true
		case DirectionEnglishToFrench:
			sawReverse = true
		default:
			t.Fatalf("item %d has unresolved direction %q", i, item.Direction)
		}
		// repeated reads of the same queue position must not re-roll
		if items[i].Direction != item.Direction || items[i].Prompt != item.Prompt {
			t.Fatalf("item %d changed between reads", i)
		}
	}
	if !sawForward || !sawReverse {
		t.Error("expected both directions to appear across 20 items")
	}
}

func TestConjugationItems(t *testing.T) {
	conjugations := []models.Conjugation{
		{ID: 1, Verb: "parler", Person: "je", Tense: "présent", Conjugation: "parle"},
		{ID: 2, Verb: "finir", Person: "tu", Tense: "présent", Conjugation: "  "},
	}
	items, warnings := ConjugationItems(conjugations)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if len(warnings) != 1 {
		t.Errorf("expected 1 warning for the empty conjugation, got %d", len(warnings))
	}

	item := items[0]
	if item.Prompt != "parler (je, présent)" {
		t.Errorf("unexpected prompt %q", item.Prompt)
	}
	if len(item.Expected) != 1 || item.Expected[0] != "parle" {
		t.Errorf("unexpected expected set: %v", item.Expected)
	}
	if item.Answer != "parle" {
		t.Errorf("unexpected answer %q", item.Answer)
	}
}
