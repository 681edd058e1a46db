package deckcode

import (
	"errors"
	"sort"
	"testing"
)

func TestDecodeKnownCode(t *testing.T) {
	cards, err := Decode("CEAQCAYJEIAAA")
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(cards))
	}
	want := CardCount{Set: 3, Faction: "MT", Number: 34, Count: 3}
	if cards[0] != want {
		t.Errorf("Decode = %+v, want %+v", cards[0], want)
	}
	if cards[0].Code() != "03MT034" {
		t.Errorf("Code() = %q, want %q", cards[0].Code(), "03MT034")
	}
}

func TestDecodeIsCaseInsensitive(t *testing.T) {
	cards, err := Decode("  ceaqcayjeiaaa ")
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(cards) != 1 || cards[0].Code() != "03MT034" {
		t.Errorf("unexpected decode result: %+v", cards)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{"empty", "", ErrInvalidCode},
		{"not base32", "lulu!", ErrInvalidCode},
		{"plain word", "lulu", ErrInvalidCode},
		{"wrong format", "AEAQCAYJEIAAA", ErrInvalidCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.code)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode(%q) error = %v, want %v", tt.code, err, tt.want)
			}
		})
	}
}

func sortCards(cards []CardCount) {
	sort.Slice(cards, func(i, j int) bool { return cards[i].Code() < cards[j].Code() })
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	deck := []CardCount{
		{Set: 1, Faction: "DE", Number: 12, Count: 3},
		{Set: 1, Faction: "DE", Number: 2, Count: 3},
		{Set: 1, Faction: "IO", Number: 9, Count: 2},
		{Set: 2, Faction: "BW", Number: 22, Count: 1},
		{Set: 1, Faction: "IO", Number: 40, Count: 1},
		{Set: 1, Faction: "IO", Number: 41, Count: 5},
	}

	code, err := Encode(deck)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	decoded, err := Decode(code)
	if err != nil {
		t.Fatalf("Decode(%q) error: %v", code, err)
	}

	sortCards(deck)
	sortCards(decoded)
	if len(decoded) != len(deck) {
		t.Fatalf("decoded %d entries, want %d", len(decoded), len(deck))
	}
	for i := range deck {
		if decoded[i] != deck[i] {
			t.Errorf("entry %d = %+v, want %+v", i, decoded[i], deck[i])
		}
	}
}

func TestEncodeVersionFollowsFactions(t *testing.T) {
	tests := []struct {
		faction string
		version byte
	}{
		{"DE", 1},
		{"BW", 2},
		{"MT", 2},
		{"SH", 3},
		{"BC", 4},
		{"RU", 5},
	}

	for _, tt := range tests {
		t.Run(tt.faction, func(t *testing.T) {
			code, err := Encode([]CardCount{{Set: 1, Faction: tt.faction, Number: 1, Count: 1}})
			if err != nil {
				t.Fatalf("Encode error: %v", err)
			}
			raw, err := encoding.DecodeString(code)
			if err != nil {
				t.Fatalf("DecodeString error: %v", err)
			}
			if raw[0] != format<<4|tt.version {
				t.Errorf("header = %#x, want %#x", raw[0], format<<4|tt.version)
			}
		})
	}
}

func TestEncodeRejectsBadEntries(t *testing.T) {
	if _, err := Encode(nil); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("Encode(nil) error = %v, want ErrInvalidCode", err)
	}
	if _, err := Encode([]CardCount{{Set: 1, Faction: "XX", Number: 1, Count: 1}}); !errors.Is(err, ErrUnknownFaction) {
		t.Errorf("Encode with unknown faction error = %v, want ErrUnknownFaction", err)
	}
	if _, err := Encode([]CardCount{{Set: 1, Faction: "DE", Number: 1, Count: 0}}); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("Encode with zero count error = %v, want ErrInvalidCode", err)
	}
}

func TestEncodeMergesDuplicates(t *testing.T) {
	code, err := Encode([]CardCount{
		{Set: 1, Faction: "DE", Number: 1, Count: 1},
		{Set: 1, Faction: "DE", Number: 1, Count: 2},
	})
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	cards, err := Decode(code)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(cards) != 1 || cards[0].Count != 3 {
		t.Errorf("expected a single entry with 3 copies, got %+v", cards)
	}
}
