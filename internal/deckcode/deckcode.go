// Package deckcode encodes and decodes Legends of Runeterra deck codes.
//
// A code is unpadded base32 over: one header byte (format<<4 | version), then
// for copy counts 3, 2 and 1 a varint group count followed by groups of
// (cardCount, set, faction, numbers...), then (count, set, faction, number)
// tuples for any card with more than three copies.
package deckcode

import (
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	format     = 1
	maxVersion = 5
)

var (
	ErrInvalidCode        = errors.New("invalid deck code")
	ErrUnsupportedVersion = errors.New("unsupported deck code version")
	ErrUnknownFaction     = errors.New("unknown faction")
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

type faction struct {
	abbr    string
	id      int
	version int
}

var factions = []faction{
	{"DE", 0, 1},
	{"FR", 1, 1},
	{"IO", 2, 1},
	{"NX", 3, 1},
	{"PZ", 4, 1},
	{"SI", 5, 1},
	{"BW", 6, 2},
	{"SH", 7, 3},
	{"MT", 9, 2},
	{"BC", 10, 4},
	{"RU", 12, 5},
}

// FactionAbbreviation maps a faction id to its two-letter code.
func FactionAbbreviation(id int) (string, bool) {
	for _, f := range factions {
		if f.id == id {
			return f.abbr, true
		}
	}
	return "", false
}

// FactionID maps a two-letter faction code to its id.
func FactionID(abbr string) (int, bool) {
	for _, f := range factions {
		if f.abbr == abbr {
			return f.id, true
		}
	}
	return 0, false
}

// IsDeckFaction reports whether a region can appear in a deck code.
func IsDeckFaction(abbr string) bool {
	_, ok := FactionID(abbr)
	return ok
}

func factionVersion(abbr string) int {
	for _, f := range factions {
		if f.abbr == abbr {
			return f.version
		}
	}
	return maxVersion
}

// CardCount is one deck entry in raw form.
type CardCount struct {
	Set     int
	Faction string
	Number  int
	Count   int
}

// Code renders the entry's card code, e.g. "01DE012".
func (c CardCount) Code() string {
	return fmt.Sprintf("%02d%s%03d", c.Set, c.Faction, c.Number)
}

type reader struct {
	buf []byte
	pos int
}

func (r *reader) next() (int, error) {
	if r.pos >= len(r.buf) {
		return 0, fmt.Errorf("%w: truncated", ErrInvalidCode)
	}
	v, n := binary.Uvarint(r.buf[r.pos:])
	if n <= 0 {
		return 0, fmt.Errorf("%w: bad varint at byte %d", ErrInvalidCode, r.pos)
	}
	r.pos += n
	return int(v), nil
}

func (r *reader) done() bool {
	return r.pos >= len(r.buf)
}

// Decode parses a deck code into its entries.
func Decode(code string) ([]CardCount, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidCode)
	}
	raw, err := encoding.DecodeString(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidCode)
	}

	if raw[0]>>4 != format {
		return nil, fmt.Errorf("%w: format %d", ErrInvalidCode, raw[0]>>4)
	}
	if v := int(raw[0] & 0x0F); v > maxVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	r := &reader{buf: raw, pos: 1}
	var cards []CardCount

	for count := 3; count >= 1; count-- {
		groups, err := r.next()
		if err != nil {
			return nil, err
		}
		for g := 0; g < groups; g++ {
			n, err := r.next()
			if err != nil {
				return nil, err
			}
			set, fac, err := readSetFaction(r)
			if err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				num, err := r.next()
				if err != nil {
					return nil, err
				}
				cards = append(cards, CardCount{Set: set, Faction: fac, Number: num, Count: count})
			}
		}
	}

	for !r.done() {
		count, err := r.next()
		if err != nil {
			return nil, err
		}
		set, fac, err := readSetFaction(r)
		if err != nil {
			return nil, err
		}
		num, err := r.next()
		if err != nil {
			return nil, err
		}
		cards = append(cards, CardCount{Set: set, Faction: fac, Number: num, Count: count})
	}

	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: no cards", ErrInvalidCode)
	}
	return cards, nil
}

func readSetFaction(r *reader) (int, string, error) {
	set, err := r.next()
	if err != nil {
		return 0, "", err
	}
	id, err := r.next()
	if err != nil {
		return 0, "", err
	}
	abbr, ok := FactionAbbreviation(id)
	if !ok {
		return 0, "", fmt.Errorf("%w: faction id %d", ErrUnknownFaction, id)
	}
	return set, abbr, nil
}

// Encode builds a deck code. Entries with the same code are summed.
func Encode(cards []CardCount) (string, error) {
	merged := make(map[string]CardCount)
	for _, c := range cards {
		if c.Count <= 0 {
			return "", fmt.Errorf("%w: count %d for %s", ErrInvalidCode, c.Count, c.Code())
		}
		if _, ok := FactionID(c.Faction); !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownFaction, c.Faction)
		}
		key := c.Code()
		if prev, ok := merged[key]; ok {
			c.Count += prev.Count
		}
		merged[key] = c
	}
	if len(merged) == 0 {
		return "", fmt.Errorf("%w: no cards", ErrInvalidCode)
	}

	version := 1
	byCount := map[int][]CardCount{}
	var extra []CardCount
	for _, c := range merged {
		if v := factionVersion(c.Faction); v > version {
			version = v
		}
		if c.Count > 3 {
			extra = append(extra, c)
			continue
		}
		byCount[c.Count] = append(byCount[c.Count], c)
	}

	out := []byte{byte(format<<4 | version)}
	for count := 3; count >= 1; count-- {
		groups := groupBySetFaction(byCount[count])
		out = binary.AppendUvarint(out, uint64(len(groups)))
		for _, g := range groups {
			out = binary.AppendUvarint(out, uint64(len(g)))
			out = appendSetFaction(out, g[0])
			for _, c := range g {
				out = binary.AppendUvarint(out, uint64(c.Number))
			}
		}
	}

	sort.Slice(extra, func(i, j int) bool { return extra[i].Code() < extra[j].Code() })
	for _, c := range extra {
		out = binary.AppendUvarint(out, uint64(c.Count))
		out = appendSetFaction(out, c)
		out = binary.AppendUvarint(out, uint64(c.Number))
	}

	return encoding.EncodeToString(out), nil
}

func appendSetFaction(out []byte, c CardCount) []byte {
	id, _ := FactionID(c.Faction)
	out = binary.AppendUvarint(out, uint64(c.Set))
	return binary.AppendUvarint(out, uint64(id))
}

// groupBySetFaction orders groups by size, then by their first card code.
func groupBySetFaction(cards []CardCount) [][]CardCount {
	index := map[string]int{}
	var groups [][]CardCount
	for _, c := range cards {
		key := fmt.Sprintf("%02d%s", c.Set, c.Faction)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], c)
	}
	for _, g := range groups {
		sort.Slice(g, func(i, j int) bool { return g[i].Number < g[j].Number })
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i]) != len(groups[j]) {
			return len(groups[i]) < len(groups[j])
		}
		return groups[i][0].Code() < groups[j][0].Code()
	})
	return groups
}
