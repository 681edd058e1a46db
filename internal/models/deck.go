package models

import "fmt"

type CardAndCount struct {
	Card  *Card `json:"card"`
	Count int   `json:"count"`
}

// Deck is a decoded deck code resolved against one catalog.
type Deck struct {
	Code    string         `json:"code"`
	Locale  Locale         `json:"locale"`
	Version Version        `json:"version"`
	Cards   []CardAndCount `json:"cards"`
}

func (d *Deck) CardCount() int {
	total := 0
	for _, cc := range d.Cards {
		total += cc.Count
	}
	return total
}

func (d *Deck) String() string {
	return fmt.Sprintf("deck %s", d.Code)
}
