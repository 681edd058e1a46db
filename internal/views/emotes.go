package views

import "fmt"

// regionlessKey and regionlessAbbr name the emote used for cards without a region.
const (
	regionlessKey  = "All"
	regionlessAbbr = "x"
)

const (
	bullet      = "🔸"
	titleBullet = "🔷"
	blankLine   = "_\u200b_"
	embedColor  = 0x6cae62
)

// Emotes maps region keys to custom emote ids.
type Emotes map[string]uint64

// Decorate prefixes name with the emote for a region key, if one is configured.
func (e Emotes) Decorate(regionKey, abbr, name string) string {
	id, ok := e[regionKey]
	if !ok {
		return name
	}
	return fmt.Sprintf("<:%s:%d> %s", abbr, id, name)
}
