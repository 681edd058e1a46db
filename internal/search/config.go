package search

// Config tunes one search. It is passed by value and never mutated.
type Config struct {
	Matcher       string
	BookendWeight float64
	BookendTaper  float64
	// MatchThreshold drops matches whose final strength is below it.
	MatchThreshold float64
	// PreserveStrongMatches skips downscaling when the raw strength is above
	// StrongMatchCutoff.
	PreserveStrongMatches bool
	StrongMatchCutoff     float64
	FoldAccents           bool
}

const (
	DefaultMatchThreshold    = 0.5
	DefaultStrongMatchCutoff = 0.9
)

func DefaultConfig() Config {
	return Config{
		Matcher:               MatcherSubstring,
		BookendWeight:         1,
		BookendTaper:          1,
		MatchThreshold:        DefaultMatchThreshold,
		PreserveStrongMatches: true,
		StrongMatchCutoff:     DefaultStrongMatchCutoff,
	}
}
