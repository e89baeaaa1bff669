// internal/analysis/sentiment/lexicon.go
package sentiment

// Fixed keyword lexicons. These are process-wide, read-only tables shared by
// all concurrent tasks and must never be mutated at runtime.

var positiveLexicon = []string{
	"excellent",
	"amazing",
	"innovative",
	"outstanding",
	"great",
	"leading",
	"best",
	"impressive",
	"reliable",
	"trusted",
	"superior",
	"successful",
	"growth",
	"strong",
	"breakthrough",
	"award",
	"love",
	"recommend",
	"quality",
	"efficient",
	"popular",
	"revolutionary",
	"win",
}

var negativeLexicon = []string{
	"terrible",
	"awful",
	"failing",
	"poor",
	"bad",
	"worst",
	"disappointing",
	"unreliable",
	"broken",
	"lawsuit",
	"scandal",
	"decline",
	"weak",
	"problem",
	"recall",
	"complaint",
	"overpriced",
	"outdated",
	"loss",
	"struggling",
	"avoid",
	"fraud",
}
