package features

// seedRankings is the built-in world-ranking table for canonical university
// ids known to the seed dictionary. Callers extend or override it via
// WithRankings.
var seedRankings = map[string]int{
	"mit":        1,
	"stanford":   3,
	"berkeley":   9,
	"harvard":    4,
	"caltech":    6,
	"princeton":  16,
	"cmu":        21,
	"cornell":    20,
	"columbia":   23,
	"ucla":       15,
	"ucsd":       34,
	"umich":      25,
	"uiuc":       64,
	"gatech":     46,
	"uw":         63,
	"toronto":    18,
	"oxford":     2,
	"eth-zurich": 7,
}
