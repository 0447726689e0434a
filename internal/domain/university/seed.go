package university

// seedEntry defines one canonical university and its common name variants.
type seedEntry struct {
	display string
	aliases []string
}

// seedDictionary is the fixed exact-match dictionary of common variants.
// Fuzzy matching covers misspellings; this covers names that rename rather
// than misspell (abbreviations, campus-first orderings).
var seedDictionary = map[string]seedEntry{
	"berkeley": {
		display: "University of California, Berkeley",
		aliases: []string{"UC Berkeley", "UCB", "Cal Berkeley", "Berkeley"},
	},
	"mit": {
		display: "Massachusetts Institute of Technology",
		aliases: []string{"MIT"},
	},
	"stanford": {
		display: "Stanford University",
		aliases: []string{"Stanford"},
	},
	"cmu": {
		display: "Carnegie Mellon University",
		aliases: []string{"CMU", "Carnegie Mellon"},
	},
	"harvard": {
		display: "Harvard University",
		aliases: []string{"Harvard"},
	},
	"princeton": {
		display: "Princeton University",
		aliases: []string{"Princeton"},
	},
	"caltech": {
		display: "California Institute of Technology",
		aliases: []string{"Caltech", "Cal Tech"},
	},
	"gatech": {
		display: "Georgia Institute of Technology",
		aliases: []string{"Georgia Tech", "GaTech", "GT"},
	},
	"umich": {
		display: "University of Michigan, Ann Arbor",
		aliases: []string{"UMich", "Michigan", "University of Michigan"},
	},
	"uiuc": {
		display: "University of Illinois Urbana-Champaign",
		aliases: []string{"UIUC", "Illinois", "University of Illinois at Urbana-Champaign"},
	},
	"ucla": {
		display: "University of California, Los Angeles",
		aliases: []string{"UCLA", "UC Los Angeles"},
	},
	"ucsd": {
		display: "University of California, San Diego",
		aliases: []string{"UCSD", "UC San Diego"},
	},
	"cornell": {
		display: "Cornell University",
		aliases: []string{"Cornell"},
	},
	"columbia": {
		display: "Columbia University",
		aliases: []string{"Columbia"},
	},
	"uw": {
		display: "University of Washington",
		aliases: []string{"UW", "UDub", "Washington"},
	},
	"toronto": {
		display: "University of Toronto",
		aliases: []string{"UofT", "U of T", "Toronto"},
	},
	"oxford": {
		display: "University of Oxford",
		aliases: []string{"Oxford"},
	},
	"eth-zurich": {
		display: "ETH Zurich",
		aliases: []string{"ETH", "ETH Zürich", "Swiss Federal Institute of Technology"},
	},
}
