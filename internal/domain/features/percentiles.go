package features

// Test identifies which percentile table to consult.
type Test string

// Tests with percentile tables.
const (
	TestGREVerbal Test = "gre_verbal"
	TestGREQuant  Test = "gre_quant"
	TestGREAW     Test = "gre_aw"
	TestTOEFL     Test = "toefl"
	TestIELTS     Test = "ielts"
)

// step is one threshold in a monotonic percentile table.
type step struct {
	score      float64
	percentile float64
}

// Percentile tables are fixed step functions approximating published score
// distributions. Thresholds are descending; a score between thresholds takes
// the percentile of the nearest lower threshold.
var percentileTables = map[Test][]step{
	TestGREVerbal: {
		{170, 99}, {165, 96}, {160, 86}, {155, 69},
		{150, 48}, {145, 27}, {140, 12}, {135, 4}, {130, 1},
	},
	TestGREQuant: {
		{170, 97}, {165, 89}, {160, 76}, {155, 59},
		{150, 38}, {145, 20}, {140, 8}, {135, 2}, {130, 1},
	},
	TestGREAW: {
		{6, 99}, {5.5, 98}, {5, 92}, {4.5, 81},
		{4, 56}, {3.5, 38}, {3, 14}, {2.5, 6}, {2, 2}, {0, 1},
	},
	TestTOEFL: {
		{118, 99}, {110, 90}, {100, 74}, {90, 54},
		{80, 35}, {70, 20}, {60, 10}, {0, 1},
	},
	TestIELTS: {
		{9, 99}, {8.5, 98}, {8, 92}, {7.5, 81},
		{7, 64}, {6.5, 45}, {6, 28}, {0, 1},
	},
}

// Percentile maps a raw score onto its approximate population percentile via
// the test's step table. A nil score returns the neutral percentile and
// false; a score below the lowest threshold takes the lowest percentile.
// For a fixed test, higher scores never map to lower percentiles.
func Percentile(test Test, raw *float64) (float64, bool) {
	if raw == nil {
		return neutralPercentile, false
	}
	table, ok := percentileTables[test]
	if !ok {
		return neutralPercentile, false
	}
	for _, s := range table {
		if *raw >= s.score {
			return s.percentile, true
		}
	}
	return table[len(table)-1].percentile, true
}
