package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// SplitList splits a comma separated list into normalized, non-empty names.
func SplitList(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		part = NormalizeName(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// ClosestMatch returns the candidate with the highest Jaro-Winkler
// similarity to name, and that similarity.
func ClosestMatch(name string, candidates []string) (string, float64) {
	name = NormalizeName(name)
	best := ""
	bestScore := 0.0
	for _, c := range candidates {
		score := matchr.JaroWinkler(name, NormalizeName(c), false)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best, bestScore
}
