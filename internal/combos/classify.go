package combos

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type ComboType string

const (
	ComboHeat ComboType = "heat"
	ComboWall ComboType = "wall"
	ComboBnB  ComboType = "bnb"
)

// InferType guesses the kind of route from the notation and move names.
// heat takes precedence over wall.
func InferType(text string, moves []MoveStep) ComboType {
	parts := []string{text}
	for _, m := range moves {
		parts = append(parts, m.Name)
	}
	search := strings.ToLower(strings.Join(parts, " "))

	if strings.Contains(search, "heat") {
		return ComboHeat
	}
	if strings.Contains(search, "wall") {
		return ComboWall
	}
	return ComboBnB
}

var digitsRegex = regexp.MustCompile(`\d+`)

// LeadingNumber returns the first run of digits in s, or 0.
func LeadingNumber(s string) int {
	match := digitsRegex.FindString(s)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return n
}

func Carry(hits int) string {
	if hits >= 9 {
		return "High"
	}
	if hits >= 6 {
		return "Mid"
	}
	return "Low"
}

var separatorRegex = regexp.MustCompile(`[_-]+`)

// DisplayName turns a character id like "jack-8" into "Jack 8".
func DisplayName(id string) string {
	words := strings.Fields(separatorRegex.ReplaceAllString(id, " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

type CharacterSummary struct {
	Name       string
	Display    string
	Total      int
	ByType     map[ComboType]int
	BestDamage int
	MaxHits    int
}

func Summarize(rs *ResultSet) []CharacterSummary {
	var out []CharacterSummary
	for _, name := range rs.Characters() {
		records, _ := rs.Get(name)
		summary := CharacterSummary{
			Name:    name,
			Display: DisplayName(name),
			Total:   len(records),
			ByType:  map[ComboType]int{},
		}
		for _, r := range records {
			summary.ByType[InferType(r.Text, r.Moves)]++
			summary.BestDamage = max(summary.BestDamage, LeadingNumber(r.Damage))
			summary.MaxHits = max(summary.MaxHits, LeadingNumber(r.Hits))
		}
		out = append(out, summary)
	}
	return out
}
