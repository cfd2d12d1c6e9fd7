package util

import (
	"regexp"
	"strconv"

	"github.com/tidwall/gjson"
)

var atsScorePattern = regexp.MustCompile(`"?ats_score"?\s*:\s*(\d+)`)

// ParseATSScore reads ats_score from a model reply, as JSON when possible
// and by pattern otherwise.
func ParseATSScore(raw string) (int, bool) {
	cleaned := CleanJSONResponse(raw)
	if gjson.Valid(cleaned) {
		if r := gjson.Get(cleaned, "ats_score"); r.Type == gjson.Number {
			return int(r.Int()), true
		}
	}
	m := atsScorePattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	score, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return score, true
}
