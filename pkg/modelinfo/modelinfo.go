// Package modelinfo rates locally installed models and recommends
// conservative context sizes. Everything here is advisory, best-effort
// metadata built from static tables; there is no I/O.
package modelinfo

import (
	"strconv"
	"strings"
)

// Rating grades a model family's multilingual/instruction quality.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingFair      Rating = "fair"
	RatingPoor      Rating = "poor"
	RatingUnknown   Rating = "unknown"
)

// Support is the outcome of rating a model name.
type Support struct {
	Rating      Rating
	Recommended bool
}

// familyRating maps a model family prefix to its grade. Matching is
// longest-prefix: "qwen2.5-7b" must resolve to the "qwen2.5" entry, not
// "qwen2".
type familyRating struct {
	family      string
	rating      Rating
	recommended bool
}

var familyRatings = []familyRating{
	{"qwen2.5", RatingExcellent, true},
	{"qwen2", RatingGood, false},
	{"qwen", RatingFair, false},
	{"llama3.1", RatingGood, true},
	{"llama3", RatingGood, false},
	{"llama2", RatingPoor, false},
	{"gemma2", RatingGood, true},
	{"gemma", RatingFair, false},
	{"mistral-nemo", RatingGood, true},
	{"mistral", RatingGood, false},
	{"mixtral", RatingGood, false},
	{"phi3.5", RatingFair, false},
	{"phi3", RatingFair, false},
	{"command-r", RatingGood, false},
	{"deepseek-r1", RatingGood, false},
	{"tinyllama", RatingPoor, false},
}

// RateSupport resolves a model name against the static family table using
// longest-prefix matching; ties prefer the longer, more specific family
// string. Unmatched names get a neutral unknown rating and are never
// recommended.
func RateSupport(modelName string) Support {
	name := strings.ToLower(strings.TrimSpace(modelName))

	best := -1
	for i, fr := range familyRatings {
		if !strings.HasPrefix(name, fr.family) {
			continue
		}
		if best < 0 || len(fr.family) > len(familyRatings[best].family) {
			best = i
		}
	}

	if best < 0 {
		return Support{Rating: RatingUnknown}
	}

	return Support{
		Rating:      familyRatings[best].rating,
		Recommended: familyRatings[best].recommended,
	}
}

// Diagnosis summarizes what a model's size class implies for local use.
type Diagnosis struct {
	ParameterSize      string
	Rating             Rating
	RecommendedContext int
	Note               string
}

// DefaultContext is used when the parameter size matches no known bucket.
const DefaultContext = 8192

// sizeBucket picks a conservative context window for a parameter-count range
// (in billions, inclusive).
type sizeBucket struct {
	min, max float64
	context  int
	note     string
}

var sizeBuckets = []sizeBucket{
	{1, 3, 4096, "note.modelSmall"},
	{7, 8, 8192, "note.modelEntry"},
	{10, 14, 16384, "note.modelMid"},
	{20, 34, 32768, "note.modelLarge"},
	{70, 72, 32768, "note.modelHeavy"},
}

// Diagnose combines the family rating with a size-class lookup. The
// parameterSize string comes from the local server's model details (e.g.
// "7.6B"); sizes outside every bucket fall back to the default mid context
// with no note.
func Diagnose(modelName, parameterSize string) Diagnosis {
	d := Diagnosis{
		ParameterSize:      parameterSize,
		Rating:             RateSupport(modelName).Rating,
		RecommendedContext: DefaultContext,
	}

	billions, ok := parseBillions(parameterSize)
	if !ok {
		return d
	}

	for _, b := range sizeBuckets {
		if billions >= b.min && billions <= b.max {
			d.RecommendedContext = b.context
			d.Note = b.note

			break
		}
	}

	return d
}

// parseBillions extracts the numeric value from strings like "7B", "7.6B",
// or "70.6b". Million-scale sizes ("335M") report ok but a sub-1 value, so
// they land outside every bucket.
func parseBillions(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return 0, false
	}

	scale := 1.0
	switch {
	case strings.HasSuffix(s, "B"):
		s = strings.TrimSuffix(s, "B")
	case strings.HasSuffix(s, "M"):
		s = strings.TrimSuffix(s, "M")
		scale = 1.0 / 1000
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return 0, false
	}

	return v * scale, true
}
