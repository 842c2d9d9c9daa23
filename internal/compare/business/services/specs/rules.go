package specs

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Pick selects which of several matches of a rule is used.
type Pick int

const (
	PickFirst Pick = iota
	PickLast
	PickMax
)

// Rule extracts one fact from free text. Rules for the same field are tried
// in order and the first rule producing a value wins.
type Rule struct {
	Field   string
	Pattern *regexp.Regexp
	Pick    Pick
	// Scale multiplies the captured number (TB to GB).
	Scale float64
	// MinMatches is the number of matches required before the rule applies.
	MinMatches int
	// Min and Max bound accepted values; zero disables the bound.
	Min, Max float64
	// Tags are string facts set together with the value.
	Tags map[string]string
	// Flag rules record presence only.
	Flag bool
	// Text rules record the upper-cased match as a string fact.
	Text bool
}

// Facts is what a rule set extracted from one text.
type Facts struct {
	Numbers map[string]float64
	Strings map[string]string
	Flags   map[string]bool
}

func (f Facts) Number(field string) (float64, bool) {
	v, ok := f.Numbers[field]
	return v, ok
}

// Extract runs rules over text, which is expected in lower case.
func Extract(rules []Rule, text string) Facts {
	facts := Facts{
		Numbers: map[string]float64{},
		Strings: map[string]string{},
		Flags:   map[string]bool{},
	}
	for _, r := range rules {
		if r.Flag {
			if !facts.Flags[r.Field] && r.Pattern.MatchString(text) {
				facts.Flags[r.Field] = true
			}
			continue
		}
		if r.Text {
			if _, done := facts.Strings[r.Field]; !done {
				if m := r.Pattern.FindString(text); m != "" {
					facts.Strings[r.Field] = strings.ToUpper(strings.Join(strings.Fields(m), " "))
				}
			}
			continue
		}
		if _, done := facts.Numbers[r.Field]; done {
			continue
		}
		if v, ok := r.apply(text); ok {
			facts.Numbers[r.Field] = v
			for k, tag := range r.Tags {
				facts.Strings[k] = tag
			}
		}
	}
	return facts
}

func (r Rule) apply(text string) (float64, bool) {
	matches := r.Pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 || len(matches) < r.MinMatches {
		return 0, false
	}

	var values []float64
	for _, m := range matches {
		if len(m) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
		if err != nil {
			continue
		}
		if r.Scale != 0 {
			v *= r.Scale
		}
		if (r.Min != 0 && v < r.Min) || (r.Max != 0 && v > r.Max) {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return 0, false
	}

	switch r.Pick {
	case PickLast:
		return values[len(values)-1], true
	case PickMax:
		best := values[0]
		for _, v := range values[1:] {
			best = math.Max(best, v)
		}
		return best, true
	default:
		return values[0], true
	}
}

// round is half-up rounding to an integer score.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// capped returns round(x) limited to [0,10].
func capped(x float64) int {
	return clamp(round(x))
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// starScore is the generic quality estimate derived from a 0-5 rating.
func starScore(stars float64) int {
	return capped(stars * 2)
}
