package service

import (
	"regexp"
	"strconv"
	"strings"

	"realestate-backend/internal/models"
)

// AreaResolver is the lookup surface the classifier needs from the loaded
// dataset. The dataset snapshot satisfies it.
type AreaResolver interface {
	Resolve(fragment string) (string, bool)
	Areas() []string
}

// intentRule binds a keyword set to an intent. Rules run in declaration
// order: the first matching rule wins, so priority lives in the table, not
// in scattered branches.
type intentRule struct {
	kind     models.IntentKind
	keywords []string
}

var intentRules = []intentRule{
	{models.IntentCompare, []string{"compare", "comparison", "versus", "vs"}},
	{models.IntentTrend, []string{"trend", "trends", "growth", "appreciation", "history"}},
	{models.IntentDemand, []string{"demand", "demands", "popularity"}},
}

// maxFragmentWords bounds the area-name window scan.
const maxFragmentWords = 4

var yearSpanRe = regexp.MustCompile(`(?:over|last|past)\s+(\d{1,2})\s+years?`)

// Classifier turns raw queries into structured intents.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify lower-cases and tokenizes the query, extracts area names via the
// resolver (greedy longest-match over word windows), and picks the intent
// from the ordered rule table. A query matching several categories takes
// the earliest-checked one. Unintelligible input classifies as Unknown;
// classification never fails.
//
// A compare keyword with fewer than two resolved areas degrades: one area
// falls back to single-area analysis, zero areas to Unknown.
func (c *Classifier) Classify(rawQuery string, resolver AreaResolver) models.Intent {
	lowered := strings.ToLower(rawQuery)
	tokens := tokenize(lowered)

	areas := extractAreas(tokens, resolver)
	matched := matchRules(tokens)

	intent := models.Intent{
		Kind:     models.IntentUnknown,
		Areas:    areas,
		RawQuery: rawQuery,
	}

	// A span phrase ("over 3 years") is itself a trend trigger, not just a
	// range restriction.
	if m := yearSpanRe.FindStringSubmatch(lowered); m != nil {
		if span, err := strconv.Atoi(m[1]); err == nil {
			intent.YearSpan = span
			matched[models.IntentTrend] = true
		}
	}

	switch {
	case matched[models.IntentCompare] && len(areas) >= 2:
		intent.Kind = models.IntentCompare
		intent.Areas = areas[:2]
	case matched[models.IntentTrend] && len(areas) >= 1:
		intent.Kind = models.IntentTrend
		intent.Areas = areas[:1]
	case matched[models.IntentDemand] && len(areas) >= 1:
		intent.Kind = models.IntentDemand
		intent.Areas = areas[:1]
	case len(areas) >= 1:
		intent.Kind = models.IntentAnalyze
		intent.Areas = areas[:1]
	default:
		intent.Areas = nil
	}

	return intent
}

// matchRules reports which intent categories the token set triggers.
func matchRules(tokens []string) map[models.IntentKind]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}

	matched := make(map[models.IntentKind]bool, len(intentRules))
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if set[kw] {
				matched[rule.kind] = true
				break
			}
		}
	}
	return matched
}

// extractAreas scans the token stream for substrings that resolve via the
// area index. At each position the longest window is tried first, so a
// short alias never swallows a longer area name ("aundh gaon" resolves as
// one area, not "aundh" plus a leftover).
func extractAreas(tokens []string, resolver AreaResolver) []string {
	var areas []string
	seen := make(map[string]bool)

	for start := 0; start < len(tokens); {
		advanced := false
		maxSize := maxFragmentWords
		if rest := len(tokens) - start; rest < maxSize {
			maxSize = rest
		}
		for size := maxSize; size >= 1; size-- {
			fragment := strings.Join(tokens[start:start+size], " ")
			if isKeywordFragment(fragment) {
				continue
			}
			if area, ok := resolver.Resolve(fragment); ok {
				if !seen[area] {
					seen[area] = true
					areas = append(areas, area)
				}
				start += size
				advanced = true
				break
			}
		}
		if !advanced {
			start++
		}
	}
	return areas
}

// isKeywordFragment blocks intent keywords and filler words from being
// treated as area-name fragments.
func isKeywordFragment(fragment string) bool {
	switch fragment {
	case "and", "the", "for", "with", "about", "between",
		"price", "prices", "cost", "value", "show", "analyze", "analysis":
		return true
	}
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if fragment == kw {
				return true
			}
		}
	}
	return false
}

func tokenize(lowered string) []string {
	fields := strings.Fields(lowered)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.Trim(f, ".,!?;:\"'()")
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
