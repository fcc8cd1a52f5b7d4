package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-backend/internal/dataset"
	"realestate-backend/internal/models"
)

func testResolver() AreaResolver {
	return dataset.NewSnapshot([]models.Record{
		{Area: "Wakad", Year: 2021, Price: 5000000, Demand: 30},
		{Area: "Aundh", Year: 2021, Price: 7000000, Demand: 55},
		{Area: "Aundh Gaon", Year: 2021, Price: 4200000, Demand: 20},
		{Area: "Baner", Year: 2021, Price: 6100000, Demand: 48},
	})
}

func TestClassifyAnalyzeSingleArea(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("Analyze Wakad", testResolver())
	assert.Equal(t, models.IntentAnalyze, intent.Kind)
	assert.Equal(t, []string{"Wakad"}, intent.Areas)
	assert.Equal(t, "Analyze Wakad", intent.RawQuery)
}

func TestClassifyCompareTwoAreas(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("Compare Aundh and Baner", testResolver())
	assert.Equal(t, models.IntentCompare, intent.Kind)
	assert.Equal(t, []string{"Aundh", "Baner"}, intent.Areas)
}

func TestClassifyCompareKeepsLeftToRightOrder(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("baner vs aundh", testResolver())
	assert.Equal(t, models.IntentCompare, intent.Kind)
	assert.Equal(t, []string{"Baner", "Aundh"}, intent.Areas)
}

// A compare keyword outranks trend/demand keywords in the same query.
func TestClassifyPriorityOrder(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("compare the demand trend of Aundh versus Baner", testResolver())
	assert.Equal(t, models.IntentCompare, intent.Kind)
}

func TestClassifyTrend(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("show me the price trend for Wakad", testResolver())
	assert.Equal(t, models.IntentTrend, intent.Kind)
	assert.Equal(t, []string{"Wakad"}, intent.Areas)
	assert.Zero(t, intent.YearSpan)
}

func TestClassifyTrendWithYearSpan(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("Wakad price growth over 3 years", testResolver())
	assert.Equal(t, models.IntentTrend, intent.Kind)
	assert.Equal(t, 3, intent.YearSpan)
}

// A span phrase alone classifies as a trend query even without a trend
// keyword.
func TestClassifySpanPhraseTriggersTrend(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("Wakad over 3 years", testResolver())
	assert.Equal(t, models.IntentTrend, intent.Kind)
	assert.Equal(t, []string{"Wakad"}, intent.Areas)
	assert.Equal(t, 3, intent.YearSpan)
}

func TestClassifyDemand(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("What is the demand in Baner?", testResolver())
	assert.Equal(t, models.IntentDemand, intent.Kind)
	assert.Equal(t, []string{"Baner"}, intent.Areas)
}

// Longest-match invariant: a query naming "Aundh Gaon" must not resolve to
// the shorter "Aundh".
func TestClassifyLongestMatchWins(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("Analyze Aundh Gaon", testResolver())
	require.Equal(t, models.IntentAnalyze, intent.Kind)
	assert.Equal(t, []string{"Aundh Gaon"}, intent.Areas)
}

// Compare with only one resolvable area degrades to single-area analysis.
func TestClassifyCompareDegradesToAnalyze(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("Compare Aundh and Shivajinagar", testResolver())
	assert.Equal(t, models.IntentAnalyze, intent.Kind)
	assert.Equal(t, []string{"Aundh"}, intent.Areas)
}

func TestClassifyCompareNoAreasIsUnknown(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("compare apples and oranges", testResolver())
	assert.Equal(t, models.IntentUnknown, intent.Kind)
	assert.Empty(t, intent.Areas)
}

func TestClassifyGibberishIsUnknown(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("asdf qwer", testResolver())
	assert.Equal(t, models.IntentUnknown, intent.Kind)
	assert.Empty(t, intent.Areas)
	assert.Equal(t, "asdf qwer", intent.RawQuery)
}

func TestClassifyEmptyQueryIsUnknown(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("", testResolver())
	assert.Equal(t, models.IntentUnknown, intent.Kind)
}

func TestClassifyKeywordsNeverResolveAsAreas(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("show price trends", testResolver())
	assert.Equal(t, models.IntentUnknown, intent.Kind)
	assert.Empty(t, intent.Areas)
}
