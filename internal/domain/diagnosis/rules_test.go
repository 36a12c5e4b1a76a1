package diagnosis

import (
	"strings"
	"testing"

	"github.com/dynastylab/rosterdoc/internal/domain/player"
	"github.com/dynastylab/rosterdoc/internal/domain/valuation"
)

func scored(name string, pos player.Position, age int, score float64, urgency valuation.Urgency) RosterPlayer {
	return RosterPlayer{
		Name:     name,
		Position: pos,
		Age:      age,
		Value:    valuation.DynastyValue{OverallScore: score},
		SellWindow: valuation.SellWindow{
			Urgency: urgency,
			Reason:  "window test",
		},
	}
}

func TestStrengthFor_BoundaryInclusiveBands(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		avg    float64
		rating StrengthRating
	}{
		{80, StrengthElite},
		{79.9, StrengthStrong},
		{65, StrengthStrong},
		{64.9, StrengthAverage},
		{50, StrengthAverage},
		{49.9, StrengthWeak},
		{35, StrengthWeak},
		{34.9, StrengthDire},
		{0, StrengthDire},
	}

	for _, tt := range tests {
		if got := strengthFor(tt.avg, th); got != tt.rating {
			t.Fatalf("avg=%.1f: expected %s, got %s", tt.avg, tt.rating, got)
		}
	}
}

func TestGroupByPosition_SortsAndDropsUntracked(t *testing.T) {
	players := []RosterPlayer{
		scored("low wr", player.PositionWideReceiver, 24, 40, valuation.UrgencyHold),
		scored("kicker", player.Position("K"), 30, 99, valuation.UrgencyHold),
		scored("high wr", player.PositionWideReceiver, 25, 90, valuation.UrgencyHold),
		scored("mid wr", player.PositionWideReceiver, 26, 70, valuation.UrgencyHold),
	}

	grouped := GroupByPosition(players)

	if _, ok := grouped[player.Position("K")]; ok {
		t.Fatal("untracked positions must be dropped")
	}
	wrs := grouped[player.PositionWideReceiver]
	if len(wrs) != 3 {
		t.Fatalf("expected 3 WRs, got %d", len(wrs))
	}
	if wrs[0].Name != "high wr" || wrs[1].Name != "mid wr" || wrs[2].Name != "low wr" {
		t.Fatalf("expected descending score order, got %s/%s/%s", wrs[0].Name, wrs[1].Name, wrs[2].Name)
	}
}

func TestBuildPositionGroup_StarterSplitAndAverages(t *testing.T) {
	th := DefaultThresholds()
	sorted := []RosterPlayer{
		scored("rb1", player.PositionRunningBack, 24, 90, valuation.UrgencyHold),
		scored("rb2", player.PositionRunningBack, 26, 80, valuation.UrgencyHold),
		scored("rb3", player.PositionRunningBack, 28, 70, valuation.UrgencyHold),
		scored("rb4", player.PositionRunningBack, 22, 40, valuation.UrgencyHold),
	}

	group := BuildPositionGroup(sorted, 3, th)

	if len(group.Starters) != 3 || len(group.Depth) != 1 {
		t.Fatalf("expected 3 starters and 1 depth, got %d/%d", len(group.Starters), len(group.Depth))
	}
	if group.TotalValue != 280 {
		t.Fatalf("total value must include depth, got %.1f", group.TotalValue)
	}
	if group.AvgScore != 80 {
		t.Fatalf("avg score covers starters only, got %.1f", group.AvgScore)
	}
	if group.AvgAge != 26 {
		t.Fatalf("avg age covers starters only, got %.1f", group.AvgAge)
	}
	if group.Strength != StrengthElite {
		t.Fatalf("avg 80 is elite, got %s", group.Strength)
	}
}

func TestBuildPositionGroup_EmptyIsDire(t *testing.T) {
	group := BuildPositionGroup(nil, 3, DefaultThresholds())
	if group.AvgScore != 0 || group.AvgAge != 0 {
		t.Fatalf("expected zero averages, got %.1f/%.1f", group.AvgScore, group.AvgAge)
	}
	if group.Strength != StrengthDire {
		t.Fatalf("expected dire for empty group, got %s", group.Strength)
	}
}

func TestClassify_ContenderBoundary(t *testing.T) {
	th := DefaultThresholds()

	if c, _ := classify(59, 0, 60, th); c == ClassificationContender {
		t.Fatal("contender score 59 must not classify CONTENDER")
	}
	c, confidence := classify(60, 0, 60, th)
	if c != ClassificationContender {
		t.Fatalf("contender score 60 must classify CONTENDER, got %s", c)
	}
	if confidence != 60 {
		t.Fatalf("expected confidence 60, got %d", confidence)
	}

	if _, confidence := classify(100, 0, 60, th); confidence != 95 {
		t.Fatalf("contender confidence must cap at 95, got %d", confidence)
	}
}

func TestClassify_RebuildTriggersAndFloors(t *testing.T) {
	th := DefaultThresholds()

	c, confidence := classify(0, 100, 60, th)
	if c != ClassificationRebuild || confidence != 90 {
		t.Fatalf("expected REBUILD/90, got %s/%d", c, confidence)
	}

	c, confidence = classify(0, 50, 60, th)
	if c != ClassificationRebuild || confidence != 50 {
		t.Fatalf("expected REBUILD/50 at cutoff, got %s/%d", c, confidence)
	}

	// Triggered only by the starter-score floor: confidence floors at 50
	// regardless of how low the rebuild score is.
	c, confidence = classify(0, 0, 49.9, th)
	if c != ClassificationRebuild || confidence != 50 {
		t.Fatalf("expected floored REBUILD/50, got %s/%d", c, confidence)
	}
	c, confidence = classify(0, 45, 30, th)
	if c != ClassificationRebuild || confidence != 50 {
		t.Fatalf("expected floored REBUILD/50, got %s/%d", c, confidence)
	}

	c, confidence = classify(0, 0, 58, th)
	if c != ClassificationStuck || confidence != 70 {
		t.Fatalf("expected STUCK/70, got %s/%d", c, confidence)
	}
}

func contenderRoster() []RosterPlayer {
	return []RosterPlayer{
		scored("qb one", player.PositionQuarterback, 25, 85, valuation.UrgencyHold),
		scored("rb one", player.PositionRunningBack, 24, 90, valuation.UrgencyHold),
		scored("rb two", player.PositionRunningBack, 25, 80, valuation.UrgencyHold),
		scored("rb three", player.PositionRunningBack, 26, 70, valuation.UrgencyHold),
		scored("wr one", player.PositionWideReceiver, 24, 88, valuation.UrgencyHold),
		scored("wr two", player.PositionWideReceiver, 25, 75, valuation.UrgencyHold),
		scored("wr three", player.PositionWideReceiver, 26, 60, valuation.UrgencyHold),
		scored("te one", player.PositionTightEnd, 25, 72, valuation.UrgencyHold),
	}
}

func TestDiagnoseTeam_ContenderScenario(t *testing.T) {
	got := DiagnoseTeam(contenderRoster(), DefaultThresholds())

	if got.Classification != ClassificationContender {
		t.Fatalf("expected CONTENDER, got %s", got.Classification)
	}
	if got.Confidence < 90 {
		t.Fatalf("expected confidence >= 90, got %d", got.Confidence)
	}
	if got.Metrics.EliteAssets < 4 {
		t.Fatalf("expected at least 4 elite assets, got %d", got.Metrics.EliteAssets)
	}
	if len(got.Recommendations.Moves) == 0 || len(got.Recommendations.Targets) == 0 {
		t.Fatal("expected scripted moves and targets")
	}
	if len(got.Recommendations.Sells) != 0 {
		t.Fatalf("no sell urgencies on roster, got %v", got.Recommendations.Sells)
	}
	if len(got.Recommendations.Holds) != 3 {
		t.Fatalf("expected holds capped at 3, got %d", len(got.Recommendations.Holds))
	}
	if !strings.Contains(got.Outlook, "Championship window") {
		t.Fatalf("unexpected outlook: %q", got.Outlook)
	}
}

func TestDiagnoseTeam_RebuildScenario(t *testing.T) {
	players := []RosterPlayer{
		scored("qb one", player.PositionQuarterback, 23, 40, valuation.UrgencySellSoon),
		scored("rb one", player.PositionRunningBack, 22, 45, valuation.UrgencySellNow),
		scored("rb two", player.PositionRunningBack, 23, 40, valuation.UrgencySellSoon),
		scored("rb three", player.PositionRunningBack, 24, 35, valuation.UrgencyHold),
		scored("wr one", player.PositionWideReceiver, 22, 42, valuation.UrgencySellSoon),
		scored("wr two", player.PositionWideReceiver, 23, 38, valuation.UrgencySellNow),
		scored("wr three", player.PositionWideReceiver, 24, 30, valuation.UrgencyHold),
		scored("te one", player.PositionTightEnd, 23, 33, valuation.UrgencyHold),
	}

	got := DiagnoseTeam(players, DefaultThresholds())

	if got.Classification != ClassificationRebuild {
		t.Fatalf("expected REBUILD, got %s", got.Classification)
	}
	if got.Confidence != 90 {
		t.Fatalf("expected confidence capped at 90, got %d", got.Confidence)
	}
	if len(got.Recommendations.Sells) != 3 {
		t.Fatalf("expected sells capped at 3, got %d", len(got.Recommendations.Sells))
	}
	// Highest-value sell candidate leads the list.
	if !strings.HasPrefix(got.Recommendations.Sells[0], "rb one") {
		t.Fatalf("expected rb one first in sells, got %q", got.Recommendations.Sells[0])
	}
}

func TestDiagnoseTeam_StuckScenario(t *testing.T) {
	players := []RosterPlayer{
		scored("qb one", player.PositionQuarterback, 26, 55, valuation.UrgencyHold),
		scored("rb one", player.PositionRunningBack, 26, 75, valuation.UrgencyHold),
		scored("rb two", player.PositionRunningBack, 26, 50, valuation.UrgencyHold),
		scored("rb three", player.PositionRunningBack, 26, 48, valuation.UrgencyHold),
		scored("wr one", player.PositionWideReceiver, 26, 76, valuation.UrgencyHold),
		scored("wr two", player.PositionWideReceiver, 26, 55, valuation.UrgencyHold),
		scored("wr three", player.PositionWideReceiver, 26, 50, valuation.UrgencyHold),
		scored("te one", player.PositionTightEnd, 26, 55, valuation.UrgencyHold),
	}

	got := DiagnoseTeam(players, DefaultThresholds())

	if got.Metrics.AvgStarterScore != 58 {
		t.Fatalf("scenario expects avg starter score 58, got %.2f", got.Metrics.AvgStarterScore)
	}
	if got.Metrics.EliteAssets != 2 {
		t.Fatalf("scenario expects 2 elite assets, got %d", got.Metrics.EliteAssets)
	}
	if got.Classification != ClassificationStuck {
		t.Fatalf("expected STUCK IN THE MIDDLE, got %s", got.Classification)
	}
	if got.Confidence != 70 {
		t.Fatalf("expected confidence exactly 70, got %d", got.Confidence)
	}
}

func TestDiagnoseTeam_EmptyRosterBoundary(t *testing.T) {
	got := DiagnoseTeam(nil, DefaultThresholds())

	if got.Metrics.TotalRosterValue != 0 || got.Metrics.AvgStarterScore != 0 || got.Metrics.EliteAssets != 0 {
		t.Fatalf("expected zeroed metrics, got %+v", got.Metrics)
	}
	// avgStarterScore 0 < 50 trips the rebuild floor even with no players.
	if got.Classification != ClassificationRebuild {
		t.Fatalf("expected REBUILD for empty roster, got %s", got.Classification)
	}
	if got.Confidence != 50 {
		t.Fatalf("expected floored confidence 50, got %d", got.Confidence)
	}
	for _, pos := range player.PositionOrder {
		group := got.Positions[pos]
		if len(group.Starters) != 0 || len(group.Depth) != 0 {
			t.Fatalf("expected empty group for %s", pos)
		}
		if group.Strength != StrengthDire {
			t.Fatalf("expected dire for empty %s group, got %s", pos, group.Strength)
		}
	}
}

func TestBuildRecommendations_SellSoonOnlyOffContender(t *testing.T) {
	th := DefaultThresholds()
	players := []RosterPlayer{
		scored("soon seller", player.PositionWideReceiver, 29, 80, valuation.UrgencySellSoon),
		scored("now seller", player.PositionRunningBack, 30, 70, valuation.UrgencySellNow),
	}

	asContender := buildRecommendations(ClassificationContender, players, th)
	if len(asContender.Sells) != 1 || !strings.HasPrefix(asContender.Sells[0], "now seller") {
		t.Fatalf("contenders only sell SELL NOW players, got %v", asContender.Sells)
	}

	asStuck := buildRecommendations(ClassificationStuck, players, th)
	if len(asStuck.Sells) != 2 {
		t.Fatalf("non-contenders sell SELL SOON too, got %v", asStuck.Sells)
	}
	if !strings.HasPrefix(asStuck.Sells[0], "soon seller") {
		t.Fatalf("sells follow score order, got %v", asStuck.Sells)
	}
}

func TestBuildOutlook_ContenderWindowShrinksWithAge(t *testing.T) {
	tests := []struct {
		avgAge float64
		years  string
	}{
		{24, "4 more year(s)"},
		{26, "3 more year(s)"},
		{28, "2 more year(s)"},
		{30, "1 more year(s)"},
		{34, "1 more year(s)"}, // clamped at one
	}

	for _, tt := range tests {
		outlook := buildOutlook(ClassificationContender, Metrics{AvgStarterAge: tt.avgAge})
		if !strings.Contains(outlook, tt.years) {
			t.Fatalf("avgAge=%.0f: expected %q in %q", tt.avgAge, tt.years, outlook)
		}
	}
}

func TestRecommendationScripts_DistinctPerClassification(t *testing.T) {
	contender := scriptFor(ClassificationContender)
	rebuild := scriptFor(ClassificationRebuild)
	stuck := scriptFor(ClassificationStuck)

	if contender.Moves[0] == rebuild.Moves[0] || rebuild.Moves[0] == stuck.Moves[0] {
		t.Fatal("classification scripts must differ")
	}
	if len(contender.Targets) == 0 || len(rebuild.Targets) == 0 || len(stuck.Targets) == 0 {
		t.Fatal("every script carries targets")
	}
}
