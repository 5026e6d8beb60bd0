package stats

// Derived rate metrics, recomputed from summed season components. Season
// sums deliberately drop pre-aggregated rate columns (see columns.go);
// these helpers are the sanctioned way to get season-level rates back.

// PasserRating computes the NFL passer rating (0-158.3) from season totals
// using the official four-component formula.
func PasserRating(completions, attempts, yards, touchdowns, interceptions float64) float64 {
	if attempts <= 0 {
		return 0
	}
	a := clampComponent((completions/attempts - 0.3) * 5)
	b := clampComponent((yards/attempts - 3) * 0.25)
	c := clampComponent(touchdowns / attempts * 20)
	d := clampComponent(2.375 - interceptions/attempts*25)
	return (a + b + c + d) / 6 * 100
}

func clampComponent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 2.375:
		return 2.375
	default:
		return v
	}
}

// AdjYardsPerAttempt computes AY/A = (yards + 20*TD - 45*INT) / attempts,
// weighting touchdowns and interceptions over raw yards per attempt.
func AdjYardsPerAttempt(yards, touchdowns, interceptions, attempts float64) float64 {
	if attempts <= 0 {
		return 0
	}
	return (yards + 20*touchdowns - 45*interceptions) / attempts
}

// CompletionPercentage returns completions/attempts as a percentage.
func CompletionPercentage(completions, attempts float64) float64 {
	if attempts <= 0 {
		return 0
	}
	return completions / attempts * 100
}

// CatchPercentage returns receptions/targets as a percentage.
func CatchPercentage(receptions, targets float64) float64 {
	if targets <= 0 {
		return 0
	}
	return receptions / targets * 100
}

// YardsPerCarry returns rushing yards per carry.
func YardsPerCarry(yards, carries float64) float64 {
	if carries <= 0 {
		return 0
	}
	return yards / carries
}
