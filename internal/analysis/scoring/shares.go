// internal/analysis/scoring/shares.go
package scoring

import (
	"math"

	"brandsignal/internal/models"
)

// BrandSignal is the per-brand input to share-of-voice computation.
type BrandSignal struct {
	Brand      string
	Visibility int
	Sentiment  models.Sentiment
	Mentions   int
	Succeeded  bool
}

// CompositeScore is the comparable per-brand score used for market share and
// share of voice. A brand whose every provider task failed carries no signal
// and scores zero: its neutral placeholder sentiment must not earn a bonus.
func CompositeScore(sig BrandSignal) int {
	if !sig.Succeeded {
		return 0
	}

	mentionPart := sig.Mentions * 5
	if mentionPart > 30 {
		mentionPart = 30
	}

	return sig.Visibility + sentimentBonus(sig.Sentiment) + mentionPart + 10
}

// ShareOfVoice expresses each brand's composite score as a percentage of the
// total. The primary brand comes first in the returned slice. Shares sum to
// exactly 100 when the total is positive, and are all zero when it is zero.
func ShareOfVoice(primary BrandSignal, competitors []BrandSignal) []models.BrandShare {
	signals := make([]BrandSignal, 0, len(competitors)+1)
	signals = append(signals, primary)
	signals = append(signals, competitors...)

	shares := make([]models.BrandShare, len(signals))
	total := 0
	for i, sig := range signals {
		composite := CompositeScore(sig)
		shares[i] = models.BrandShare{Brand: sig.Brand, CompositeScore: composite}
		total += composite
	}

	if total <= 0 {
		return shares
	}

	// Round to two decimals, then let the largest share absorb the rounding
	// residual so the set sums to exactly 100.
	assigned := 0.0
	largest := 0
	for i := range shares {
		pct := math.Round(float64(shares[i].CompositeScore)/float64(total)*10000) / 100
		shares[i].SharePercent = pct
		assigned += pct
		if shares[i].CompositeScore > shares[largest].CompositeScore {
			largest = i
		}
	}
	residual := math.Round((100-assigned)*100) / 100
	shares[largest].SharePercent = math.Round((shares[largest].SharePercent+residual)*100) / 100

	return shares
}

// MarketShare is the primary brand's slice of the comparison set.
func MarketShare(primary BrandSignal, competitors []BrandSignal) float64 {
	shares := ShareOfVoice(primary, competitors)
	return shares[0].SharePercent
}
