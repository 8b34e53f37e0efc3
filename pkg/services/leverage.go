package services

import (
	"github.com/stackwise-ai/ledger-engine/pkg/config"
	"github.com/stackwise-ai/ledger-engine/pkg/models"
)

// LeverageClassifier derives the leverage ratio and its qualitative band
// from aggregated ledger totals. Band boundaries and rationale text come
// entirely from configuration; the classifier only walks the table.
type LeverageClassifier struct {
	bands         []config.LeverageBand
	noneRationale string
}

// NewLeverageClassifier creates a classifier over the given band table.
// Bands must be ordered by ascending upper bound, with an open-ended
// (zero upper bound) last band; config.Load validates this.
func NewLeverageClassifier(bands []config.LeverageBand, noneRationale string) *LeverageClassifier {
	return &LeverageClassifier{bands: bands, noneRationale: noneRationale}
}

// Classify computes skillDebtTotal / netAssetTotal and assigns its band.
// A zero net asset total yields ratio 0 and the "none" band: a new owner
// with no mastered skills reports no leverage rather than an undefined
// state. Upper bounds are inclusive; the last band is open-ended.
func (c *LeverageClassifier) Classify(skillDebtTotal, netAssetTotal float64) models.Leverage {
	var ratio float64
	if netAssetTotal > 0 {
		ratio = skillDebtTotal / netAssetTotal
	}

	if ratio == 0 {
		return models.Leverage{
			Ratio:     0,
			Band:      models.LeverageBandNone,
			Rationale: c.noneRationale,
		}
	}

	for _, band := range c.bands {
		if band.UpperBound == 0 || ratio <= band.UpperBound {
			return models.Leverage{Ratio: ratio, Band: band.Band, Rationale: band.Rationale}
		}
	}

	// Unreachable with a validated table; fall back to the last band.
	last := c.bands[len(c.bands)-1]
	return models.Leverage{Ratio: ratio, Band: last.Band, Rationale: last.Rationale}
}
