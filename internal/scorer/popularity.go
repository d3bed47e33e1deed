package scorer

import "github.com/julienpequegnot/qaboard/internal/config"

// Popularity weighs engagement. It is unbounded and grows with activity.
func Popularity(answers, votes int, w config.PopularityWeights) float64 {
	return float64(answers)*w.Answer + float64(votes)*w.Vote
}
