package sentiment

import "sentimentheatmap/internal/provider"

const (
	HeadlineWeight = 1.5
	SummaryWeight  = 1.0

	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// Classify buckets a score using the fixed ±0.05 thresholds.
func Classify(score float64) Label {
	switch {
	case score >= PositiveThreshold:
		return Positive
	case score <= NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// Verdict is the sentiment of one instrument over a set of news items.
// The counts always sum to ItemCount.
type Verdict struct {
	AverageScore  float64 `json:"sentiment_score"`
	Label         Label   `json:"sentiment"`
	ItemCount     int     `json:"mentions"`
	PositiveCount int     `json:"positive_mentions"`
	NegativeCount int     `json:"negative_mentions"`
	NeutralCount  int     `json:"neutral_mentions"`
}

// NeutralVerdict is the verdict for an instrument with no news.
func NeutralVerdict() Verdict {
	return Verdict{Label: Neutral}
}

// NewsAggregator weighs headline and summary scores per item and
// averages them into a Verdict.
type NewsAggregator struct {
	scorer Scorer
}

func NewNewsAggregator(scorer Scorer) *NewsAggregator {
	if scorer == nil {
		scorer = NewLexiconScorer(nil)
	}
	return &NewsAggregator{scorer: scorer}
}

// ItemScore is the weighted score of one item; a fully positive headline
// and summary yields exactly 1.
func (a *NewsAggregator) ItemScore(item provider.NewsItem) float64 {
	h := a.scorer.Score(item.Headline)
	s := a.scorer.Score(item.Summary)
	return (HeadlineWeight*h + SummaryWeight*s) / (HeadlineWeight + SummaryWeight)
}

func (a *NewsAggregator) Analyze(items []provider.NewsItem) Verdict {
	if len(items) == 0 {
		return NeutralVerdict()
	}
	v := Verdict{ItemCount: len(items)}
	var total float64
	for _, item := range items {
		score := a.ItemScore(item)
		total += score
		switch Classify(score) {
		case Positive:
			v.PositiveCount++
		case Negative:
			v.NegativeCount++
		default:
			v.NeutralCount++
		}
	}
	v.AverageScore = clamp(total / float64(len(items)))
	v.Label = Classify(v.AverageScore)
	return v
}

func clamp(x float64) float64 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	}
	return x
}
