package sentiment

// defaultLexicon maps lower-cased words to a valence in roughly [-4, 4].
// General-purpose entries follow the VADER scale; the market vocabulary
// (beats, plunge, downgrade, ...) is tuned for company news.
var defaultLexicon = map[string]float64{
	// positive
	"good":          1.9,
	"great":         3.1,
	"excellent":     2.7,
	"amazing":       2.8,
	"awesome":       3.1,
	"best":          3.2,
	"better":        1.9,
	"positive":      2.6,
	"strong":        2.3,
	"stronger":      2.1,
	"strongest":     2.5,
	"strength":      2.2,
	"win":           2.8,
	"wins":          2.7,
	"winning":       2.4,
	"won":           2.7,
	"success":       2.7,
	"successful":    2.8,
	"gain":          2.4,
	"gains":         1.8,
	"gained":        1.6,
	"growth":        1.6,
	"growing":       1.3,
	"profit":        1.9,
	"profits":       1.9,
	"profitable":    1.9,
	"boost":         1.7,
	"boosts":        1.3,
	"boosted":       1.5,
	"improve":       1.9,
	"improved":      2.1,
	"improves":      1.8,
	"improvement":   2.0,
	"optimistic":    1.3,
	"optimism":      2.5,
	"confident":     2.2,
	"confidence":    2.3,
	"happy":         2.7,
	"love":          3.2,
	"loves":         2.7,
	"benefit":       2.0,
	"benefits":      1.6,
	"opportunity":   1.8,
	"opportunities": 1.6,
	"beat":          2.4,
	"beats":         2.9,
	"rally":         1.9,
	"rallies":       1.7,
	"surge":         2.0,
	"surges":        2.0,
	"surged":        1.9,
	"soar":          2.2,
	"soars":         2.2,
	"soared":        2.1,
	"jumps":         1.2,
	"upgrade":       1.6,
	"upgraded":      1.5,
	"outperform":    1.8,
	"outperforms":   1.8,
	"bullish":       2.1,
	"robust":        1.6,
	"innovative":    1.9,
	"innovation":    1.6,
	"support":       1.7,
	"secure":        1.4,
	"stable":        1.2,
	"recovery":      1.4,
	"recover":       1.2,
	"rebound":       1.3,
	"rebounds":      1.3,
	"upbeat":        1.9,
	"exceed":        1.4,
	"exceeds":       1.4,
	"exceeded":      1.3,
	"impressive":    2.5,
	"record-high":   1.8,
	"breakthrough":  2.2,
	"approval":      2.0,
	"approved":      1.8,
	"praise":        2.6,
	"praised":       2.3,
	"popular":       1.8,
	"wonderful":     2.7,
	"favorable":     2.1,
	"attractive":    1.9,
	"dividend":      0.8,
	"raise":         0.9,
	"raises":        0.9,
	"expand":        1.1,
	"expands":       1.1,
	"expansion":     1.1,
	"partnership":   1.2,
	"thrive":        2.3,
	"thrives":       2.3,
	"resilient":     1.8,
	"solid":         1.6,

	// negative
	"bad":           -2.5,
	"terrible":      -2.1,
	"worst":         -3.1,
	"worse":         -2.1,
	"poor":          -2.1,
	"weak":          -1.9,
	"weaker":        -1.9,
	"weakness":      -1.6,
	"loss":          -1.3,
	"losses":        -1.7,
	"lose":          -1.7,
	"loses":         -1.3,
	"losing":        -1.6,
	"lost":          -1.3,
	"decline":       -1.3,
	"declines":      -1.1,
	"declined":      -1.0,
	"drop":          -1.1,
	"drops":         -1.1,
	"dropped":       -1.1,
	"fell":          -1.1,
	"falls":         -1.0,
	"plunge":        -2.2,
	"plunges":       -2.2,
	"plunged":       -2.2,
	"slump":         -2.0,
	"slumps":        -2.0,
	"tumble":        -1.8,
	"tumbles":       -1.8,
	"crash":         -2.4,
	"crashes":       -2.4,
	"fear":          -2.2,
	"fears":         -1.8,
	"risk":          -1.1,
	"risks":         -1.1,
	"risky":         -1.4,
	"concern":       -0.6,
	"concerns":      -0.8,
	"worried":       -1.2,
	"worry":         -1.9,
	"worries":       -1.6,
	"warning":       -1.4,
	"warns":         -0.9,
	"lawsuit":       -1.6,
	"lawsuits":      -1.6,
	"sue":           -1.5,
	"sued":          -1.3,
	"fraud":         -2.8,
	"scandal":       -1.9,
	"probe":         -0.8,
	"investigation": -0.8,
	"penalty":       -1.7,
	"fined":         -1.5,
	"bankrupt":      -2.6,
	"bankruptcy":    -2.7,
	"debt":          -1.5,
	"downgrade":     -1.5,
	"downgraded":    -1.7,
	"downgrades":    -1.5,
	"cut":           -1.1,
	"cuts":          -1.2,
	"layoff":        -1.7,
	"layoffs":       -1.9,
	"miss":          -0.6,
	"misses":        -0.9,
	"missed":        -1.1,
	"disappointing": -2.2,
	"disappointed":  -1.9,
	"disappoint":    -1.8,
	"disappoints":   -1.8,
	"fail":          -2.5,
	"fails":         -1.8,
	"failed":        -2.3,
	"failure":       -2.3,
	"crisis":        -3.1,
	"volatile":      -1.2,
	"volatility":    -1.0,
	"uncertain":     -1.2,
	"uncertainty":   -1.4,
	"bearish":       -1.8,
	"selloff":       -1.8,
	"sell-off":      -1.8,
	"collapse":      -2.2,
	"collapses":     -2.2,
	"struggle":      -1.4,
	"struggles":     -1.4,
	"struggling":    -1.6,
	"slowdown":      -1.3,
	"recession":     -2.0,
	"hurt":          -2.4,
	"hurts":         -2.1,
	"damage":        -2.2,
	"problem":       -1.7,
	"problems":      -1.7,
	"trouble":       -1.7,
	"troubled":      -2.0,
	"angry":         -2.3,
	"sad":           -2.1,
	"hate":          -2.7,
	"delay":         -1.3,
	"delays":        -1.3,
	"delayed":       -1.3,
	"shortage":      -1.5,
	"halt":          -1.0,
	"halted":        -1.2,
	"recall":        -0.9,
	"breach":        -1.8,
	"hack":          -1.5,
	"outage":        -1.6,
	"underperform":  -1.8,
	"underperforms": -1.8,
	"overvalued":    -1.2,
	"pessimistic":   -1.5,
	"pessimism":     -1.7,
	"negative":      -2.7,
	"downturn":      -1.8,
	"default":       -1.2,
	"resign":        -1.0,
	"resigns":       -1.0,
	"criticism":     -1.9,
	"criticized":    -1.8,
	"ban":           -2.6,
	"banned":        -2.0,
	"threat":        -2.4,
	"threatens":     -2.0,
}

// boosters scale the valence of the word they precede.
var boosters = map[string]float64{
	"absolutely":    boostIncr,
	"amazingly":     boostIncr,
	"completely":    boostIncr,
	"considerably":  boostIncr,
	"decidedly":     boostIncr,
	"deeply":        boostIncr,
	"enormously":    boostIncr,
	"entirely":      boostIncr,
	"especially":    boostIncr,
	"exceptionally": boostIncr,
	"extremely":     boostIncr,
	"fully":         boostIncr,
	"greatly":       boostIncr,
	"highly":        boostIncr,
	"hugely":        boostIncr,
	"incredibly":    boostIncr,
	"intensely":     boostIncr,
	"majorly":       boostIncr,
	"more":          boostIncr,
	"most":          boostIncr,
	"particularly":  boostIncr,
	"purely":        boostIncr,
	"quite":         boostIncr,
	"really":        boostIncr,
	"remarkably":    boostIncr,
	"sharply":       boostIncr,
	"so":            boostIncr,
	"substantially": boostIncr,
	"significantly": boostIncr,
	"thoroughly":    boostIncr,
	"totally":       boostIncr,
	"tremendously":  boostIncr,
	"very":          boostIncr,

	"almost":       boostDecr,
	"barely":       boostDecr,
	"hardly":       boostDecr,
	"kinda":        boostDecr,
	"less":         boostDecr,
	"little":       boostDecr,
	"marginally":   boostDecr,
	"occasionally": boostDecr,
	"partly":       boostDecr,
	"scarcely":     boostDecr,
	"slightly":     boostDecr,
	"somewhat":     boostDecr,
}

var negations = map[string]struct{}{
	"not":     {}, "no": {}, "never": {}, "none": {}, "nobody": {}, "nothing": {},
	"neither": {}, "nor": {}, "nowhere": {}, "cannot": {}, "without": {},
	"isnt":    {}, "arent": {}, "wasnt": {}, "werent": {}, "doesnt": {}, "dont": {},
	"didnt":   {}, "wont": {}, "cant": {}, "couldnt": {}, "shouldnt": {},
	"wouldnt": {}, "hasnt": {}, "havent": {}, "hadnt": {}, "aint": {},
	"rarely":  {}, "seldom": {}, "despite": {},
}
