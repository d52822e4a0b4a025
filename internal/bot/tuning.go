package bot

// Bidding thresholds. All bids are multiples of engine.BidStep.
const (
	// defendKittyFloor: an opposing team is never allowed to buy the
	// kitty below this without a counter-bid.
	defendKittyFloor = 125
	// partnerPassedFloor: with the partner out of the auction the bot
	// keeps the pressure on up to this floor before conceding.
	partnerPassedFloor = 120

	// Opening bands signal hand quality.
	openWeakLow     = 50
	openWeakHigh    = 70
	openSupportLow  = 80
	openSupportHigh = 90
	openTakingLow   = 95
	openTakingHigh  = 110

	// jumpHeadroom is the gap between the bot's comfort ceiling and the
	// standing bid above which it jumps instead of creeping.
	jumpHeadroom = 25
	jumpStep     = 15
)

// Hand evaluation weights (0–100 scale).
const (
	evalPointDensityWeight = 25.0 / 60.0 // 60 held points ≈ full marks
	evalAceWeight          = 7           // per rank-1
	evalFourteenWeight     = 4           // per rank-14
	evalRookWeight         = 10
	evalSuitLengthWeight   = 3 // per card past 3 in the best suit
	evalHighTrumpWeight    = 4 // per 1/14/13 in the best suit
	evalVoidWeight         = 4
	evalSingletonWeight    = 2
)

// Trump-choice weights per candidate suit.
const (
	trumpLengthWeight   = 4
	trumpAceWeight      = 8
	trumpFourteenWeight = 5
	trumpThirteenWeight = 3
	trumpTwelveWeight   = 2
	trumpPointWeight    = 1 // per point card in the suit
)

// Card-play thresholds.
const (
	// cheapTrickPoints: a trick worth less than this is not worth spending
	// trump or a rank-1 to win.
	cheapTrickPoints = 10
	// feedPointsMin: minimum card value worth feeding a winning teammate.
	feedPointsMin = 5
)

// Quality tier cutoffs on the 0–100 evaluation score.
const (
	tierFairMin      = 30
	tierGoodMin      = 50
	tierStrongMin    = 65
	tierExcellentMin = 80
)
