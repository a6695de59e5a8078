package twitsent

// Built-in English lexicon. Words are stored lower case as the preprocessor
// normalizes them.

var positiveWords = []string{
	"excellent", "amazing", "wonderful", "fantastic", "outstanding", "perfect",
	"brilliant", "superb", "magnificent", "good", "great", "nice", "love",
	"loved", "loves", "lovely", "loving", "happy", "happier", "happiest",
	"beautiful", "enjoy", "enjoyed", "enjoying", "like", "liked", "pleasant",
	"positive", "best", "better", "fun", "interesting", "awesome", "cool",
	"glad", "excited", "exciting", "thanks", "thank", "thankful", "grateful",
	"congrats", "congratulations", "win", "won", "winning", "winner",
	"proud", "favorite", "favourite", "yay", "wow", "lol", "haha", "hahaha",
	"cute", "sweet", "gorgeous", "incredible", "impressive", "success",
	"successful", "smile", "smiling", "laugh", "laughing", "hope", "hopeful",
	"hopefully", "blessed", "lucky", "delighted", "pleased", "joy", "joyful",
	"cheers", "celebrate", "celebrating", "fabulous", "terrific", "super",
	"recommend", "recommended", "helpful", "kind", "friendly", "safe", "free",
	"fresh", "strong", "wins", "victory", "beat", "champion", "legend",
	"epic", "peace", "relaxed", "relaxing", "comfortable",
	"marvelous", "stunning", "adorable", "funny", "hilarious", "entertaining",
	"inspiring", "inspired", "motivated", "ready", "okay", "fine", "decent",
}

var negativeWords = []string{
	"terrible", "awful", "horrible", "disgusting", "appalling", "dreadful",
	"atrocious", "abysmal", "bad", "worse", "worst", "hate", "hated", "hates",
	"hating", "sad", "sadly", "ugly", "disappointing", "disappointed",
	"disappointment", "poor", "wrong", "dislike", "negative", "annoying",
	"annoyed", "boring", "bored", "fail", "failed", "fails", "failure",
	"sick", "ill", "pain", "painful", "hurt", "hurts", "cry", "crying",
	"cried", "tears", "angry", "mad", "furious", "upset", "sorry", "miss",
	"missed", "missing", "lost", "lose", "losing", "loser", "broke", "broken",
	"damn", "dammit", "crap", "shit", "sucks", "suck", "sucked", "stupid",
	"idiot", "dumb", "lame", "worried", "worry", "worrying", "scared",
	"afraid", "fear", "tired", "exhausted", "stress", "stressed", "stressful",
	"dead", "death", "die", "died", "dying", "kill", "killed",
	"killing", "war", "attack", "problem", "problems", "trouble", "crisis",
	"disaster", "tragic", "tragedy", "unfortunately", "unhappy", "depressed",
	"depressing", "lonely", "alone", "hopeless", "useless", "pathetic",
	"ridiculous", "ugh", "argh", "nasty", "evil", "cruel", "shame",
	"shameful", "embarrassing", "guilty", "lie", "lies", "liar", "cheat",
	"cheated", "slow", "late", "delayed", "cancelled", "canceled",
}

// modifierWords maps intensifiers (> 0) and diminishers (< 0) to the factor
// a following polar word is scaled by: polarity * (1 + factor).
var modifierWords = map[string]float64{
	"very":         0.3,
	"extremely":    0.5,
	"absolutely":   0.5,
	"totally":      0.4,
	"really":       0.3,
	"so":           0.3,
	"soo":          0.4,
	"quite":        0.2,
	"incredibly":   0.5,
	"remarkably":   0.4,
	"particularly": 0.3,
	"especially":   0.3,
	"super":        0.4,
	"utterly":      0.5,
	"completely":   0.4,
	"thoroughly":   0.4,
	"too":          0.2,
	"most":         0.3,
	"slightly":     -0.3,
	"somewhat":     -0.3,
	"rather":       -0.2,
	"fairly":       -0.1,
	"marginally":   -0.4,
	"barely":       -0.5,
	"hardly":       -0.5,
	"scarcely":     -0.5,
	"kinda":        -0.3,
	"sorta":        -0.3,
}
