// Package lexicon holds the fixed finance vocabularies shared by the
// sentiment scorer, insight synthesizer, and keyword extractor.
// All sets are read-only after init and safe for concurrent use.
package lexicon

// Positive lists finance words that bias sentiment upward.
var Positive = map[string]bool{
	"growth": true, "profit": true, "profits": true, "gain": true, "gains": true,
	"surge": true, "rally": true, "beat": true, "beats": true, "upgrade": true,
	"strong": true, "record": true, "bullish": true, "outperform": true,
	"expansion": true, "dividend": true, "recovery": true, "momentum": true,
	"innovation": true, "partnership": true, "breakthrough": true, "optimistic": true,
	"success": true, "positive": true, "rise": true, "soar": true, "excellent": true,
}

// Negative lists finance words that bias sentiment downward.
var Negative = map[string]bool{
	"loss": true, "losses": true, "decline": true, "drop": true, "fall": true,
	"crash": true, "downgrade": true, "weak": true, "miss": true, "misses": true,
	"lawsuit": true, "bearish": true, "plunge": true, "recession": true,
	"debt": true, "layoffs": true, "investigation": true, "fraud": true,
	"warning": true, "concern": true, "concerns": true, "risk": true, "risks": true,
	"negative": true, "slump": true, "underperform": true, "volatile": true,
}

// Neutral lists finance words tagged neutral in the keyword cloud.
var Neutral = map[string]bool{
	"market": true, "stock": true, "shares": true, "trading": true,
	"earnings": true, "revenue": true, "quarter": true, "quarterly": true,
	"forecast": true, "guidance": true, "analyst": true, "analysts": true,
	"report": true, "results": true, "investors": true, "price": true,
}

// Important lists terms that mark a sentence as summary-worthy.
var Important = []string{
	"revenue", "growth", "earnings", "profit", "loss", "acquisition",
	"merger", "partnership", "launch", "expansion", "guidance", "forecast",
	"dividend", "upgrade", "downgrade", "lawsuit", "regulatory",
}

// StopWords lists tokens excluded from keyword extraction.
var StopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "have": true, "been": true, "were": true, "their": true,
	"said": true, "each": true, "which": true, "she": true, "will": true,
	"with": true, "this": true, "that": true, "from": true, "they": true,
	"its": true, "also": true, "more": true, "other": true, "some": true,
	"such": true, "than": true, "then": true, "these": true, "into": true,
	"after": true, "about": true, "over": true, "under": true, "new": true,
	"inc": true, "ltd": true, "corporation": true, "company": true,
}
