package emotion

import (
	"strings"

	"github.com/digiraksha/mitra/pkg/utils"
)

// SentimentScorer maps text to a polarity in [-1, 1].
type SentimentScorer interface {
	Score(text string) float64
}

// LexiconScorer is a word-polarity sentiment scorer with negation and
// booster handling. It is the primary sentiment source.
type LexiconScorer struct{}

var polarityLexicon = map[string]float64{
	"good": 0.5, "great": 0.7, "excellent": 0.8, "wonderful": 0.8,
	"helpful": 0.6, "thanks": 0.6, "thank": 0.6, "grateful": 0.7,
	"appreciate": 0.6, "safe": 0.4, "secure": 0.4, "happy": 0.7,
	"relieved": 0.5, "better": 0.4, "resolved": 0.5, "recovered": 0.5,
	"confident": 0.5, "hope": 0.4, "positive": 0.4, "love": 0.7,

	"bad": -0.5, "terrible": -0.8, "horrible": -0.8, "awful": -0.7,
	"scared": -0.6, "afraid": -0.6, "worried": -0.5, "angry": -0.6,
	"furious": -0.8, "sad": -0.6, "depressed": -0.7, "devastated": -0.8,
	"upset": -0.5, "frustrated": -0.5, "scam": -0.6, "scammed": -0.7,
	"fraud": -0.5, "stolen": -0.6, "hacked": -0.6, "lost": -0.5,
	"cheated": -0.7, "helpless": -0.6, "panic": -0.6, "stressed": -0.5,
}

var negationWords = map[string]bool{
	"not": true, "no": true, "never": true, "nothing": true,
	"cannot": true, "cant": true, "dont": true, "wont": true, "isnt": true,
}

var boosterWords = map[string]float64{
	"very": 0.25, "so": 0.2, "extremely": 0.35, "really": 0.25,
	"completely": 0.3, "totally": 0.3, "absolutely": 0.35,
}

// Score sums lexicon polarities over the words of text. A negation in the
// two preceding words flips the sign; a booster amplifies magnitude. The
// total is squashed into [-1, 1].
func (LexiconScorer) Score(text string) float64 {
	words := strings.Fields(utils.NormalizeText(text))
	var total float64
	for i, w := range words {
		w = strings.Trim(w, ".,!?;:'\"")
		polarity, ok := polarityLexicon[w]
		if !ok {
			continue
		}
		boost := 0.0
		negated := false
		for j := i - 1; j >= 0 && j >= i-2; j-- {
			prev := strings.Trim(words[j], ".,!?;:'\"")
			if negationWords[prev] {
				negated = true
			}
			if b, ok := boosterWords[prev]; ok {
				boost = b
			}
		}
		if polarity > 0 {
			polarity += boost
		} else {
			polarity -= boost
		}
		if negated {
			polarity = -polarity
		}
		total += polarity
	}
	// Squash so a pile of strong words still lands in [-1, 1].
	if total > 1 {
		return 1
	}
	if total < -1 {
		return -1
	}
	return total
}

// PunctuationScorer is the secondary sentiment source, consulted only when
// the lexicon scores exactly neutral. It reads weak polarity from emphasis
// cues that the word lexicon misses.
type PunctuationScorer struct{}

// Score returns a small polarity from exclamations and question pile-ups.
func (PunctuationScorer) Score(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0
	if strings.Contains(lower, ":)") || strings.Contains(lower, "great!") {
		score += 0.2
	}
	if strings.Contains(lower, ":(") {
		score -= 0.2
	}
	if strings.Count(lower, "?") >= 2 {
		score -= 0.1
	}
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	return score
}
