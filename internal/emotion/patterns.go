package emotion

import (
	"regexp"

	"github.com/digiraksha/mitra/internal/models"
)

// emotionPatterns binds one emotion to its lexical evidence. Emotions are
// scored in registration order; the first emotion to reach the maximum
// score becomes primary.
type emotionPatterns struct {
	name      string
	keywords  []string
	phrases   []*regexp.Regexp
	intensity []string
}

func compileAll(exprs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

func buildEmotionTable() []emotionPatterns {
	return []emotionPatterns{
		{
			name:     models.EmotionFear,
			keywords: []string{"scared", "afraid", "terrified", "frightened", "panic", "worried", "nervous"},
			phrases: compileAll([]string{
				`i\s*am\s*scared`, `so\s*afraid`, `really\s*worried`, `panicking`,
			}),
			intensity: []string{"very", "so", "extremely", "really", "completely"},
		},
		{
			name:     models.EmotionAnger,
			keywords: []string{"angry", "furious", "mad", "frustrated", "irritated", "annoyed"},
			phrases: compileAll([]string{
				`so\s*angry`, `really\s*mad`, `frustrated\s*with`,
			}),
			intensity: []string{"very", "so", "extremely", "really", "absolutely"},
		},
		{
			name:     models.EmotionSadness,
			keywords: []string{"sad", "depressed", "devastated", "heartbroken", "disappointed", "upset"},
			phrases: compileAll([]string{
				`feel\s*sad`, `so\s*disappointed`, `really\s*upset`,
			}),
			intensity: []string{"very", "so", "extremely", "deeply", "completely"},
		},
		{
			name:     models.EmotionAnxiety,
			keywords: []string{"anxious", "stressed", "overwhelmed", "confused", "helpless"},
			phrases: compileAll([]string{
				`feeling\s*anxious`, `so\s*stressed`, `completely\s*lost`,
			}),
			intensity: []string{"very", "so", "extremely", "really", "totally"},
		},
		{
			name:     models.EmotionHope,
			keywords: []string{"hope", "optimistic", "positive", "confident", "better"},
			phrases: compileAll([]string{
				`hope\s*everything`, `feeling\s*better`, `more\s*confident`,
			}),
			intensity: []string{"very", "much", "really", "quite", "fairly"},
		},
		{
			name:     models.EmotionGratitude,
			keywords: []string{"thank", "grateful", "appreciate", "helped", "wonderful"},
			phrases: compileAll([]string{
				`thank\s*you`, `really\s*appreciate`, `so\s*helpful`,
			}),
			intensity: []string{"very", "so", "really", "truly", "deeply"},
		},
	}
}

// urgencyGroup is one ordered band of urgency evidence. Groups are tested
// high first; the first group with any hit decides the level.
type urgencyGroup struct {
	level    string
	patterns []*regexp.Regexp
}

func buildUrgencyTable() []urgencyGroup {
	return []urgencyGroup{
		{models.UrgencyHigh, compileAll([]string{
			`emergency`, `urgent`, `immediately`, `right\s*now`, `asap`,
			`can't\s*wait`, `happening\s*now`, `need\s*help\s*now`,
			`losing\s*money`, `account\s*hacked`, `fraud\s*happening`,
		})},
		{models.UrgencyMedium, compileAll([]string{
			`soon`, `quickly`, `worried`, `concerned`, `need\s*help`,
			`what\s*should\s*i\s*do`, `advice`, `guidance`,
		})},
		{models.UrgencyLow, compileAll([]string{
			`sometime`, `eventually`, `when\s*possible`, `curious`,
			`wondering`, `interested`,
		})},
	}
}

type supportGroup struct {
	kind     string
	patterns []*regexp.Regexp
}

func buildSupportTable() []supportGroup {
	return []supportGroup{
		{models.SupportEmotional, compileAll([]string{
			`scared`, `afraid`, `worried`, `sad`, `upset`, `devastated`,
			`feeling`, `emotion`, `comfort`, `support`, `help\s*me\s*feel`,
		})},
		{models.SupportInformational, compileAll([]string{
			`what\s*is`, `how\s*to`, `explain`, `understand`, `learn`,
			`information`, `details`, `guidelines`, `rules`,
		})},
		{models.SupportProcedural, compileAll([]string{
			`what\s*should\s*i\s*do`, `steps`, `process`, `how\s*do\s*i`,
			`procedure`, `action`, `next`, `report`, `file`,
		})},
	}
}
