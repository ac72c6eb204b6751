package personality

import "fmt"

// Profile configures one response personality. Knobs are 0.0 to 1.0.
type Profile struct {
	Key                string             `json:"key"`
	Name               string             `json:"name"`
	CoreTraits         map[string]float64 `json:"core_traits"`
	CommunicationStyle string             `json:"communication_style"`
	EmpathyLevel       float64            `json:"empathy_level"`
	HumorUsage         float64            `json:"humor_usage"`
	FormalityLevel     float64            `json:"formality_level"`
	Supportiveness     float64            `json:"supportiveness"`
	Optimism           float64            `json:"optimism"`
	DetailOrientation  float64            `json:"detail_orientation"`
}

// Profile keys.
const (
	ProfileCompassionateGuardian = "compassionate_guardian"
	ProfileKnowledgeableMentor   = "knowledgeable_mentor"
	ProfileFriendlyCompanion     = "friendly_companion"

	// DefaultProfile is used when a request names no personality.
	DefaultProfile = ProfileCompassionateGuardian
)

func builtinProfiles() map[string]*Profile {
	return map[string]*Profile{
		ProfileCompassionateGuardian: {
			Key:  ProfileCompassionateGuardian,
			Name: "Compassionate Guardian",
			CoreTraits: map[string]float64{
				"empathy": 0.95, "patience": 0.90, "warmth": 0.90,
				"reliability": 0.95, "wisdom": 0.85,
			},
			CommunicationStyle: "nurturing",
			EmpathyLevel:       0.95,
			HumorUsage:         0.30,
			FormalityLevel:     0.40,
			Supportiveness:     0.95,
			Optimism:           0.80,
			DetailOrientation:  0.85,
		},
		ProfileKnowledgeableMentor: {
			Key:  ProfileKnowledgeableMentor,
			Name: "Knowledgeable Mentor",
			CoreTraits: map[string]float64{
				"intelligence": 0.95, "wisdom": 0.90, "patience": 0.85,
				"thoroughness": 0.90, "guidance": 0.95,
			},
			CommunicationStyle: "educational",
			EmpathyLevel:       0.80,
			HumorUsage:         0.20,
			FormalityLevel:     0.60,
			Supportiveness:     0.85,
			Optimism:           0.75,
			DetailOrientation:  0.95,
		},
		ProfileFriendlyCompanion: {
			Key:  ProfileFriendlyCompanion,
			Name: "Friendly Companion",
			CoreTraits: map[string]float64{
				"friendliness": 0.95, "approachability": 0.90, "humor": 0.80,
				"relatability": 0.95, "enthusiasm": 0.85,
			},
			CommunicationStyle: "casual",
			EmpathyLevel:       0.85,
			HumorUsage:         0.70,
			FormalityLevel:     0.20,
			Supportiveness:     0.80,
			Optimism:           0.90,
			DetailOrientation:  0.70,
		},
	}
}

// greetingTemplates and encouragementTemplates are keyed by profile.
var greetingTemplates = map[string][]string{
	ProfileCompassionateGuardian: {
		"Hello there! I'm so glad you've reached out today.",
		"Hi! I'm here to support you through whatever you're facing.",
		"Welcome! You're in a safe space with me now.",
	},
	ProfileKnowledgeableMentor: {
		"Good day! I'm pleased to assist you with your inquiry.",
		"Hello! I'm here to provide you with comprehensive guidance.",
		"Welcome! Let's work through your concerns with reliable information.",
	},
	ProfileFriendlyCompanion: {
		"Hey there! So good to see you! What's happening today?",
		"Hi friend! I'm happy to chat and help however I can!",
		"Hello! Ready to tackle whatever's on your mind together?",
	},
}

var encouragementTemplates = map[string][]string{
	ProfileCompassionateGuardian: {
		"You're being incredibly brave by reaching out for help - that takes real strength.",
		"You're not walking through this alone - I'm right here with you.",
		"You have more resilience within you than you realize, and together we'll get through this.",
	},
	ProfileKnowledgeableMentor: {
		"Taking informed action is the surest path forward, and you've already started.",
		"With a structured approach, situations like this are very manageable.",
	},
	ProfileFriendlyCompanion: {
		"You're doing amazing by taking action - seriously, good for you!",
		"I have a really good feeling about how this is going to work out!",
	},
}

var humorSuffixes = []string{
	"\n\n(And remember, even the best security experts sometimes forget their own passwords!)",
	"\n\nPS: You're definitely not alone in dealing with these questions - they come up all the time!",
}

// Registry holds the available profiles and allows bounded tuning.
type Registry struct {
	profiles map[string]*Profile
}

// NewRegistry loads the built-in profiles.
func NewRegistry() *Registry {
	return &Registry{profiles: builtinProfiles()}
}

// Get returns a profile by key, falling back to the default for unknown or
// empty keys.
func (r *Registry) Get(key string) *Profile {
	if p, ok := r.profiles[key]; ok {
		return p
	}
	return r.profiles[DefaultProfile]
}

// List returns the available profile keys.
func (r *Registry) List() []string {
	out := make([]string, 0, len(r.profiles))
	for k := range r.profiles {
		out = append(out, k)
	}
	return out
}

// Adjust applies bounded feedback tweaks to a profile's knobs.
func (r *Registry) Adjust(key string, lessFormal, moreHumor bool) (*Profile, error) {
	p, ok := r.profiles[key]
	if !ok {
		return nil, fmt.Errorf("unknown personality: %s", key)
	}
	if lessFormal {
		p.FormalityLevel = clamp(p.FormalityLevel - 0.2)
	}
	if moreHumor {
		p.HumorUsage = clamp(p.HumorUsage + 0.2)
	}
	return p, nil
}

func clamp(v float64) float64 {
	if v < 0.1 {
		return 0.1
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
