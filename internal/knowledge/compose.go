package knowledge

import (
	"math/rand"
	"strings"

	"github.com/digiraksha/mitra/internal/models"
)

// Composer builds category-driven answers from the corpus when no trained
// QA record matches a query.
type Composer struct {
	kb *Base
}

// NewComposer wraps a knowledge base.
func NewComposer(kb *Base) *Composer {
	return &Composer{kb: kb}
}

// Compose returns an answer for the classified category, or ok=false when
// neither the category nor a corpus search yields anything useful.
func (c *Composer) Compose(category, query string) (string, bool) {
	lower := strings.ToLower(query)
	switch category {
	case models.CategoryGreeting:
		return c.composeGreeting(lower), true
	case models.CategoryCasual:
		return c.composeCasual(lower), true
	case models.CategoryEmotionalDistress:
		return c.composeDistress(lower), true
	case models.CategoryComfortSeeking:
		return c.composeComfort(), true
	case models.CategoryRBISpecific:
		return c.composeFromCategory(CategoryRBIGuidelines)
	case models.CategoryFraudTypes:
		return c.composeFromCategory(CategoryFraudTypes)
	case models.CategorySecurityMeasures:
		return c.composeSecurity(lower)
	case models.CategoryEmergencyHelp:
		return c.composeEmergency()
	case models.CategoryCompliance:
		return c.composeFromCategory(CategoryRegulatoryFramework)
	default:
		return c.composeGeneral(query)
	}
}

var greetingOpeners = []string{
	"Hello! I'm Mitra, your payment security assistant. I'm here to help you stay safe with digital payments.",
	"Hi there! Welcome. I'm your companion for payment security and fraud prevention.",
	"Hey! Great to meet you. Ask me anything about UPI security, fraud prevention, or payment rules.",
}

func (c *Composer) composeGreeting(lower string) string {
	var opener string
	switch {
	case strings.Contains(lower, "morning"):
		opener = "Good morning! I'm Mitra, your payment security assistant, ready to help you stay safe with digital payments."
	case strings.Contains(lower, "afternoon"):
		opener = "Good afternoon! I'm Mitra, your payment security assistant. How can I help?"
	case strings.Contains(lower, "evening"):
		opener = "Good evening! I'm Mitra, your payment security assistant. Need some quick payment safety advice?"
	default:
		opener = greetingOpeners[rand.Intn(len(greetingOpeners))]
	}
	return opener + `

I can help you with:
- RBI guidelines and regulations
- Fraud prevention and detection
- Security tips and best practices
- Emergency support and reporting

Feel free to ask me anything about staying safe with digital payments.`
}

func (c *Composer) composeCasual(lower string) string {
	switch {
	case strings.Contains(lower, "name"):
		return `I'm Mitra, an assistant specialized in UPI fraud detection and payment security. I carry comprehensive knowledge of RBI guidelines and security practices, and my job is to keep you safe and informed about digital payments.

What would you like to know?`
	case strings.Contains(lower, "who are you"):
		return `I'm Mitra, your payment security assistant. I know RBI guidelines, fraud types, and security measures, and I'm built to be supportive, especially if you're dealing with fraud.

What would you like to talk about?`
	default:
		return `Happy to chat! I'm specialized in UPI security and fraud prevention, so feel free to ask about payment security concerns, RBI guidelines, or digital safety tips.

What's on your mind?`
	}
}

func (c *Composer) composeDistress(lower string) string {
	var b strings.Builder
	b.WriteString(`I'm sorry you're going through this. You're not alone, and we'll work through it together.

What you're feeling is completely normal. Being targeted by fraud is distressing, and reaching out for help is the right first step.

Immediate actions, if you haven't taken them already:
1. Block your affected accounts or cards right now - call your bank
2. Document everything: screenshots, transaction details, any communications
3. Contact your bank's fraud helpline - they handle this daily
4. Call the Cybercrime Helpline 1930 and report on cybercrime.gov.in

Remember: this is not your fault. Fraudsters are sophisticated criminals who target innocent people.`)

	if strings.Contains(lower, "money") && (strings.Contains(lower, "lost") || strings.Contains(lower, "stolen")) {
		b.WriteString("\n\nAbout your money: many fraud cases resolve with proper reporting. Banks have fraud protection measures, and quick action makes recovery much more likely.")
	}
	if strings.Contains(lower, "account") && (strings.Contains(lower, "hacked") || strings.Contains(lower, "compromised")) {
		b.WriteString("\n\nAbout your account: once it is secured and the incident reported, we can work on strengthening your security to prevent a repeat.")
	}
	b.WriteString("\n\nTell me what happened when you're ready. I'm here to guide you through the next steps.")
	return b.String()
}

func (c *Composer) composeComfort() string {
	steps, err := c.kb.Lookup(CategoryIncidentResponse, "fraud_reporting")
	out := `Take a breath - you're taking the right steps by asking. With prompt reporting, most situations like this can be contained and often resolved.`
	if err == nil {
		out += "\n\nHere is exactly what to do next:\n\n" + steps
	}
	return out
}

func (c *Composer) composeFromCategory(category string) (string, bool) {
	text, err := c.kb.Lookup(category, "")
	if err != nil {
		return "", false
	}
	return text, true
}

func (c *Composer) composeSecurity(lower string) (string, bool) {
	section := "personal_security"
	if strings.Contains(lower, "merchant") || strings.Contains(lower, "business") {
		section = "merchant_security"
	}
	text, err := c.kb.Lookup(CategorySecurityMeasures, section)
	if err != nil {
		return "", false
	}
	return text, true
}

func (c *Composer) composeEmergency() (string, bool) {
	contacts, err := c.kb.Lookup(CategoryIncidentResponse, "emergency_contacts")
	if err != nil {
		return "", false
	}
	steps, err := c.kb.Lookup(CategoryIncidentResponse, "fraud_reporting")
	if err != nil {
		return contacts, true
	}
	return contacts + "\n\n" + steps, true
}

// composeGeneral falls back to corpus search; the best hit's content is the
// answer when it clears a modest relevance bar.
func (c *Composer) composeGeneral(query string) (string, bool) {
	hits := c.kb.Search(query, 1)
	if len(hits) == 0 || hits[0].Relevance < 0.1 {
		return "", false
	}
	return hits[0].Content, true
}
