// Package cli provides CLI output formatting for mitra.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/digiraksha/mitra/internal/models"
)

// OutputFormat is the format for chat response output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact is a single-line summary.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteChatResponse writes a chat response to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteChatResponse(w io.Writer, resp *models.ChatResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case OutputCompact:
		fmt.Fprintf(w, "[%s/%s] %s\n", resp.Source, resp.Category, firstLine(resp.Answer))
		return nil
	default:
		writeChatResponseText(w, resp)
		return nil
	}
}

func writeChatResponseText(w io.Writer, resp *models.ChatResponse) {
	fmt.Fprintf(w, "\n%s\n\n", resp.Answer)
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Source: %s | Category: %s | Confidence: %.2f | %dms\n",
		resp.Source, resp.Category, resp.Confidence, resp.TookMS)
	if resp.MatchType != "" {
		fmt.Fprintf(w, "Match: %s | Matched question: %s\n", resp.MatchType, resp.Matched)
	}
	if resp.Emotion != nil {
		fmt.Fprintf(w, "Emotion: %s (intensity %.2f, urgency %s, tone %s)\n",
			resp.Emotion.PrimaryEmotion, resp.Emotion.Intensity,
			resp.Emotion.UrgencyLevel, resp.Emotion.RecommendedTone)
	}
	fmt.Fprintln(w)
}

// PrintChatResponse prints a chat response to stdout in text format.
func PrintChatResponse(resp *models.ChatResponse) {
	_ = WriteChatResponse(os.Stdout, resp, OutputText)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
