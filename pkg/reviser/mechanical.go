package reviser

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var energyReplacements = []struct{ old, new string }{
	{"quiet", "intent"},
	{"still", "poised"},
	{"waits", "watches"},
	{"spills", "strikes"},
	{"unfolds", "pulses"},
	{"soft", "keen"},
	{"small", "sharp"},
}

var concreteReplacements = []struct{ old, new string }{
	{"form", "silhouette"},
	{"presence", "shadow"},
	{"moment", "breath"},
	{"gesture", "movement"},
}

var changeToRe = regexp.MustCompile(`(?:change|replace).*?(?:to|with)\s+["']?(\w+(?:\s+\w+)?)["']?`)

// MechanicalReviser applies feedback by a fixed chain of text rules. Each
// inline comment is classified by the first matching rule: explicit word ban,
// removal request, change-X-to-Y, energy, concreteness, cliché, or a plain
// review note. Overall feedback then handles its own bans, brevity, and
// energy rules.
type MechanicalReviser struct{}

func NewMechanicalReviser() *MechanicalReviser {
	return &MechanicalReviser{}
}

func (r *MechanicalReviser) Revise(_ context.Context, originalPoem, overallFeedback string, comments []CommentInput, _ string) (*Result, error) {
	revised := originalPoem
	var guideAdditions []string
	var appliedChanges []string

	// Bans can appear anywhere: overall feedback, comment bodies, even the
	// highlighted text itself.
	allFeedback := overallFeedback
	for _, c := range comments {
		allFeedback += " " + c.Comment + " " + c.HighlightedText
	}
	forbiddenWords := ExtractForbiddenWords(allFeedback)

	for _, c := range comments {
		highlighted := c.HighlightedText
		feedbackText := strings.ToLower(c.Comment)
		if highlighted == "" {
			continue
		}

		switch {
		case len(ExtractForbiddenWords(feedbackText)) > 0:
			for _, word := range ExtractForbiddenWords(feedbackText) {
				if !containsInsensitive(revised, word) {
					continue
				}
				replacement := findReplacement(word)
				revised = replaceInsensitive(revised, word, replacement)
				appliedChanges = append(appliedChanges, fmt.Sprintf("Removed '%s' → replaced with '%s'", word, replacement))
				guideAdditions = append(guideAdditions, fmt.Sprintf("- Never use the word %q", word))
			}

		case containsAny(feedbackText, "remove", "delete", "get rid", "take out", "cut"):
			words := strings.Fields(highlighted)
			if len(words) <= 3 {
				for _, word := range words {
					if len(word) <= 3 {
						continue
					}
					replacement := findReplacement(word)
					revised = replaceInsensitive(revised, word, replacement)
					appliedChanges = append(appliedChanges, fmt.Sprintf("Removed '%s' → '%s'", word, replacement))
					guideAdditions = append(guideAdditions, fmt.Sprintf("- Avoid the word %q", word))
				}
			} else {
				shortened := strings.Join(words[:2], " ") + "—"
				revised = strings.ReplaceAll(revised, highlighted, shortened)
				appliedChanges = append(appliedChanges, fmt.Sprintf("Shortened '%s'", highlighted))
			}

		case strings.Contains(feedbackText, "change") || strings.Contains(feedbackText, "replace"):
			if m := changeToRe.FindStringSubmatch(feedbackText); m != nil {
				revised = strings.ReplaceAll(revised, highlighted, m[1])
				appliedChanges = append(appliedChanges, fmt.Sprintf("Changed '%s' → '%s'", highlighted, m[1]))
			} else {
				replacement := "..."
				if words := strings.Fields(highlighted); len(words) > 0 {
					replacement = findReplacement(words[0])
				}
				revised = strings.ReplaceAll(revised, highlighted, replacement)
				appliedChanges = append(appliedChanges, fmt.Sprintf("Replaced '%s'", highlighted))
			}

		case containsAny(feedbackText, "active", "energy", "dynamic", "movement", "stronger"):
			made := false
			for _, rep := range energyReplacements {
				if containsInsensitive(highlighted, rep.old) {
					newHighlighted := replaceInsensitive(highlighted, rep.old, rep.new)
					revised = strings.ReplaceAll(revised, highlighted, newHighlighted)
					appliedChanges = append(appliedChanges, fmt.Sprintf("Made '%s' more active → '%s'", highlighted, newHighlighted))
					made = true
					break
				}
			}
			if !made {
				revised = strings.ReplaceAll(revised, highlighted, highlighted+", alive")
				appliedChanges = append(appliedChanges, fmt.Sprintf("Added energy to '%s'", highlighted))
			}
			guideAdditions = append(guideAdditions, "- Use active verbs and dynamic imagery")

		case containsAny(feedbackText, "concrete", "specific", "detail", "sensory", "vivid", "vague"):
			made := false
			for _, rep := range concreteReplacements {
				if containsInsensitive(highlighted, rep.old) {
					newHighlighted := replaceInsensitive(highlighted, rep.old, rep.new)
					revised = strings.ReplaceAll(revised, highlighted, newHighlighted)
					appliedChanges = append(appliedChanges, fmt.Sprintf("Made '%s' more concrete → '%s'", highlighted, newHighlighted))
					made = true
					break
				}
			}
			if !made {
				appliedChanges = append(appliedChanges, fmt.Sprintf("Reviewed '%s' for concreteness", highlighted))
			}
			guideAdditions = append(guideAdditions, "- Ground abstract ideas in physical, sensory details")

		case containsAny(feedbackText, "cliche", "overused", "tired", "generic", "trite"):
			mainWord := highlighted
			if words := strings.Fields(highlighted); len(words) > 0 {
				mainWord = words[0]
			}
			replacement := findReplacement(mainWord)
			revised = replaceInsensitive(revised, mainWord, replacement)
			appliedChanges = append(appliedChanges, fmt.Sprintf("Replaced cliche '%s' → '%s'", mainWord, replacement))
			guideAdditions = append(guideAdditions, fmt.Sprintf("- Avoid cliched words like %q", mainWord))

		default:
			appliedChanges = append(appliedChanges, fmt.Sprintf("Reviewed '%s' based on feedback: %s", highlighted, truncate(c.Comment, 50)))
		}
	}

	// Sweep for any banned words the per-comment rules did not reach.
	for _, word := range forbiddenWords {
		if !containsInsensitive(revised, word) {
			continue
		}
		replacement := findReplacement(word)
		old := revised
		revised = replaceInsensitive(revised, word, replacement)
		if revised != old {
			appliedChanges = append(appliedChanges, fmt.Sprintf("Removed forbidden word '%s' → '%s'", word, replacement))
			guideAdditions = append(guideAdditions, fmt.Sprintf("- Never use the word %q", word))
		}
	}

	if overallFeedback != "" {
		feedbackLower := strings.ToLower(overallFeedback)

		for _, word := range ExtractForbiddenWords(overallFeedback) {
			if !containsInsensitive(revised, word) {
				continue
			}
			replacement := findReplacement(word)
			revised = replaceInsensitive(revised, word, replacement)
			if !changesMention(appliedChanges, fmt.Sprintf("Removed forbidden word '%s'", word)) {
				appliedChanges = append(appliedChanges, fmt.Sprintf("Removed '%s' per overall feedback → '%s'", word, replacement))
				guideAdditions = append(guideAdditions, fmt.Sprintf("- Never use the word %q", word))
			}
		}

		if strings.Contains(feedbackLower, "energy") || strings.Contains(feedbackLower, "dynamic") {
			guideAdditions = append(guideAdditions, "- Build energy through active verbs and punctuation")
		}

		if strings.Contains(feedbackLower, "shorter") || strings.Contains(feedbackLower, "concise") {
			var lines []string
			for _, l := range strings.Split(revised, "\n") {
				if strings.TrimSpace(l) != "" {
					lines = append(lines, l)
				}
			}
			if len(lines) > 6 {
				revised = strings.Join(lines[:6], "\n")
				appliedChanges = append(appliedChanges, "Trimmed poem for conciseness")
			}
			guideAdditions = append(guideAdditions, "- Prefer brevity; cut lines that don't earn their place")
		}
	}

	var proposedGuideChanges *string
	if len(guideAdditions) > 0 {
		proposed := "## SME Feedback Rules\n" + strings.Join(dedupe(guideAdditions), "\n")
		proposedGuideChanges = &proposed
	}

	var rationale string
	if len(appliedChanges) > 0 {
		var b strings.Builder
		b.WriteString("Based on SME feedback, the following changes were made:\n")
		for i, c := range appliedChanges {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("• " + c)
		}
		rationale = b.String()
		if proposedGuideChanges != nil {
			rationale += "\n\nThe proposed guide changes will prevent similar issues in future poems."
		}
	} else {
		rationale = "Feedback was reviewed but no direct changes could be applied. The guide updates reflect the SME's preferences."
	}

	return &Result{
		RevisedPoem:          revised,
		ProposedGuideChanges: proposedGuideChanges,
		Rationale:            rationale,
	}, nil
}

func containsAny(text string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func changesMention(changes []string, needle string) bool {
	for _, c := range changes {
		if strings.Contains(c, needle) {
			return true
		}
	}
	return false
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
