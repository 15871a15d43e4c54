// Package reviser rewrites a poem so that submitted feedback is actually
// addressed, and proposes additions to the style guide that would prevent the
// same issues recurring. The mechanical implementation applies a fixed rule
// chain; the OpenAI implementation delegates to the chat API.
package reviser

import (
	"context"
	"regexp"
	"strings"
)

// CommentInput is one resolved inline comment against the original poem.
type CommentInput struct {
	HighlightedText string
	Comment         string
}

type Result struct {
	RevisedPoem          string
	ProposedGuideChanges *string
	Rationale            string
}

type Reviser interface {
	Revise(ctx context.Context, originalPoem, overallFeedback string, comments []CommentInput, guide string) (*Result, error)
}

// forbiddenPatterns recognize instructions to ban a word, in either
// imperative ("never use X") or descriptive ("X is overused") form.
var forbiddenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`never use (?:the )?(?:word )?['"]?(\w+)['"]?`),
	regexp.MustCompile(`don'?t use (?:the )?(?:word )?['"]?(\w+)['"]?`),
	regexp.MustCompile(`remove (?:the )?(?:word )?['"]?(\w+)['"]?`),
	regexp.MustCompile(`delete (?:the )?(?:word )?['"]?(\w+)['"]?`),
	regexp.MustCompile(`avoid (?:the )?(?:word )?['"]?(\w+)['"]?`),
	regexp.MustCompile(`get rid of (?:the )?(?:word )?['"]?(\w+)['"]?`),
	regexp.MustCompile(`(?:word |phrase )['"]?(\w+)['"]? (?:is |should be |needs to be )?(?:removed|deleted|avoided|forbidden)`),
	regexp.MustCompile(`['"](\w+)['"]? (?:is |should be )?(?:too |overused|cliche|forbidden|banned)`),
}

// ExtractForbiddenWords returns the distinct words the text marks for
// removal, in first-mention order.
func ExtractForbiddenWords(text string) []string {
	textLower := strings.ToLower(text)
	seen := make(map[string]struct{})
	var words []string
	for _, pattern := range forbiddenPatterns {
		for _, m := range pattern.FindAllStringSubmatch(textLower, -1) {
			if _, dup := seen[m[1]]; dup {
				continue
			}
			seen[m[1]] = struct{}{}
			words = append(words, m[1])
		}
	}
	return words
}

var replacements = map[string]string{
	"heartbeats": "breaths",
	"heartbeat":  "breath",
	"heart":      "chest",
	"hearts":     "chests",
	"moments":    "breaths",
	"moment":     "breath",
	"soul":       "self",
	"souls":      "selves",
	"beautiful":  "striking",
	"beauty":     "grace",
	"love":       "longing",
	"loved":      "held dear",
	"silence":    "stillness",
	"silent":     "still",
	"sacred":     "rare",
	"ordinary":   "common",
	"eternal":    "lasting",
	"eternity":   "long years",
	"forever":    "always",
	"dream":      "vision",
	"dreams":     "visions",
	"magical":    "strange",
	"magic":      "wonder",
	"perfect":    "whole",
	"perfection": "wholeness",
	"infinite":   "vast",
	"infinity":   "vastness",
	"destiny":    "path",
	"fate":       "chance",
	"tears":      "salt water",
	"tear":       "drop",
	"cry":        "weep",
	"crying":     "weeping",
	"quiet":      "still",
	"soft":       "gentle",
	"dark":       "dim",
	"light":      "glow",
	"time":       "hours",
	"space":      "distance",
}

// findReplacement returns a stand-in for a banned word, or "" when the word
// should simply vanish.
func findReplacement(word string) string {
	return replacements[strings.ToLower(word)]
}

func replaceInsensitive(text, word, replacement string) string {
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(word))
	return re.ReplaceAllString(text, replacement)
}

func containsInsensitive(text, word string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(word))
}
