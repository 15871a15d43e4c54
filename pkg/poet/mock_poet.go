package poet

import (
	"context"
	"regexp"
	"strings"
)

var promptPrefixes = []string{
	"write a poem about ",
	"a poem about ",
	"write about ",
	"poem about ",
	"write me a poem about ",
}

var skipWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "in": {}, "on": {}, "at": {}, "by": {},
	"with": {}, "of": {}, "to": {}, "for": {}, "and": {},
}

// sensory details per common subject; the pair is (texture, image).
var sensoryMap = map[string][2]string{
	"dog":    {"warm fur, soft ears", "wet nose against glass"},
	"cat":    {"sleek fur, green eyes", "paw pressed to window"},
	"bird":   {"ruffled feathers, sharp beak", "claws gripping tight"},
	"tree":   {"rough bark, reaching limbs", "roots deep in dark soil"},
	"rain":   {"cold drops, gray sky", "water pooling on stone"},
	"window": {"cold glass, fogged breath", "light streaming through"},
	"child":  {"small hands, bright eyes", "laughter in the hall"},
}

var defaultSensory = [2]string{"sharp edges, soft light", "shadow on the wall"}

var activeTemplates = []string{
	"Morning light strikes\nthe %[1]s—alert, alive—\nbreath caught, then released.\n\nEach gesture pulses\nthrough the space between moments,\nurgent, necessary.",
	"The %[1]s watches,\nremembers what we forgot:\nhow to wait, coiled,\nhow to let silence\nsharpen into meaning.\n\n%[2]s\nclaiming the margins\nof our hurried days.",
	"See how the %[1]s\ngrips its moment—\nnot burden\nbut fierce belonging.\n\n%[2]s\netched in the grammar\nof presence.",
}

var quietTemplates = []string{
	"Morning light spills\nacross the %[1]s's quiet form—\na breath held, released.\n\nEach small gesture unfolds\nin the space between moments,\nordinary, sacred.",
	"The %[1]s knows\nwhat we've forgotten:\nhow to be still,\nhow to let silence\nspeak its own language.\n\nThis quiet presence\nwaits in the margins\nof our hurried days.",
	"Watch how the %[1]s\ncarries its weight—\nnot as burden\nbut as belonging.\n\nEvery moment\nwritten in the grammar\nof presence.",
}

// fallback alternatives when a forbidden word slips into a template.
var mockAlternatives = map[string]string{
	"heartbeats": "moments",
	"heartbeat":  "moment",
	"heart":      "chest",
	"soul":       "self",
	"beautiful":  "striking",
	"love":       "longing",
	"silence":    "stillness",
	"sacred":     "rare",
}

var (
	quotedWordRe    = regexp.MustCompile(`"([^"]+)"`)
	wordAfterNounRe = regexp.MustCompile(`(?:word|words?)\s+["']?(\w+)["']?`)
)

// MockPoet writes template poems whose subject comes from the prompt and
// whose texture honors the guide's directives (active verbs, sensory detail,
// emotional arc, forbidden words). Deterministic so tests can pin output.
type MockPoet struct{}

func NewMockPoet() *MockPoet {
	return &MockPoet{}
}

func (p *MockPoet) GeneratePoem(_ context.Context, prompt, guide string) (string, error) {
	subject := extractSubject(prompt)
	guideLower := strings.ToLower(guide)

	sensory, ok := sensoryMap[subject]
	if !ok {
		sensory = defaultSensory
	}

	useActive := strings.Contains(guideLower, "active verb") || strings.Contains(guideLower, "dynamic")
	templates := quietTemplates
	if useActive {
		templates = activeTemplates
	}

	// Deterministic template choice keyed on the subject.
	tmpl := templates[len(subject)%len(templates)]
	poem := strings.ReplaceAll(tmpl, "%[1]s", subject)
	poem = strings.ReplaceAll(poem, "%[2]s", sensory[0])

	if strings.Contains(guideLower, "emotional arc") {
		lines := strings.Split(poem, "\n")
		if len(lines) > 4 && !strings.Contains(poem, "shift") {
			mid := len(lines) / 2
			lines = append(lines[:mid], append([]string{"\nAnd then—a shift,"}, lines[mid:]...)...)
			poem = strings.Join(lines, "\n")
		}
	}

	if strings.Contains(guideLower, "concrete") || strings.Contains(guideLower, "sensory") || strings.Contains(guideLower, "physical") {
		poem = strings.ReplaceAll(poem, "quiet form", sensory[0])
		poem = strings.ReplaceAll(poem, "quiet presence", sensory[1])
	}

	for forbidden := range guideForbiddenWords(guideLower) {
		if !strings.Contains(strings.ToLower(poem), forbidden) {
			continue
		}
		replacement, ok := mockAlternatives[forbidden]
		if !ok {
			replacement = "..."
		}
		poem = replaceInsensitive(poem, forbidden, replacement)
	}

	return poem, nil
}

func extractSubject(prompt string) string {
	words := strings.ToLower(prompt)
	for _, prefix := range promptPrefixes {
		words = strings.ReplaceAll(words, prefix, "")
	}
	for _, token := range strings.Fields(strings.TrimSpace(words)) {
		if _, skip := skipWords[token]; !skip {
			return token
		}
	}
	return "moment"
}

// guideForbiddenWords scans guide lines carrying a prohibition for quoted
// words or a "the word X" construction.
func guideForbiddenWords(guideLower string) map[string]struct{} {
	forbidden := make(map[string]struct{})
	for _, line := range strings.Split(guideLower, "\n") {
		if !strings.Contains(line, "never use") && !strings.Contains(line, "avoid") &&
			!strings.Contains(line, "don't use") && !strings.Contains(line, "forbidden") {
			continue
		}
		for _, m := range quotedWordRe.FindAllStringSubmatch(line, -1) {
			forbidden[m[1]] = struct{}{}
		}
		for _, m := range wordAfterNounRe.FindAllStringSubmatch(line, -1) {
			forbidden[m[1]] = struct{}{}
		}
	}
	return forbidden
}

func replaceInsensitive(text, word, replacement string) string {
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(word))
	return re.ReplaceAllString(text, replacement)
}
