package utils

import (
	"regexp"
	"strings"
)

// modelAliases maps free-text hints found in product names and slugs to
// hardware model codes. Exact code tokens are checked first; aliases are a
// fallback for legacy listings that spell out the button count.
var modelAliases = map[string]string{
	"4-key":    "KP4",
	"4 key":    "KP4",
	"four key": "KP4",
	"6-key":    "KP6",
	"6 key":    "KP6",
	"six key":  "KP6",
	"9-key":    "KP9",
	"9 key":    "KP9",
	"nine key": "KP9",
}

var modelCodePattern = regexp.MustCompile(`\bKP[0-9]+\b`)

// InferModelCode maps a free-text product name or slug back to a hardware
// model code. The second return is false when no model can be inferred;
// callers that need a specific model must treat that as a hard failure, not
// fall back to a default (unlike geometry lookup, which may soft-fail).
func InferModelCode(text string, known func(code string) bool) (string, bool) {
	if code := modelCodePattern.FindString(strings.ToUpper(text)); code != "" {
		if known == nil || known(code) {
			return code, true
		}
	}

	lower := strings.ToLower(text)
	for alias, code := range modelAliases {
		if strings.Contains(lower, alias) {
			if known == nil || known(code) {
				return code, true
			}
		}
	}
	return "", false
}
