package texting

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Replacement is one externally supplied text-replacement rule. Rules run in
// list order against the assembled output, each replacing all non-overlapping
// matches.
type Replacement struct {
	pattern *regexp.Regexp
	replace func(groups []string) string
}

func (r Replacement) Apply(input string) string {
	return r.pattern.ReplaceAllStringFunc(input, func(match string) string {
		return r.replace(r.pattern.FindStringSubmatch(match))
	})
}

// EmojiReplacement expands :name: tokens into the emoji glyph wrapped in a
// hover showing the token name. Unknown names pass through untouched.
func EmojiReplacement(emojis map[string]string) Replacement {
	return Replacement{
		pattern: regexp.MustCompile(`:([A-Za-z0-9_\-+]+):`),
		replace: func(groups []string) string {
			content, ok := emojis[groups[1]]
			if !ok {
				return groups[0]
			}
			return "<hover:show_text:'" + groups[1] + "'>" + content + "</hover>"
		},
	}
}

// FormatReplacement turns token-delimited spans into a markup tag, e.g.
// **bold** with token "**" and tag "b". A leading backslash escapes the span.
func FormatReplacement(token, tag string) Replacement {
	escaped := regexp.QuoteMeta(token)
	return Replacement{
		pattern: regexp.MustCompile(`((\\?)(` + escaped + `(.*?)` + escaped + `))`),
		replace: func(groups []string) string {
			if strings.Contains(groups[2], `\`) || strings.HasSuffix(groups[4], `\`) {
				return groups[3]
			}
			return "<" + tag + ">" + groups[4] + "</" + tag + ">"
		},
	}
}

// LoadEmojis reads the emoji name->glyph table.
func LoadEmojis(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read emoji table: %w", err)
	}

	emojis := map[string]string{}
	if err := yaml.Unmarshal(content, &emojis); err != nil {
		return nil, fmt.Errorf("failed to parse emoji table: %w", err)
	}

	return emojis, nil
}
