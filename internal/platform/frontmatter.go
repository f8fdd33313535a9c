package platform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFrontMatterPage is used when the front matter has no usable pg field
const DefaultFrontMatterPage = 1

// frontMatterPattern captures the first block delimited by --- markers
var frontMatterPattern = regexp.MustCompile(`(?s)---(.*?)---`)

// FrontMatter holds the fields read from a legacy lore Markdown file
type FrontMatter struct {
	Pg   int
	Text string
}

// rawFrontMatter keeps the fields loosely typed so malformed values degrade
type rawFrontMatter struct {
	Pg   any `yaml:"pg"`
	Text any `yaml:"text"`
}

// ParseFrontMatter extracts pg and text from the first --- delimited block.
// It returns false when the document has no front matter.
func ParseFrontMatter(data []byte) (FrontMatter, bool) {
	match := frontMatterPattern.FindSubmatch(data)
	if match == nil {
		return FrontMatter{}, false
	}

	fm := FrontMatter{Pg: DefaultFrontMatterPage}

	var raw rawFrontMatter
	if err := yaml.Unmarshal(match[1], &raw); err != nil {
		// Fall back to line matching for hand edited files that are not valid YAML
		return parseFrontMatterLines(string(match[1])), true
	}

	if pg, ok := leadingInt(raw.Pg); ok {
		fm.Pg = pg
	}
	if raw.Text != nil {
		fm.Text = strings.TrimSpace(fmt.Sprint(raw.Text))
	}
	return fm, true
}

var (
	pgLinePattern   = regexp.MustCompile(`pg:\s*(\d+)`)
	textLinePattern = regexp.MustCompile(`(?m)text:\s*["']?(.*?)["']?$`)

	leadingDigitsPattern = regexp.MustCompile(`^\s*(\d+)`)
)

// parseFrontMatterLines reads the fields with plain pattern matching
func parseFrontMatterLines(block string) FrontMatter {
	fm := FrontMatter{Pg: DefaultFrontMatterPage}

	if m := pgLinePattern.FindStringSubmatch(block); m != nil {
		if pg, err := strconv.Atoi(m[1]); err == nil {
			fm.Pg = pg
		}
	}
	if m := textLinePattern.FindStringSubmatch(block); m != nil {
		fm.Text = strings.TrimSpace(m[1])
	}
	return fm
}

// leadingInt reads an integer from a YAML scalar, accepting numeric strings
func leadingInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	case string:
		m := leadingDigitsPattern.FindStringSubmatch(n)
		if m == nil {
			return 0, false
		}
		pg, err := strconv.Atoi(m[1])
		return pg, err == nil
	default:
		return 0, false
	}
}
