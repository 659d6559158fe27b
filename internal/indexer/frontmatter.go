package indexer

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// frontMatter holds the front-matter fields that feed document keywords.
type frontMatter struct {
	Keywords stringList `yaml:"keywords"`
	Tags     stringList `yaml:"tags"`
}

// stringList accepts either a YAML sequence or a comma-separated scalar.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = strings.Split(s, ",")
		return nil
	default:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	}
}

// extractKeywords reads keywords and tags from a leading YAML front-matter
// block. It returns nil when there is no block or it does not parse.
func extractKeywords(lines []string) ([]string, error) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontMatterDelimiter {
		return nil, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontMatterDelimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, nil
	}

	var meta frontMatter
	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &meta); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var keywords []string
	for _, kw := range append(meta.Keywords, meta.Tags...) {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}

	return keywords, nil
}
