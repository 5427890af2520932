// Package binding substitutes ${path.to.value} placeholders in label
// content with values from a data record, so one content template can stamp
// out a whole batch of labels.
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lithotype/lithotype/layout"
)

var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate replaces ${path} placeholders in text with values resolved
// from record. Unresolvable paths keep their placeholder so missing data
// stays visible on the label proof.
func Interpolate(text string, record any) string {
	if record == nil || !strings.Contains(text, "${") {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		val, ok := lookup(record, path)
		if !ok {
			return match
		}
		return fmt.Sprint(val)
	})
}

// ApplyContent interpolates every text value in a label content against a
// record. Field names are left untouched.
func ApplyContent(content layout.LabelContent, record any) layout.LabelContent {
	out := content
	if content.Kind == layout.KindFreeText {
		out.Text = Interpolate(content.Text, record)
		return out
	}
	out.Fields = make([]layout.Field, len(content.Fields))
	for i, f := range content.Fields {
		out.Fields[i] = layout.Field{Name: f.Name, Value: Interpolate(f.Value, record)}
	}
	return out
}

// ApplyAll stamps the template once per record, in record order.
func ApplyAll(template layout.LabelContent, records []any) []layout.LabelContent {
	contents := make([]layout.LabelContent, len(records))
	for i, rec := range records {
		contents[i] = ApplyContent(template, rec)
	}
	return contents
}

// lookup walks a dotted path with optional [i] index segments through
// nested maps and slices, as decoded from JSON.
func lookup(record any, path string) (any, bool) {
	current := record
	for _, segment := range strings.Split(path, ".") {
		name, indexes, err := splitSegment(segment)
		if err != nil {
			return nil, false
		}
		if name != "" {
			m, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			if current, ok = m[name]; !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			arr, ok := current.([]any)
			if !ok || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
		}
	}
	return current, true
}

func splitSegment(segment string) (name string, indexes []int, err error) {
	name = segment
	if i := strings.IndexByte(segment, '['); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for strings.HasPrefix(rest, "[") {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return "", nil, fmt.Errorf("binding: unclosed index in %q", segment)
			}
			idx, convErr := strconv.Atoi(rest[1:end])
			if convErr != nil {
				return "", nil, fmt.Errorf("binding: bad index in %q: %w", segment, convErr)
			}
			indexes = append(indexes, idx)
			rest = rest[end+1:]
		}
		if rest != "" {
			return "", nil, fmt.Errorf("binding: trailing characters in %q", segment)
		}
	}
	return name, indexes, nil
}
