package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Pre-compiled regexes (compiled once, used many times).
var (
	// Fenced code block, with or without a language tag. The generator is
	// asked for bare JSON but usually wraps it in markdown anyway.
	fencedBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)```")

	// Trailing commas before closing brace/bracket: ,} -> } and ,] -> ]
	trailingCommaRegex = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractAndParseJSON extracts the first JSON object from free-form model
// output and unmarshals it into T. Content inside a fenced code block is
// preferred; otherwise the first '{' span is used. Stream decoding ignores
// any prose after the object. Common generator syntax errors (trailing
// commas, raw control characters inside strings) are repaired before giving
// up.
func ExtractAndParseJSON[T any](response string) (T, error) {
	var result T

	candidate := strings.TrimSpace(response)
	if m := fencedBlockRegex.FindStringSubmatch(candidate); m != nil {
		candidate = strings.TrimSpace(m[1])
	}

	idx := strings.Index(candidate, "{")
	if idx == -1 {
		return result, fmt.Errorf("no JSON object found in response")
	}
	jsonPart := candidate[idx:]

	decoder := json.NewDecoder(strings.NewReader(jsonPart))
	if err := decoder.Decode(&result); err == nil {
		return result, nil
	} else {
		repaired := repairJSON(jsonPart)
		if repaired != jsonPart {
			dec2 := json.NewDecoder(strings.NewReader(repaired))
			if err2 := dec2.Decode(&result); err2 == nil {
				return result, nil
			}
		}
		return result, fmt.Errorf("parse JSON: %w", err)
	}
}

// repairJSON fixes the two generator errors seen in practice: trailing commas
// and literal control characters inside string values.
func repairJSON(input string) string {
	result := sanitizeControlChars(input)
	result = trailingCommaRegex.ReplaceAllString(result, `$1`)
	return result
}

// sanitizeControlChars escapes literal control characters inside JSON
// strings. Generators often emit raw tabs and newlines, which are invalid.
func sanitizeControlChars(input string) string {
	var result strings.Builder
	result.Grow(len(input))

	inString := false
	escaped := false

	for i := 0; i < len(input); i++ {
		c := input[i]

		if escaped {
			result.WriteByte(c)
			escaped = false
			continue
		}

		if c == '\\' && inString {
			result.WriteByte(c)
			escaped = true
			continue
		}

		if c == '"' {
			inString = !inString
			result.WriteByte(c)
			continue
		}

		if inString && c < 0x20 {
			switch c {
			case '\t':
				result.WriteString(`\t`)
			case '\n':
				result.WriteString(`\n`)
			case '\r':
				result.WriteString(`\r`)
			default:
				result.WriteString(fmt.Sprintf(`\u%04x`, c))
			}
			continue
		}

		result.WriteByte(c)
	}

	return result.String()
}
