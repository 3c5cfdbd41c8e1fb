package ats

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

const resultSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["atsScore", "extractedSkills", "matchedSkills", "missingSkills", "suggestions"],
  "properties": {
    "atsScore": {"type": "integer"},
    "extractedSkills": {"type": "array", "items": {"type": "string"}},
    "matchedSkills": {"type": "array", "items": {"type": "string"}},
    "missingSkills": {"type": "array", "items": {"type": "string"}},
    "suggestions": {"type": "string"}
  }
}`

var resultSchemaLoader = gojsonschema.NewStringLoader(resultSchema)

// ParseResult extracts, validates and normalises a model answer.
func ParseResult(content string) (Result, error) {
	raw, ok := ExtractJSONObject(content)
	if !ok || !gjson.Valid(raw) {
		return Result{}, ErrInvalidAIResponseFormat
	}

	validation, err := gojsonschema.Validate(resultSchemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidAIResponseFormat, err)
	}
	if !validation.Valid() {
		msgs := make([]string, 0, len(validation.Errors()))
		for _, e := range validation.Errors() {
			msgs = append(msgs, e.String())
		}
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidAIResponseFormat, strings.Join(msgs, "; "))
	}

	var res Result
	res.ATSScore = clampScore(gjson.Get(raw, "atsScore").Int())
	for field, dst := range map[string]*[]string{
		"extractedSkills": &res.ExtractedSkills,
		"matchedSkills":   &res.MatchedSkills,
		"missingSkills":   &res.MissingSkills,
	} {
		var items []string
		if err := json.Unmarshal([]byte(gjson.Get(raw, field).Raw), &items); err != nil {
			return Result{}, fmt.Errorf("%w: %s: %v", ErrInvalidAIResponseFormat, field, err)
		}
		*dst = cleanList(items)
	}
	res.Suggestions = strings.TrimSpace(gjson.Get(raw, "suggestions").String())
	return res, nil
}

func clampScore(v int64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v)
	}
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		key := strings.ToLower(it)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}
