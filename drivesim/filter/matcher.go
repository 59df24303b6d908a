// Package filter evaluates compiled query expressions against records and
// drives the order-preserving list filter.
package filter

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/nonibytes/drivesim/drivesim/query"
	"github.com/nonibytes/drivesim/drivesim/search"
)

// Record is one filterable item: a file or a shared drive exposing its
// queryable fields by name.
type Record interface {
	RecordID() string
	Field(name string) (any, bool)
}

// Matcher evaluates single conditions against single records, delegating
// indexed fields to the search collaborator.
type Matcher struct {
	Index    search.Index
	Resource search.ResourceType
}

var indexedFields = map[search.ResourceType]map[string]bool{
	search.ResourceFile: {
		"id": true, "name": true, "mimeType": true, "trashed": true,
		"starred": true, "parents": true, "description": true,
	},
	search.ResourceDrive: {
		"id": true, "name": true, "hidden": true, "themeId": true,
		"createdTime": true,
	},
}

func (m *Matcher) indexedField(field string) bool {
	return indexedFields[m.Resource][field]
}

// Match reports whether the record satisfies the condition. Negation is the
// evaluator's job, not handled here.
func (m *Matcher) Match(ctx context.Context, rec Record, cond query.Condition) (bool, error) {
	v, present := rec.Field(cond.Field)
	if !present && cond.Field != "fullText" {
		return false, nil
	}

	// Phrase values are already alphanumeric-normalized by the parser;
	// normalize the record side and compare as substrings.
	if cond.PhraseMatch && cond.Field != "fullText" {
		s, ok := v.(string)
		if !ok {
			return false, nil
		}
		norm := query.NormalizeAlnum(s)
		return strings.Contains(strings.ToLower(norm), strings.ToLower(cond.Value)), nil
	}

	if m.indexedField(cond.Field) {
		return m.matchIndexed(ctx, rec, cond, v)
	}

	if b, ok := v.(bool); ok {
		flag := strings.EqualFold(cond.Value, "true")
		switch cond.Op {
		case query.OpEq:
			return b == flag, nil
		case query.OpNe:
			return b != flag, nil
		default:
			return true, nil
		}
	}

	if cond.Field == "createdTime" || cond.Field == "modifiedTime" || cond.Field == "viewedByMeTime" {
		return matchTemporal(v, cond), nil
	}

	if cond.Field == "content" {
		s, _ := v.(string)
		return strings.Contains(strings.ToLower(s), strings.ToLower(cond.Value)), nil
	}

	if cond.Field == "fullText" {
		return matchFullText(rec, cond), nil
	}

	return matchDefault(v, cond), nil
}

// matchIndexed delegates to the search index and interprets the candidate
// set per operator. For name-contains the candidates are narrowed further:
// single-word values must prefix some whitespace token of the name,
// multi-word values must appear as a substring; if the narrowing empties
// the set the condition fails outright.
func (m *Matcher) matchIndexed(ctx context.Context, rec Record, cond query.Condition, v any) (bool, error) {
	hits, err := m.Index.Search(ctx, cond.Value, search.Filter{
		Resource:    m.Resource,
		ContentType: cond.Field,
	})
	if err != nil {
		return false, fmt.Errorf("search index: %w", err)
	}

	if cond.Op == query.OpContains && cond.Field == "name" {
		needle := strings.ToLower(cond.Value)
		singleWord := len(strings.Fields(cond.Value)) == 1
		var narrowed []search.Hit
		for _, h := range hits {
			if singleWord {
				for _, tok := range strings.Split(h.Name, " ") {
					if strings.HasPrefix(strings.ToLower(tok), needle) {
						narrowed = append(narrowed, h)
						break
					}
				}
			} else if strings.Contains(strings.ToLower(h.Name), needle) {
				narrowed = append(narrowed, h)
			}
		}
		hits = narrowed
	}

	inSet := false
	for _, h := range hits {
		if h.ID == rec.RecordID() {
			inSet = true
			break
		}
	}

	switch cond.Op {
	case query.OpContains, query.OpIn:
		return inSet, nil
	case query.OpEq:
		if !inSet {
			return false, nil
		}
		return strings.EqualFold(stringify(v), cond.Value), nil
	case query.OpNe:
		return !inSet, nil
	default:
		return false, nil
	}
}

func matchTemporal(v any, cond query.Condition) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	recTime, err := dateparse.ParseAny(s)
	if err != nil {
		return false
	}
	condTime, err := dateparse.ParseAny(cond.Value)
	if err != nil {
		return false
	}
	switch cond.Op {
	case query.OpEq:
		return recTime.Equal(condTime)
	case query.OpNe:
		return !recTime.Equal(condTime)
	case query.OpLt:
		return recTime.Before(condTime)
	case query.OpLe:
		return recTime.Before(condTime) || recTime.Equal(condTime)
	case query.OpGt:
		return recTime.After(condTime)
	case query.OpGe:
		return recTime.After(condTime) || recTime.Equal(condTime)
	default:
		return true
	}
}

// matchFullText requires the value to equal a whole whitespace token of the
// record's name, description or content text, case-insensitively. Phrase
// values get both sides alphanumeric-normalized first.
func matchFullText(rec Record, cond query.Condition) bool {
	name := lowerFieldString(rec, "name")
	desc := lowerFieldString(rec, "description")
	content := lowerFieldString(rec, "content")

	if cond.PhraseMatch {
		name = query.NormalizeAlnum(name)
		desc = query.NormalizeAlnum(desc)
		content = query.NormalizeAlnum(content)
	}

	val := strings.ToLower(cond.Value)
	return containsToken(name, val) || containsToken(desc, val) || containsToken(content, val)
}

func containsToken(s, val string) bool {
	for _, tok := range strings.Fields(s) {
		if tok == val {
			return true
		}
	}
	return false
}

func lowerFieldString(rec Record, field string) string {
	v, ok := rec.Field(field)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return strings.ToLower(s)
}

// matchDefault handles unclassified fields: ci-substring for contains,
// membership for in, exact equality, and float-cast ordering comparisons.
func matchDefault(v any, cond query.Condition) bool {
	text := stringify(v)
	switch cond.Op {
	case query.OpContains:
		return strings.Contains(strings.ToLower(text), strings.ToLower(cond.Value))
	case query.OpIn:
		if list, ok := v.([]string); ok {
			return slices.Contains(list, cond.Value)
		}
		return strings.Contains(text, cond.Value)
	case query.OpEq:
		return text == cond.Value
	case query.OpNe:
		return text != cond.Value
	default:
		recNum, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return false
		}
		condNum, err := strconv.ParseFloat(cond.Value, 64)
		if err != nil {
			return false
		}
		switch cond.Op {
		case query.OpLt:
			return recNum < condNum
		case query.OpLe:
			return recNum <= condNum
		case query.OpGt:
			return recNum > condNum
		case query.OpGe:
			return recNum >= condNum
		}
		return false
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case []string:
		return strings.Join(t, " ")
	default:
		return fmt.Sprint(t)
	}
}
