// Package ner wraps a named-entity-recognition model behind a small
// gateway interface. The model is a black box; this package owns the
// category mapping and deduplication rules.
package ner

import "context"

// Entity categories exposed to callers. Anything the model emits outside
// the first four lands in OTHER with its raw label attached.
const (
	CategoryPerson = "PERSON"
	CategoryOrg    = "ORG"
	CategoryLoc    = "LOC"
	CategoryDate   = "DATE"
	CategoryOther  = "OTHER"
)

// Entities maps a category to its entity strings in first-occurrence order.
type Entities map[string][]string

// Extractor is the contract for any NER backend.
type Extractor interface {
	Extract(ctx context.Context, text string) (Entities, error)
}

// RawEntity is one span as reported by the model.
type RawEntity struct {
	Group string
	Word  string
}

// Categorize buckets raw model output into the fixed category set and
// removes duplicates within each category, keeping first-occurrence order.
func Categorize(raw []RawEntity) Entities {
	entities := Entities{
		CategoryPerson: {},
		CategoryOrg:    {},
		CategoryLoc:    {},
		CategoryDate:   {},
		CategoryOther:  {},
	}

	for _, e := range raw {
		switch e.Group {
		case "PER", "PERSON":
			entities[CategoryPerson] = append(entities[CategoryPerson], e.Word)
		case "ORG", "ORGANIZATION":
			entities[CategoryOrg] = append(entities[CategoryOrg], e.Word)
		case "LOC", "LOCATION":
			entities[CategoryLoc] = append(entities[CategoryLoc], e.Word)
		case "DATE":
			entities[CategoryDate] = append(entities[CategoryDate], e.Word)
		default:
			entities[CategoryOther] = append(entities[CategoryOther], e.Word+" ("+e.Group+")")
		}
	}

	for key, values := range entities {
		entities[key] = dedupe(values)
	}
	return entities
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
