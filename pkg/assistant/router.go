package assistant

import "strings"

// Keyword sets that steer the conversational graph. Containment is checked
// on the lowercased query; the passages set is evaluated strictly before
// the freewriting set, so a query matching both resolves to passages.
var (
	passageKeywords     = []string{"passage", "passages", "archive", "archives", "history"}
	freewritingKeywords = []string{"freewrite", "freewriting"}
)

// RouteQuery classifies a query into exactly one route label.
// chat is the catch-all, so every query is routable.
func RouteQuery(query string) string {
	q := strings.ToLower(query)

	for _, word := range passageKeywords {
		if strings.Contains(q, word) {
			return RoutePassages
		}
	}
	for _, word := range freewritingKeywords {
		if strings.Contains(q, word) {
			return RouteFreewriting
		}
	}
	return RouteChat
}
