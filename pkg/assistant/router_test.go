package assistant

import "testing"

func TestRouteQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"passage keyword", "tell me about the passages archive", RoutePassages},
		{"singular passage", "find a passage about the sea", RoutePassages},
		{"archive keyword", "what is in the archive", RoutePassages},
		{"history keyword", "our history together", RoutePassages},
		{"uppercase normalized", "SHOW ME THE ARCHIVES", RoutePassages},
		{"freewrite keyword", "read my freewrite from yesterday", RouteFreewriting},
		{"freewriting keyword", "search the freewriting collection", RouteFreewriting},
		{"both sets present resolves to passages", "freewriting passages from March", RoutePassages},
		{"neither keyword", "how are you today", RouteChat},
		{"empty query", "", RouteChat},
		{"keyword inside larger word", "the prehistory of verse", RoutePassages}, // containment, not word match
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RouteQuery(tt.query); got != tt.want {
				t.Errorf("RouteQuery(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}
