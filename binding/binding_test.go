package binding

import "testing"

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"page":  3,
		"pages": 10,
		"book": map[string]any{
			"title":   "Moby Dick",
			"authors": []any{"Herman Melville"},
			"year":    1851.0,
		},
		"tags": map[string]string{"genre": "novel"},
	}
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "no placeholders", "no placeholders"},
		{"ints", "${page} / ${pages}", "3 / 10"},
		{"nested", "${book.title}", "Moby Dick"},
		{"index", "by ${book.authors[0]}", "by Herman Melville"},
		{"json number", "${book.year}", "1851"},
		{"string map", "${tags.genre}", "novel"},
		{"missing keeps placeholder", "${book.missing}", "${book.missing}"},
		{"missing with fallback", "${book.subtitle|none}", "none"},
		{"fallback unused", "${book.title|x}", "Moby Dick"},
		{"index out of range", "${book.authors[3]}", "${book.authors[3]}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Interpolate(tc.in, data); got != tc.want {
				t.Fatalf("Interpolate(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("${a} ${b|B}", nil); got != "${a} B" {
		t.Fatalf("unexpected result with nil data: %q", got)
	}
}
