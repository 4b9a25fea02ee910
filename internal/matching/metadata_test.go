package matching

import "testing"

func TestMatchMetadata_Subset(t *testing.T) {
	actual := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer abc123",
		"X-Request-Id":  "req-1",
	}

	// Subset match; extra actual entries never hurt
	score := MatchMetadata(map[string]string{"content-type": "application/json"}, actual)
	if score != ScoreHeader {
		t.Errorf("expected %d, got %d", ScoreHeader, score)
	}

	score = MatchMetadata(map[string]string{
		"content-type":  "application/json",
		"authorization": "Bearer abc123",
	}, actual)
	if score != 2*ScoreHeader {
		t.Errorf("expected %d, got %d", 2*ScoreHeader, score)
	}
}

func TestMatchMetadata_MissRejectsAll(t *testing.T) {
	actual := map[string]string{"content-type": "application/json"}

	// One missing entry fails the whole set
	score := MatchMetadata(map[string]string{
		"content-type":  "application/json",
		"authorization": "Bearer abc123",
	}, actual)
	if score != 0 {
		t.Errorf("expected 0, got %d", score)
	}

	// Wrong value likewise
	if got := MatchMetadata(map[string]string{"content-type": "text/plain"}, actual); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestMatchMetadata_Empty(t *testing.T) {
	if got := MatchMetadata(nil, map[string]string{"a": "b"}); got != 0 {
		t.Errorf("expected 0 for no expectations, got %d", got)
	}
}

func TestMatchValue_Wildcards(t *testing.T) {
	tests := []struct {
		pattern string
		value   string
		want    bool
	}{
		{"application/json", "application/json", true},
		{"application/json", "text/plain", false},
		{"application/*", "application/json", true},
		{"application/*", "text/plain", false},
		{"*", "anything", true},
		{"Bearer *", "Bearer abc123", true},
		{"Bearer *", "Basic abc123", false},
		{"*json*", "application/json; charset=utf-8", true},
		{"a*b*c", "aXXbYYc", true},
		{"a*b*c", "aXXcYYb", false},
	}

	for _, tt := range tests {
		if got := MatchValue(tt.pattern, tt.value); got != tt.want {
			t.Errorf("MatchValue(%q, %q) = %v, want %v", tt.pattern, tt.value, got, tt.want)
		}
	}
}
