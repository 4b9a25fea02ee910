package matching

import "testing"

func TestMatchBodyEquals(t *testing.T) {
	if got := MatchBodyEquals(`{"a":1}`, []byte(`{"a":1}`)); got != ScoreBodyEquals {
		t.Errorf("expected %d, got %d", ScoreBodyEquals, got)
	}
	if got := MatchBodyEquals(`{"a":1}`, []byte(`{"a":2}`)); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestMatchBodyContains(t *testing.T) {
	body := []byte(`{"user":"alice","role":"admin"}`)
	if got := MatchBodyContains(`"role":"admin"`, body); got != ScoreBodyContains {
		t.Errorf("expected %d, got %d", ScoreBodyContains, got)
	}
	if got := MatchBodyContains("superuser", body); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestMatchBodyPattern(t *testing.T) {
	body := []byte(`order id 4521 confirmed`)
	if got := MatchBodyPattern(`order id \d+`, body); got != ScoreBodyPattern {
		t.Errorf("expected %d, got %d", ScoreBodyPattern, got)
	}
	if got := MatchBodyPattern(`^refund`, body); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	// Invalid pattern is a non-match, not a panic
	if got := MatchBodyPattern(`([`, body); got != 0 {
		t.Errorf("expected 0 for invalid pattern, got %d", got)
	}
}

func TestValidateBodyPattern(t *testing.T) {
	if err := ValidateBodyPattern(`^\d+$`); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateBodyPattern(""); err != nil {
		t.Errorf("unexpected error for empty pattern: %v", err)
	}
	if err := ValidateBodyPattern(`([`); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestBodyScoreOrdering(t *testing.T) {
	// Exact match outranks pattern, pattern outranks contains
	if !(ScoreBodyEquals > ScoreBodyPattern && ScoreBodyPattern > ScoreBodyContains) {
		t.Errorf("unexpected body score ordering: equals=%d pattern=%d contains=%d",
			ScoreBodyEquals, ScoreBodyPattern, ScoreBodyContains)
	}
}
