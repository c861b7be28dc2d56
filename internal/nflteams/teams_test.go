package nflteams

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"SF", "SF", true},
		{"49ers", "SF", true},
		{"San Francisco 49ers", "SF", true},
		{"buffalo", "BUF", true},
		{" Jax ", "JAX", true},
		{"jac", "JAX", true},
		{"oak", "LV", true},
		{"wsh", "WAS", true},
		{"sd", "LAC", true},
		{"not a team", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := Normalize(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Normalize(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalize_AmbiguousCitiesRejected(t *testing.T) {
	// Two franchises share each of these cities; a bare city name must not
	// resolve to either.
	for _, city := range []string{"New York", "Los Angeles"} {
		if code, ok := Normalize(city); ok {
			t.Errorf("Normalize(%q) = %q, want no match for a shared city", city, code)
		}
	}
	if code, ok := Normalize("New York Jets"); !ok || code != "NYJ" {
		t.Errorf("Normalize(New York Jets) = %q, %v; want NYJ", code, ok)
	}
}

func TestDefenseCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"49ers", "SF", true},
		{"SF Defense", "SF", true},
		{"San Francisco 49ers D/ST", "SF", true},
		{"Seattle Seahawks DST", "SEA", true},
		{"Bears D", "CHI", true},
		{"New York Jets Special Teams", "NYJ", true},
		{"Defense", "", false},
		{"Gotham Knights", "", false},
	}
	for _, tc := range tests {
		got, ok := DefenseCode(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("DefenseCode(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestTeams_FullLeague(t *testing.T) {
	all := Teams()
	if len(all) != 32 {
		t.Fatalf("len(Teams()) = %d, want 32", len(all))
	}
	codes := make(map[string]bool, len(all))
	for _, team := range all {
		if codes[team.Code] {
			t.Errorf("duplicate code %q", team.Code)
		}
		codes[team.Code] = true
	}
}
