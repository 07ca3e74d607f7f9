package config

import "testing"

func TestParseRegions(t *testing.T) {
	defs := parseRegions("Sandton@-26.1076,28.0567; Pretoria@-25.7479,28.2293")

	if len(defs) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(defs))
	}
	if defs[0].Name != "Sandton" || defs[0].Latitude != -26.1076 || defs[0].Longitude != 28.0567 {
		t.Errorf("unexpected first region %+v", defs[0])
	}
	if defs[1].Name != "Pretoria" {
		t.Errorf("unexpected second region %+v", defs[1])
	}
}

func TestParseRegions_SkipsMalformedEntries(t *testing.T) {
	defs := parseRegions("Sandton@-26.1076,28.0567;broken;NoCoords@;Bad@x,y")

	if len(defs) != 1 || defs[0].Name != "Sandton" {
		t.Errorf("expected only the valid entry, got %+v", defs)
	}
}

func TestParseRegions_EmptyFallsBackToDefaults(t *testing.T) {
	defs := parseRegions("")

	if len(defs) != len(defaultRegions) {
		t.Fatalf("expected the default catalog, got %d entries", len(defs))
	}
	if defs[0].Name != "Johannesburg" {
		t.Errorf("unexpected first default region %q", defs[0].Name)
	}
}

func TestParseRegions_AllMalformedFallsBackToDefaults(t *testing.T) {
	defs := parseRegions("garbage;;more garbage")

	if len(defs) != len(defaultRegions) {
		t.Errorf("expected the default catalog for fully malformed input, got %d entries", len(defs))
	}
}
