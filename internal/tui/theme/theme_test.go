package theme

import "testing"

func TestLoadEmbeddedThemes(t *testing.T) {
	for _, name := range Available() {
		th, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if th.Bg == "" || th.Job == "" || th.External == "" {
			t.Errorf("theme %q missing colors: %+v", name, th)
		}
	}
}

func TestLoadUnknownFallsBackToMocha(t *testing.T) {
	th, err := Load("does-not-exist")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.Name != "mocha" {
		t.Errorf("fallback theme = %q, want mocha", th.Name)
	}
}

func TestPaletteDerivesBlockColors(t *testing.T) {
	th, _ := Load("mocha")
	p := NewPalette(th)

	if p.JobBg == p.Job {
		t.Error("job block background should differ from the accent")
	}
	if p.JobBg == p.JobPastBg {
		t.Error("past blocks should be more muted than upcoming ones")
	}
}
