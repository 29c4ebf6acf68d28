package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const gpl = `GIMP Palette
Name: mono
Columns: 2
# a comment
  0   0   0	black
255 255 255	white
300 0 0	out of range
1 2
`

func TestParseGPL(t *testing.T) {
	p, err := ParseGPL(strings.NewReader(gpl))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "mono" {
		t.Errorf("Name = %q", p.Name)
	}
	if len(p.Colors) != 2 || p.Colors[0] != (RGB{0, 0, 0}) || p.Colors[1] != (RGB{255, 255, 255}) {
		t.Errorf("Colors = %v", p.Colors)
	}

	if _, err := ParseGPL(strings.NewReader("GIMP Palette\nName: empty\n")); err == nil {
		t.Error("ParseGPL accepted a palette with no colors")
	}
}

func TestLookup(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}
	tests := []struct {
		norm float64
		want RGB
	}{
		{-1, RGB{0, 0, 0}},
		{0, RGB{0, 0, 0}},
		{0.5, RGB{100, 50, 25}},
		{1, RGB{200, 100, 50}},
		{2, RGB{200, 100, 50}},
	}
	for _, tt := range tests {
		if got := p.Lookup(tt.norm); got != tt.want {
			t.Errorf("Lookup(%v) = %v, want %v", tt.norm, got, tt.want)
		}
	}
}

func TestLoadOrDefault(t *testing.T) {
	p, err := LoadOrDefault("")
	if err != nil || p.Name != "plasma" {
		t.Errorf("empty path = %v, %v", p.Name, err)
	}

	p, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.gpl"))
	if err == nil || p.Name != "plasma" {
		t.Errorf("missing file = %v, %v, want plasma and an error", p.Name, err)
	}

	path := filepath.Join(t.TempDir(), "mono.gpl")
	if err := os.WriteFile(path, []byte(gpl), 0644); err != nil {
		t.Fatal(err)
	}
	p, err = LoadOrDefault(path)
	if err != nil || p.Name != "mono" {
		t.Errorf("loaded = %v, %v", p.Name, err)
	}
}

func TestThemeColor(t *testing.T) {
	th := New(&Palette{Colors: []RGB{{0, 0, 0}, {255, 16, 1}}})
	if got := string(th.Lit()); got != "#ff1001" {
		t.Errorf("Lit() = %q", got)
	}
	if got := string(th.Color(0)); got != "#000000" {
		t.Errorf("Color(0) = %q", got)
	}
	if New(nil).Palette.Name != "plasma" {
		t.Error("New(nil) should use plasma")
	}
}
