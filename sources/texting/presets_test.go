package texting

import "testing"

func TestColorOrGradient(t *testing.T) {
	tests := []struct {
		name     string
		colors   []string
		expected string
		wantErr  error
	}{
		{
			name:     "Single named color",
			colors:   []string{"red"},
			expected: "<color:red><username></color:red>",
		},
		{
			name:     "Single legacy code",
			colors:   []string{"&c"},
			expected: "<color:red><username></color:red>",
		},
		{
			name:     "Single hex color",
			colors:   []string{"#ff5555"},
			expected: "<color:#ff5555><username></color:#ff5555>",
		},
		{
			name:     "Gradient",
			colors:   []string{"red", "gold"},
			expected: "<gradient:red:gold><username></gradient>",
		},
		{
			name:    "Invalid color",
			colors:  []string{"crimson"},
			wantErr: ErrInvalidColor,
		},
		{
			name:    "Legacy code too long",
			colors:  []string{"&cc"},
			wantErr: ErrInvalidLegacyColor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preset, err := ColorOrGradient(tt.colors...)
			if err != tt.wantErr {
				t.Fatalf("ColorOrGradient() error = %v, expected %v", err, tt.wantErr)
			}
			if err == nil && preset.Format != tt.expected {
				t.Errorf("ColorOrGradient() = %q, expected %q", preset.Format, tt.expected)
			}
		})
	}
}

func TestNickPresetRender(t *testing.T) {
	preset := NickPreset{Format: "<gradient:red:gold><username></gradient>"}
	if got := preset.Render("steve"); got != "<gradient:red:gold>steve</gradient>" {
		t.Errorf("Render() = %q", got)
	}
	if !preset.IsGeneric() {
		t.Error("preset with username placeholder should be generic")
	}

	custom := NickPreset{Format: "<rainbow>TheBoss</rainbow>"}
	if custom.IsGeneric() {
		t.Error("preset without username placeholder should not be generic")
	}
	if got := custom.Render("steve"); got != "<rainbow>TheBoss</rainbow>" {
		t.Errorf("Render() = %q", got)
	}
}

func TestFlattenMarkdownLinks(t *testing.T) {
	got := FlattenMarkdownLinks("see [the docs]( https://example.com/doc )   now")
	if got != "see the docs: https://example.com/doc now" {
		t.Errorf("FlattenMarkdownLinks() = %q", got)
	}
}
