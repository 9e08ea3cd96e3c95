package texting

import "testing"

func TestLegacyToMarkup(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		canObfuscate bool
		expected     string
	}{
		{
			name:     "Plain text untouched",
			input:    "hello world",
			expected: "hello world",
		},
		{
			name:     "Single color code",
			input:    "&chello",
			expected: "<red>hello",
		},
		{
			name:     "Color and style codes",
			input:    "&6&lgolden",
			expected: "<gold><bold>golden",
		},
		{
			name:     "Uppercase code accepted",
			input:    "&Chello",
			expected: "<red>hello",
		},
		{
			name:     "Reset code",
			input:    "&ared&rplain",
			expected: "<green>red<reset>plain",
		},
		{
			name:     "Section sign treated as ampersand",
			input:    "§baqua",
			expected: "<aqua>aqua",
		},
		{
			name:     "Obfuscation stripped without permission",
			input:    "&khidden",
			expected: "hidden",
		},
		{
			name:         "Obfuscation kept with permission",
			input:        "&khidden",
			canObfuscate: true,
			expected:     "<obfuscated>hidden",
		},
		{
			name:     "Unknown code is literal",
			input:    "&zn",
			expected: "&zn",
		},
		{
			name:     "Trailing ampersand is literal",
			input:    "tom&",
			expected: "tom&",
		},
		{
			name:     "Tag opener escaped",
			input:    "a <red> b",
			expected: "a \\<red> b",
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := LegacyToMarkup(tt.input, tt.canObfuscate)
			if result != tt.expected {
				t.Errorf("LegacyToMarkup() = %q, expected %q", result, tt.expected)
			}
		})
	}
}
