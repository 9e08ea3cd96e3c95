package texting

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func testTransformer() *Transformer {
	return &Transformer{
		filetypes: map[string]string{
			"png": CategoryImage,
			"mp3": CategoryAudio,
			"mp4": CategoryVideo,
			"txt": CategoryText,
		},
		emojis: map[string]string{"wave": "\U0001F44B"},
		replacements: []Replacement{
			EmojiReplacement(map[string]string{"wave": "\U0001F44B"}),
		},
	}
}

func chipCount(output string) int {
	return strings.Count(output, "<click:open_url:")
}

func TestTransformEmptyInput(t *testing.T) {
	output := testTransformer().Transform("", false)
	if output != "" {
		t.Errorf("Transform(\"\") = %q, expected empty output", output)
	}
	if chipCount(output) != 0 {
		t.Errorf("empty input produced %d chips", chipCount(output))
	}
}

func TestTransformChipPerURL(t *testing.T) {
	output := testTransformer().Transform(
		"first https://alpha.example/shot.png middle https://beta.example last", false)

	if got := chipCount(output); got != 2 {
		t.Fatalf("expected 2 chips, got %d in %q", got, output)
	}
	for _, url := range []string{"https://alpha.example/shot.png", "https://beta.example"} {
		if !strings.Contains(output, "<click:open_url:'"+url+"'>") {
			t.Errorf("chip for %q missing from %q", url, output)
		}
	}

	firstLiteral := strings.Index(output, "first")
	middleLiteral := strings.Index(output, "middle")
	lastLiteral := strings.Index(output, "last")
	firstChip := strings.Index(output, "alpha.example")
	secondChip := strings.Index(output, "beta.example")
	if !(firstLiteral < firstChip && firstChip < middleLiteral && middleLiteral < secondChip && secondChip < lastLiteral) {
		t.Errorf("segments out of order in %q", output)
	}
}

func TestTransformChipIcons(t *testing.T) {
	tests := []struct {
		name string
		url  string
		icon string
	}{
		{"Image file", "https://x.example/a.png", iconImage},
		{"Audio file", "https://x.example/a.mp3", iconAudio},
		{"Video file", "https://x.example/a.mp4", iconVideo},
		{"Text file", "https://x.example/a.txt", iconText},
		{"Unknown extension", "https://x.example/a.unknownext", iconDefault},
		{"No path", "https://x.example", iconDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := testTransformer().Transform(tt.url, false)
			if !strings.Contains(output, "["+tt.icon+" ") {
				t.Errorf("Transform(%q) = %q, expected icon %q", tt.url, output, tt.icon)
			}
		})
	}
}

func TestTransformChipLabelTruncation(t *testing.T) {
	output := testTransformer().Transform("https://x.example/averyverylongfilename.png", false)
	if !strings.Contains(output, "[\U0001F5BC averyverylongfi….png]") {
		t.Errorf("long label not truncated: %q", output)
	}

	output = testTransformer().Transform("https://x.example/short.png", false)
	if !strings.Contains(output, "[\U0001F5BC short.png]") {
		t.Errorf("short label should be kept whole: %q", output)
	}
}

func TestTransformChipLabelTruncationCountsRunes(t *testing.T) {
	// 17 two-byte runes before the extension; a byte-wise cut would split one.
	output := testTransformer().Transform("https://x.example/ééééééééééééééééé.png", false)

	if !utf8.ValidString(output) {
		t.Fatalf("truncation produced invalid UTF-8: %q", output)
	}
	want := "[" + iconImage + " " + strings.Repeat("é", 15) + "….png]"
	if !strings.Contains(output, want) {
		t.Errorf("multibyte label not truncated on rune boundary: %q", output)
	}
}

func TestTransformHoverReferencesURL(t *testing.T) {
	output := testTransformer().Transform("https://x.example/a.png", false)
	if !strings.Contains(output, "<hover:show_text:'<aqua>https://x.example/a.png'>") {
		t.Errorf("hover preview missing original url: %q", output)
	}
}

func TestTransformLegacyStyling(t *testing.T) {
	output := testTransformer().Transform("&cred &khidden", false)
	if output != "<red>red hidden" {
		t.Errorf("obfuscation should be stripped: %q", output)
	}

	output = testTransformer().Transform("&khidden", true)
	if output != "<obfuscated>hidden" {
		t.Errorf("obfuscation should be kept with permission: %q", output)
	}
}

func TestTransformEmojiReplacement(t *testing.T) {
	output := testTransformer().Transform("hi :wave: there", false)
	if !strings.Contains(output, "<hover:show_text:'wave'>\U0001F44B</hover>") {
		t.Errorf("emoji token not expanded: %q", output)
	}

	output = testTransformer().Transform(":nosuchemoji:", false)
	if output != ":nosuchemoji:" {
		t.Errorf("unknown emoji should pass through: %q", output)
	}
}

func TestTransformBareDotSegments(t *testing.T) {
	// A trailing-dot or leading-dot file segment is not a file label.
	for _, url := range []string{"https://x.example/file.", "https://x.example/.hidden"} {
		output := testTransformer().Transform(url, false)
		if !strings.Contains(output, "["+iconDefault+" x.example]") {
			t.Errorf("Transform(%q) should fall back to host label: %q", url, output)
		}
	}
}

func TestFormatReplacement(t *testing.T) {
	bold := FormatReplacement("**", "b")

	if got := bold.Apply("a **strong** b"); got != "a <b>strong</b> b" {
		t.Errorf("FormatReplacement() = %q", got)
	}
	if got := bold.Apply(`a \**literal** b`); got != "a **literal** b" {
		t.Errorf("escaped span should stay literal: %q", got)
	}
}
