package texting

import "strings"

// legacyColorMap maps "&"-style color codes to markup tag names.
var legacyColorMap = map[byte]string{
	'0': "black",
	'1': "dark_blue",
	'2': "dark_green",
	'3': "dark_aqua",
	'4': "dark_red",
	'5': "dark_purple",
	'6': "gold",
	'7': "gray",
	'8': "dark_gray",
	'9': "blue",
	'a': "green",
	'b': "aqua",
	'c': "red",
	'd': "light_purple",
	'e': "yellow",
	'f': "white",
}

var legacyStyleMap = map[byte]string{
	'k': "obfuscated",
	'l': "bold",
	'm': "strikethrough",
	'n': "underlined",
	'o': "italic",
	'r': "reset",
}

// LegacyToMarkup deserializes the legacy "&code" color/style grammar into markup
// tags. Section signs are treated as ampersands so clients never render them raw.
// The obfuscation style is stripped unless canObfuscate is set. Literal tag
// openers in the input are escaped so user text cannot inject markup.
func LegacyToMarkup(input string, canObfuscate bool) string {
	var str strings.Builder
	text := strings.ReplaceAll(input, "§", "&")

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch == '&' && i+1 < len(text) {
			code := lowerByte(text[i+1])
			if name, ok := legacyColorMap[code]; ok {
				str.WriteString("<" + name + ">")
				i++
				continue
			}
			if name, ok := legacyStyleMap[code]; ok {
				if name != "obfuscated" || canObfuscate {
					str.WriteString("<" + name + ">")
				}
				i++
				continue
			}
		}
		if ch == '<' {
			str.WriteString("\\<")
			continue
		}
		str.WriteByte(ch)
	}

	return str.String()
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
