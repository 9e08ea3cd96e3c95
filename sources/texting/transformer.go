package texting

import (
	"net/url"
	"strings"

	"chatmesh/sources/configuration"
	"chatmesh/sources/tracing"
)

const (
	iconImage   = "\U0001F5BC"
	iconAudio   = "\U0001F50A"
	iconVideo   = "\U0001F3A5"
	iconText    = "\U0001F4DD"
	iconDefault = "\U0001F4CE"
)

const chipLabelLimit = 15

// Transformer turns raw chat text into styled, link-aware, emoji-aware markup.
// It is a pure function of its inputs and performs no I/O after construction.
type Transformer struct {
	filetypes    map[string]string
	emojis       map[string]string
	replacements []Replacement
}

func NewTransformer(log *tracing.Logger, config *configuration.Config) (*Transformer, error) {
	filetypes, err := LoadFiletypes(log, config.Chat.FiletypesPath)
	if err != nil {
		return nil, err
	}

	emojis, err := LoadEmojis(config.Chat.EmojisPath)
	if err != nil {
		return nil, err
	}
	log.I("Loaded emoji table", "emojis", len(emojis))

	replacements := []Replacement{EmojiReplacement(emojis)}
	for _, format := range config.Chat.Formats {
		replacements = append(replacements, FormatReplacement(format.Token, format.Tag))
	}

	return &Transformer{filetypes: filetypes, emojis: emojis, replacements: replacements}, nil
}

// Emojis exposes the name->glyph table for collaborators that need the reverse
// mapping, like the inbound bridge listener.
func (x *Transformer) Emojis() map[string]string {
	return x.emojis
}

// Transform tokenizes the message into literal segments and URL matches,
// deserializes legacy styling in the literals, rewrites every URL into a link
// chip, and applies the replacement rules to the assembled output in order.
func (x *Transformer) Transform(message string, canObfuscate bool) string {
	var out strings.Builder

	last := 0
	for _, match := range urlPattern.FindAllStringSubmatchIndex(message, -1) {
		out.WriteString(LegacyToMarkup(message[last:match[0]], canObfuscate))
		out.WriteString(x.linkChip(message[match[0]:match[1]], message[match[2]:match[3]], canObfuscate))
		last = match[1]
	}
	out.WriteString(LegacyToMarkup(message[last:], canObfuscate))

	assembled := out.String()
	for _, replacement := range x.replacements {
		assembled = replacement.Apply(assembled)
	}

	return assembled
}

// linkChip rewrites one URL match into a compact clickable chip with a
// hover preview. Text that fails URL parsing is kept as a plain literal.
func (x *Transformer) linkChip(raw, link string, canObfuscate bool) string {
	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return LegacyToMarkup(raw, canObfuscate)
	}

	name := parsed.Host
	icon := iconDefault
	if parsed.Path != "" {
		segments := strings.Split(parsed.Path, "/")
		file := segments[len(segments)-1]
		if strings.Contains(file, ".") && !strings.HasPrefix(file, ".") && !strings.HasSuffix(file, ".") {
			extension := file[strings.LastIndex(file, ".")+1:]
			name = file
			// The limit counts characters, not bytes; multibyte names must
			// not be split mid-rune.
			if runes := []rune(file); len(runes) > chipLabelLimit {
				name = string(runes[:chipLabelLimit]) + "…." + extension
			}
			icon = categoryIcon(x.filetypes[strings.ToLower(extension)])
		}
	}

	return "<aqua><click:open_url:'" + link + "'><hover:show_text:'<aqua>" + link + "'>[" + icon + " " + name + "]</hover></click><reset>"
}

func categoryIcon(category string) string {
	switch category {
	case CategoryImage:
		return iconImage
	case CategoryAudio:
		return iconAudio
	case CategoryVideo:
		return iconVideo
	case CategoryText:
		return iconText
	default:
		return iconDefault
	}
}
