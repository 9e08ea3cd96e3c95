package texting

import (
	"errors"
	"regexp"
	"strings"
)

// UsernamePlaceholder is the substitution point a nickname template fills with
// the rendered username. A preset that still contains it is "generic": it keeps
// rendering correctly after a username change.
const UsernamePlaceholder = "<username>"

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// legacyCodeNames maps single legacy color codes to their named-color form, used
// when validating "&x" color arguments.
var legacyCodeNames = map[string]string{
	"0": "black", "1": "dark_blue", "2": "dark_green", "3": "dark_aqua",
	"4": "dark_red", "5": "dark_purple", "6": "gold", "7": "gray",
	"8": "dark_gray", "9": "blue", "a": "green", "b": "aqua",
	"c": "red", "d": "light_purple", "e": "yellow", "f": "white",
}

var (
	ErrInvalidColor       = errors.New("invalid color code provided")
	ErrInvalidLegacyColor = errors.New("when providing legacy color codes, use a single character after &")
)

// NickPreset is a display-name template: a literal color tag, a gradient tag, or
// an arbitrary markup template around the username substitution point.
type NickPreset struct {
	Format string
}

func PlainNick(username string) NickPreset {
	return NickPreset{Format: username}
}

func (p NickPreset) Render(username string) string {
	return strings.ReplaceAll(p.Format, UsernamePlaceholder, username)
}

func (p NickPreset) IsGeneric() bool {
	return strings.Contains(p.Format, UsernamePlaceholder)
}

// ColorOrGradient builds a static-color preset from one color or a gradient
// preset from several, validating every color argument.
func ColorOrGradient(colors ...string) (NickPreset, error) {
	validated := make([]string, 0, len(colors))
	for _, color := range colors {
		name, err := validateColor(color)
		if err != nil {
			return NickPreset{}, err
		}
		validated = append(validated, name)
	}

	codes := strings.Join(validated, ":")
	if len(validated) == 1 {
		return NickPreset{Format: "<color:" + codes + ">" + UsernamePlaceholder + "</color:" + codes + ">"}, nil
	}
	return NickPreset{Format: "<gradient:" + codes + ">" + UsernamePlaceholder + "</gradient>"}, nil
}

func validateColor(color string) (string, error) {
	if strings.HasPrefix(color, "&") {
		if len(color) != 2 {
			return "", ErrInvalidLegacyColor
		}
		name, ok := legacyCodeNames[strings.ToLower(color[1:])]
		if !ok {
			return "", ErrInvalidColor
		}
		return name, nil
	}
	if hexPattern.MatchString(color) {
		return color, nil
	}
	for _, name := range legacyCodeNames {
		if color == name {
			return color, nil
		}
	}
	return "", ErrInvalidColor
}
