package commands

import (
	"io"
	"strings"

	"github.com/alecthomas/kong"
)

// parseCommand binds issued command arguments to a kong-tagged declaration
// and reports which subcommand matched.
func parseCommand(cmd interface{}, args []string) (*kong.Context, error) {
	// Player input must never terminate the process, even "--help".
	parser, err := kong.New(cmd, kong.Exit(func(int) {}), kong.Writers(io.Discard, io.Discard))
	if err != nil {
		return nil, err
	}
	return parser.Parse(args)
}

// subcommand extracts the leading subcommand name from a parsed kong context.
// kong suffixes the matched positional placeholders, which callers never
// switch on.
func subcommand(ctx *kong.Context) string {
	fields := strings.Fields(ctx.Command())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
