package commands

// NickCmd declares the /nick grammar: self-service color and preset
// subcommands plus the moderator-only remove target and set template.
type NickCmd struct {
	Color struct {
		Colors []string `arg:"" help:"One color or up to three gradient stops"`
	} `cmd:"" help:"Color or gradient your nickname"`

	Preset struct {
		Name string `arg:"" help:"Preset name"`
	} `cmd:"" help:"Apply a configured preset"`

	Presets struct {
	} `cmd:"" help:"List configured presets"`

	Remove struct {
		Username string `arg:"" optional:"" help:"Target player (moderators only)"`
	} `cmd:"" help:"Remove a nickname"`

	Set struct {
		Username string   `arg:"" help:"Target player"`
		Template []string `arg:"" help:"Nickname template"`
	} `cmd:"" help:"Assign an arbitrary nickname template"`
}

// MailCmd declares the /mail grammar.
type MailCmd struct {
	Send struct {
		Username string   `arg:"" help:"Recipient"`
		Message  []string `arg:"" help:"Message body"`
	} `cmd:"" help:"Send mail to a player"`

	Read struct {
		ID int64 `arg:"" help:"Mail id"`
	} `cmd:"" help:"Read one piece of mail"`
}

// ProfileCmd declares the /profile grammar.
type ProfileCmd struct {
	Info struct {
		Username string `arg:"" help:"Player to look up"`
	} `cmd:"" help:"Show a player's profile"`

	About struct {
		Text []string `arg:"" help:"About line"`
	} `cmd:"" help:"Set your about line"`
}
