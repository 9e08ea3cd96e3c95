package configuration

import (
	"fmt"
	"regexp"
	"strings"

	"chatmesh/sources/platform"
)

type Config struct {
	Servers     []string          `yaml:"servers"`
	Chat        ChatConfig        `yaml:"chat"`
	Bridge      BridgeConfig      `yaml:"bridge"`
	Nicknames   NicknamesConfig   `yaml:"nicknames"`
	Permissions PermissionsConfig `yaml:"permissions"`
}

type ChatConfig struct {
	BroadcastFormat    string         `yaml:"broadcast_format"`
	BridgeInFormat     string         `yaml:"bridge_in_format"`
	JoinFormat         string         `yaml:"join_format"`
	LeaveFormat        string         `yaml:"leave_format"`
	SpyFormat          string         `yaml:"spy_format"`
	ModerationPatterns []string       `yaml:"moderation_patterns"`
	FiletypesPath      string         `yaml:"filetypes_path"`
	EmojisPath         string         `yaml:"emojis_path"`
	Formats            []InlineFormat `yaml:"formats"`
}

type InlineFormat struct {
	Token string `yaml:"token"`
	Tag   string `yaml:"tag"`
}

type BridgeConfig struct {
	Enable         bool              `yaml:"enable"`
	Token          string            `yaml:"token"`
	ChannelID      int64             `yaml:"channel_id"`
	ServiceUserID  int64             `yaml:"service_user_id"`
	Format         string            `yaml:"format"`
	JoinFormat     string            `yaml:"join_format"`
	LeaveFormat    string            `yaml:"leave_format"`
	ServerTokens   map[string]string `yaml:"server_tokens"`
	PollerTimeout  int               `yaml:"poller_timeout"`
	AllowedUpdates []string          `yaml:"allowed_updates"`
}

type NicknamesConfig struct {
	ClearOnChange *bool             `yaml:"clear_on_change"`
	Presets       map[string]string `yaml:"presets"`
}

type PermissionsConfig struct {
	DefaultGroup string                 `yaml:"default_group"`
	Groups       map[string]GroupConfig `yaml:"groups"`
	Users        map[string]string      `yaml:"users"`
}

type GroupConfig struct {
	Prefix    string `yaml:"prefix"`
	Obfuscate bool   `yaml:"obfuscate"`
	Moderator bool   `yaml:"moderator"`
}

func (c *Config) applyDefaults() {
	if c.Chat.BroadcastFormat == "" {
		c.Chat.BroadcastFormat = "<prefix> <gray>|</gray> <sender><gray>:</gray> <message>"
	}
	if c.Chat.BridgeInFormat == "" {
		c.Chat.BridgeInFormat = "<dark_aqua>Bridge</dark_aqua> <gray>|</gray> <dark_purple><sender></dark_purple><gray>:</gray> <message>"
	}
	if c.Chat.JoinFormat == "" {
		c.Chat.JoinFormat = "<yellow><player> has joined the network"
	}
	if c.Chat.LeaveFormat == "" {
		c.Chat.LeaveFormat = "<yellow><player> has left the network"
	}
	if c.Chat.SpyFormat == "" {
		c.Chat.SpyFormat = "<gold><user></gold> <gray>ran</gray> <yellow><command></yellow>"
	}
	if c.Chat.FiletypesPath == "" {
		c.Chat.FiletypesPath = "resources/filetypes.json"
	}
	if c.Chat.EmojisPath == "" {
		c.Chat.EmojisPath = "resources/emojis.yaml"
	}
	if c.Bridge.Format == "" {
		c.Bridge.Format = "[%prefix%] %sender%: %message%"
	}
	if c.Bridge.JoinFormat == "" {
		c.Bridge.JoinFormat = "%player% has joined the network"
	}
	if c.Bridge.LeaveFormat == "" {
		c.Bridge.LeaveFormat = "%player% has left the network"
	}
	if c.Bridge.PollerTimeout == 0 {
		c.Bridge.PollerTimeout = 120
	}
	if len(c.Bridge.AllowedUpdates) == 0 {
		c.Bridge.AllowedUpdates = []string{"message"}
	}
	if c.Nicknames.ClearOnChange == nil {
		c.Nicknames.ClearOnChange = platform.BoolPtr(true)
	}
	if c.Permissions.DefaultGroup == "" {
		c.Permissions.DefaultGroup = "default"
	}

	// Username lookups are case-insensitive, keys are stored lowercased.
	users := make(map[string]string, len(c.Permissions.Users))
	for name, group := range c.Permissions.Users {
		users[strings.ToLower(name)] = group
	}
	c.Permissions.Users = users
}

func (c *Config) validate() error {
	for _, pattern := range c.Chat.ModerationPatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid moderation pattern %q: %w", pattern, err)
		}
	}

	if c.Bridge.Enable {
		if err := platform.ValidateTelegramBotToken(c.Bridge.Token); err != nil {
			return fmt.Errorf("bridge token: %w", err)
		}
		for server, token := range c.Bridge.ServerTokens {
			if err := platform.ValidateTelegramBotToken(token); err != nil {
				return fmt.Errorf("bridge token for server %q: %w", server, err)
			}
		}
		if c.Bridge.ChannelID == 0 {
			return fmt.Errorf("bridge is enabled but no channel_id is configured")
		}
	}

	for name, group := range c.Permissions.Users {
		if _, ok := c.Permissions.Groups[group]; !ok {
			return fmt.Errorf("user %q is assigned to unknown group %q", name, group)
		}
	}

	return nil
}
