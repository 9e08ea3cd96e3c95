package permissions

import (
	"strings"

	"chatmesh/sources/configuration"
	"chatmesh/sources/repository"
	"chatmesh/sources/tracing"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Service answers permission questions from static configuration. Players are
// assigned to groups by username; everyone else lands in the default group.
type Service struct {
	log      *tracing.Logger
	config   *configuration.PermissionsConfig
	identity *repository.IdentityRepository
}

func NewService(log *tracing.Logger, config *configuration.Config, identity *repository.IdentityRepository) *Service {
	return &Service{log: log, config: &config.Permissions, identity: identity}
}

func (x *Service) groupOf(logger *tracing.Logger, id uuid.UUID) (string, configuration.GroupConfig) {
	name := x.config.DefaultGroup

	if username, ok := x.identity.UsernameByID(id); ok {
		if assigned, ok := x.config.Users[strings.ToLower(username)]; ok {
			name = assigned
		}
	}

	group, ok := x.config.Groups[name]
	if !ok {
		logger.W("Permission group is not configured, falling back to empty group", "group", name)
		return name, configuration.GroupConfig{}
	}
	return name, group
}

// Prefix returns the chat prefix of the player's group. Groups without an
// explicit prefix get their capitalized name in gray.
func (x *Service) Prefix(logger *tracing.Logger, id uuid.UUID) string {
	name, group := x.groupOf(logger, id)
	if group.Prefix != "" {
		return group.Prefix
	}
	return "<gray>" + titleCaser.String(name) + "</gray>"
}

// CanObfuscate reports whether the player's group may use the obfuscation
// style in chat.
func (x *Service) CanObfuscate(logger *tracing.Logger, id uuid.UUID) bool {
	_, group := x.groupOf(logger, id)
	return group.Obfuscate
}

// IsModerator reports whether the player's group carries moderation rights.
func (x *Service) IsModerator(logger *tracing.Logger, id uuid.UUID) bool {
	_, group := x.groupOf(logger, id)
	return group.Moderator
}
