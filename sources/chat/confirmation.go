package chat

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"chatmesh/sources/configuration"
	"chatmesh/sources/metrics"
	"chatmesh/sources/tracing"

	"github.com/google/uuid"
)

var ErrNothingToConfirm = errors.New("you have no message to confirm")

type flaggedMessage struct {
	message   string
	flaggedAt time.Time
}

// ConfirmationGate screens chat lines against the moderation patterns. A
// flagged line is parked per sender until /confirm releases it; a second
// flagged line from the same sender replaces the first.
type ConfirmationGate struct {
	log     *tracing.Logger
	metrics *metrics.MetricsService

	// nil when no moderation patterns are configured, every line passes.
	pattern *regexp.Regexp
	pending sync.Map
}

func NewConfirmationGate(log *tracing.Logger, config *configuration.Config, metrics *metrics.MetricsService) *ConfirmationGate {
	var pattern *regexp.Regexp
	if len(config.Chat.ModerationPatterns) > 0 {
		grouped := make([]string, 0, len(config.Chat.ModerationPatterns))
		for _, raw := range config.Chat.ModerationPatterns {
			grouped = append(grouped, "("+raw+")")
		}
		pattern = regexp.MustCompile(strings.Join(grouped, "|"))
	}

	return &ConfirmationGate{log: log, metrics: metrics, pattern: pattern}
}

// Screen checks a line against the moderation patterns. Clean lines pass with
// ok set. Flagged lines are parked and a preview with the matches highlighted
// is returned for the sender's prompt.
func (x *ConfirmationGate) Screen(logger *tracing.Logger, id uuid.UUID, message string) (ok bool, preview string) {
	if x.pattern == nil || !x.pattern.MatchString(message) {
		// A clean line supersedes whatever the sender had parked.
		x.pending.Delete(id)
		return true, ""
	}

	preview = x.pattern.ReplaceAllStringFunc(message, func(match string) string {
		return "<red>" + match + "</red>"
	})

	x.pending.Store(id, flaggedMessage{message: message, flaggedAt: time.Now()})
	x.metrics.RecordMessageFlagged()
	logger.I("Chat line flagged for confirmation", tracing.UserId, id.String(), tracing.MessageLength, len(message))

	return false, preview
}

// Confirm releases the sender's parked line. Each parked line can be released
// exactly once.
func (x *ConfirmationGate) Confirm(logger *tracing.Logger, id uuid.UUID) (string, error) {
	value, ok := x.pending.LoadAndDelete(id)
	if !ok {
		x.metrics.RecordConfirmation("empty")
		return "", ErrNothingToConfirm
	}

	x.metrics.RecordConfirmation("confirmed")
	return value.(flaggedMessage).message, nil
}
