package metrics

import (
	"chatmesh/sources/tracing"

	"github.com/prometheus/client_golang/prometheus"
)

type MetricsService struct {
	log *tracing.Logger
}

var (
	messagesBroadcast = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatmesh_messages_broadcast_total",
			Help: "Total number of chat messages broadcast to the network",
		},
		[]string{"origin"},
	)

	messagesFlagged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatmesh_messages_flagged_total",
			Help: "Total number of messages withheld by moderation patterns",
		},
	)

	confirmations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatmesh_confirmations_total",
			Help: "Total number of flagged-message confirmation attempts",
		},
		[]string{"status"},
	)

	bridgeEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatmesh_bridge_events_total",
			Help: "Total number of events dispatched to the bridge",
		},
		[]string{"destination", "status"},
	)

	bridgeInbound = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatmesh_bridge_inbound_total",
			Help: "Total number of messages mirrored in from the bridge",
		},
		[]string{"status"},
	)

	commandsUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatmesh_commands_used_total",
			Help: "Total number of commands used",
		},
		[]string{"command"},
	)

	nicknameCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatmesh_nickname_cache_total",
			Help: "Nickname cache hits and misses",
		},
		[]string{"outcome"},
	)

	identityRefreshes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatmesh_identity_refreshes_total",
			Help: "Total number of identity cache snapshot refreshes",
		},
	)

	messagesThrottled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatmesh_messages_throttled_total",
			Help: "Total number of messages dropped by slowmode",
		},
	)
)

func NewMetricsService(log *tracing.Logger) *MetricsService {
	return &MetricsService{
		log: log,
	}
}

func (s *MetricsService) RecordMessageBroadcast(origin string) {
	messagesBroadcast.WithLabelValues(origin).Inc()
}

func (s *MetricsService) RecordMessageFlagged() {
	messagesFlagged.Inc()
}

func (s *MetricsService) RecordConfirmation(status string) {
	confirmations.WithLabelValues(status).Inc()
}

func (s *MetricsService) RecordBridgeEvent(destination, status string) {
	bridgeEvents.WithLabelValues(destination, status).Inc()
}

func (s *MetricsService) RecordBridgeInbound(status string) {
	bridgeInbound.WithLabelValues(status).Inc()
}

func (s *MetricsService) RecordCommandUsed(command string) {
	commandsUsed.WithLabelValues(command).Inc()
}

func (s *MetricsService) RecordNicknameCache(outcome string) {
	nicknameCache.WithLabelValues(outcome).Inc()
}

func (s *MetricsService) RecordIdentityRefresh() {
	identityRefreshes.Inc()
}

func (s *MetricsService) RecordMessageThrottled() {
	messagesThrottled.Inc()
}

func init() {
	prometheus.MustRegister(messagesBroadcast)
	prometheus.MustRegister(messagesFlagged)
	prometheus.MustRegister(confirmations)
	prometheus.MustRegister(bridgeEvents)
	prometheus.MustRegister(bridgeInbound)
	prometheus.MustRegister(commandsUsed)
	prometheus.MustRegister(nicknameCache)
	prometheus.MustRegister(identityRefreshes)
	prometheus.MustRegister(messagesThrottled)
}
