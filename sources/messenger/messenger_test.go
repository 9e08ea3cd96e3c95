package messenger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chatmesh/sources/configuration"
	"chatmesh/sources/metrics"
	"chatmesh/sources/proxy"
	"chatmesh/sources/texting"
	"chatmesh/sources/tracing"

	"github.com/google/uuid"
)

type stubPermissions struct {
	prefix    string
	obfuscate bool
}

func (s *stubPermissions) Prefix(*tracing.Logger, uuid.UUID) string     { return s.prefix }
func (s *stubPermissions) CanObfuscate(*tracing.Logger, uuid.UUID) bool { return s.obfuscate }

type stubNicknames struct {
	preset texting.NickPreset
	found  bool
	err    error
}

func (s *stubNicknames) Get(*tracing.Logger, uuid.UUID) (texting.NickPreset, bool, error) {
	return s.preset, s.found, s.err
}

type recordingAudience struct {
	lines []string
}

func (a *recordingAudience) SendMarkup(markup string) {
	a.lines = append(a.lines, markup)
}

func testConfig(t *testing.T) *configuration.Config {
	t.Helper()

	dir := t.TempDir()
	filetypes := filepath.Join(dir, "filetypes.json")
	emojis := filepath.Join(dir, "emojis.yaml")
	if err := os.WriteFile(filetypes, []byte(`{"IMAGE":["png"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(emojis, []byte("wave: \"\U0001F44B\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	return &configuration.Config{
		Chat: configuration.ChatConfig{
			BroadcastFormat: "<prefix> | <sender>: <message>",
			BridgeInFormat:  "Bridge | <sender>: <message>",
			JoinFormat:      "<yellow><player> has joined the network",
			LeaveFormat:     "<yellow><player> has left the network",
			FiletypesPath:   filetypes,
			EmojisPath:      emojis,
		},
	}
}

func testMessenger(t *testing.T, config *configuration.Config, nicknames Nicknames, permissions Permissions) (*Messenger, *proxy.Proxy) {
	t.Helper()

	log := tracing.NewConsoleLogger()
	transformer, err := texting.NewTransformer(log, config)
	if err != nil {
		t.Fatal(err)
	}

	sink := proxy.NewProxy(log, proxy.NewDispatcher(), []string{"hub"})
	return NewMessenger(log, config, sink, transformer, nicknames, permissions, metrics.NewMetricsService(log)), sink
}

func TestBroadcastChatMessageRendersFormat(t *testing.T) {
	config := testConfig(t)
	nicknames := &stubNicknames{preset: texting.NickPreset{Format: "<red><username></red>"}, found: true}
	messenger, sink := testMessenger(t, config, nicknames, &stubPermissions{prefix: "<gold>Admin</gold>"})

	audience := &recordingAudience{}
	player := proxy.NewPlayer(uuid.New(), "Aurora", "hub", audience)
	sink.Connect(player)

	messenger.BroadcastChatMessage(tracing.NewConsoleLogger(), "hub", player, "hello &lworld")

	if len(audience.lines) != 1 {
		t.Fatalf("expected one delivered line, got %d", len(audience.lines))
	}
	line := audience.lines[0]

	if !strings.HasPrefix(line, "<gold>Admin</gold> | ") {
		t.Errorf("prefix missing from %q", line)
	}
	if !strings.Contains(line, "<click:run_command:'/profile info Aurora'><red>Aurora</red></click>") {
		t.Errorf("clickable nickname missing from %q", line)
	}
	if !strings.Contains(line, "hello <bold>world") {
		t.Errorf("transformed body missing from %q", line)
	}
}

func TestBroadcastChatMessageFallsBackToPlainUsername(t *testing.T) {
	config := testConfig(t)
	messenger, sink := testMessenger(t, config, &stubNicknames{}, &stubPermissions{prefix: "<gray>Default</gray>"})

	audience := &recordingAudience{}
	player := proxy.NewPlayer(uuid.New(), "Borealis", "hub", audience)
	sink.Connect(player)

	messenger.BroadcastChatMessage(tracing.NewConsoleLogger(), "hub", player, "hi")

	if len(audience.lines) != 1 {
		t.Fatalf("expected one delivered line, got %d", len(audience.lines))
	}
	if !strings.Contains(audience.lines[0], ">Borealis</click>") {
		t.Errorf("plain username missing from %q", audience.lines[0])
	}
}

func TestBroadcastChatMessageDispatchesBridgeCopy(t *testing.T) {
	config := testConfig(t)
	messenger, sink := testMessenger(t, config, &stubNicknames{}, &stubPermissions{prefix: "<gray>Default</gray>"})

	delivered := make(chan BridgeChatEvent, 1)
	proxy.Subscribe(sink.Dispatcher(), func(event BridgeChatEvent) { delivered <- event })

	player := proxy.NewPlayer(uuid.New(), "Aurora", "Hub", &recordingAudience{})
	sink.Connect(player)

	messenger.BroadcastChatMessage(tracing.NewConsoleLogger(), "Hub", player, "hello")

	select {
	case event := <-delivered:
		if event.Server != "hub" || event.Sender != "Aurora" || event.Message != "hello" {
			t.Fatalf("unexpected bridge copy: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("bridge copy was never dispatched")
	}
}

func TestBroadcastJoinAnnouncesEverywhere(t *testing.T) {
	config := testConfig(t)
	messenger, sink := testMessenger(t, config, &stubNicknames{}, &stubPermissions{})

	delivered := make(chan BridgeMainEvent, 1)
	proxy.Subscribe(sink.Dispatcher(), func(event BridgeMainEvent) { delivered <- event })

	audience := &recordingAudience{}
	player := proxy.NewPlayer(uuid.New(), "Aurora", "hub", audience)
	sink.Connect(player)

	messenger.BroadcastJoin(tracing.NewConsoleLogger(), player, "%player% has joined the network")

	if len(audience.lines) != 1 || !strings.Contains(audience.lines[0], "Aurora has joined") {
		t.Fatalf("local join announcement missing: %v", audience.lines)
	}

	select {
	case event := <-delivered:
		if event.Message != "Aurora has joined the network" {
			t.Fatalf("unexpected bridge notice: %q", event.Message)
		}
	case <-time.After(time.Second):
		t.Fatal("bridge notice was never dispatched")
	}
}

func TestBroadcastInboundUsesBridgeFormat(t *testing.T) {
	config := testConfig(t)
	messenger, sink := testMessenger(t, config, &stubNicknames{}, &stubPermissions{})

	audience := &recordingAudience{}
	sink.Connect(proxy.NewPlayer(uuid.New(), "Aurora", "hub", audience))

	messenger.BroadcastInbound(tracing.NewConsoleLogger(), "outsider", "hello")

	if len(audience.lines) != 1 || audience.lines[0] != "Bridge | outsider: hello" {
		t.Fatalf("unexpected inbound delivery: %v", audience.lines)
	}
}
