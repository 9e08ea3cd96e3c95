package chat

import (
	"errors"
	"strings"
	"testing"

	"chatmesh/sources/configuration"
	"chatmesh/sources/metrics"
	"chatmesh/sources/tracing"

	"github.com/google/uuid"
)

func testGate(patterns ...string) *ConfirmationGate {
	log := tracing.NewConsoleLogger()
	config := &configuration.Config{
		Chat: configuration.ChatConfig{ModerationPatterns: patterns},
	}
	return NewConfirmationGate(log, config, metrics.NewMetricsService(log))
}

func TestScreenPassesCleanMessages(t *testing.T) {
	gate := testGate(`badword`)
	log := tracing.NewConsoleLogger()

	ok, preview := gate.Screen(log, uuid.New(), "a perfectly fine message")
	if !ok {
		t.Fatal("clean message was flagged")
	}
	if preview != "" {
		t.Fatalf("clean message produced a preview: %q", preview)
	}
}

func TestScreenPassesEverythingWithoutPatterns(t *testing.T) {
	gate := testGate()
	log := tracing.NewConsoleLogger()

	if ok, _ := gate.Screen(log, uuid.New(), "badword and worse"); !ok {
		t.Fatal("message was flagged with no patterns configured")
	}
}

func TestScreenFlagsAndHighlights(t *testing.T) {
	gate := testGate(`badword`, `worse\w*`)
	log := tracing.NewConsoleLogger()

	ok, preview := gate.Screen(log, uuid.New(), "badword then worsening")
	if ok {
		t.Fatal("matching message was not flagged")
	}
	if !strings.Contains(preview, "<red>badword</red>") || !strings.Contains(preview, "<red>worsening</red>") {
		t.Fatalf("matches not highlighted in %q", preview)
	}
}

func TestConfirmReleasesExactlyOnce(t *testing.T) {
	gate := testGate(`badword`)
	log := tracing.NewConsoleLogger()
	sender := uuid.New()

	if ok, _ := gate.Screen(log, sender, "badword here"); ok {
		t.Fatal("message was not flagged")
	}

	released, err := gate.Confirm(log, sender)
	if err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}
	if released != "badword here" {
		t.Fatalf("released %q, expected the stored message", released)
	}

	if _, err := gate.Confirm(log, sender); !errors.Is(err, ErrNothingToConfirm) {
		t.Fatalf("second confirm returned %v, expected ErrNothingToConfirm", err)
	}
}

func TestConfirmWithoutFlaggedMessage(t *testing.T) {
	gate := testGate(`badword`)

	if _, err := gate.Confirm(tracing.NewConsoleLogger(), uuid.New()); !errors.Is(err, ErrNothingToConfirm) {
		t.Fatalf("got %v, expected ErrNothingToConfirm", err)
	}
}

func TestReflaggingReplacesTheParkedMessage(t *testing.T) {
	gate := testGate(`badword`)
	log := tracing.NewConsoleLogger()
	sender := uuid.New()

	gate.Screen(log, sender, "badword first")
	gate.Screen(log, sender, "badword second")

	released, err := gate.Confirm(log, sender)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if released != "badword second" {
		t.Fatalf("released %q, expected the newest flagged message", released)
	}
}

func TestCleanMessageClearsTheParkedEntry(t *testing.T) {
	gate := testGate(`badword`)
	log := tracing.NewConsoleLogger()
	sender := uuid.New()

	if ok, _ := gate.Screen(log, sender, "badword here"); ok {
		t.Fatal("message was not flagged")
	}
	if ok, _ := gate.Screen(log, sender, "a perfectly fine message"); !ok {
		t.Fatal("clean message was flagged")
	}

	if _, err := gate.Confirm(log, sender); !errors.Is(err, ErrNothingToConfirm) {
		t.Fatalf("confirm after a clean message returned %v, expected ErrNothingToConfirm", err)
	}
}

func TestFlaggedMessagesAreIsolatedPerSender(t *testing.T) {
	gate := testGate(`badword`)
	log := tracing.NewConsoleLogger()
	first := uuid.New()
	second := uuid.New()

	gate.Screen(log, first, "badword from first")

	if _, err := gate.Confirm(log, second); !errors.Is(err, ErrNothingToConfirm) {
		t.Fatalf("unrelated sender confirmed a message: %v", err)
	}
	if released, err := gate.Confirm(log, first); err != nil || released != "badword from first" {
		t.Fatalf("owner could not confirm: %q, %v", released, err)
	}
}
