package bridge

import (
	"reflect"
	"testing"
)

func TestMatchServersCaseInsensitive(t *testing.T) {
	matched, unknown, unbound := matchServers(
		map[string]string{"Hub": "token-a", "SURVIVAL": "token-b"},
		[]string{"hub", "survival"},
	)

	want := map[string]string{"hub": "token-a", "survival": "token-b"}
	if !reflect.DeepEqual(matched, want) {
		t.Errorf("matched = %v, want %v", matched, want)
	}
	if len(unknown) != 0 || len(unbound) != 0 {
		t.Errorf("expected a clean match, got unknown=%v unbound=%v", unknown, unbound)
	}
}

func TestMatchServersReportsBothSidesOfAMismatch(t *testing.T) {
	matched, unknown, unbound := matchServers(
		map[string]string{"hub": "token-a", "retired": "token-c"},
		[]string{"hub", "creative"},
	)

	if !reflect.DeepEqual(matched, map[string]string{"hub": "token-a"}) {
		t.Errorf("unexpected matched set: %v", matched)
	}
	if !reflect.DeepEqual(unknown, []string{"retired"}) {
		t.Errorf("unexpected unknown servers: %v", unknown)
	}
	if !reflect.DeepEqual(unbound, []string{"creative"}) {
		t.Errorf("unexpected unbound servers: %v", unbound)
	}
}

func TestMatchServersWithNothingConfigured(t *testing.T) {
	matched, unknown, unbound := matchServers(nil, []string{"hub"})

	if len(matched) != 0 || len(unknown) != 0 {
		t.Errorf("unexpected match against empty config: %v, %v", matched, unknown)
	}
	if !reflect.DeepEqual(unbound, []string{"hub"}) {
		t.Errorf("unexpected unbound servers: %v", unbound)
	}
}

func TestStripMarkup(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"<gold>Admin</gold>", "Admin"},
		{"<gradient:red:blue>Team</gradient>", "Team"},
		{"plain text", "plain text"},
		{"<click:run_command:'/profile info A'>A</click>", "A"},
	}

	for _, c := range cases {
		if got := StripMarkup(c.input); got != c.want {
			t.Errorf("StripMarkup(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}
