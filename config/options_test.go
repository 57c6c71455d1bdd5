package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseOptionsDefaults(t *testing.T) {
	got := ParseOptions(nil)
	want := UIOptions{
		Assistant:         "clippy",
		SetTitle:          true,
		ShiftFunctionKey:  12,
		ChangeColors:      true,
		EnableMouse:       true,
		WheelUpButton:     4,
		WheelDownButton:   5,
		WheelScrollAmount: 3,
		InfoBorder:        "rounded",
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
	if DefaultUIOptions() != want {
		t.Error("Expected DefaultUIOptions to match an empty map")
	}
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name    string
		options map[string]string
		check   func(UIOptions) bool
	}{
		{"Assistant", map[string]string{KeyAssistant: "cat"}, func(o UIOptions) bool { return o.Assistant == "cat" }},
		{"Status on top yes", map[string]string{KeyStatusOnTop: "yes"}, func(o UIOptions) bool { return o.StatusOnTop }},
		{"Status on top true", map[string]string{KeyStatusOnTop: "true"}, func(o UIOptions) bool { return o.StatusOnTop }},
		{"Status on top other", map[string]string{KeyStatusOnTop: "1"}, func(o UIOptions) bool { return !o.StatusOnTop }},
		{"Title off", map[string]string{KeySetTitle: "no"}, func(o UIOptions) bool { return !o.SetTitle }},
		{"Title garbage is off", map[string]string{KeySetTitle: "maybe"}, func(o UIOptions) bool { return !o.SetTitle }},
		{"Shift offset", map[string]string{KeyShiftFunctionKey: "24"}, func(o UIOptions) bool { return o.ShiftFunctionKey == 24 }},
		{"Shift offset malformed", map[string]string{KeyShiftFunctionKey: "x"}, func(o UIOptions) bool { return o.ShiftFunctionKey == 12 }},
		{"Colors off", map[string]string{KeyChangeColors: "false"}, func(o UIOptions) bool { return !o.ChangeColors }},
		{"Mouse off", map[string]string{KeyEnableMouse: "no"}, func(o UIOptions) bool { return !o.EnableMouse }},
		{"Wheel buttons", map[string]string{KeyWheelUpButton: "64", KeyWheelDownButton: "65"}, func(o UIOptions) bool {
			return o.WheelUpButton == 64 && o.WheelDownButton == 65
		}},
		{"Scroll amount", map[string]string{KeyWheelScrollAmount: "7"}, func(o UIOptions) bool { return o.WheelScrollAmount == 7 }},
		{"Builtin parser", map[string]string{KeyBuiltinKeyParser: "yes"}, func(o UIOptions) bool { return o.BuiltinKeyParser }},
		{"Info border", map[string]string{KeyInfoBorder: "double"}, func(o UIOptions) bool { return o.InfoBorder == "double" }},
		{"Unknown keys ignored", map[string]string{"other_option": "yes"}, func(o UIOptions) bool { return o == DefaultUIOptions() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseOptions(tt.options); !tt.check(got) {
				t.Errorf("Unexpected options %+v", got)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termface.toml")
	writeFile(t, path, `
terminal_set_title = false

[terminal]
assistant = "dilbert"
status_on_top = true
wheel_scroll_amount = 5
`)

	options, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	want := map[string]string{
		KeySetTitle:          "false",
		KeyAssistant:         "dilbert",
		KeyStatusOnTop:       "true",
		KeyWheelScrollAmount: "5",
	}
	for k, v := range want {
		if options[k] != v {
			t.Errorf("%s: expected %q, got %q", k, v, options[k])
		}
	}

	ui := ParseOptions(options)
	if ui.SetTitle || !ui.StatusOnTop || ui.WheelScrollAmount != 5 || ui.Assistant != "dilbert" {
		t.Errorf("Unexpected parsed options %+v", ui)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.toml")
	writeFile(t, bad, "terminal_assistant = [1, 2]\n")
	if _, err := LoadFile(bad); err == nil {
		t.Error("Expected error for array value")
	}

	broken := filepath.Join(dir, "broken.toml")
	writeFile(t, broken, "terminal_assistant = \n")
	if _, err := LoadFile(broken); err == nil {
		t.Error("Expected syntax error")
	}
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termface.toml")
	writeFile(t, path, "terminal_assistant = \"cat\"\n")

	changes := make(chan map[string]string, 4)
	w, err := NewWatcher(path, func(o map[string]string) { changes <- o })
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeFile(t, path, "terminal_assistant = \"none\"\n")

	select {
	case o := <-changes:
		if o[KeyAssistant] != "none" {
			t.Errorf("Expected reloaded assistant, got %q", o[KeyAssistant])
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Timed out waiting for reload")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "termface.toml")
	writeFile(t, path, "terminal_assistant = \"cat\"\n")

	changes := make(chan map[string]string, 4)
	w, err := NewWatcher(path, func(o map[string]string) { changes <- o })
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	writeFile(t, filepath.Join(dir, "other.toml"), "x = 1\n")

	select {
	case o := <-changes:
		t.Errorf("Expected no reload for a sibling file, got %v", o)
	case <-time.After(200 * time.Millisecond):
	}
}
