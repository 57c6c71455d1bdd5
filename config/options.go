// @focus: #config { options }
package config

import "strconv"

// Option keys recognized by the screen
const (
	KeyAssistant         = "terminal_assistant"
	KeyStatusOnTop       = "terminal_status_on_top"
	KeySetTitle          = "terminal_set_title"
	KeyShiftFunctionKey  = "terminal_shift_function_key"
	KeyChangeColors      = "terminal_change_colors"
	KeyEnableMouse       = "terminal_enable_mouse"
	KeyWheelUpButton     = "terminal_wheel_up_button"
	KeyWheelDownButton   = "terminal_wheel_down_button"
	KeyWheelScrollAmount = "terminal_wheel_scroll_amount"
	KeyBuiltinKeyParser  = "terminal_builtin_key_parser"
	KeyInfoBorder        = "terminal_info_border"
)

// Defaults for options that are absent or malformed
const (
	DefaultAssistant         = "clippy"
	DefaultShiftFunctionKey  = 12
	DefaultWheelUpButton     = 4
	DefaultWheelDownButton   = 5
	DefaultWheelScrollAmount = 3
	DefaultInfoBorder        = "rounded"
)

// UIOptions is the typed view of the option map
type UIOptions struct {
	Assistant         string
	StatusOnTop       bool
	SetTitle          bool
	ShiftFunctionKey  int
	ChangeColors      bool
	EnableMouse       bool
	WheelUpButton     int
	WheelDownButton   int
	WheelScrollAmount int
	BuiltinKeyParser  bool
	InfoBorder        string // frame of prompt and modal info boxes
}

// DefaultUIOptions is what an empty option map parses to
func DefaultUIOptions() UIOptions {
	return ParseOptions(nil)
}

// ParseOptions reads the recognized keys. Booleans accept "yes" and "true";
// any other present value is false. Integers that fail to parse fall back to
// their default.
func ParseOptions(options map[string]string) UIOptions {
	return UIOptions{
		Assistant:         stringOption(options, KeyAssistant, DefaultAssistant),
		StatusOnTop:       boolOption(options, KeyStatusOnTop, false),
		SetTitle:          boolOption(options, KeySetTitle, true),
		ShiftFunctionKey:  intOption(options, KeyShiftFunctionKey, DefaultShiftFunctionKey),
		ChangeColors:      boolOption(options, KeyChangeColors, true),
		EnableMouse:       boolOption(options, KeyEnableMouse, true),
		WheelUpButton:     intOption(options, KeyWheelUpButton, DefaultWheelUpButton),
		WheelDownButton:   intOption(options, KeyWheelDownButton, DefaultWheelDownButton),
		WheelScrollAmount: intOption(options, KeyWheelScrollAmount, DefaultWheelScrollAmount),
		BuiltinKeyParser:  boolOption(options, KeyBuiltinKeyParser, false),
		InfoBorder:        stringOption(options, KeyInfoBorder, DefaultInfoBorder),
	}
}

func stringOption(options map[string]string, key, def string) string {
	if v, ok := options[key]; ok {
		return v
	}
	return def
}

func boolOption(options map[string]string, key string, def bool) bool {
	v, ok := options[key]
	if !ok {
		return def
	}
	return v == "yes" || v == "true"
}

func intOption(options map[string]string, key string, def int) int {
	v, ok := options[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
