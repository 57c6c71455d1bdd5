package config

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"
)

// LoadFile decodes a TOML options file into the flat option map.
//
// Top-level keys are taken as written. Keys inside a table are prefixed with
// the table name, so
//
//	[terminal]
//	assistant = "cat"
//
// yields terminal_assistant=cat. Nested tables chain their names, so
// [terminal.face] menu = "black,cyan" yields terminal_face_menu.
func LoadFile(path string) (map[string]string, error) {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("load options %s: %w", path, err)
	}

	options := make(map[string]string, len(raw))
	if err := flatten(options, "", raw); err != nil {
		return nil, fmt.Errorf("load options %s: %w", path, err)
	}
	return options, nil
}

func flatten(options map[string]string, prefix string, table map[string]any) error {
	for key, value := range table {
		if prefix != "" {
			key = prefix + "_" + key
		}
		if sub, ok := value.(map[string]any); ok {
			if err := flatten(options, key, sub); err != nil {
				return err
			}
			continue
		}
		if err := putOption(options, key, value); err != nil {
			return err
		}
	}
	return nil
}

func putOption(options map[string]string, key string, value any) error {
	switch v := value.(type) {
	case string:
		options[key] = v
	case bool:
		options[key] = strconv.FormatBool(v)
	case int64:
		options[key] = strconv.FormatInt(v, 10)
	case float64:
		options[key] = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Errorf("option %s: unsupported value type %T", key, value)
	}
	return nil
}
