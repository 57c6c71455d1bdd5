package config

import (
	"maps"
	"strings"

	"github.com/lixenwraith/termface/logging"
	"github.com/lixenwraith/termface/terminal"
)

// FacePrefix starts the keys that restyle a named face, e.g. terminal_face_menu
const FacePrefix = "terminal_face_"

// ParseFaces overlays the face options found in options onto a copy of
// defaults. Only names present in defaults are considered; values that fail
// to parse keep the default and are logged.
func ParseFaces(options map[string]string, defaults map[string]terminal.Face) map[string]terminal.Face {
	faces := maps.Clone(defaults)
	if faces == nil {
		faces = make(map[string]terminal.Face)
	}
	for key, value := range options {
		name, ok := strings.CutPrefix(key, FacePrefix)
		if !ok {
			continue
		}
		if _, known := faces[name]; !known {
			logging.Warn("unknown face %q", name)
			continue
		}
		face, err := terminal.ParseFace(value)
		if err != nil {
			logging.Warn("face %s: %v", name, err)
			continue
		}
		faces[name] = face
	}
	return faces
}
