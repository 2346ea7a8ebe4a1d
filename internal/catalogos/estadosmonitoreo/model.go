package estadosmonitoreo

import (
	"strconv"
	"strings"
)

// EstadoMonitoreo is a monitoring state shown on the incident board. The text
// color is derived from the background, never stored from client input.
type EstadoMonitoreo struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	Tipo      string `json:"tipo"`
	ColorBg   string `json:"color_bg"`
	ColorText string `json:"color_text"`
	IDEmpresa int64  `json:"-"`
}

// TextColor picks white or black text depending on the perceived brightness
// of the background color. Unparsable components count as zero, matching the
// permissive handling the SPA relies on.
func TextColor(hexColor string) string {
	hex := strings.TrimPrefix(hexColor, "#")

	component := func(from int) uint64 {
		if len(hex) < from+2 {
			return 0
		}
		v, err := strconv.ParseUint(hex[from:from+2], 16, 16)
		if err != nil {
			return 0
		}
		return v
	}

	r := component(0)
	g := component(2)
	b := component(4)

	brightness := (r*299 + g*587 + b*114) / 1000
	if brightness < 128 {
		return "#ffffff"
	}
	return "#000000"
}
