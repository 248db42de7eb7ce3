package docx

import (
	"fmt"
	"strconv"
	"strings"
)

var namedColors = map[string]string{
	"black":     "000000",
	"silver":    "C0C0C0",
	"gray":      "808080",
	"grey":      "808080",
	"white":     "FFFFFF",
	"maroon":    "800000",
	"red":       "FF0000",
	"purple":    "800080",
	"fuchsia":   "FF00FF",
	"magenta":   "FF00FF",
	"green":     "008000",
	"lime":      "00FF00",
	"olive":     "808000",
	"yellow":    "FFFF00",
	"navy":      "000080",
	"blue":      "0000FF",
	"teal":      "008080",
	"aqua":      "00FFFF",
	"cyan":      "00FFFF",
	"orange":    "FFA500",
	"brown":     "A52A2A",
	"pink":      "FFC0CB",
	"gold":      "FFD700",
	"beige":     "F5F5DC",
	"ivory":     "FFFFF0",
	"khaki":     "F0E68C",
	"lavender":  "E6E6FA",
	"salmon":    "FA8072",
	"coral":     "FF7F50",
	"crimson":   "DC143C",
	"indigo":    "4B0082",
	"violet":    "EE82EE",
	"turquoise": "40E0D0",
	"tan":       "D2B48C",
	"plum":      "DDA0DD",
	"orchid":    "DA70D6",
	"skyblue":   "87CEEB",
	"lightgray": "D3D3D3",
	"lightgrey": "D3D3D3",
	"darkgray":  "A9A9A9",
	"darkgrey":  "A9A9A9",
	"darkred":   "8B0000",
	"darkblue":  "00008B",
	"darkgreen": "006400",
}

// NormalizeColor converts a CSS color value into an uppercase 6-digit hex
// string without the leading '#'. The second return is false when the value
// is fully transparent or cannot be parsed, in which case the color should
// be omitted rather than defaulted.
func NormalizeColor(value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" || v == "transparent" || v == "inherit" || v == "initial" || v == "currentcolor" {
		return "", false
	}
	if hex, ok := namedColors[v]; ok {
		return hex, true
	}
	if strings.HasPrefix(v, "#") {
		return hexColor(v[1:])
	}
	if strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba(") {
		return rgbColor(v)
	}
	return "", false
}

func hexColor(h string) (string, bool) {
	for _, c := range h {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return "", false
		}
	}
	switch len(h) {
	case 3:
		return strings.ToUpper(fmt.Sprintf("%c%c%c%c%c%c", h[0], h[0], h[1], h[1], h[2], h[2])), true
	case 4:
		if h[3] == '0' {
			return "", false
		}
		return strings.ToUpper(fmt.Sprintf("%c%c%c%c%c%c", h[0], h[0], h[1], h[1], h[2], h[2])), true
	case 6:
		return strings.ToUpper(h), true
	case 8:
		if h[6] == '0' && h[7] == '0' {
			return "", false
		}
		return strings.ToUpper(h[:6]), true
	}
	return "", false
}

func rgbColor(v string) (string, bool) {
	open := strings.IndexByte(v, '(')
	close := strings.IndexByte(v, ')')
	if open < 0 || close < open {
		return "", false
	}
	// Channels come comma-separated in the legacy form and space-separated
	// with an optional "/ alpha" in the modern one.
	body := strings.ReplaceAll(v[open+1:close], "/", " ")
	parts := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(parts) < 3 {
		return "", false
	}
	var ch [3]int
	for i := 0; i < 3; i++ {
		n, ok := rgbChannel(strings.TrimSpace(parts[i]))
		if !ok {
			return "", false
		}
		ch[i] = n
	}
	if len(parts) > 3 {
		a := strings.TrimSpace(parts[3])
		if alphaTransparent(a) {
			return "", false
		}
	}
	return fmt.Sprintf("%02X%02X%02X", ch[0], ch[1], ch[2]), true
}

func rgbChannel(s string) (int, bool) {
	var n float64
	var err error
	if strings.HasSuffix(s, "%") {
		n, err = strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		n = n * 255 / 100
	} else {
		n, err = strconv.ParseFloat(s, 64)
	}
	if err != nil {
		return 0, false
	}
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	return int(n + 0.5), true
}

func alphaTransparent(s string) bool {
	if strings.HasSuffix(s, "%") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return err == nil && n <= 0
	}
	n, err := strconv.ParseFloat(s, 64)
	return err == nil && n <= 0
}
