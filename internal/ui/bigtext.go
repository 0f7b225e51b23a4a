package ui

import "strings"

// figureRows is the glyph height of the built-in banner font.
const figureRows = 5

// figureFont holds banner glyphs for everything a glucose value can
// contain. Every glyph is exactly figureRows rows tall; rows within a
// glyph share a width.
var figureFont = map[rune][]string{
	'0': {
		" ███ ",
		"█   █",
		"█   █",
		"█   █",
		" ███ ",
	},
	'1': {
		"  █  ",
		" ██  ",
		"  █  ",
		"  █  ",
		" ███ ",
	},
	'2': {
		" ███ ",
		"█   █",
		"   █ ",
		"  █  ",
		"█████",
	},
	'3': {
		"████ ",
		"    █",
		" ███ ",
		"    █",
		"████ ",
	},
	'4': {
		"█  █ ",
		"█  █ ",
		"█████",
		"   █ ",
		"   █ ",
	},
	'5': {
		"█████",
		"█    ",
		"████ ",
		"    █",
		"████ ",
	},
	'6': {
		" ███ ",
		"█    ",
		"████ ",
		"█   █",
		" ███ ",
	},
	'7': {
		"█████",
		"    █",
		"   █ ",
		"  █  ",
		"  █  ",
	},
	'8': {
		" ███ ",
		"█   █",
		" ███ ",
		"█   █",
		" ███ ",
	},
	'9': {
		" ███ ",
		"█   █",
		" ████",
		"    █",
		" ███ ",
	},
	'.': {
		"  ",
		"  ",
		"  ",
		"  ",
		"█ ",
	},
}

// RenderFigure renders s as large banner text, one glyph per input rune,
// separated by a single column. Unknown runes are skipped.
func RenderFigure(s string) string {
	rows := make([]strings.Builder, figureRows)

	for _, r := range s {
		glyph, ok := figureFont[r]
		if !ok {
			continue
		}
		for i := 0; i < figureRows; i++ {
			if rows[i].Len() > 0 {
				rows[i].WriteString(" ")
			}
			rows[i].WriteString(glyph[i])
		}
	}

	lines := make([]string, figureRows)
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n")
}
