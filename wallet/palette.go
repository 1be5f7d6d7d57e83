package wallet

// NamedColour is one entry of the colour picker.
type NamedColour struct {
	Name   string
	Colour Colour
}

// Palette lists the selectable wallet colours in display order.
var Palette = []NamedColour{
	{"red", RGB(1.00, 0.23, 0.19)},
	{"orange", RGB(1.00, 0.58, 0.00)},
	{"yellow", RGB(1.00, 0.80, 0.00)},
	{"green", RGB(0.20, 0.78, 0.35)},
	{"blue", RGB(0.00, 0.48, 1.00)},
	{"purple", RGB(0.69, 0.32, 0.87)},
	{"pink", RGB(1.00, 0.18, 0.33)},
	{"brown", RGB(0.64, 0.52, 0.37)},
	{"indigo", RGB(0.35, 0.34, 0.84)},
	{"mint", RGB(0.00, 0.78, 0.75)},
	{"cyan", RGB(0.20, 0.68, 0.90)},
	{"teal", RGB(0.19, 0.69, 0.78)},
	{"sand", RGB(0.85, 0.77, 0.50)},
	{"rose", RGB(0.85, 0.43, 0.43)},
	{"lavender", RGB(0.50, 0.40, 0.65)},
	{"fern", RGB(0.35, 0.58, 0.38)},
	{"navy", RGB(0.20, 0.30, 0.55)},
	{"rust", RGB(0.80, 0.45, 0.20)},
	{"slate", RGB(0.45, 0.50, 0.55)},
	{"periwinkle", RGB(0.60, 0.55, 0.85)},
}

// PaletteIndex returns the palette position of c, or -1.
func PaletteIndex(c Colour) int {
	for i, p := range Palette {
		if p.Colour == c {
			return i
		}
	}
	return -1
}

// ColourByName looks a palette colour up by name.
func ColourByName(name string) (Colour, bool) {
	for _, p := range Palette {
		if p.Name == name {
			return p.Colour, true
		}
	}
	return Colour{}, false
}

// Emojis returns the selectable emoji: emoticons and supplemental pictographs.
func Emojis() []string {
	var out []string
	for r := rune(0x1F600); r <= 0x1F64F; r++ {
		out = append(out, string(r))
	}
	for r := rune(0x1F90C); r <= 0x1F9FF; r++ {
		out = append(out, string(r))
	}
	return out
}
