package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		ColumnBorder: "#FFFFFF",
		CardBorder:   "#585858",

		ReadBadge: "#A8A8A8",
		FullBadge: "#FFFFFF",

		Title:  "#FFFFFF",
		Subtle: "#808080",
		Normal: "#D0D0D0",

		InfoFg:  "#FFFFFF",
		InfoBg:  "#3A3A3A",
		ErrorFg: "#FFFFFF",
		ErrorBg: "#585858",
	}
}
