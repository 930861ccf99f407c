package styles

// NewDarkTheme is the default theme: a slate background suits photos.
func NewDarkTheme() *Theme {
	return &Theme{
		Name:   "dark",
		IsDark: true,

		Primary:   ParseHex("#60a5fa"), // Sky blue
		Secondary: ParseHex("#a78bfa"), // Violet
		Accent:    ParseHex("#34d399"), // Emerald

		BgBase:   ParseHex("#0f172a"), // Slate 900
		BgSubtle: ParseHex("#334155"), // Slate 700

		FgBase:     ParseHex("#f8fafc"), // Slate 50
		FgMuted:    ParseHex("#cbd5e1"), // Slate 300
		FgSubtle:   ParseHex("#94a3b8"), // Slate 400
		FgInverted: ParseHex("#0f172a"), // Slate 900

		Border:      ParseHex("#334155"),
		BorderFocus: ParseHex("#60a5fa"),

		Success: ParseHex("#34d399"),
		Error:   ParseHex("#f87171"),
		Warning: ParseHex("#fbbf24"),
		Info:    ParseHex("#60a5fa"),
	}
}

// NewLightTheme is for light terminal backgrounds.
func NewLightTheme() *Theme {
	return &Theme{
		Name:   "light",
		IsDark: false,

		Primary:   ParseHex("#2563eb"), // Blue 600
		Secondary: ParseHex("#7c3aed"), // Violet 600
		Accent:    ParseHex("#059669"), // Emerald 600

		BgBase:   ParseHex("#f8fafc"),
		BgSubtle: ParseHex("#e2e8f0"), // Slate 200

		FgBase:     ParseHex("#0f172a"),
		FgMuted:    ParseHex("#475569"), // Slate 600
		FgSubtle:   ParseHex("#64748b"), // Slate 500
		FgInverted: ParseHex("#f8fafc"),

		Border:      ParseHex("#cbd5e1"),
		BorderFocus: ParseHex("#2563eb"),

		Success: ParseHex("#059669"),
		Error:   ParseHex("#dc2626"),
		Warning: ParseHex("#d97706"),
		Info:    ParseHex("#2563eb"),
	}
}
