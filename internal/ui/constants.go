package ui

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconClose    = "×"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
)

// Layout sizing
const (
	StatusLabelWidth float32 = 96
)

// Window defaults
const (
	WindowWidth  float32 = 800
	WindowHeight float32 = 600

	SettingsDialogWidth  float32 = 480
	SettingsDialogHeight float32 = 260
)
