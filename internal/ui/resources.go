package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	AppIcon = "audio-converter.png"
)

// LoadAppIcon loads the app icon from the working directory, falling back
// to the theme's music icon when the file is not shipped
func LoadAppIcon() fyne.Resource {
	if res, err := fyne.LoadResourceFromPath(AppIcon); err == nil {
		return res
	}
	return theme.MediaMusicIcon()
}
