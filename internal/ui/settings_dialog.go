package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/audio-converter/internal/config"
)

// SettingsDialog edits the runtime settings. Values apply to the running
// app and the next batch; nothing is written to disk.
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onApplied    func()

	// UI components
	ffmpegEntry    *widget.Entry
	themeSelect    *widget.Select
	languageSelect *widget.Select

	// display label -> option value
	themeValues    map[string]string
	languageValues map[string]string
}

// ShowSettingsDialog creates and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onApplied func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, window, onApplied)
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onApplied func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:       settings,
		localization:   localization,
		window:         window,
		onApplied:      onApplied,
		themeValues:    make(map[string]string),
		languageValues: make(map[string]string),
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.ffmpegEntry = widget.NewEntry()
	sd.ffmpegEntry.SetPlaceHolder(config.DefaultFFmpegPath)
	browseBtn := widget.NewButton(t(KeyBrowse), sd.onBrowseFFmpeg)
	ffmpegRow := container.NewBorder(nil, nil, nil, browseBtn, sd.ffmpegEntry)

	var themeOptions []string
	for _, name := range sd.settings.GetThemeOptions() {
		label := themeLabel(sd.localization, name)
		sd.themeValues[label] = name
		themeOptions = append(themeOptions, label)
	}
	sd.themeSelect = widget.NewSelect(themeOptions, nil)

	var languageOptions []string
	for _, code := range sd.settings.GetLanguageOptions() {
		label := languageLabel(sd.localization, code)
		sd.languageValues[label] = code
		languageOptions = append(languageOptions, label)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := widget.NewForm(
		widget.NewFormItem(t(KeyFFmpegPath), ffmpegRow),
		widget.NewFormItem(t(KeyTheme), sd.themeSelect),
		widget.NewFormItem(t(KeyLanguage), sd.languageSelect),
	)

	sd.dialog = dialog.NewCustomConfirm(
		t(KeySettings),
		t(KeySave),
		t(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.ffmpegEntry.SetText(sd.settings.GetFFmpegPath())
	sd.themeSelect.SetSelected(labelFor(sd.themeValues, sd.settings.GetTheme()))
	sd.languageSelect.SetSelected(labelFor(sd.languageValues, sd.settings.GetLanguage()))
}

func (sd *SettingsDialog) onBrowseFFmpeg() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		sd.ffmpegEntry.SetText(reader.URI().Path())
		_ = reader.Close()
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()
	if sd.onApplied != nil {
		sd.onApplied()
	}
}

func (sd *SettingsDialog) apply() {
	sd.settings.SetFFmpegPath(sd.ffmpegEntry.Text)
	if name, ok := sd.themeValues[sd.themeSelect.Selected]; ok {
		sd.settings.SetTheme(name)
	}
	if code, ok := sd.languageValues[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
}

func labelFor(values map[string]string, value string) string {
	for label, v := range values {
		if v == value {
			return label
		}
	}
	return ""
}

func languageLabel(localization *Localization, code string) string {
	if code == config.LanguageSystem {
		return localization.GetText(KeyLanguageSystem)
	}
	return localization.LanguageName(code)
}

func themeLabel(localization *Localization, name string) string {
	switch name {
	case config.ThemeDark:
		return localization.GetText(KeyThemeDark)
	case config.ThemeLight:
		return localization.GetText(KeyThemeLight)
	default:
		return localization.GetText(KeyThemeSystem)
	}
}
