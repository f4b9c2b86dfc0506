package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/audio-converter/internal/config"
	"github.com/ytget/audio-converter/internal/convert"
	"github.com/ytget/audio-converter/internal/model"
	"github.com/ytget/audio-converter/internal/platform"
	"github.com/ytget/audio-converter/internal/session"
)

// Failures listed in the summary dialog before it is truncated
const summaryMaxFailures = 10

// ConverterFactory builds the conversion worker for an ffmpeg binary
type ConverterFactory func(ffmpegPath string) convert.Converter

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	session      *session.Session
	settings     *config.Settings
	localization *Localization

	newConverter  ConverterFactory
	converter     convert.Converter
	converterPath string

	// files mirrors the session for the list widget; states is keyed by path
	files    []model.AudioFileRef
	statesMu sync.Mutex
	states   map[string]fileState
	selected widget.ListItemID

	batch     *convert.Batch
	batchSize int
	batchDone chan struct{}

	fileList       *widget.List
	emptyHint      *widget.Label
	addFilesBtn    *widget.Button
	addFolderBtn   *widget.Button
	clearBtn       *widget.Button
	settingsBtn    *widget.Button
	outputDirBtn   *widget.Button
	outputDirLabel *widget.Label
	formatLabel    *widget.Label
	formatSelect   *widget.Select
	convertBtn     *widget.Button
	stopBtn        *widget.Button

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, sess *session.Session, newConverter ConverterFactory) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		session:      sess,
		settings:     settings,
		localization: localization,
		newConverter: newConverter,
		states:       make(map[string]fileState),
		selected:     -1,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.applyTheme(settings.GetTheme())
	ui.setupUI()
	return ui
}

func (ui *RootUI) t(key string) string {
	return ui.localization.GetText(key)
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.addFilesBtn = widget.NewButton(ui.t(KeyAddFiles), ui.onAddFiles)
	ui.addFolderBtn = widget.NewButton(ui.t(KeyAddFolder), ui.onAddFolder)
	ui.clearBtn = widget.NewButton(ui.t(KeyClearList), ui.onClearList)
	ui.clearBtn.Importance = widget.LowImportance
	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance
	intakeRow := container.NewHBox(ui.addFilesBtn, ui.addFolderBtn, ui.clearBtn, layout.NewSpacer(), ui.settingsBtn)

	ui.outputDirBtn = widget.NewButton(IconFolder+" "+ui.t(KeyChooseOutputDir), ui.onChooseOutputDir)
	ui.outputDirLabel = widget.NewLabel(ui.t(KeyOutputDirNotSet))
	ui.outputDirLabel.Truncation = fyne.TextTruncateEllipsis
	if dir := ui.session.OutputDirectory(); dir != "" {
		ui.outputDirLabel.SetText(dir)
	}

	ui.formatLabel = widget.NewLabel(ui.t(KeyOutputFormat))
	ui.formatSelect = widget.NewSelect(model.FormatNames(), nil)
	ui.formatSelect.SetSelected(string(ui.session.Format()))
	ui.formatSelect.OnChanged = ui.onFormatChanged
	outputRow := container.NewBorder(nil, nil, ui.outputDirBtn,
		container.NewHBox(ui.formatLabel, ui.formatSelect), ui.outputDirLabel)

	// Notification panel under the controls (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewBorder(nil, nil, nil, nil,
		container.NewVBox(ui.notificationSpinner, ui.notificationLabel))
	ui.notificationContainer.Hide()

	top := container.NewVBox(intakeRow, outputRow, ui.notificationContainer)

	ui.fileList = widget.NewList(
		func() int { return len(ui.files) },
		func() fyne.CanvasObject {
			row := NewFileRow(ui.localization)
			row.SetOnRemove(ui.onRemoveFile)
			return row
		},
		ui.updateFileItem,
	)
	ui.fileList.OnSelected = func(id widget.ListItemID) { ui.selected = id }
	ui.fileList.OnUnselected = func(widget.ListItemID) { ui.selected = -1 }

	ui.emptyHint = widget.NewLabel(ui.t(KeyDropHint))
	ui.emptyHint.Alignment = fyne.TextAlignCenter
	ui.emptyHint.Wrapping = fyne.TextWrapWord
	center := container.NewStack(ui.fileList, container.NewCenter(ui.emptyHint))

	ui.stopBtn = widget.NewButton(ui.t(KeyStop), ui.onStopClick)
	ui.stopBtn.Disable()
	ui.convertBtn = widget.NewButton(ui.t(KeyConvert), ui.onConvertClick)
	ui.convertBtn.Importance = widget.HighImportance
	bottom := container.NewHBox(layout.NewSpacer(), ui.stopBtn, ui.convertBtn)

	ui.window.SetContent(container.NewBorder(top, bottom, nil, nil, center))

	// Intake gestures
	ui.window.SetOnDropped(ui.onDropped)
	ui.window.Canvas().AddShortcut(&fyne.ShortcutPaste{}, func(fyne.Shortcut) { ui.onPaste() })
	ui.window.Canvas().SetOnTypedKey(ui.onTypedKey)

	ui.refreshFiles()
	slog.Debug("UI setup completed")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	fileMenu := fyne.NewMenu(ui.t(KeyFile),
		fyne.NewMenuItem(ui.t(KeyAddFiles), ui.onAddFiles),
		fyne.NewMenuItem(ui.t(KeyAddFolder), ui.onAddFolder),
		fyne.NewMenuItem(ui.t(KeyChooseOutputDir), ui.onChooseOutputDir),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(ui.t(KeyRemove), ui.removeSelected),
		fyne.NewMenuItem(ui.t(KeyClearList), ui.onClearList),
		fyne.NewMenuItem(ui.t(KeySettings), ui.onShowSettings),
	)

	languageMenu := fyne.NewMenu(ui.t(KeyLanguage))
	current := ui.settings.GetLanguage()
	for _, code := range ui.settings.GetLanguageOptions() {
		item := fyne.NewMenuItem(languageLabel(ui.localization, code), func() { ui.onLanguageChange(code) })
		item.Checked = current == code
		languageMenu.Items = append(languageMenu.Items, item)
	}

	themeMenu := fyne.NewMenu(ui.t(KeyTheme))
	for _, name := range ui.settings.GetThemeOptions() {
		item := fyne.NewMenuItem(themeLabel(ui.localization, name), func() { ui.onThemeChange(name) })
		item.Checked = ui.settings.GetTheme() == name
		themeMenu.Items = append(themeMenu.Items, item)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu, languageMenu, themeMenu))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(code string) {
	if !ui.settings.SetLanguage(code) {
		return
	}
	ui.localization.SetLanguage(code)
	ui.refreshUITexts()
	ui.createMenu()
}

// onThemeChange switches the theme at runtime
func (ui *RootUI) onThemeChange(name string) {
	if !ui.settings.SetTheme(name) {
		return
	}
	ui.applyTheme(name)
	ui.createMenu()
}

func (ui *RootUI) applyTheme(name string) {
	ui.app.Settings().SetTheme(NewAppTheme(name))
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.t(KeyAppTitle))
	ui.addFilesBtn.SetText(ui.t(KeyAddFiles))
	ui.addFolderBtn.SetText(ui.t(KeyAddFolder))
	ui.clearBtn.SetText(ui.t(KeyClearList))
	ui.outputDirBtn.SetText(IconFolder + " " + ui.t(KeyChooseOutputDir))
	if ui.session.OutputDirectory() == "" {
		ui.outputDirLabel.SetText(ui.t(KeyOutputDirNotSet))
	}
	ui.formatLabel.SetText(ui.t(KeyOutputFormat))
	ui.emptyHint.SetText(ui.t(KeyDropHint))
	ui.convertBtn.SetText(ui.t(KeyConvert))
	ui.stopBtn.SetText(ui.t(KeyStop))
	ui.fileList.Refresh()
}

// showNotification displays a message in the notification panel.
// When spinning is true, a spinner is shown to indicate background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
	} else {
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	ui.notificationSpinner.Hide()
	ui.notificationContainer.Hide()
}

func (ui *RootUI) showWarning(message string) {
	ui.showNotification(message, false)
	dialog.ShowInformation(ui.t(KeyWarning), message, ui.window)
}

func (ui *RootUI) showError(err error) {
	slog.Error("ui error", "error", err)
	ui.showNotification(err.Error(), false)
	dialog.ShowError(err, ui.window)
}

// Intake

func (ui *RootUI) onAddFiles() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		ui.addPaths([]string{path})
	}, ui.window)
	d.SetFilter(storage.NewExtensionFileFilter(model.SupportedExtensions()))
	ui.setDialogLocation(d.SetLocation, ui.lastInputDir())
	d.Show()
}

func (ui *RootUI) onAddFolder() {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if uri == nil {
			return
		}
		paths, err := platform.ListSupportedFiles(uri.Path())
		if err != nil {
			ui.showError(err)
			return
		}
		if len(paths) == 0 {
			ui.showNotification(ui.t(KeyNoFilesInFolder), false)
			return
		}
		ui.addPaths(paths)
	}, ui.window)
	ui.setDialogLocation(d.SetLocation, ui.lastInputDir())
	d.Show()
}

func (ui *RootUI) onDropped(_ fyne.Position, uris []fyne.URI) {
	ui.addPaths(expandFolders(platform.PathsFromURIs(uris)))
}

func (ui *RootUI) onPaste() {
	text := ui.app.Clipboard().Content()
	ui.addPaths(expandFolders(platform.ParseDropList(text)))
}

// expandFolders replaces dropped folders with the supported files they contain
func expandFolders(paths []string) []string {
	expanded := make([]string, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			expanded = append(expanded, path)
			continue
		}
		files, err := platform.ListSupportedFiles(path)
		if err != nil {
			slog.Warn("failed to list dropped folder", "dir", path, "error", err)
			continue
		}
		expanded = append(expanded, files...)
	}
	return expanded
}

// addPaths runs candidate paths through the session and reports rejections
func (ui *RootUI) addPaths(paths []string) {
	if len(paths) == 0 {
		return
	}
	if ui.batch != nil {
		ui.showNotification(ui.t(KeyBusyIntake), false)
		return
	}

	result := ui.session.AddAll(paths)
	slog.Info("files added", "accepted", len(result.Accepted),
		"unsupported", len(result.Unsupported), "duplicates", len(result.Duplicates))

	ui.statesMu.Lock()
	for _, ref := range result.Accepted {
		ui.states[ref.Path] = fileState{status: model.FileStatusPending}
	}
	ui.statesMu.Unlock()
	for _, ref := range result.Accepted {
		go ui.loadDetail(ref)
	}
	ui.refreshFiles()

	message := fmt.Sprintf(ui.t(KeyFilesAdded), len(result.Accepted))
	if result.Rejected() > 0 {
		message += MiddleDotSeparator + fmt.Sprintf(ui.t(KeyFilesRejected),
			result.Rejected(), len(result.Unsupported), len(result.Duplicates))
	}
	ui.showNotification(message, false)
}

// loadDetail reads tags off the UI goroutine
func (ui *RootUI) loadDetail(ref model.AudioFileRef) {
	detail := platform.Describe(ref.Path)
	if detail == "" {
		return
	}
	fyne.Do(func() {
		ui.statesMu.Lock()
		state, ok := ui.states[ref.Path]
		if ok {
			state.detail = detail
			ui.states[ref.Path] = state
		}
		ui.statesMu.Unlock()
		if ok {
			ui.fileList.Refresh()
		}
	})
}

func (ui *RootUI) lastInputDir() string {
	if n := len(ui.files); n > 0 {
		return filepath.Dir(ui.files[n-1].Path)
	}
	if dir, err := platform.GetHomeMusicDir(); err == nil {
		return dir
	}
	return ""
}

func (ui *RootUI) setDialogLocation(set func(fyne.ListableURI), dir string) {
	if dir == "" {
		return
	}
	if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
		set(lister)
	}
}

// File list

func (ui *RootUI) refreshFiles() {
	ui.files = ui.session.Files()
	if len(ui.files) == 0 {
		ui.emptyHint.Show()
	} else {
		ui.emptyHint.Hide()
	}
	ui.fileList.Refresh()
}

func (ui *RootUI) fileStateOf(path string) fileState {
	ui.statesMu.Lock()
	defer ui.statesMu.Unlock()
	return ui.states[path]
}

// updateFileItem binds a recycled row to the file at id
func (ui *RootUI) updateFileItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id < 0 || id >= len(ui.files) {
		return
	}
	row, ok := item.(*FileRow)
	if !ok {
		return
	}
	file := ui.files[id]
	row.Update(file, ui.fileStateOf(file.Path), ui.batch == nil)
}

func (ui *RootUI) onRemoveFile(file model.AudioFileRef) {
	if ui.batch != nil {
		ui.showNotification(ui.t(KeyBusyIntake), false)
		return
	}
	if !ui.session.Remove(file) {
		return
	}
	ui.statesMu.Lock()
	delete(ui.states, file.Path)
	ui.statesMu.Unlock()

	ui.fileList.UnselectAll()
	ui.selected = -1
	ui.refreshFiles()
}

func (ui *RootUI) removeSelected() {
	if ui.selected < 0 || ui.selected >= len(ui.files) {
		return
	}
	ui.onRemoveFile(ui.files[ui.selected])
}

func (ui *RootUI) onTypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyDelete, fyne.KeyBackspace:
		ui.removeSelected()
	}
}

func (ui *RootUI) onClearList() {
	if ui.batch != nil {
		ui.showNotification(ui.t(KeyBusyIntake), false)
		return
	}
	ui.session.RemoveAll(ui.files...)
	ui.statesMu.Lock()
	clear(ui.states)
	ui.statesMu.Unlock()

	ui.fileList.UnselectAll()
	ui.selected = -1
	ui.refreshFiles()
	ui.hideNotification()
}

// Target

func (ui *RootUI) onFormatChanged(value string) {
	if err := ui.session.SetFormat(model.Format(value)); err != nil {
		ui.showError(err)
		ui.formatSelect.SetSelected(string(ui.session.Format()))
	}
}

func (ui *RootUI) onChooseOutputDir() {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if uri == nil {
			return
		}
		ui.setOutputDirectory(uri.Path())
	}, ui.window)
	dir := ui.session.OutputDirectory()
	if dir == "" {
		dir = ui.lastInputDir()
	}
	ui.setDialogLocation(d.SetLocation, dir)
	d.Show()
}

func (ui *RootUI) setOutputDirectory(dir string) {
	if err := ui.session.SetOutputDirectory(dir); err != nil {
		ui.showError(fmt.Errorf("%s: %w", ui.t(KeyOutputDirNotWrite), err))
		return
	}
	ui.outputDirLabel.SetText(ui.session.OutputDirectory())
}

// Conversion

// onConvertClick validates the session and starts a background batch
func (ui *RootUI) onConvertClick() {
	if ui.batch != nil {
		ui.showWarning(ui.t(KeyBatchRunning))
		return
	}

	snap := ui.session.Snapshot()
	batch, err := ui.currentConverter().Start(context.Background(), snap)
	switch {
	case errors.Is(err, session.ErrNoFiles):
		ui.showWarning(ui.t(KeyNoFilesSelected))
		return
	case errors.Is(err, session.ErrNoOutputDirectory):
		ui.showWarning(ui.t(KeyNoOutputDirSelected))
		return
	case errors.Is(err, convert.ErrBatchRunning):
		ui.showWarning(ui.t(KeyBatchRunning))
		return
	case err != nil:
		ui.showError(err)
		return
	}

	ui.statesMu.Lock()
	for _, file := range snap.Files {
		state := ui.states[file.Path]
		state.status = model.FileStatusPending
		state.message = ""
		ui.states[file.Path] = state
	}
	ui.statesMu.Unlock()

	ui.batch = batch
	ui.batchSize = len(snap.Files)
	ui.batchDone = make(chan struct{})
	ui.setRunning(true)
	ui.showNotification(fmt.Sprintf(ui.t(KeyConverting), len(snap.Files), snap.Format), true)

	go ui.drainBatch(batch, ui.batchDone)
}

// currentConverter rebuilds the worker when the ffmpeg path has changed
func (ui *RootUI) currentConverter() convert.Converter {
	path := ui.settings.GetFFmpegPath()
	if ui.converter == nil || path != ui.converterPath {
		ui.converter = ui.newConverter(path)
		ui.converterPath = path
	}
	return ui.converter
}

func (ui *RootUI) drainBatch(batch *convert.Batch, done chan struct{}) {
	defer close(done)
	for outcome := range batch.Outcomes {
		fyne.Do(func() { ui.applyOutcome(outcome) })
	}
	summary := batch.Wait()
	fyne.DoAndWait(func() { ui.onBatchFinished(summary) })
}

func (ui *RootUI) applyOutcome(outcome model.Outcome) {
	ui.statesMu.Lock()
	state := ui.states[outcome.File.Path]
	state.status = outcome.Status()
	state.message = outcome.Error
	if outcome.Replaced != "" {
		state.message = fmt.Sprintf(ui.t(KeyOutputReplaced), outcome.Replaced)
	}
	ui.states[outcome.File.Path] = state
	ui.statesMu.Unlock()
	ui.fileList.Refresh()
}

func (ui *RootUI) onStopClick() {
	if ui.batch == nil {
		return
	}
	ui.batch.Cancel()
	ui.stopBtn.Disable()
	ui.showNotification(ui.t(KeyStopping), true)
}

// Shutdown stops a running batch and waits until the file in progress has
// been cleaned up
func (ui *RootUI) Shutdown() {
	batch := ui.batch
	if batch == nil {
		return
	}
	batch.Cancel()
	<-batch.Done()
}

func (ui *RootUI) setRunning(running bool) {
	for _, w := range []fyne.Disableable{ui.addFilesBtn, ui.addFolderBtn, ui.clearBtn, ui.outputDirBtn, ui.formatSelect, ui.convertBtn} {
		if running {
			w.Disable()
		} else {
			w.Enable()
		}
	}
	if running {
		ui.stopBtn.Enable()
	} else {
		ui.stopBtn.Disable()
	}
	ui.fileList.Refresh()
}

func (ui *RootUI) onBatchFinished(summary model.Summary) {
	ui.batch = nil
	ui.setRunning(false)
	ui.hideNotification()

	message := ui.summaryMessage(summary)
	ui.app.SendNotification(&fyne.Notification{
		Title:   ui.t(KeyConversionComplete),
		Content: strings.SplitN(message, "\n", 2)[0],
	})

	if summary.Converted == 0 {
		dialog.ShowInformation(ui.t(KeyConversionComplete), message, ui.window)
		return
	}
	d := dialog.NewConfirm(ui.t(KeyConversionComplete), message, func(open bool) {
		if open {
			ui.openOutputFolder(summary.OutputDir)
		}
	}, ui.window)
	d.SetConfirmText(ui.t(KeyOpenOutputFolder))
	d.SetDismissText(ui.t(KeyClose))
	d.Show()
}

func (ui *RootUI) summaryMessage(summary model.Summary) string {
	var b strings.Builder
	switch {
	case summary.Cancelled:
		fmt.Fprintf(&b, ui.t(KeyBatchCancelled), summary.Total(), ui.batchSize)
	case !summary.HasErrors():
		b.WriteString(ui.t(KeyAllConverted))
	default:
		fmt.Fprintf(&b, ui.t(KeyConvertedSummary), summary.Converted, summary.Total(), summary.Format)
	}

	failures := summary.Failures()
	if len(failures) == 0 {
		return b.String()
	}
	b.WriteString("\n\n" + ui.t(KeyFailedSummary))
	for i, failure := range failures {
		if i == summaryMaxFailures {
			fmt.Fprintf(&b, "\n…(+%d)", len(failures)-summaryMaxFailures)
			break
		}
		fmt.Fprintf(&b, "\n%s: %s", failure.File.Name, failure.Error)
	}
	return b.String()
}

func (ui *RootUI) openOutputFolder(dir string) {
	if err := platform.OpenFolder(dir); err != nil {
		ui.showError(fmt.Errorf("%s: %w", ui.t(KeyErrorOpeningFolder), err))
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.applyTheme(ui.settings.GetTheme())
		ui.refreshUITexts()
		ui.createMenu()
		ui.showNotification(ui.t(KeySettingsApplied), false)
	})
}
