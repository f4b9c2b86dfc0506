package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/audio-converter/internal/model"
)

// fileState is what the list shows for one file besides its name
type fileState struct {
	status  model.FileStatus
	message string // failure cause or overwrite notice
	detail  string // tags or stream info
}

// FileRow renders one queued file: name, detail line, status and a remove button
type FileRow struct {
	widget.BaseWidget

	localization *Localization
	file         model.AudioFileRef

	nameLabel   *widget.Label
	detailLabel *widget.Label
	statusLabel *widget.Label
	removeBtn   *widget.Button

	onRemove func(file model.AudioFileRef)
}

// NewFileRow creates a new file row widget
func NewFileRow(localization *Localization) *FileRow {
	fr := &FileRow{localization: localization}
	fr.ExtendBaseWidget(fr)
	fr.createUI()
	return fr
}

// SetOnRemove sets the remove button callback
func (fr *FileRow) SetOnRemove(onRemove func(file model.AudioFileRef)) {
	fr.onRemove = onRemove
}

// Update shows file with its state. Rows are recycled by the list, so every
// field is reset here.
func (fr *FileRow) Update(file model.AudioFileRef, state fileState, removable bool) {
	fr.file = file
	fr.nameLabel.SetText(file.Name)

	detail := state.detail
	if state.message != "" {
		detail = state.message
	}
	fr.detailLabel.SetText(detail)
	if detail == "" {
		fr.detailLabel.Hide()
	} else {
		fr.detailLabel.Show()
	}

	switch state.status {
	case model.FileStatusConverted:
		fr.statusLabel.SetText(fr.localization.GetText(KeyStatusConverted))
		fr.statusLabel.Importance = widget.SuccessImportance
	case model.FileStatusFailed:
		fr.statusLabel.SetText(fr.localization.GetText(KeyStatusFailed))
		fr.statusLabel.Importance = widget.DangerImportance
	default:
		fr.statusLabel.SetText(fr.localization.GetText(KeyStatusPending))
		fr.statusLabel.Importance = widget.LowImportance
	}
	fr.statusLabel.Refresh()

	if removable {
		fr.removeBtn.Enable()
	} else {
		fr.removeBtn.Disable()
	}
}

func (fr *FileRow) createUI() {
	fr.nameLabel = widget.NewLabel("")
	fr.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	fr.nameLabel.Truncation = fyne.TextTruncateEllipsis

	fr.detailLabel = widget.NewLabel("")
	fr.detailLabel.SizeName = theme.SizeNameCaptionText
	fr.detailLabel.Truncation = fyne.TextTruncateEllipsis
	fr.detailLabel.Hide()

	fr.statusLabel = widget.NewLabel("")
	fr.statusLabel.Alignment = fyne.TextAlignTrailing

	fr.removeBtn = widget.NewButton(IconClose, func() {
		if fr.onRemove != nil && fr.file.Path != "" {
			fr.onRemove(fr.file)
		}
	})
	fr.removeBtn.Importance = widget.LowImportance
}

// CreateRenderer creates the widget renderer
func (fr *FileRow) CreateRenderer() fyne.WidgetRenderer {
	// fixed status width keeps the column aligned across rows
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(StatusLabelWidth, 0))
	status := container.NewStack(spacer, fr.statusLabel)

	text := container.NewVBox(fr.nameLabel, fr.detailLabel)
	right := container.NewHBox(status, fr.removeBtn)
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, nil, right, text))
}
