package ui

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/audio-converter/internal/config"
	"github.com/ytget/audio-converter/internal/session"
)

const (
	AppID   = "com.ytget.audio-converter"
	AppName = "Audio Converter"
)

// Run opens the main window and blocks until it is closed or ctx is done
func Run(ctx context.Context, cfg *config.Config, version string, newConverter ConverterFactory) {
	slog.Info("starting", "app", AppName, "version", version)

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(LoadAppIcon())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	root := NewRootUI(myWindow, myApp, config.NewSettings(cfg), session.New(cfg.DefaultFormat), newConverter)
	// closing the only window quits the app; interrupts close it too
	myWindow.SetOnClosed(root.Shutdown)

	stop := context.AfterFunc(ctx, func() {
		slog.Info("interrupted, closing window")
		fyne.Do(myWindow.Close)
	})
	defer stop()

	myWindow.ShowAndRun()
}
