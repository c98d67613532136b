// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"pixelmask/internal/app"
	"pixelmask/internal/export"
	pximage "pixelmask/internal/image"
	"pixelmask/internal/input"
	"pixelmask/internal/quantize"
	"pixelmask/ui/canvas"
	"pixelmask/ui/prefs"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app      fyne.App
	session  *app.Session
	prefs    *prefs.Prefs
	exporter *export.Exporter
	canvas   *canvas.EditorCanvas

	statusBar *widget.Label
	maskCheck *widget.Check

	// guards against OnChanged feedback when syncing the check state
	syncingMask bool
}

// New creates the main window for a session.
func New(fyneApp fyne.App, session *app.Session, p *prefs.Prefs) *MainWindow {
	mw := &MainWindow{
		Window:   fyneApp.NewWindow("PixelMask"),
		app:      fyneApp,
		session:  session,
		prefs:    p,
		exporter: export.New(),
	}

	session.SetBrushRadius(p.BrushRadius)

	mw.setupUI()
	mw.setupEventHandlers()
	mw.Resize(fyne.NewSize(1100, 750))

	return mw
}

func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.New(mw.session)
	mw.statusBar = widget.NewLabel("Drop an image here or use Open")

	openBtn := widget.NewButton("Open", mw.onOpen)
	fitBtn := widget.NewButton("Fit", func() { mw.session.RefitView() })
	mw.maskCheck = widget.NewCheck("Masking", mw.onMaskToggled)
	clearBtn := widget.NewButton("Clear Mask", mw.onClearMask)
	exportMaskedBtn := widget.NewButton("Export Masked", func() {
		mw.reportExport(mw.exporter.MaskedImage(mw.session))
	})
	exportRestBtn := widget.NewButton("Export Rest", func() {
		mw.reportExport(mw.exporter.UnmaskedImage(mw.session))
	})
	processBtn := widget.NewButton("Post-Process", mw.onPostProcess)

	toolbar := container.NewHBox(
		openBtn,
		fitBtn,
		widget.NewSeparator(),
		mw.maskCheck,
		clearBtn,
		widget.NewSeparator(),
		exportMaskedBtn,
		exportRestBtn,
		processBtn,
	)

	content := container.NewBorder(
		toolbar,                              // top
		container.NewPadded(mw.statusBar),    // bottom
		nil, nil,
		mw.canvas,
	)
	mw.SetContent(content)

	mw.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		if len(uris) == 0 {
			return
		}
		mw.loadImage(uris[0].Path())
	})

	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		router := mw.canvas.Router()
		switch ev.Name {
		case fyne.KeyRightBracket:
			router.KeyPressed(input.BrushGrow)
		case fyne.KeyLeftBracket:
			router.KeyPressed(input.BrushShrink)
		}
	})
}

func (mw *MainWindow) setupEventHandlers() {
	mw.session.On(app.EventImageLoaded, func(data interface{}) {
		path, _ := data.(string)
		mw.SetTitle("PixelMask - " + filepath.Base(path))
		mw.updateStatus()
	})
	mw.session.On(app.EventViewChanged, func(interface{}) { mw.updateStatus() })
	mw.session.On(app.EventBrushChanged, func(data interface{}) {
		if radius, ok := data.(float64); ok {
			mw.prefs.BrushRadius = radius
		}
		mw.updateStatus()
	})
	mw.session.On(app.EventModeChanged, func(interface{}) {
		mw.syncMaskCheck()
		mw.updateStatus()
	})
}

func (mw *MainWindow) updateStatus() {
	if !mw.session.HasImage() {
		mw.statusBar.SetText("Drop an image here or use Open")
		return
	}
	size := mw.session.ImageSize()
	mw.statusBar.SetText(fmt.Sprintf("%dx%d  |  zoom %.0f%%  |  brush %.0f  |  %s",
		int(size.Width), int(size.Height),
		mw.session.View().Zoom*100,
		mw.session.BrushRadius(),
		mw.canvas.Router().Mode()))
}

// syncMaskCheck reflects the router state into the checkbox without
// re-triggering the toggle handler.
func (mw *MainWindow) syncMaskCheck() {
	mw.syncingMask = true
	mw.maskCheck.SetChecked(mw.canvas.Router().Masking())
	mw.syncingMask = false
}

func (mw *MainWindow) onMaskToggled(on bool) {
	if mw.syncingMask {
		return
	}
	if mw.canvas.Router().SetMasking(on) != on {
		// Masking needs a loaded image; revert the checkbox.
		mw.syncMaskCheck()
		mw.statusBar.SetText("Load an image before masking")
	}
}

func (mw *MainWindow) onClearMask() {
	if m := mw.session.Mask(); m != nil {
		m.Clear()
		mw.session.Emit(app.EventMaskChanged, nil)
	}
}

func (mw *MainWindow) onOpen() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		mw.loadImage(path)
	}, mw.Window)
	fd.SetFilter(storageFilter())
	fd.Show()
}

func (mw *MainWindow) loadImage(path string) {
	if !pximage.IsSupportedFormat(path) {
		dialog.ShowError(fmt.Errorf("unsupported image format: %s", filepath.Ext(path)), mw.Window)
		return
	}
	if err := mw.session.LoadImage(path); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.prefs.LastDirectory = filepath.Dir(path)
	log.Printf("Loaded %s (%dx%d)", path,
		int(mw.session.ImageSize().Width), int(mw.session.ImageSize().Height))
}

func (mw *MainWindow) reportExport(path string, err error) {
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.statusBar.SetText("Wrote " + path)
	log.Printf("Exported %s", path)
}

// onPostProcess collects quantization parameters and runs post-processing on
// the masked-out export.
func (mw *MainWindow) onPostProcess() {
	if !mw.session.HasImage() {
		mw.statusBar.SetText("Load an image first")
		return
	}

	params := mw.prefs.Quantize

	colorsEntry := widget.NewEntry()
	colorsEntry.SetText(strconv.Itoa(params.MaxColors))
	scaleEntry := widget.NewEntry()
	scaleEntry.SetText(strconv.Itoa(params.DitherScale))
	ditherCheck := widget.NewCheck("", nil)
	ditherCheck.SetChecked(params.Dither)
	correctCheck := widget.NewCheck("", nil)
	correctCheck.SetChecked(params.ColorCorrect)
	paletteEntry := widget.NewEntry()
	paletteEntry.SetPlaceHolder("optional palette image path")
	paletteEntry.SetText(params.PalettePath)

	form := []*widget.FormItem{
		widget.NewFormItem(fmt.Sprintf("Max colors (%d-%d)", quantize.MinColors, quantize.MaxColors), colorsEntry),
		widget.NewFormItem(fmt.Sprintf("Dither scale (%d-%d)", quantize.MinDitherScale, quantize.MaxDitherScale), scaleEntry),
		widget.NewFormItem("Dither", ditherCheck),
		widget.NewFormItem("Color correct", correctCheck),
		widget.NewFormItem("Palette image", paletteEntry),
	}

	dialog.ShowForm("Post-Process", "Run", "Cancel", form, func(ok bool) {
		if !ok {
			return
		}
		params.MaxColors, _ = strconv.Atoi(colorsEntry.Text)
		params.DitherScale, _ = strconv.Atoi(scaleEntry.Text)
		params.Dither = ditherCheck.Checked
		params.ColorCorrect = correctCheck.Checked
		params.PalettePath = paletteEntry.Text
		params.UsePalette = paletteEntry.Text != ""

		if err := params.Validate(); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.Quantize = params

		mw.statusBar.SetText("Post-processing...")
		out, err := mw.exporter.ProcessUnmasked(mw.session, params)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			mw.updateStatus()
			return
		}
		mw.statusBar.SetText("Wrote " + out)
		log.Printf("Post-processed to %s", out)
	}, mw.Window)
}

// SavePreferences persists preferences to disk.
func (mw *MainWindow) SavePreferences() {
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

// storageFilter returns the file filter for supported images.
func storageFilter() storage.FileFilter {
	return storage.NewExtensionFileFilter(pximage.SupportedFormats())
}
