// Package main provides the entry point for the PixelMask editor.
package main

import (
	"log"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"pixelmask/internal/app"
	"pixelmask/internal/version"
	"pixelmask/ui/mainwindow"
	"pixelmask/ui/prefs"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting PixelMask v%s", version.String())

	fyneApp := fyneapp.New()
	session := app.NewSession()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, session, appPrefs)

	if len(os.Args) > 1 {
		imagePath := os.Args[1]
		if err := session.LoadImage(imagePath); err != nil {
			log.Printf("Failed to load %s: %v", imagePath, err)
		}
	}

	setupHotReload(win)

	win.SetOnClosed(func() {
		win.SavePreferences()
	})
	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is
// recompiled during development.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s", reloader.ExecPath())

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				win.SavePreferences()
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win.Window)
	})

	reloader.Start()
}
