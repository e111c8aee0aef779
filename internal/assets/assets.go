// Package assets embeds the application icon.
package assets

import _ "embed"

// IconICO is the tray icon in Windows ICO format.
//
//go:embed icon.ico
var IconICO []byte

//go:embed icon.png
var IconPNG []byte

// Icon returns the icon encoding the system tray expects on this platform.
func Icon(goos string) []byte {
	if goos == "windows" {
		return IconICO
	}
	return IconPNG
}
