//go:build windows

package startup

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const shortcutName = "snapmark.lnk"

// ShortcutPath is the per-user Startup folder entry.
func ShortcutPath() string {
	return filepath.Join(os.Getenv("APPDATA"), `Microsoft\Windows\Start Menu\Programs\Startup`, shortcutName)
}

func IsEnabled() bool {
	_, err := os.Stat(ShortcutPath())
	return err == nil
}

// Enable creates a Startup folder shortcut to the running executable.
func Enable() error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	cmd := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", shortcutScript(ShortcutPath(), exePath))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("create startup shortcut: %w: %s", err, out)
	}
	return nil
}

func Disable() error {
	if err := os.Remove(ShortcutPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove startup shortcut: %w", err)
	}
	return nil
}
