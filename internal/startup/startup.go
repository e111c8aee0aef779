// Package startup manages the start-on-login shortcut. Only Windows is
// supported.
package startup

import (
	"path/filepath"
	"strings"
)

// shortcutScript returns a PowerShell command that writes a .lnk at link
// pointing at target, started in target's directory.
func shortcutScript(link, target string) string {
	q := func(s string) string { return "'" + strings.ReplaceAll(s, "'", "''") + "'" }
	return strings.Join([]string{
		"$s = (New-Object -ComObject WScript.Shell).CreateShortcut(" + q(link) + ")",
		"$s.TargetPath = " + q(target),
		"$s.WorkingDirectory = " + q(filepath.Dir(target)),
		"$s.Save()",
	}, "; ")
}
