package browser

import (
	"os"
	"runtime"
)

// ProfileCandidates lists, per GOOS and browser, the user data directories
// probed in order. Templates reference environment variables as ${VAR}.
// The order is the local app-data path, then the roaming path, then the
// cloud-synced roaming path.
var ProfileCandidates = map[string]map[Kind][]string{
	"windows": {
		KindChrome: {
			`${USERPROFILE}\AppData\Local\Google\Chrome\User Data\Default`,
			`${USERPROFILE}\AppData\Local\Google\Chrome for Testing\User Data\Default`,
			`${APPDATA}\Google\Chrome\User Data\Default`,
			`${ONEDRIVE}\Google\Chrome\User Data\Default`,
		},
		KindEdge: {
			`${USERPROFILE}\AppData\Local\Microsoft\Edge\User Data\Default`,
			`${APPDATA}\Microsoft\Edge\User Data\Default`,
			`${ONEDRIVE}\Microsoft\Edge\User Data\Default`,
		},
		KindFirefox: {
			`${USERPROFILE}\AppData\Local\Mozilla\Firefox\Profiles`,
			`${APPDATA}\Mozilla\Firefox\Profiles`,
			`${ONEDRIVE}\Mozilla\Firefox\Profiles`,
		},
	},
	"darwin": {
		KindChrome: {
			"${HOME}/Library/Application Support/Google/Chrome/Default",
			"${HOME}/Library/Application Support/Google/Chrome for Testing/Default",
		},
		KindEdge: {
			"${HOME}/Library/Application Support/Microsoft Edge/Default",
		},
		KindFirefox: {
			"${HOME}/Library/Application Support/Firefox/Profiles",
		},
	},
	"linux": {
		KindChrome: {
			"${HOME}/.config/google-chrome/Default",
			"${HOME}/.config/google-chrome-for-testing/Default",
		},
		KindEdge: {
			"${HOME}/.config/microsoft-edge/Default",
		},
		KindFirefox: {
			"${HOME}/.mozilla/firefox",
		},
	},
}

// ProfileLocator resolves the profile directory for a browser.
type ProfileLocator struct {
	GOOS       string
	Getenv     func(string) string
	Stat       func(string) (os.FileInfo, error)
	Candidates map[string]map[Kind][]string
}

// NewProfileLocator returns a locator for the running system.
func NewProfileLocator() *ProfileLocator {
	return &ProfileLocator{
		GOOS:       runtime.GOOS,
		Getenv:     os.Getenv,
		Stat:       os.Stat,
		Candidates: ProfileCandidates,
	}
}

// Discover returns the first candidate that exists as a directory, or ""
// when none does. Candidates referencing an unset variable are skipped.
func (l *ProfileLocator) Discover(kind Kind) string {
	for _, tmpl := range l.Candidates[l.GOOS][kind] {
		path, ok := l.expand(tmpl)
		if !ok {
			continue
		}
		info, err := l.Stat(path)
		if err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

func (l *ProfileLocator) expand(tmpl string) (string, bool) {
	complete := true
	path := os.Expand(tmpl, func(name string) string {
		v := l.Getenv(name)
		if v == "" {
			complete = false
		}
		return v
	})
	return path, complete
}
