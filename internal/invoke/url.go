package invoke

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// ErrUnsupportedScheme is returned for URLs that are not http, https or file.
var ErrUnsupportedScheme = errors.New("unsupported URL scheme")

// ErrNoOpener is returned when none of the URL openers is installed.
var ErrNoOpener = errors.New("no URL opener found")

// ActivationTokenEnv passes the launcher's focus token to the opened window.
const ActivationTokenEnv = "XDG_ACTIVATION_TOKEN"

var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"file":  true,
}

// URLOpeners are tried in order; the URL is appended to the first one found.
var URLOpeners = [][]string{
	{"xdg-open"},
	{"kde-open6"},
	{"kde-open5"},
	{"gio", "open"},
}

// CheckURL parses raw and rejects anything but http, https and file URLs.
func CheckURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, raw)
	}
	if !allowedSchemes[u.Scheme] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Scheme != "file" && u.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: missing host", raw)
	}
	return u, nil
}

// FileURL turns a local path into a file:// URL.
func FileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: path}).String()
}

// OpenURL hands raw to the desktop's default handler. The scheme is checked
// before anything is spawned.
func (r *Runner) OpenURL(raw string) error {
	u, err := CheckURL(raw)
	if err != nil {
		return err
	}

	for _, opener := range URLOpeners {
		if _, err := r.Exec.LookPath(opener[0]); err != nil {
			continue
		}
		argv := append(append([]string(nil), opener...), u.String())
		if err := r.Exec.Start(argv, r.openerEnv()); err != nil {
			r.logf("opener %s failed: %v", opener[0], err)
			continue
		}
		r.logf("opened %s with %s", u, opener[0])
		return nil
	}
	return ErrNoOpener
}

// openerEnv returns nil (inherit) unless an activation token is pending.
func (r *Runner) openerEnv() []string {
	token := r.ActivationToken()
	if token == "" {
		return nil
	}
	return append(os.Environ(), ActivationTokenEnv+"="+token)
}
