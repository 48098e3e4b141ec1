package session

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"webgate/internal/appdirs"
)

func launchBrowser(settings LaunchSettings) (*rod.Browser, error) {
	path, found := launcher.LookPath()
	if !found {
		return nil, fmt.Errorf("browser executable path not found")
	}

	userDataDir, err := appdirs.UserDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user data dir: %w", err)
	}
	if err := appdirs.EnsureDir(userDataDir); err != nil {
		return nil, fmt.Errorf("create user data dir: %w", err)
	}

	launchWithProfile := func(profileDir string) (string, error) {
		l := launcher.New().Bin(path).
			Set("no-first-run", "true").
			Set("disable-gpu").
			Set("user-data-dir", profileDir)
		if settings.IgnoreCertErrors {
			l.Set("ignore-certificate-errors")
		}
		if settings.Proxy != nil {
			l.Proxy(settings.Proxy.Server)
			if settings.Proxy.Bypass != "" {
				l.Set("proxy-bypass-list", settings.Proxy.Bypass)
			}
		}
		return l.Headless(settings.Headless).Launch()
	}

	controlURL, err := launchWithProfile(userDataDir)
	if err != nil && isProfileLockError(err) {
		// Another instance holds the profile; a throwaway profile still gives
		// us a working session.
		tempDir, mkErr := os.MkdirTemp(userDataDir, "profile-")
		if mkErr != nil {
			return nil, fmt.Errorf("create temporary user data dir: %w", mkErr)
		}
		controlURL, err = launchWithProfile(tempDir)
	}
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to browser: %w", err)
	}
	return browser, nil
}

func isProfileLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "ProcessSingleton") || strings.Contains(errStr, "SingletonLock")
}

func newBlankPage(browser *rod.Browser, stealthMode bool) (*rod.Page, error) {
	if stealthMode {
		return stealth.Page(browser)
	}
	return browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
}
