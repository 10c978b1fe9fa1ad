package diagram2png

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"

	"github.com/promokit/go-diagram2png/internal/fileutil"
)

// BrowserBinEnv names the environment variable consulted by the second
// launch strategy: a filesystem path to a browser executable, used only
// when the default launch fails and the path exists on disk.
const BrowserBinEnv = "DIAGRAM2PNG_BROWSER_BIN"

// errStrategySkip marks a strategy as not applicable in this
// environment; the chain moves on without recording a failure.
var errStrategySkip = errors.New("launch strategy not applicable")

// session is one acquired browser instance. Each export owns exactly
// one session for its duration; there is no shared pool.
type session struct {
	browser  *rod.Browser
	kill     func()
	strategy string
}

// release closes the browser and kills the launched process. Safe to
// call once per session on every exit path.
func (s *session) release() {
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.kill != nil {
		s.kill()
	}
}

// sessionManager abstracts browser acquisition to enable testing the
// orchestrator without a browser.
type sessionManager interface {
	acquire() (*session, error)
}

// launchStrategy is one entry in the ordered acquisition chain. launch
// yields a DevTools control URL and a kill function, errStrategySkip
// when the strategy does not apply, or the launch failure. alternate
// marks the final non-Chromium-managed fallback: its own failure is
// discarded in favor of the last systemic one, which is the more
// diagnostic error.
type launchStrategy struct {
	name      string
	alternate bool
	launch    func() (controlURL string, kill func(), err error)
}

// launchWith runs a configured launcher and normalizes its result.
func launchWith(l *launcher.Launcher) (string, func(), error) {
	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return "", nil, err
	}
	return u, l.Kill, nil
}

// defaultStrategies returns the ordered launch chain. Headless-browser
// launch failures are host and container specific, so each retry is
// progressively more permissive without weakening the default path:
//
//  1. default managed launch, no special arguments
//  2. executable from DIAGRAM2PNG_BROWSER_BIN, sandbox disabled
//  3. system-installed browser found on the host, sandbox disabled
//  4. managed launch with the sandbox disabled outright
//  5. user-mode launch of the locally installed browser (alternate engine)
func defaultStrategies() []launchStrategy {
	return []launchStrategy{
		{
			name: "default",
			launch: func() (string, func(), error) {
				return launchWith(launcher.New())
			},
		},
		{
			name: "env-bin",
			launch: func() (string, func(), error) {
				bin := os.Getenv(BrowserBinEnv)
				if bin == "" || !fileutil.FileExists(bin) {
					return "", nil, errStrategySkip
				}
				return launchWith(launcher.New().Bin(bin).NoSandbox(true))
			},
		},
		{
			name: "system-browser",
			launch: func() (string, func(), error) {
				bin, has := launcher.LookPath()
				if !has {
					return "", nil, errStrategySkip
				}
				return launchWith(launcher.New().Bin(bin).NoSandbox(true))
			},
		},
		{
			name: "no-sandbox",
			launch: func() (string, func(), error) {
				return launchWith(launcher.New().NoSandbox(true))
			},
		},
		{
			name:      "user-mode",
			alternate: true,
			launch: func() (string, func(), error) {
				return launchWith(launcher.NewUserMode().Headless(true))
			},
		},
	}
}

// rodSessionManager acquires browsers through the ordered strategy
// chain. Rod downloads a managed Chromium on first use if none is found.
type rodSessionManager struct {
	logger     *slog.Logger
	strategies []launchStrategy
	connect    func(controlURL string) (*rod.Browser, error)
}

func newRodSessionManager(logger *slog.Logger) *rodSessionManager {
	return &rodSessionManager{
		logger:     logger,
		strategies: defaultStrategies(),
		connect: func(controlURL string) (*rod.Browser, error) {
			b := rod.New().ControlURL(controlURL)
			if err := b.Connect(); err != nil {
				return nil, err
			}
			return b, nil
		},
	}
}

// acquire tries each strategy in order until one yields a connected
// browser. Only a fully exhausted chain is fatal; the returned error is
// the last systemic failure, never the alternate engine's own.
func (m *rodSessionManager) acquire() (*session, error) {
	var lastErr error

	for _, st := range m.strategies {
		controlURL, kill, err := st.launch()
		if err != nil {
			if errors.Is(err, errStrategySkip) {
				continue
			}
			m.logger.Debug("browser launch strategy failed",
				"strategy", st.name, "error", err)
			if !st.alternate {
				lastErr = fmt.Errorf("%w (%s): %v", ErrBrowserLaunch, st.name, err)
			}
			continue
		}

		browser, err := m.connect(controlURL)
		if err != nil {
			m.logger.Debug("browser connect failed",
				"strategy", st.name, "error", err)
			if kill != nil {
				kill()
			}
			if !st.alternate {
				lastErr = fmt.Errorf("%w (%s): %v", ErrBrowserConnect, st.name, err)
			}
			continue
		}

		if st.name != "default" {
			m.logger.Debug("browser acquired via fallback strategy", "strategy", st.name)
		}
		return &session{browser: browser, kill: kill, strategy: st.name}, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: no launch strategy applicable", ErrBrowserLaunch)
	}
	return nil, lastErr
}
