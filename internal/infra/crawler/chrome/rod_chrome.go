package chrome

import (
	"fmt"
	"time"

	"github.com/LouYuanbo1/listingagent/internal/config"
	"github.com/LouYuanbo1/listingagent/internal/infra/crawler/chrome/options"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	log "github.com/sirupsen/logrus"
)

type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	router   *rod.HijackRouter
	page     *rod.Page
	timeout  time.Duration
}

// InitRodSession launches a dedicated browser instance and opens a single
// stealth page in it. The session is exclusively owned by its caller.
func InitRodSession(cfg *config.Config) (Session, error) {
	l := options.CreateLauncher(
		options.WithBin(cfg.Browser.Rod.Bin),
		options.WithHeadless(cfg.Browser.Rod.Headless),
		options.WithNoSandbox(cfg.Browser.Rod.NoSandbox),
		options.WithIncognito(cfg.Browser.Rod.Incognito),
		options.WithDisableDevShmUsage(cfg.Browser.Rod.DisableDevShmUsage),
		options.WithDisableBlinkFeatures(cfg.Browser.Rod.DisableBlinkFeatures),
		options.WithUserAgent(cfg.Browser.Rod.UserAgent),
		options.WithLeakless(cfg.Browser.Rod.Leakless),
	)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	var router *rod.HijackRouter
	if cfg.Browser.BlockImages {
		router = browser.HijackRequests()
		router.MustAdd("*", func(hijack *rod.Hijack) {
			if hijack.Request.Type() == proto.NetworkResourceTypeImage {
				hijack.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
				return
			}
			hijack.ContinueRequest(&proto.FetchContinueRequest{})
		})
		go router.Run()
	}

	page, err := stealth.Page(browser)
	if err != nil {
		closeQuietly("close browser", browser.Close)
		return nil, fmt.Errorf("open stealth page: %w", err)
	}

	return &rodSession{
		launcher: l,
		browser:  browser,
		router:   router,
		page:     page,
		timeout:  time.Duration(cfg.Browser.PageLoadTimeoutSec) * time.Second,
	}, nil
}

func (s *rodSession) Navigate(url string) error {
	page := s.page.Timeout(s.timeout)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}
	return nil
}

func (s *rodSession) EvalJS(expr string) error {
	_, err := s.page.Timeout(s.timeout).Eval("() => { " + expr + " }")
	return err
}

func (s *rodSession) Elements(selector string) ([]Element, error) {
	found, err := s.page.Timeout(s.timeout).Elements(selector)
	if err != nil {
		return nil, err
	}
	elements := make([]Element, 0, len(found))
	for _, el := range found {
		elements = append(elements, &rodElement{el: el})
	}
	return elements, nil
}

func (s *rodSession) CurrentURL() string {
	info, err := s.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (s *rodSession) PageText() (string, error) {
	return s.page.Timeout(s.timeout).HTML()
}

// Close must not panic: it runs deferred in every worker, and the browser may
// already be dead when a session failed mid-batch.
func (s *rodSession) Close() {
	if s.router != nil {
		closeQuietly("stop hijack router", s.router.Stop)
	}
	closeQuietly("close browser", s.browser.Close)
	s.launcher.Kill()
}

func closeQuietly(what string, fn func() error) {
	if err := fn(); err != nil {
		log.WithError(err).Debug(what)
	}
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Text() (string, error) {
	return e.el.Text()
}

func (e *rodElement) Attribute(name string) (string, error) {
	value, err := e.el.Attribute(name)
	if err != nil || value == nil {
		return "", err
	}
	return *value, nil
}

func (e *rodElement) ScrollIntoView() error {
	return e.el.ScrollIntoView()
}

func (e *rodElement) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}
