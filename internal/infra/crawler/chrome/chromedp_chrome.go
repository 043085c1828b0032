package chrome

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LouYuanbo1/listingagent/internal/config"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

type chromedpSession struct {
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
	pageCtx     context.Context
	cancelPage  context.CancelFunc
	timeout     time.Duration
}

// InitChromedpSession starts a dedicated chromedp browser context. Equivalent
// capability to the rod session, selected via browser.engine.
func InitChromedpSession(ctx context.Context, cfg *config.Config) (Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Browser.Chromedp.Headless),
		chromedp.Flag("incognito", cfg.Browser.Chromedp.Incognito),
		chromedp.Flag("disable-dev-shm-usage", cfg.Browser.Chromedp.DisableDevShmUsage),
		chromedp.Flag("no-sandbox", cfg.Browser.Chromedp.NoSandbox),
	)
	if cfg.Browser.Chromedp.DisableBlinkFeatures != "" {
		opts = append(opts, chromedp.Flag("disable-blink-features", cfg.Browser.Chromedp.DisableBlinkFeatures))
	}
	if cfg.Browser.Chromedp.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.Browser.Chromedp.UserAgent))
	}
	if cfg.Browser.Chromedp.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(cfg.Browser.Chromedp.UserDataDir))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	pageCtx, cancelPage := chromedp.NewContext(allocCtx)

	actions := []chromedp.Action{network.Enable()}
	if cfg.Browser.BlockImages {
		actions = append(actions, network.SetBlockedURLs([]string{
			"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.svg",
		}))
	}
	if err := chromedp.Run(pageCtx, actions...); err != nil {
		cancelPage()
		cancelAlloc()
		return nil, fmt.Errorf("start chromedp session: %w", err)
	}

	return &chromedpSession{
		allocCtx:    allocCtx,
		cancelAlloc: cancelAlloc,
		pageCtx:     pageCtx,
		cancelPage:  cancelPage,
		timeout:     time.Duration(cfg.Browser.PageLoadTimeoutSec) * time.Second,
	}, nil
}

func (s *chromedpSession) run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.pageCtx, s.timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

func (s *chromedpSession) Navigate(url string) error {
	if err := s.run(chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

func (s *chromedpSession) EvalJS(expr string) error {
	return s.run(chromedp.ActionFunc(func(ctx context.Context) error {
		_, exc, err := runtime.Evaluate(expr).Do(ctx)
		if err != nil {
			return err
		}
		if exc != nil {
			return exc
		}
		return nil
	}))
}

func (s *chromedpSession) Elements(selector string) ([]Element, error) {
	var nodes []*cdp.Node
	err := s.run(chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	if err != nil {
		return nil, err
	}
	elements := make([]Element, 0, len(nodes))
	for _, node := range nodes {
		elements = append(elements, &chromedpElement{session: s, node: node})
	}
	return elements, nil
}

func (s *chromedpSession) CurrentURL() string {
	var location string
	if err := s.run(chromedp.Location(&location)); err != nil {
		return ""
	}
	return location
}

func (s *chromedpSession) PageText() (string, error) {
	var html string
	err := s.run(chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

func (s *chromedpSession) Close() {
	s.cancelPage()
	s.cancelAlloc()
}

type chromedpElement struct {
	session *chromedpSession
	node    *cdp.Node
}

func (e *chromedpElement) Text() (string, error) {
	var text string
	err := e.session.run(chromedp.ActionFunc(func(ctx context.Context) error {
		obj, err := dom.ResolveNode().WithNodeID(e.node.NodeID).Do(ctx)
		if err != nil {
			return err
		}
		res, exc, err := runtime.CallFunctionOn("function() { return this.innerText }").
			WithObjectID(obj.ObjectID).
			WithReturnByValue(true).
			Do(ctx)
		if err != nil {
			return err
		}
		if exc != nil {
			return exc
		}
		if res != nil && res.Value != nil {
			return json.Unmarshal(res.Value, &text)
		}
		return nil
	}))
	return text, err
}

func (e *chromedpElement) Attribute(name string) (string, error) {
	return e.node.AttributeValue(name), nil
}

func (e *chromedpElement) ScrollIntoView() error {
	return e.session.run(chromedp.ActionFunc(func(ctx context.Context) error {
		return dom.ScrollIntoViewIfNeeded().WithNodeID(e.node.NodeID).Do(ctx)
	}))
}

func (e *chromedpElement) Click() error {
	return e.session.run(chromedp.MouseClickNode(e.node))
}
