package chrome

import (
	"context"

	"github.com/LouYuanbo1/listingagent/internal/config"
)

// Element is a handle to one DOM node in a live session.
type Element interface {
	Text() (string, error)
	Attribute(name string) (string, error)
	ScrollIntoView() error
	Click() error
}

// Session drives one rendered browser page. Implementations exist for rod and
// chromedp; callers pick the engine through configuration and otherwise treat
// the session as opaque.
type Session interface {
	Navigate(url string) error
	EvalJS(expr string) error
	Elements(selector string) ([]Element, error)
	CurrentURL() string
	PageText() (string, error)
	Close()
}

// Factory creates an independent Session. Every extraction worker and the
// pagination traverser own exactly one session each.
type Factory func() (Session, error)

func NewSessionFactory(ctx context.Context, cfg *config.Config) Factory {
	switch cfg.Browser.Engine {
	case config.EngineChromedp:
		return func() (Session, error) {
			return InitChromedpSession(ctx, cfg)
		}
	default:
		return func() (Session, error) {
			return InitRodSession(cfg)
		}
	}
}
