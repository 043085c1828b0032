package collector

import (
	"fmt"
	"time"

	"github.com/LouYuanbo1/listingagent/internal/config"
	"github.com/gocolly/colly/v2"
	log "github.com/sirupsen/logrus"
)

type collyCrawler struct {
	colly *colly.Collector
}

func InitCollyCrawler(cfg *config.Config) CollyCrawler {
	var opts []colly.CollectorOption
	opts = append(opts,
		colly.MaxDepth(cfg.Colly.MaxDepth),
		colly.UserAgent(cfg.Colly.UserAgent),
		colly.AllowedDomains(cfg.Colly.AllowedDomains...),
	)
	if cfg.Colly.IgnoreRobotsTxt {
		opts = append(opts, colly.IgnoreRobotsTxt())
	}
	c := colly.NewCollector(opts...)
	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Delay:       time.Duration(cfg.Colly.Delay) * time.Second,
		RandomDelay: time.Duration(cfg.Colly.RandomDelay) * time.Second,
	}); err != nil {
		log.WithError(err).Warn("set colly limit rule")
	}
	log.WithFields(log.Fields{
		"max_depth":    cfg.Colly.MaxDepth,
		"delay":        cfg.Colly.Delay,
		"random_delay": cfg.Colly.RandomDelay,
	}).Debug("colly crawler initialized")
	return &collyCrawler{colly: c}
}

func (c *collyCrawler) Visit(url string) error {
	if err := c.colly.Visit(url); err != nil {
		return fmt.Errorf("visit %s: %w", url, err)
	}
	return nil
}

func (c *collyCrawler) Wait() {
	c.colly.Wait()
}

func (c *collyCrawler) OnRequest(callback func(r *colly.Request)) {
	c.colly.OnRequest(callback)
}

func (c *collyCrawler) OnHTML(selector string, callback func(e *colly.HTMLElement)) {
	c.colly.OnHTML(selector, callback)
}

func (c *collyCrawler) OnError(callback func(r *colly.Response, err error)) {
	c.colly.OnError(callback)
}
