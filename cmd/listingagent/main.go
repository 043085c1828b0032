package main

import (
	"context"
	_ "embed"
	"os"

	"github.com/LouYuanbo1/listingagent/internal/config"
	"github.com/LouYuanbo1/listingagent/internal/domain/entity"
	"github.com/LouYuanbo1/listingagent/internal/domain/model"
	"github.com/LouYuanbo1/listingagent/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/listingagent/internal/infra/crawler/collector"
	"github.com/LouYuanbo1/listingagent/internal/infra/embedding"
	"github.com/LouYuanbo1/listingagent/internal/infra/persistence/csvsink"
	"github.com/LouYuanbo1/listingagent/internal/infra/persistence/es"
	indexsvc "github.com/LouYuanbo1/listingagent/internal/service/index"
	parallelsvc "github.com/LouYuanbo1/listingagent/internal/service/parallel"
	"github.com/LouYuanbo1/listingagent/internal/service/traverse"
	"github.com/LouYuanbo1/listingagent/internal/urlnorm"
	"github.com/LouYuanbo1/listingagent/param"
	log "github.com/sirupsen/logrus"
)

// The embedded file is the real runtime configuration; appconfig_example.json
// in the repository shows the expected shape.
//
//go:embed appconfig/appconfig.json
var appConfig []byte

func init() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
}

func main() {
	cfg, err := config.ParseConfig(appConfig)
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}

	norm, err := urlnorm.New(cfg.Search.OriginURL)
	if err != nil {
		log.Fatalf("parse search origin: %v", err)
	}

	ctx := context.Background()
	factory := chrome.NewSessionFactory(ctx, cfg)

	links, err := collectLinks(cfg, factory, norm)
	if err != nil {
		log.Fatalf("collect listing links: %v", err)
	}

	store := csvsink.NewStore(cfg.Output.AuditCSV, cfg.Output.ResultCSV)
	if err := store.InitResultSink(); err != nil {
		log.WithError(err).Error("create result sink")
	}

	if len(links) == 0 {
		log.Warn("no listing links found, check the search origin URL")
		return
	}

	var indexer parallelsvc.Indexer
	var esClient es.TypedEsClient[*model.ListingDoc]
	if cfg.Elasticsearch.Enabled {
		esClient, indexer = initIndexer(ctx, cfg)
	}

	extractParams := &param.Extract{
		MinYear:    cfg.Search.MinYear,
		CityFilter: cfg.Search.CityFilter,
		DelayMinMs: cfg.Search.DelayMinMs,
		DelayMaxMs: cfg.Search.DelayMaxMs,
	}

	svc := parallelsvc.InitService(factory, store, norm, indexer)
	if err := svc.ProcessAll(ctx, links, cfg.Search.Workers, extractParams); err != nil {
		log.WithError(err).Error("worker pool finished with errors")
	}

	if esClient != nil {
		if count, err := esClient.CountDocs(ctx); err == nil {
			log.WithField("count", count).Info("documents in listing index")
		}
	}

	summary := log.Fields{
		"results": cfg.Output.ResultCSV,
		"audit":   cfg.Output.AuditCSV,
	}
	for status, count := range store.Summary() {
		summary[string(status)] = count
	}
	log.WithFields(summary).Info("run complete")
}

// collectLinks runs the traversal phase to completion before any extraction
// worker starts. The browser traverser is the default; static traversal only
// fits sites whose anchors arrive in the initial HTML.
func collectLinks(cfg *config.Config, factory chrome.Factory, norm *urlnorm.Normalizer) ([]string, error) {
	traverseParams := &param.Traverse{
		StartURL:        cfg.Search.OriginURL,
		MaxPages:        cfg.Search.MaxPages,
		MaxListings:     cfg.Search.MaxListings,
		ScrollSteps:     cfg.Search.ScrollSteps,
		ShowMoreRounds:  cfg.Search.ShowMoreRounds,
		NextWaitSeconds: cfg.Search.NextWaitSeconds,
		LinkSelectors:   param.DefaultLinkSelectors(),
		PathPattern:     cfg.Search.PathPattern,
	}

	if cfg.Search.StaticTraversal {
		crawler := collector.InitCollyCrawler(cfg)
		return traverse.NewStaticTraverser(crawler, norm).Run(traverseParams)
	}

	session, err := factory()
	if err != nil {
		return nil, err
	}
	defer session.Close()
	return traverse.NewTraverser(session, norm).Run(traverseParams)
}

// initIndexer wires the optional Elasticsearch sink. Failures here disable
// indexing for the run instead of aborting it.
func initIndexer(ctx context.Context, cfg *config.Config) (es.TypedEsClient[*model.ListingDoc], parallelsvc.Indexer) {
	esClient, err := es.InitTypedEsClient[*model.ListingDoc](cfg)
	if err != nil {
		log.WithError(err).Error("initialize elasticsearch, continuing without indexing")
		return nil, nil
	}
	if err := esClient.CreateIndexWithMapping(ctx); err != nil {
		log.WithError(err).Error("create listing index, continuing without indexing")
		return nil, nil
	}
	embedder, err := embedding.InitEmbedder(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("initialize embedder, continuing without indexing")
		return nil, nil
	}
	return esClient, indexsvc.InitService[*model.ListingDoc, *entity.SavedListing](esClient, embedder)
}
