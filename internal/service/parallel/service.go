// Package parallel fans extraction batches out to a fixed-size worker pool.
// Each worker owns one browser session and shares nothing with its peers
// except the persistence sinks.
package parallel

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/LouYuanbo1/listingagent/internal/domain/entity"
	"github.com/LouYuanbo1/listingagent/internal/domain/model"
	"github.com/LouYuanbo1/listingagent/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/listingagent/internal/infra/persistence/csvsink"
	"github.com/LouYuanbo1/listingagent/internal/service/extract"
	"github.com/LouYuanbo1/listingagent/internal/urlnorm"
	"github.com/LouYuanbo1/listingagent/param"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Indexer receives a worker's deduplicated saved listings for secondary
// persistence. Optional.
type Indexer interface {
	IndexListings(ctx context.Context, listings []*entity.SavedListing) error
}

type Service struct {
	factory chrome.Factory
	store   *csvsink.Store
	norm    *urlnorm.Normalizer
	indexer Indexer
}

func InitService(factory chrome.Factory, store *csvsink.Store, norm *urlnorm.Normalizer, indexer Indexer) *Service {
	return &Service{
		factory: factory,
		store:   store,
		norm:    norm,
		indexer: indexer,
	}
}

// ProcessAll partitions links into contiguous batches and runs one worker per
// batch. Workers are independent: a worker that cannot even open its browser
// session reports an error, but the others run to completion regardless.
func (s *Service) ProcessAll(ctx context.Context, links []string, workers int, params *param.Extract) error {
	if !params.IsValid() {
		return fmt.Errorf("invalid extract params: %+v", params)
	}
	batches := extract.Partition(links, workers)
	if len(batches) == 0 {
		return nil
	}

	log.WithFields(log.Fields{
		"links":      len(links),
		"workers":    len(batches),
		"batch_size": len(batches[0]),
	}).Info("dispatching extraction workers")

	var g errgroup.Group
	for i, batch := range batches {
		workerID := i + 1
		g.Go(func() error {
			return s.processBatch(ctx, workerID, batch, params)
		})
	}
	return g.Wait()
}

func (s *Service) processBatch(ctx context.Context, workerID int, batch []string, params *param.Extract) error {
	session, err := s.factory()
	if err != nil {
		return fmt.Errorf("worker %d: create browser session: %w", workerID, err)
	}
	defer session.Close()

	extractor := extract.NewExtractor(session, params, workerID)
	logger := log.WithField("worker", workerID)

	var saved []*entity.SavedListing
	seen := make(map[string]struct{})

	for idx, link := range batch {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec := extractor.Process(link, idx+1, len(batch))
		if err := s.store.AppendAudit(rec); err != nil {
			logger.WithError(err).Error("append audit row")
		}
		logger.WithFields(log.Fields{"url": link, "status": rec.Status}).Info("listing classified")

		if rec.Status == model.StatusSaved {
			key := s.norm.Normalize(rec.URL)
			if key != "" {
				if _, dup := seen[key]; !dup {
					seen[key] = struct{}{}
					saved = append(saved, &entity.SavedListing{
						CanonicalURL: key,
						Title:        rec.Title,
						Address:      rec.Address,
						BuiltYear:    rec.BuiltYear,
						URL:          rec.URL,
					})
				}
			}
		}

		s.pause(params)
	}

	if len(saved) == 0 {
		return nil
	}
	if err := s.store.AppendResults(saved); err != nil {
		logger.WithError(err).Error("append result rows")
	}
	if s.indexer != nil {
		if err := s.indexer.IndexListings(ctx, saved); err != nil {
			logger.WithError(err).Error("index saved listings")
		}
	}
	return nil
}

// pause throttles request rate with a randomized delay after every visit.
func (s *Service) pause(params *param.Extract) {
	spread := params.DelayMaxMs - params.DelayMinMs
	delay := params.DelayMinMs
	if spread > 0 {
		delay += rand.IntN(spread + 1)
	}
	time.Sleep(time.Duration(delay) * time.Millisecond)
}
