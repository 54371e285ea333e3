// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/worldcams/internal/config"
	"github.com/tomtom215/worldcams/internal/logging"
	"github.com/tomtom215/worldcams/internal/metrics"
	"github.com/tomtom215/worldcams/internal/windy"
)

// PageFetcher requests one page of the webcam collection.
type PageFetcher interface {
	FetchPage(ctx context.Context, req windy.PageRequest) (windy.Page, error)
}

// DefaultMaxConsecutiveErrors bounds how many failed pages in a row are
// skipped before pagination gives up with what it has.
const DefaultMaxConsecutiveErrors = 5

// PagedOptions configures a paged crawl.
type PagedOptions struct {
	Output               string
	Limit                int
	Delay                time.Duration
	MaxWebcams           int
	Include              string
	MaxConsecutiveErrors int
}

// PagedOptionsFromConfig builds options from the sync configuration.
func PagedOptionsFromConfig(cfg config.SyncConfig) PagedOptions {
	return PagedOptions{
		Output:               cfg.Output,
		Limit:                cfg.PageLimit,
		Delay:                cfg.PageDelay,
		MaxWebcams:           cfg.MaxWebcams,
		Include:              cfg.Include,
		MaxConsecutiveErrors: DefaultMaxConsecutiveErrors,
	}
}

// PagedSyncer walks the webcam collection page by page.
type PagedSyncer struct {
	fetcher PageFetcher
	opts    PagedOptions
	now     func() time.Time
}

// NewPagedSyncer creates a paged syncer.
func NewPagedSyncer(fetcher PageFetcher, opts PagedOptions) *PagedSyncer {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.MaxWebcams <= 0 {
		opts.MaxWebcams = 1000
	}
	if opts.MaxConsecutiveErrors <= 0 {
		opts.MaxConsecutiveErrors = DefaultMaxConsecutiveErrors
	}
	return &PagedSyncer{fetcher: fetcher, opts: opts, now: time.Now}
}

// Fetch collects raw webcams until the collection is exhausted or the
// configured maximum is reached. A failed page is logged and skipped unless
// nothing has been collected yet, in which case the error is returned.
func (s *PagedSyncer) Fetch(ctx context.Context) ([]windy.Webcam, int, error) {
	log := logging.Ctx(ctx)
	limit := s.opts.Limit

	var all []windy.Webcam
	offset, total, requests, consecutiveErrors := 0, 0, 0, 0

	log.Info().Int("max", s.opts.MaxWebcams).Msg("Fetching webcams")

	for len(all) < s.opts.MaxWebcams {
		if err := ctx.Err(); err != nil {
			return nil, requests, err
		}

		page, err := s.fetcher.FetchPage(ctx, windy.PageRequest{Offset: offset, Limit: limit, Include: s.opts.Include})
		requests++
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, requests, ctxErr
			}
			if errors.Is(err, windy.ErrInvalidResponse) {
				log.Error().Int("offset", offset).Msg("Invalid response")
				if len(all) == 0 {
					return nil, requests, fmt.Errorf("invalid response at offset %d: %w", offset, err)
				}
				break
			}

			log.Error().Err(err).Int("offset", offset).Msg("Page fetch failed")
			offset += limit
			if len(all) == 0 {
				return nil, requests, fmt.Errorf("failed to fetch page at offset %d: %w", offset-limit, err)
			}
			consecutiveErrors++
			if consecutiveErrors >= s.opts.MaxConsecutiveErrors {
				log.Warn().Int("errors", consecutiveErrors).Msg("Too many consecutive page failures, stopping")
				break
			}
			continue
		}
		consecutiveErrors = 0

		all = append(all, page.Webcams...)
		if page.Total > 0 {
			total = page.Total
		}
		log.Info().Int("fetched", len(page.Webcams)).Int("offset", offset).Int("total", total).Msg("Fetched page")

		hasMore := len(page.Webcams) >= limit
		offset += limit
		if !hasMore || (total > 0 && offset >= total) || len(all) >= s.opts.MaxWebcams {
			break
		}
		if err := pause(ctx, s.opts.Delay); err != nil {
			return nil, requests, err
		}
	}

	if len(all) > s.opts.MaxWebcams {
		all = all[:s.opts.MaxWebcams]
	}
	log.Info().Int("total", len(all)).Msg("Total webcams fetched")
	return all, requests, nil
}

// Run fetches, normalizes and persists the collection.
func (s *PagedSyncer) Run(ctx context.Context) (Report, error) {
	start := s.now()

	webcams, requests, err := s.Fetch(ctx)
	if err != nil {
		metrics.RecordSyncRun(ModePaged, time.Since(start), 0, requests, false, err)
		return Report{}, err
	}

	report, err := Persist(s.opts.Output, windy.ToCameras(webcams, s.now()))
	if err != nil {
		metrics.RecordSyncRun(ModePaged, time.Since(start), 0, requests, false, err)
		return Report{}, err
	}

	report.Mode = ModePaged
	report.Fetched = len(webcams)
	report.Requests = requests
	report.Duration = time.Since(start)
	metrics.RecordSyncRun(ModePaged, report.Duration, report.Total, requests, report.Written, nil)
	logging.Ctx(ctx).Info().Object("report", report).Msg("Paged sync finished")
	return report, nil
}
