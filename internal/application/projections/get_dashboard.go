package projections

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"flotenn/internal/adapters/http/perf"
	"flotenn/internal/adapters/storage"
	"flotenn/internal/domain/enquiry"
)

// Dashboard limits.
const (
	DashboardRecentEnquiries = 5
	DashboardPerfWindow      = time.Hour
	DashboardSlowestN        = 5
)

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	// IncludeOps adds the performance panel and failed email count.
	IncludeOps bool
	Now        time.Time
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	EnquiryStore ListCounter[enquiry.Enquiry]
	ServiceStore Counter
	PostStore    Counter
	OutboxStore  FailedCounter   // optional: nil reports zero
	Perf         *perf.Collector // optional: nil leaves the panel empty
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	EnquiryCount     int
	NewEnquiryCount  int
	ServiceCount     int // published
	PostCount        int // published
	RecentEnquiries  []enquiry.Enquiry
	FailedEmailCount int
	Perf             *perf.Snapshot
}

// QueryGetDashboard loads the dashboard figures in parallel.
// PRE: Store deps are non-nil
// POST: Returns every figure or the first error
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (DashboardResult, error) {
	var res DashboardResult
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := deps.EnquiryStore.Count(gctx, storage.ListOptions{})
		if err != nil {
			return fmt.Errorf("count enquiries: %w", err)
		}
		res.EnquiryCount = n
		return nil
	})
	g.Go(func() error {
		n, err := deps.EnquiryStore.Count(gctx, storage.ListOptions{
			Filters: []storage.Filter{{Column: "status", Value: enquiry.StatusNew}},
		})
		if err != nil {
			return fmt.Errorf("count new enquiries: %w", err)
		}
		res.NewEnquiryCount = n
		return nil
	})
	g.Go(func() error {
		n, err := deps.ServiceStore.Count(gctx, published)
		if err != nil {
			return fmt.Errorf("count services: %w", err)
		}
		res.ServiceCount = n
		return nil
	})
	g.Go(func() error {
		n, err := deps.PostStore.Count(gctx, published)
		if err != nil {
			return fmt.Errorf("count posts: %w", err)
		}
		res.PostCount = n
		return nil
	})
	g.Go(func() error {
		recent, err := deps.EnquiryStore.List(gctx, storage.ListOptions{Limit: DashboardRecentEnquiries})
		if err != nil {
			return fmt.Errorf("list recent enquiries: %w", err)
		}
		res.RecentEnquiries = recent
		return nil
	})
	if query.IncludeOps && deps.OutboxStore != nil {
		g.Go(func() error {
			n, err := deps.OutboxStore.CountFailed(gctx)
			if err != nil {
				return fmt.Errorf("count failed emails: %w", err)
			}
			res.FailedEmailCount = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return DashboardResult{}, err
	}

	if query.IncludeOps && deps.Perf != nil {
		now := query.Now
		if now.IsZero() {
			now = time.Now()
		}
		snap := deps.Perf.Snapshot(now.Add(-DashboardPerfWindow), DashboardSlowestN)
		res.Perf = &snap
	}
	return res, nil
}
