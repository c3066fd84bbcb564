// Package feed fans live report snapshots out to portal subscribers.
//
// The store delivers a full ordered result set whenever anything in a query
// scope changes. The hub holds one store subscription per scope regardless of
// how many views are watching it, enriches each snapshot with resolved
// display names, partitions pending from resolved, and hands every subscriber
// the latest snapshot. A slow subscriber only ever skips superseded
// snapshots.
package feed

import (
	"context"
	"sync"
	"time"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/logger"
	"habitat-portal-backend/internal/repository"
)

// Snapshot is one delivery of the live report feed.
type Snapshot struct {
	// Reports is the full ordered set for the scope, newest first.
	Reports []domain.Report `json:"reports"`
	// Pending is the subset still awaiting resolution, same order.
	Pending []domain.Report `json:"pending"`
	// PendingCount drives the resident notification badge.
	PendingCount int       `json:"pending_count"`
	At           time.Time `json:"at"`
}

type scopeKey struct {
	buildingID string
	limit      int
}

type subscriber struct {
	ch chan Snapshot
}

type scope struct {
	cancel context.CancelFunc
	subs   map[*subscriber]struct{}
	last   *Snapshot
}

type Hub struct {
	reports repository.ReportRepository
	names   *NameCache

	mu     sync.Mutex
	scopes map[scopeKey]*scope
}

func NewHub(reports repository.ReportRepository, names *NameCache) *Hub {
	return &Hub{
		reports: reports,
		names:   names,
		scopes:  make(map[scopeKey]*scope),
	}
}

// Subscribe attaches to the live feed for a building scope. An unscoped
// buildingID (empty, "all", "Global") watches every building. limit <= 0
// means unlimited; the admin feed passes repository.AdminFeedLimit.
//
// The returned channel delivers the current snapshot immediately when one is
// already known, then every subsequent snapshot. It is closed when ctx is
// cancelled or the underlying store subscription dies; callers reconnect.
func (h *Hub) Subscribe(ctx context.Context, buildingID string, limit int) (<-chan Snapshot, error) {
	key := scopeKey{buildingID: normalizeScope(buildingID), limit: limit}

	h.mu.Lock()
	sc, ok := h.scopes[key]
	if !ok {
		var err error
		sc, err = h.startScope(key)
		if err != nil {
			h.mu.Unlock()
			return nil, err
		}
		h.scopes[key] = sc
	}

	sub := &subscriber{ch: make(chan Snapshot, 1)}
	sc.subs[sub] = struct{}{}
	if sc.last != nil {
		sub.ch <- *sc.last
	}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.unsubscribe(key, sub)
	}()

	return sub.ch, nil
}

// PendingCount returns the current number of pending reports for a building
// without holding a subscription open (point GET for the badge).
func (h *Hub) PendingCount(ctx context.Context, buildingID string) (int, error) {
	reports, err := h.reports.List(ctx, buildingID, 0)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, r := range reports {
		if r.IsPending() {
			count++
		}
	}
	return count, nil
}

// startScope opens the store subscription for a scope. Caller holds h.mu.
// The watch lives on its own context so one departing view does not tear the
// feed down for the rest.
func (h *Hub) startScope(key scopeKey) (*scope, error) {
	watchCtx, cancel := context.WithCancel(context.Background())
	updates, err := h.reports.Watch(watchCtx, key.buildingID, key.limit)
	if err != nil {
		cancel()
		return nil, err
	}

	sc := &scope{
		cancel: cancel,
		subs:   make(map[*subscriber]struct{}),
	}

	go func() {
		for reports := range updates {
			snap := h.buildSnapshot(watchCtx, reports)
			h.broadcast(key, sc, snap)
		}
		// Store subscription ended: drop the scope and let subscribers
		// reconnect through a fresh one.
		h.closeScope(key, sc)
	}()

	logger.Info("Feed scope opened", "building_id", key.buildingID, "limit", key.limit)
	return sc, nil
}

// buildSnapshot enriches a raw result set and derives the pending partition.
func (h *Hub) buildSnapshot(ctx context.Context, reports []domain.Report) Snapshot {
	pending := make([]domain.Report, 0, len(reports))
	for i := range reports {
		if name := h.names.DisplayName(ctx, reports[i].UserID); name != FallbackName || reports[i].UserName == "" {
			reports[i].UserName = name
		}
		if reports[i].IsPending() {
			pending = append(pending, reports[i])
		}
	}
	return Snapshot{
		Reports:      reports,
		Pending:      pending,
		PendingCount: len(pending),
		At:           time.Now(),
	}
}

func (h *Hub) broadcast(key scopeKey, sc *scope, snap Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.scopes[key] != sc {
		return
	}
	sc.last = &snap
	for sub := range sc.subs {
		// Latest-wins delivery: replace an unconsumed older snapshot.
		select {
		case sub.ch <- snap:
		default:
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- snap:
			default:
			}
		}
	}
}

func (h *Hub) unsubscribe(key scopeKey, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sc, ok := h.scopes[key]
	if !ok {
		return
	}
	if _, ok := sc.subs[sub]; !ok {
		return
	}
	delete(sc.subs, sub)
	close(sub.ch)
	if len(sc.subs) == 0 {
		sc.cancel()
		delete(h.scopes, key)
		logger.Info("Feed scope closed", "building_id", key.buildingID, "limit", key.limit)
	}
}

// closeScope tears a scope down after its store subscription ended.
func (h *Hub) closeScope(key scopeKey, sc *scope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.scopes[key] != sc {
		return
	}
	for sub := range sc.subs {
		close(sub.ch)
	}
	sc.cancel()
	delete(h.scopes, key)
	logger.Warn("Feed scope ended by store", "building_id", key.buildingID)
}

func normalizeScope(buildingID string) string {
	if repository.UnscopedBuilding(buildingID) {
		return ""
	}
	return buildingID
}
