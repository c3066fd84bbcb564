package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/feed"
	"habitat-portal-backend/internal/logger"
	"habitat-portal-backend/internal/repository"
	"habitat-portal-backend/internal/security"
)

// Keep idle SSE connections alive through proxies.
const streamHeartbeat = 25 * time.Second

func (a *API) handleStreamToken(w http.ResponseWriter, r *http.Request) {
	token, err := a.streamTokens.Generate(profileFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// streamScope resolves the feed scope an SSE subscriber is entitled to.
// Admins may pick a building (or leave it unscoped) and see the capped feed;
// residents are pinned to their own building with no cap.
func streamScope(claims *security.StreamClaims, r *http.Request) (buildingID string, limit int) {
	if claims.Role == domain.RoleAdmin {
		return r.URL.Query().Get("building_id"), repository.AdminFeedLimit
	}
	return claims.BuildingID, 0
}

func (a *API) streamClaims(w http.ResponseWriter, r *http.Request) *security.StreamClaims {
	claims, err := a.streamTokens.Validate(r.URL.Query().Get("token"))
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid stream token"})
		return nil
	}
	return claims
}

func (a *API) handleReportStream(w http.ResponseWriter, r *http.Request) {
	claims := a.streamClaims(w, r)
	if claims == nil {
		return
	}

	buildingID, limit := streamScope(claims, r)
	query := r.URL.Query().Get("q")

	a.serveSSE(w, r, buildingID, limit, func(snap feed.Snapshot) any {
		if query == "" {
			return snap
		}
		filtered := snap
		filtered.Reports = feed.FilterReports(snap.Reports, query)
		filtered.Pending = feed.FilterReports(snap.Pending, query)
		return filtered
	})
}

func (a *API) handlePendingCountStream(w http.ResponseWriter, r *http.Request) {
	claims := a.streamClaims(w, r)
	if claims == nil {
		return
	}

	buildingID, limit := streamScope(claims, r)
	a.serveSSE(w, r, buildingID, limit, func(snap feed.Snapshot) any {
		return map[string]int{"pending_count": snap.PendingCount}
	})
}

// serveSSE subscribes to the feed hub and relays snapshots to the client as
// server-sent events until the client disconnects.
func (a *API) serveSSE(w http.ResponseWriter, r *http.Request, buildingID string, limit int, render func(feed.Snapshot) any) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}

	updates, err := a.hub.Subscribe(r.Context(), buildingID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case snap, open := <-updates:
			if !open {
				return
			}
			payload, err := json.Marshal(render(snap))
			if err != nil {
				logger.Error("marshal stream snapshot", "error", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
