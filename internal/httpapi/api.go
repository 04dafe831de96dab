package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yuqie6/taskboard/internal/analytics"
	"github.com/yuqie6/taskboard/internal/report"
	"github.com/yuqie6/taskboard/internal/schema"
	"github.com/yuqie6/taskboard/internal/service"
)

// AnalyticsProvider 统计能力
type AnalyticsProvider interface {
	ComputeSprintAnalytics(ctx context.Context, sprintID int64) (*analytics.SprintAnalytics, error)
	ListSprints(ctx context.Context, limit int) ([]schema.Sprint, error)
}

type apiServer struct {
	provider  AnalyticsProvider
	opts      Options
	startTime time.Time
}

func newAPI(provider AnalyticsProvider, opts Options) *apiServer {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	return &apiServer{
		provider:  provider,
		opts:      opts,
		startTime: time.Now(),
	}
}

func (a *apiServer) registerJSONRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/sprints", a.wrapGET(a.listSprints))
	mux.HandleFunc("/api/sprints/{id}/analytics", a.wrapGET(a.getAnalytics))
	mux.HandleFunc("/api/sprints/{id}/burndown", a.wrapGET(a.getBurndown))
	mux.HandleFunc("/api/sprints/{id}/report.pdf", a.wrapGET(a.getReportPDF))
}

func (a *apiServer) wrapGET(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		fn(w, r)
	}
}

func (a *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"name":       a.opts.Name,
		"version":    a.opts.Version,
		"started_at": a.startTime.Format(time.RFC3339),
	})
}

// statusFor 错误分类 -> HTTP 状态码
func statusFor(err error) int {
	var fe *service.FetchError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, analytics.ErrComputation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &fe):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// compute 解析路径中的迭代 ID 并计算；出错时已写响应，返回 nil
func (a *apiServer) compute(w http.ResponseWriter, r *http.Request) *analytics.SprintAnalytics {
	id, err := parseInt64Param(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("迭代 ID %s", err))
		return nil
	}

	ctx, cancel := context.WithTimeout(r.Context(), a.opts.RequestTimeout)
	defer cancel()

	res, err := a.provider.ComputeSprintAnalytics(ctx, id)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			slog.Error("迭代统计失败", "sprint_id", id, "error", err)
		}
		writeError(w, status, err.Error())
		return nil
	}
	return res
}

func (a *apiServer) getAnalytics(w http.ResponseWriter, r *http.Request) {
	if res := a.compute(w, r); res != nil {
		writeJSON(w, http.StatusOK, res)
	}
}

// BurndownDTO 只含燃尽图所需字段
type BurndownDTO struct {
	SprintID    int64                   `json:"sprint_id"`
	ChartData   []analytics.ChartSeries `json:"chart_data"`
	Statistics  analytics.Statistics    `json:"statistics"`
	PointStart  int64                   `json:"point_start"`
	PointActual int64                   `json:"point_actual"`
}

func (a *apiServer) getBurndown(w http.ResponseWriter, r *http.Request) {
	res := a.compute(w, r)
	if res == nil {
		return
	}
	writeJSON(w, http.StatusOK, &BurndownDTO{
		SprintID:    res.Sprint.ID,
		ChartData:   res.ChartData,
		Statistics:  res.Statistics,
		PointStart:  res.PointStart,
		PointActual: res.PointActual,
	})
}

func (a *apiServer) getReportPDF(w http.ResponseWriter, r *http.Request) {
	res := a.compute(w, r)
	if res == nil {
		return
	}

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, res); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="sprint-%d.pdf"`, res.Sprint.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (a *apiServer) listSprints(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := strings.TrimSpace(r.URL.Query().Get("limit")); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	sprints, err := a.provider.ListSprints(r.Context(), limit)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sprints)
}
