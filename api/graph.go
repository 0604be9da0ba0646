package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/stsysd/kusa/activity"
	"github.com/stsysd/kusa/heatmap"
	"github.com/stsysd/kusa/model"
	"github.com/stsysd/kusa/view"
)

// GetGraphParams represents parameters for getting a graph.
type GetGraphParams struct {
	Today    time.Time
	Selected string
	Track    bool
}

// NewGetGraphParams creates parameters for graph generation from HTTP request.
// An empty today means now.
func NewGetGraphParams(r *http.Request, now time.Time) (*GetGraphParams, error) {
	query := r.URL.Query()

	today := now
	if v := query.Get("today"); v != "" {
		t, err := time.Parse(activity.DateFormat, v)
		if err != nil {
			return nil, fmt.Errorf("invalid today parameter. Use YYYY-MM-DD")
		}
		today = t
	}

	selected := query.Get("selected")
	if selected != "" && !activity.IsDate(selected) {
		return nil, fmt.Errorf("invalid selected parameter. Use YYYY-MM-DD")
	}

	return &GetGraphParams{
		Today:    today,
		Selected: selected,
		Track:    query.Has("track"),
	}, nil
}

// handleGetGraph はコントリビューショングラフをSVGで返すハンドラーです。
// データ取得に失敗してもグラフはすべて none レベルで描画します。
func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewGetGraphParams(r, s.now())
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	g := s.buildGrid(params.Today)

	// アクセスカウンター機能: trackパラメータがある場合、当日のレコードを自動作成
	// 外部の取得元を使う場合は記録しても描画されないため無視する
	if params.Track && s.remote != nil {
		log.Printf("Ignoring track: graph reads from %s", s.remote.URL())
	} else if params.Track {
		record, err := model.NewRecord(g.Today, 1, "")
		if err != nil {
			log.Printf("Error creating access counter record: %v", err)
		} else if err := s.store.CreateRecord(r.Context(), record); err != nil {
			// エラーが発生してもグラフ表示は続行
			log.Printf("Error saving access counter record: %v", err)
		}
	}

	state := view.NewState()
	state.FetchContributions(r.Context(), s.source(g))
	if !state.Loaded() {
		s.metrics.fetchFailures.Inc()
	}
	if params.Selected != "" {
		state.SelectDay(params.Selected)
	}

	counts := state.Contributions()
	opts := &heatmap.Options{
		Colors: s.config.Colors,
		Labels: s.labels,
	}
	if summary, err := activity.Summarize(counts, g.First(), g.Today); err == nil {
		opts.Title = s.labels.YearTotal(summary.Total)
	}
	if sel, ok := state.Selection(); ok {
		opts.Selected = sel.Date
	}

	svg := heatmap.GenerateGridSVG(g, counts, opts)

	// レスポンスの返却
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(svg))
}

// handleGetContributions はストアの日別合計を日付をキーとするJSONオブジェクトで返します。
// この形式は fetch パッケージで読み込めます。
func (s *Server) handleGetContributions(w http.ResponseWriter, r *http.Request) {
	g := s.buildGrid(s.now())

	query := r.URL.Query()
	dateRange, err := model.NewDateRange(query.Get("from"), query.Get("to"), g.First(), g.Last())
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	counts, err := s.store.DailyCounts(r.Context(), dateRange.From(), dateRange.To())
	if err != nil {
		log.Printf("Error aggregating contributions: %v", err)
		writeJSONError(w, "Failed to retrieve contributions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, counts, http.StatusOK)
}
