package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/stsysd/kusa/model"
)

// CreateRecordParams represents parameters for creating a record.
type CreateRecordParams struct {
	Date  *model.Date
	Count *model.Count
	Note  string
}

// NewCreateRecordParams creates parameters for record creation from HTTP request.
func NewCreateRecordParams(r *http.Request) (*CreateRecordParams, error) {
	// Parse request body
	var requestBody struct {
		Date  string `json:"date"`
		Count *int   `json:"count"`
		Note  string `json:"note"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	date, err := model.NewDate(requestBody.Date)
	if err != nil {
		return nil, err
	}

	count, err := model.NewCount(requestBody.Count)
	if err != nil {
		return nil, err
	}

	return &CreateRecordParams{
		Date:  date,
		Count: count,
		Note:  requestBody.Note,
	}, nil
}

// handleCreateRecord はレコード作成エンドポイントのハンドラーです。
// template クエリがある場合はボディをテンプレートで変換してから解釈します。
func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	if tmpl := r.URL.Query().Get("template"); tmpl != "" {
		transformed, err := s.transformRequestBody(r.Body, tmpl)
		if err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(strings.NewReader(transformed))
	}

	// パラメータを検証
	params, err := NewCreateRecordParams(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// 新しいレコードの作成
	record, err := model.NewRecord(params.Date.String(), params.Count.Int(), params.Note)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// レコードの保存
	if err := s.store.CreateRecord(r.Context(), record); err != nil {
		log.Printf("Error creating record: %v", err)
		writeJSONError(w, "Failed to create record", http.StatusInternalServerError)
		return
	}

	// 成功レスポンスの返却
	writeJSON(w, record, http.StatusCreated)
}

// handleGetRecord は特定のIDのレコードを取得するハンドラーです。
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	recordID, err := model.NewRecordID(r.PathValue("record_id"))
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// レコードの取得
	record, err := s.store.GetRecord(r.Context(), recordID.UUID())
	if err != nil {
		if errors.Is(err, model.ErrRecordNotFound) {
			writeJSONError(w, "Record not found", http.StatusNotFound)
		} else {
			log.Printf("Error retrieving record: %v", err)
			writeJSONError(w, "Failed to retrieve record", http.StatusInternalServerError)
		}
		return
	}

	// レスポンスの返却
	writeJSON(w, record, http.StatusOK)
}

// handleDeleteRecord は特定のIDのレコードを削除するハンドラーです。
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	recordID, err := model.NewRecordID(r.PathValue("record_id"))
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// レコードの削除
	if err := s.store.DeleteRecord(r.Context(), recordID.UUID()); err != nil {
		if errors.Is(err, model.ErrRecordNotFound) {
			writeJSONError(w, "Record not found", http.StatusNotFound)
		} else {
			log.Printf("Error deleting record: %v", err)
			writeJSONError(w, "Failed to delete record", http.StatusInternalServerError)
		}
		return
	}

	// 削除成功のレスポンスを返す
	w.WriteHeader(http.StatusNoContent)
}

// ListRecordsParams represents parameters for listing records.
type ListRecordsParams struct {
	DateRange  *model.DateRange
	Pagination *model.Pagination
}

// NewListRecordsParams creates parameters for record listing from HTTP request.
// The date range defaults to the current grid window.
func NewListRecordsParams(r *http.Request, defaultFrom, defaultTo string) (*ListRecordsParams, error) {
	query := r.URL.Query()

	dateRange, err := model.NewDateRange(query.Get("from"), query.Get("to"), defaultFrom, defaultTo)
	if err != nil {
		return nil, err
	}

	pagination, err := model.NewPagination(query.Get("limit"), query.Get("offset"))
	if err != nil {
		return nil, err
	}

	return &ListRecordsParams{
		DateRange:  dateRange,
		Pagination: pagination,
	}, nil
}

// ListRecordsResponse represents the paginated response for list records.
type ListRecordsResponse struct {
	Items      []*model.Record `json:"items"`
	NextOffset *int            `json:"next_offset,omitempty"`
}

// handleListRecords は期間内のレコード一覧を取得するハンドラーです。
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	g := s.buildGrid(s.now())

	// パラメータを検証
	params, err := NewListRecordsParams(r, g.First(), g.Last())
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// レコードの取得（limit+1 件取得して次ページの有無を判定）
	limit := params.Pagination.Limit()
	offset := params.Pagination.Offset()
	records, err := s.store.ListRecords(r.Context(), params.DateRange.From(), params.DateRange.To(), limit+1, offset)
	if err != nil {
		log.Printf("Error retrieving records: %v", err)
		writeJSONError(w, "Failed to retrieve records", http.StatusInternalServerError)
		return
	}

	// レスポンスの構築
	response := &ListRecordsResponse{Items: records}
	// 空配列を返すためにnilチェック
	if response.Items == nil {
		response.Items = []*model.Record{}
	}
	if len(records) > limit {
		response.Items = records[:limit]
		next := offset + limit
		response.NextOffset = &next
	}

	writeJSON(w, response, http.StatusOK)
}

// handleBulkDeleteRecords は指定日より前のレコードをまとめて削除するハンドラーです。
func (s *Server) handleBulkDeleteRecords(w http.ResponseWriter, r *http.Request) {
	// JSONのパース
	var deletionData struct {
		Before string `json:"before"`
	}
	if err := json.NewDecoder(r.Body).Decode(&deletionData); err != nil {
		writeJSONError(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	// beforeパラメータの検証
	if deletionData.Before == "" {
		writeJSONError(w, "before parameter is required", http.StatusBadRequest)
		return
	}
	before, err := model.NewDate(deletionData.Before)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// レコードの一括削除を実行
	count, err := s.store.DeleteRecordsBefore(r.Context(), before.String())
	if err != nil {
		log.Printf("Error deleting records before specified date: %v", err)
		writeJSONError(w, "Failed to delete records", http.StatusInternalServerError)
		return
	}

	// 削除結果をJSONで返す
	writeJSON(w, map[string]int{"deleted_count": count}, http.StatusOK)
}
