package model

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stsysd/kusa/activity"
)

// MaxNoteLength はメモの最大文字数です。
const MaxNoteLength = 256

// Record は1日分のコントリビューション記録を表すモデルです。
// 同じ日付のレコードは集計時に合算されます。
type Record struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`       // ISO 8601 の日付 (YYYY-MM-DD)
	Count     int       `json:"count"`      // 記録値
	Note      string    `json:"note"`       // 任意のメモ
	CreatedAt time.Time `json:"created_at"` // 作成日時
}

// NewRecord はRecordの新しいインスタンスを作成します。
// IDはUUIDv4で自動生成されます。
func NewRecord(date string, count int, note string) (*Record, error) {
	rec := &Record{
		ID:        uuid.New(),
		Date:      date,
		Count:     count,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// LoadRecord は既存のRecordインスタンスを作成します。
func LoadRecord(id uuid.UUID, date string, count int, note string, createdAt time.Time) (*Record, error) {
	// LoadRecordはDBから読み込んだレコード用なので、IDは必須
	if id == uuid.Nil {
		return nil, errors.New("id is required for loaded record")
	}

	rec := &Record{
		ID:        id,
		Date:      date,
		Count:     count,
		Note:      note,
		CreatedAt: createdAt,
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Validate はレコードのデータバリデーションを行います。
func (r *Record) Validate() error {
	// 日付の検証
	if !activity.IsDate(r.Date) {
		return NewValidationError("date", "must be in YYYY-MM-DD format")
	}

	// 記録値の検証
	if r.Count < 1 {
		return NewValidationError("count", "must be a positive integer greater than 0")
	}

	if utf8.RuneCountInString(r.Note) > MaxNoteLength {
		return NewValidationError("note", fmt.Sprintf("must be at most %d characters", MaxNoteLength))
	}

	return nil
}
