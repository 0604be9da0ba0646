// Package store は、データの永続化機能を提供します。
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stsysd/kusa/activity"
	"github.com/stsysd/kusa/model"
)

// DBFileName はデータディレクトリ内のSQLiteファイル名です。
const DBFileName = "kusa.db"

// RecordStore はレコードの保存と取得を行うインターフェースです。
type RecordStore interface {
	// CreateRecord は新しいレコードを作成します。
	CreateRecord(ctx context.Context, record *model.Record) error
	// GetRecord は指定されたIDのレコードを取得します。
	GetRecord(ctx context.Context, id uuid.UUID) (*model.Record, error)
	// DeleteRecord は指定されたIDのレコードを削除します。
	DeleteRecord(ctx context.Context, id uuid.UUID) error
	// DeleteRecordsBefore は指定日より前のレコードを削除し、削除件数を返します。
	DeleteRecordsBefore(ctx context.Context, before string) (int, error)
	// ListRecords は指定した期間内のレコードを日付順に取得します。
	ListRecords(ctx context.Context, from, to string, limit, offset int) ([]*model.Record, error)
	// DailyCounts は指定した期間内の日ごとの合計値を取得します。
	DailyCounts(ctx context.Context, from, to string) (activity.Contributions, error)
	// Close はストアの接続を閉じます。
	Close() error
}

// SQLiteStore はSQLiteを使用したRecordStoreの実装です。
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore は新しいSQLiteStoreを作成します。
// migrate はスキーマの初期化に使われます（通常は db.Migrate）。
func NewSQLiteStore(dataDir string, migrate func(*sql.DB) error) (*SQLiteStore, error) {
	// データディレクトリの作成（存在しない場合）
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// SQLiteデータベースファイルのパス
	dbPath := filepath.Join(dataDir, DBFileName)

	// SQLiteデータベースへの接続
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}
	// SQLiteは書き込みが単一なので接続を1本に絞る
	conn.SetMaxOpenConns(1)

	// マイグレーションの実行
	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database tables: %w", err)
	}

	return &SQLiteStore{conn: conn}, nil
}

// CreateRecord は新しいレコードをデータベースに保存します。
func (s *SQLiteStore) CreateRecord(ctx context.Context, record *model.Record) error {
	// バリデーション
	if err := record.Validate(); err != nil {
		return err
	}

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO records (id, date, count, note, created_at) VALUES (?, ?, ?, ?, ?)`,
		record.ID.String(), record.Date, record.Count, record.Note, record.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

// GetRecord は指定されたIDのレコードを取得します。
func (s *SQLiteStore) GetRecord(ctx context.Context, id uuid.UUID) (*model.Record, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, date, count, note, created_at FROM records WHERE id = ?`, id.String())

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListRecords は指定した期間内のレコードを取得します。
// 同じ日付のレコードは作成順に並びます。
func (s *SQLiteStore) ListRecords(ctx context.Context, from, to string, limit, offset int) ([]*model.Record, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, date, count, note, created_at FROM records
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, created_at ASC, id ASC
		LIMIT ? OFFSET ?`,
		from, to, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	// 結果の変換
	records := []*model.Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// DailyCounts は指定した期間内の日ごとの合計値を取得します。
func (s *SQLiteStore) DailyCounts(ctx context.Context, from, to string) (activity.Contributions, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT date, SUM(count) FROM records
		WHERE date >= ? AND date <= ?
		GROUP BY date`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate records: %w", err)
	}
	defer rows.Close()

	counts := activity.Contributions{}
	for rows.Next() {
		var date string
		var total int
		if err := rows.Scan(&date, &total); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		counts[date] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to aggregate records: %w", err)
	}
	return counts, nil
}

// Close はデータベース接続を閉じます。
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// DeleteRecord は指定されたIDのレコードを削除します。
func (s *SQLiteStore) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	result, err := s.conn.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id.String())
	if err != nil {
		return err
	}

	// 削除された行数を確認
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	// レコードが見つからない場合
	if rowsAffected == 0 {
		return model.ErrRecordNotFound
	}

	return nil
}

// DeleteRecordsBefore は指定日より前（当日を含まない）のレコードを削除します。
func (s *SQLiteStore) DeleteRecordsBefore(ctx context.Context, before string) (int, error) {
	// トランザクションの開始
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	// トランザクションをロールバックするための遅延関数
	defer func() {
		if tx != nil {
			tx.Rollback() // 成功した場合は既にnilになっているためエラーは無視
		}
	}()

	result, err := tx.ExecContext(ctx, `DELETE FROM records WHERE date < ?`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records before specified date: %w", err)
	}

	// 削除された行数を取得
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	// トランザクションのコミット
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil // コミットが成功したのでnilにして遅延関数でのロールバックを防ぐ

	return int(rowsAffected), nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRecord は1行をmodel.Recordに変換します。
func scanRecord(row scanner) (*model.Record, error) {
	var (
		idStr, date, note, createdAtStr string
		count                           int
	)
	if err := row.Scan(&idStr, &date, &count, &note, &createdAtStr); err != nil {
		return nil, err
	}

	// UUIDの解析
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in database: %w", err)
	}

	// 文字列から時間に変換
	createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse record creation time: %w", err)
	}

	return model.LoadRecord(id, date, count, note, createdAt)
}
