package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

const (
	slotTable   = "progress_slot"
	failedTable = "failed_instruction"
	batchLimit  = 1000
)

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS progress_slot (
	slot       BIGINT PRIMARY KEY,
	source     SMALLINT NOT NULL,
	block_time BIGINT NOT NULL,
	status     SMALLINT NOT NULL,
	rows       INTEGER NOT NULL DEFAULT 0,
	failed     INTEGER NOT NULL DEFAULT 0,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS failed_instruction (
	tx_hash           VARCHAR(128) NOT NULL,
	tx_instruction_id INTEGER NOT NULL,
	parent_index      INTEGER NOT NULL DEFAULT -1,
	slot              BIGINT NOT NULL,
	program           VARCHAR(64) NOT NULL,
	data              BYTEA,
	reason            TEXT NOT NULL,
	block_time        BIGINT NOT NULL,
	created_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (tx_hash, parent_index, tx_instruction_id)
);`

// DBProgressStore 管理 slot 进度与失败指令的 Postgres 存储。
// 写入用于持久记录，服务恢复后可用；不做高频判重，只作为 Redis 的 fallback。
type DBProgressStore struct {
	db *sql.DB
}

// OpenPostgres 通过 lib/pq 打开连接并校验可用性
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(8)
	db.SetConnMaxIdleTime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres failed: %w", err)
	}
	return db, nil
}

func NewDBProgressStore(db *sql.DB) *DBProgressStore {
	return &DBProgressStore{db: db}
}

// EnsureTables 建表（幂等）
func (d *DBProgressStore) EnsureTables(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, createTablesSQL); err != nil {
		return wrapPQ("create tables", err)
	}
	return nil
}

// CheckSlotExists 判定某 slot 是否已存在于 DB 中
func (d *DBProgressStore) CheckSlotExists(ctx context.Context, slot uint64) (bool, error) {
	var dummy int
	err := d.db.QueryRowContext(ctx, `SELECT 1 FROM progress_slot WHERE slot = $1`, int64(slot)).Scan(&dummy)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, wrapPQ("check slot exists", err)
	}
	return true, nil
}

// BatchInsertSlots 按 batchLimit 分批写入 slot 记录，冲突时更新状态
func (d *DBProgressStore) BatchInsertSlots(ctx context.Context, slots []*SlotRecord) error {
	return inChunks(dedupeSlots(slots), func(chunk []*SlotRecord) error {
		query, args := buildSlotInsert(chunk)
		if _, err := d.db.ExecContext(ctx, query, args...); err != nil {
			return wrapPQ("insert slots", err)
		}
		return nil
	})
}

// BatchInsertFailed 按 batchLimit 分批写入失败指令，重复记录直接忽略
func (d *DBProgressStore) BatchInsertFailed(ctx context.Context, records []*FailedInstruction) error {
	return inChunks(records, func(chunk []*FailedInstruction) error {
		query, args := buildFailedInsert(chunk)
		if _, err := d.db.ExecContext(ctx, query, args...); err != nil {
			return wrapPQ("insert failed instructions", err)
		}
		return nil
	})
}

// DeleteOldSlots 删除 keepSlots 之前的 slot 记录，分批删除避免长事务，返回删除总数
func (d *DBProgressStore) DeleteOldSlots(ctx context.Context, keepSlots uint64) (int64, error) {
	var latest sql.NullInt64
	if err := d.db.QueryRowContext(ctx, `SELECT MAX(slot) FROM progress_slot`).Scan(&latest); err != nil {
		return 0, wrapPQ("fetch latest slot", err)
	}
	if !latest.Valid || uint64(latest.Int64) <= keepSlots {
		return 0, nil
	}
	safeSlot := uint64(latest.Int64) - keepSlots

	var total int64
	for {
		res, err := d.db.ExecContext(ctx,
			`DELETE FROM progress_slot WHERE slot IN (SELECT slot FROM progress_slot WHERE slot < $1 ORDER BY slot LIMIT $2)`,
			int64(safeSlot), batchLimit,
		)
		if err != nil {
			return total, wrapPQ("delete old slots", err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return total, nil
		}
		total += n
	}
}

// dedupeSlots 同一 slot 只保留最后一条，ON CONFLICT DO UPDATE 不允许同一语句内重复主键
func dedupeSlots(slots []*SlotRecord) []*SlotRecord {
	last := make(map[uint64]int, len(slots))
	for i, s := range slots {
		last[s.Slot] = i
	}
	if len(last) == len(slots) {
		return slots
	}
	out := make([]*SlotRecord, 0, len(last))
	for i, s := range slots {
		if last[s.Slot] == i {
			out = append(out, s)
		}
	}
	return out
}

func inChunks[T any](items []T, fn func([]T) error) error {
	for i := 0; i < len(items); i += batchLimit {
		if err := fn(items[i:min(i+batchLimit, len(items))]); err != nil {
			return err
		}
	}
	return nil
}

// valuesClause 生成 ($1,$2,...),($n+1,...) 占位符
func valuesClause(rows, cols int, suffix string) string {
	var sb strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('(')
		for c := 0; c < cols; c++ {
			if c > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "$%d", r*cols+c+1)
		}
		sb.WriteString(suffix)
		sb.WriteByte(')')
	}
	return sb.String()
}

func buildSlotInsert(slots []*SlotRecord) (string, []any) {
	args := make([]any, 0, len(slots)*6)
	for _, s := range slots {
		args = append(args, int64(s.Slot), s.Source, s.BlockTime, int(s.Status), s.Rows, s.Failed)
	}
	query := `INSERT INTO ` + slotTable + ` (slot, source, block_time, status, rows, failed, updated_at) VALUES ` +
		valuesClause(len(slots), 6, ",CURRENT_TIMESTAMP") +
		` ON CONFLICT (slot) DO UPDATE SET status = EXCLUDED.status, rows = EXCLUDED.rows, failed = EXCLUDED.failed, updated_at = CURRENT_TIMESTAMP`
	return query, args
}

func buildFailedInsert(records []*FailedInstruction) (string, []any) {
	args := make([]any, 0, len(records)*8)
	for _, r := range records {
		parent := int32(-1)
		if r.ParentIndex != nil {
			parent = *r.ParentIndex
		}
		args = append(args, r.TxHash, r.TxInstructionID, parent, int64(r.Slot), r.Program, r.Data, r.Reason, r.BlockTime)
	}
	query := `INSERT INTO ` + failedTable + ` (tx_hash, tx_instruction_id, parent_index, slot, program, data, reason, block_time) VALUES ` +
		valuesClause(len(records), 8, "") +
		` ON CONFLICT DO NOTHING`
	return query, args
}

// wrapPQ 附带 postgres 错误码，便于日志检索
func wrapPQ(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s failed (pq %s %s): %w", op, pqErr.Code, pqErr.Code.Name(), err)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
