package progress

import (
	"context"
	"time"

	"ix-decoder-sol/internal/pkg/logger"
)

// SlotStatusStore slot 状态的快速判重层（Redis）
type SlotStatusStore interface {
	GetSlotStatus(ctx context.Context, slot uint64) (SlotStatus, error)
	MarkSlotStatus(ctx context.Context, slot uint64, status SlotStatus) error
}

// ArchiveStore slot 记录与失败指令的持久层（Postgres）
type ArchiveStore interface {
	CheckSlotExists(ctx context.Context, slot uint64) (bool, error)
	BatchInsertSlots(ctx context.Context, slots []*SlotRecord) error
	BatchInsertFailed(ctx context.Context, records []*FailedInstruction) error
	DeleteOldSlots(ctx context.Context, keepSlots uint64) (int64, error)
}

const maxBufferedFailures = 100_000

// ProgressManager 统一封装 Redis + DB + 缓冲，控制进度判重与写入
type ProgressManager struct {
	status          SlotStatusStore
	archive         ArchiveStore
	slots           *recordBuffer[*SlotRecord]
	failures        *recordBuffer[*FailedInstruction]
	recentThreshold time.Duration // 新 block 的判断阈值
	now             func() time.Time
}

func NewProgressManager(status SlotStatusStore, archive ArchiveStore, recentThreshold time.Duration) *ProgressManager {
	return &ProgressManager{
		status:          status,
		archive:         archive,
		slots:           newRecordBuffer[*SlotRecord](0),
		failures:        newRecordBuffer[*FailedInstruction](maxBufferedFailures),
		recentThreshold: recentThreshold,
		now:             time.Now,
	}
}

// ShouldProcessSlot 判断是否需要处理该 slot：
//   - 近期 block 直接处理；
//   - 旧 block 先查 Redis，未命中再 fallback 到 DB，已处理的 slot 回填 Redis。
func (pm *ProgressManager) ShouldProcessSlot(ctx context.Context, slot uint64, blockTime int64) (bool, error) {
	if pm.now().Sub(time.Unix(blockTime, 0)) <= pm.recentThreshold {
		return true, nil
	}

	status, err := pm.status.GetSlotStatus(ctx, slot)
	if err != nil {
		return false, err
	}
	switch status {
	case SlotProcessed, SlotInvalid:
		return false, nil
	case SlotPending:
		return true, nil // 上次处理中断，重新处理
	}

	exists, err := pm.archive.CheckSlotExists(ctx, slot)
	if err != nil {
		return false, err
	}
	if exists {
		if err := pm.status.MarkSlotStatus(ctx, slot, SlotProcessed); err != nil {
			logger.Warnf("[ProgressManager] backfill redis slot=%d failed: %v", slot, err)
		}
		return false, nil
	}
	return true, nil
}

// MarkSlotPending 处理开始前标记，用于识别中断的 slot
func (pm *ProgressManager) MarkSlotPending(ctx context.Context, slot uint64) error {
	return pm.status.MarkSlotStatus(ctx, slot, SlotPending)
}

// MarkSlotStatus 写 Redis 状态，并放入缓冲区等待批量持久化。
// 只记录 SlotProcessed / SlotInvalid，其余状态忽略。
func (pm *ProgressManager) MarkSlotStatus(ctx context.Context, record *SlotRecord) error {
	if record.Status != SlotProcessed && record.Status != SlotInvalid {
		return nil
	}
	if err := pm.status.MarkSlotStatus(ctx, record.Slot, record.Status); err != nil {
		return err
	}
	pm.slots.Add(record)
	return nil
}

// MarkSlotProcessed MarkSlotStatus 的快捷方式
func (pm *ProgressManager) MarkSlotProcessed(ctx context.Context, slot uint64, source int16, blockTime int64, rows, failed int) error {
	return pm.MarkSlotStatus(ctx, &SlotRecord{
		Slot:      slot,
		Source:    source,
		BlockTime: blockTime,
		Status:    SlotProcessed,
		Rows:      rows,
		Failed:    failed,
	})
}

// RecordFailure 缓存失败指令，缓冲区满时丢弃最旧的记录
func (pm *ProgressManager) RecordFailure(records ...*FailedInstruction) {
	if len(records) == 0 {
		return
	}
	if dropped := pm.failures.Add(records...); dropped > 0 {
		logger.Warnf("[ProgressManager] failure buffer full, dropped %d oldest records", dropped)
	}
}

// Flush 将缓冲区写入 DB，写入失败的批次不再重试
func (pm *ProgressManager) Flush(ctx context.Context) {
	if slots := pm.slots.Flush(); len(slots) > 0 {
		if err := pm.archive.BatchInsertSlots(ctx, slots); err != nil {
			logger.Errorf("[ProgressManager] flush %d slots failed: %v", len(slots), err)
		}
	}
	if failures := pm.failures.Flush(); len(failures) > 0 {
		if err := pm.archive.BatchInsertFailed(ctx, failures); err != nil {
			logger.Errorf("[ProgressManager] flush %d failed instructions failed: %v", len(failures), err)
		}
	}
}

// StartFlushLoop 后台定时 flush，ctx 结束前再 flush 一次
func (pm *ProgressManager) StartFlushLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			pm.Flush(flushCtx)
			cancel()
			return
		case <-ticker.C:
			pm.Flush(ctx)
		}
	}
}

// StartGCLoop 定时清理 keepSlots 之前的 slot 记录
func (pm *ProgressManager) StartGCLoop(ctx context.Context, interval time.Duration, keepSlots uint64) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := pm.archive.DeleteOldSlots(ctx, keepSlots)
			if err != nil {
				logger.Errorf("[ProgressManager] gc old slots failed: %v", err)
				continue
			}
			if n > 0 {
				logger.Infof("[ProgressManager] gc deleted %d old slot rows", n)
			}
		}
	}
}
