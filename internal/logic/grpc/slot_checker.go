package grpc

import (
	"context"
	"fmt"
	"slices"
	"time"

	"ix-decoder-sol/internal/pkg/logger"

	"github.com/blocto/solana-go-sdk/rpc"
)

const (
	maxPendingRanges = 200
	delayBeforeCheck = 30 * time.Second // 给 RPC 节点留出确认时间
	maxRangeSize     = 10000            // 单次 getBlocks 的最大跨度
	checkInterval    = 10 * time.Second
	getBlocksRetries = 3
)

// SlotRange 待检测的闭区间 [From, To]
type SlotRange struct {
	From     uint64
	To       uint64
	SubmitAt time.Time
}

// BlockLister 返回 [from, to] 内实际产出区块的 slot 列表
type BlockLister func(ctx context.Context, from, to uint64) ([]uint64, error)

// SlotCheckResult 一轮检测的结果
type SlotCheckResult struct {
	Empty   []uint64 // RPC 确认的空 slot
	Missing []uint64 // 链上有块但本服务未收到，疑似漏扫
	Skipped int      // RPC 查询失败而未能判定的 slot 数
}

// SlotChecker 异步确认 gRPC 流中跳过的 slot 是空块还是漏收
type SlotChecker struct {
	listBlocks BlockLister
	rangeCh    chan SlotRange
	ctx        context.Context
	cancel     context.CancelFunc
	retryDelay time.Duration
}

func NewSlotChecker(endpoint string) *SlotChecker {
	client := rpc.NewRpcClient(endpoint)
	return newSlotChecker(func(ctx context.Context, from, to uint64) ([]uint64, error) {
		resp, err := client.GetBlocks(ctx, from, to)
		if err != nil {
			return nil, err
		}
		return resp.Result, nil
	})
}

func newSlotChecker(lister BlockLister) *SlotChecker {
	ctx, cancel := context.WithCancel(context.Background())
	return &SlotChecker{
		listBlocks: lister,
		rangeCh:    make(chan SlotRange, 300),
		ctx:        ctx,
		cancel:     cancel,
		retryDelay: 300 * time.Millisecond,
	}
}

func (s *SlotChecker) Start() {
	s.run()
}

func (s *SlotChecker) Stop() {
	s.cancel()
}

// Submit 提交一个 slot 区间，满 delayBeforeCheck 后检测；通道满时直接丢弃
func (s *SlotChecker) Submit(from, to uint64) {
	if from > to {
		logger.Warnf("[SlotChecker] invalid slot range: from (%d) > to (%d)", from, to)
		return
	}
	select {
	case s.rangeCh <- SlotRange{From: from, To: to, SubmitAt: time.Now()}:
	default:
		logger.Warnf("[SlotChecker] slot range channel full, dropped: [%d, %d]", from, to)
	}
}

func (s *SlotChecker) run() {
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	var waiting []SlotRange
	for {
		select {
		case <-s.ctx.Done():
			logger.Infof("[SlotChecker] stopped")
			return

		case r := <-s.rangeCh:
			if len(waiting) >= maxPendingRanges {
				logger.Warnf("[SlotChecker] too many pending ranges (%d), drop [%d, %d]", len(waiting), r.From, r.To)
				continue
			}
			waiting = append(waiting, r)

		case now := <-ticker.C:
			var ready []SlotRange
			ready, waiting = takeReady(waiting, now)
			if len(ready) == 0 {
				continue
			}
			// 串行检测，避免 RPC 请求堆积
			result := s.checkSlotRanges(ready)
			if len(result.Missing) > 0 || result.Skipped > 0 {
				logger.Warnf("[SlotChecker] checked %d ranges: empty=%d missing=%d skipped=%d",
					len(ready), len(result.Empty), len(result.Missing), result.Skipped)
			}
		}
	}
}

// takeReady 按提交时间拆分为可检测与继续等待两部分
func takeReady(ranges []SlotRange, now time.Time) (ready, waiting []SlotRange) {
	for _, r := range ranges {
		if now.Sub(r.SubmitAt) >= delayBeforeCheck {
			ready = append(ready, r)
		} else {
			waiting = append(waiting, r)
		}
	}
	return ready, waiting
}

func (s *SlotChecker) checkSlotRanges(ranges []SlotRange) SlotCheckResult {
	var result SlotCheckResult

	produced := make(map[uint64]struct{})
	var failed []SlotRange
	for _, r := range mergeRanges(ranges) {
		if s.ctx.Err() != nil {
			return result
		}
		blocks, err := s.getBlocksWithRetry(r.From, r.To)
		if err != nil {
			logger.Warnf("[SlotChecker] getBlocks [%d, %d] failed after retries: %v", r.From, r.To, err)
			failed = append(failed, r)
			continue
		}
		for _, slot := range blocks {
			produced[slot] = struct{}{}
		}
	}

	seen := make(map[uint64]struct{})
	for _, r := range ranges {
		for slot := r.From; slot <= r.To; slot++ {
			if _, dup := seen[slot]; dup {
				continue
			}
			seen[slot] = struct{}{}

			switch _, ok := produced[slot]; {
			case inRanges(slot, failed):
				result.Skipped++
			case ok:
				result.Missing = append(result.Missing, slot)
				logger.Errorf("[SlotChecker] slot %d is missing，疑似漏扫", slot)
			default:
				result.Empty = append(result.Empty, slot)
				logger.Debugf("[SlotChecker] slot %d is confirmed empty", slot)
			}
		}
	}
	return result
}

// inRanges ranges 有序且互不相交
func inRanges(slot uint64, ranges []SlotRange) bool {
	_, found := slices.BinarySearchFunc(ranges, slot, func(r SlotRange, s uint64) int {
		switch {
		case r.To < s:
			return -1
		case r.From > s:
			return 1
		}
		return 0
	})
	return found
}

func (s *SlotChecker) getBlocksWithRetry(from, to uint64) (blocks []uint64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("getBlocks panic: %v", r)
		}
	}()

	for attempt := 1; ; attempt++ {
		if s.ctx.Err() != nil {
			return nil, s.ctx.Err()
		}
		ctx, cancel := context.WithTimeout(s.ctx, 6*time.Second)
		blocks, err = s.listBlocks(ctx, from, to)
		cancel()
		if err == nil || attempt >= getBlocksRetries {
			return blocks, err
		}
		time.Sleep(s.retryDelay)
	}
}

// mergeRanges 将区间排序后合并重叠或相邻部分，再按 maxRangeSize 切分，
// 输出有序、互不相交且每段不超过 maxRangeSize 的区间
func mergeRanges(ranges []SlotRange) []SlotRange {
	if len(ranges) == 0 {
		return nil
	}

	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b SlotRange) int {
		switch {
		case a.From < b.From:
			return -1
		case a.From > b.From:
			return 1
		}
		return 0
	})

	var unions []SlotRange
	for _, r := range sorted {
		if n := len(unions); n > 0 && r.From <= unions[n-1].To+1 {
			unions[n-1].To = max(unions[n-1].To, r.To)
			continue
		}
		unions = append(unions, SlotRange{From: r.From, To: r.To, SubmitAt: r.SubmitAt})
	}

	out := make([]SlotRange, 0, len(unions))
	for _, u := range unions {
		for from := u.From; from <= u.To; {
			to := u.To
			if u.To-from+1 > maxRangeSize {
				to = from + maxRangeSize - 1
			}
			out = append(out, SlotRange{From: from, To: to, SubmitAt: u.SubmitAt})
			if to == u.To {
				break
			}
			from = to + 1
		}
	}
	return out
}
