package grpc

import (
	"context"
	"errors"
	"time"

	"ix-decoder-sol/internal/consts"
	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/logic/decoder"
	"ix-decoder-sol/internal/logic/dispatcher"
	"ix-decoder-sol/internal/logic/progress"
	"ix-decoder-sol/internal/logic/txadapter"
	"ix-decoder-sol/internal/pkg/logger"
	"ix-decoder-sol/internal/pkg/mq"
	"ix-decoder-sol/internal/pkg/utils"
	"ix-decoder-sol/internal/svc"
	"ix-decoder-sol/internal/types"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
)

// gapSubmitter 接收疑似漏块的 slot 区间
type gapSubmitter interface {
	Submit(from, to uint64)
}

type BlockProcessor struct {
	sc        *svc.GrpcServiceContext
	producer  mq.Producer
	progress  *progress.ProgressManager
	checker   gapSubmitter
	blockChan chan *pb.SubscribeUpdateBlock
	ctx       context.Context
	cancel    context.CancelCauseFunc
	workers   int
	lastSlot  uint64
}

// TxDecodeResult 单笔交易的解码结果
type TxDecodeResult struct {
	TxIndex      int
	Instructions int // 可解码程序的指令数
	Decoded      []dispatcher.DecodedInstruction
	Failures     []*progress.FailedInstruction
}

// BlockResult 单个区块的处理统计
type BlockResult struct {
	Slot         uint64
	ValidTxs     int
	Instructions int
	Rows         int
	Failed       int
	SendFailed   int
}

func NewBlockProcessor(sc *svc.GrpcServiceContext, blockChan chan *pb.SubscribeUpdateBlock, checker *SlotChecker) *BlockProcessor {
	p := newBlockProcessor(sc, blockChan)
	p.producer = sc.Producer
	p.progress = sc.ProgressManager
	if checker != nil {
		p.checker = checker
	}
	return p
}

func newBlockProcessor(sc *svc.GrpcServiceContext, blockChan chan *pb.SubscribeUpdateBlock) *BlockProcessor {
	ctx, cancel := context.WithCancelCause(context.Background())
	workers := sc.Config.Workers
	if workers <= 0 {
		workers = consts.CpuCount + 2
	}
	return &BlockProcessor{
		sc:        sc,
		blockChan: blockChan,
		ctx:       ctx,
		cancel:    cancel,
		workers:   workers,
	}
}

func (p *BlockProcessor) Start() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case block, ok := <-p.blockChan:
			if !ok {
				return
			}
			p.procBlock(block)
			if len(p.blockChan) > 10 {
				logger.Debugf("[BlockProcessor] block chan len:%v", len(p.blockChan))
			}
		}
	}
}

func (p *BlockProcessor) Stop() {
	p.cancel(errors.New("service stop"))
}

func (p *BlockProcessor) procBlock(block *pb.SubscribeUpdateBlock) {
	startTime := time.Now()
	txCtx := buildTxContext(block)

	p.submitGap(block.Slot)

	if p.progress != nil {
		should, err := p.progress.ShouldProcessSlot(p.ctx, block.Slot, txCtx.BlockTime)
		if err != nil {
			logger.Warnf("[BlockProcessor] progress check failed, processing anyway: slot=%d err=%v", block.Slot, err)
		} else if !should {
			logger.Infof("[BlockProcessor] slot %d already processed, skipped", block.Slot)
			return
		}
		if err := p.progress.MarkSlotPending(p.ctx, block.Slot); err != nil {
			logger.Warnf("[BlockProcessor] mark slot %d pending failed: %v", block.Slot, err)
		}
	}

	result, jobs, failures := p.decodeBlock(txCtx, block)

	dispatchCtx, cancel := context.WithTimeout(p.ctx, p.sc.Config.TimeConf.SlotDispatchTimeout())
	defer cancel()

	if len(jobs) > 0 {
		ok, failed := mq.SendKafkaJobs(dispatchCtx, p.producer, jobs, p.sc.Config.TimeConf.EventSendTimeout())
		result.SendFailed = len(failed)
		if len(failed) > 0 {
			logger.Errorf("[BlockProcessor] slot %d kafka send failed: ok=%d failed=%d first=%v",
				block.Slot, len(ok), len(failed), failed[0].Err)
		}
	}

	if p.progress != nil {
		p.progress.RecordFailure(failures...)
		// 发送有失败时保持 Pending，重启后会重新处理
		if result.SendFailed == 0 {
			if err := p.progress.MarkSlotProcessed(dispatchCtx, block.Slot, progress.SourceGrpc,
				txCtx.BlockTime, result.Rows, result.Failed); err != nil {
				logger.Warnf("[BlockProcessor] mark slot %d processed failed: %v", block.Slot, err)
			}
		}
	}

	logger.Infof("[BlockProcessor] slot=%d txs=%d/%d ixs=%d rows=%d failed=%d send_failed=%d cost=%v",
		block.Slot, result.ValidTxs, len(block.Transactions), result.Instructions, result.Rows,
		result.Failed, result.SendFailed, time.Since(startTime))
}

// decodeBlock 并发解码区块内全部交易，输出待发送的 Kafka 消息与失败记录
func (p *BlockProcessor) decodeBlock(txCtx *core.TxContext, block *pb.SubscribeUpdateBlock) (BlockResult, []*mq.KafkaJob, []*progress.FailedInstruction) {
	result := BlockResult{Slot: block.Slot}

	validTxs := make([]*pb.SubscribeUpdateTransactionInfo, 0, len(block.Transactions))
	for _, tx := range block.Transactions {
		if IsValidGrpcTx(tx) {
			validTxs = append(validTxs, tx)
		}
	}
	result.ValidTxs = len(validTxs)

	txResults, err := utils.ParallelMapCtx(p.ctx, validTxs, p.workers,
		func(_ context.Context, tx *pb.SubscribeUpdateTransactionInfo) TxDecodeResult {
			return decodeTx(txCtx, tx)
		})
	if err != nil {
		logger.Warnf("[BlockProcessor] slot %d decode interrupted: %v", block.Slot, err)
		return result, nil, nil
	}

	var (
		decoded  []dispatcher.DecodedInstruction
		failures []*progress.FailedInstruction
	)
	for _, r := range txResults {
		decoded = append(decoded, r.Decoded...)
		failures = append(failures, r.Failures...)
		result.Instructions += r.Instructions
	}

	kc := p.sc.Config.KafkaProducerConf
	jobs, encodeFailed := dispatcher.BuildKafkaJobs(kc.TopicPrefix, kc.Partitions, decoded, p.workers)
	for _, e := range encodeFailed {
		logger.Errorf("[BlockProcessor] %v", e)
		ix := e.Instruction
		failures = append(failures, &progress.FailedInstruction{
			Slot:            block.Slot,
			TxHash:          e.TxHash,
			TxInstructionID: ix.TxInstructionID,
			ParentIndex:     ix.ParentIndex,
			Program:         ix.Program,
			Data:            ix.Data,
			Reason:          e.Error(),
			BlockTime:       txCtx.BlockTime,
		})
	}

	result.Rows = len(jobs)
	result.Failed = len(failures)
	return result, jobs, failures
}

// decodeTx 展开并解码单笔交易中属于可解码程序的指令
func decodeTx(txCtx *core.TxContext, tx *pb.SubscribeUpdateTransactionInfo) TxDecodeResult {
	res := TxDecodeResult{TxIndex: int(tx.Index)}

	instructions, err := txadapter.AdaptGrpcTx(txCtx, tx, consts.IsDecodableProgram)
	if err != nil {
		logger.Warnf("[BlockProcessor] adapt tx failed: slot=%d index=%d err=%v", txCtx.Slot, tx.Index, err)
		return res
	}

	res.Instructions = len(instructions)
	for _, ix := range instructions {
		tables, err := decoder.Decode(ix)
		if err != nil {
			decoder.ReportFailure(ix, err)
			res.Failures = append(res.Failures, &progress.FailedInstruction{
				Slot:            txCtx.Slot,
				TxHash:          ix.TransactionHash,
				TxInstructionID: ix.TxInstructionID,
				ParentIndex:     ix.ParentIndex,
				Program:         ix.Program,
				Data:            ix.Data,
				Reason:          err.Error(),
				BlockTime:       txCtx.BlockTime,
			})
			continue
		}
		if len(tables) == 0 {
			continue
		}
		res.Decoded = append(res.Decoded, dispatcher.DecodedInstruction{Instruction: ix, Tables: tables})
	}
	return res
}

// submitGap 与上一个处理的 slot 之间出现空隙时交给 SlotChecker 确认
func (p *BlockProcessor) submitGap(slot uint64) {
	last := p.lastSlot
	if slot > last {
		p.lastSlot = slot
	}
	if p.checker == nil || last == 0 || slot <= last+1 {
		return
	}
	p.checker.Submit(last+1, slot-1)
}

func buildTxContext(block *pb.SubscribeUpdateBlock) *core.TxContext {
	// blockHash 解析失败只打日志，继续使用零值
	blockHash, err := types.HashFromBase58(block.Blockhash)
	if err != nil {
		logger.Errorf("[BlockProcessor] BlockHash 无法解析，将使用零值：slot=%d, blockhash=%s, err=%v",
			block.Slot, block.Blockhash, err)
	}

	var blockTime int64
	if block.BlockTime != nil {
		blockTime = block.BlockTime.Timestamp
	}
	return &core.TxContext{
		BlockTime:  blockTime,
		Slot:       block.Slot,
		BlockHash:  blockHash,
		ParentSlot: block.ParentSlot,
	}
}

func IsValidGrpcTx(tx *pb.SubscribeUpdateTransactionInfo) bool {
	return txadapter.ValidateGrpcTx(tx) == nil
}
