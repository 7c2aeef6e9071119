package grpc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ix-decoder-sol/internal/config"
	"ix-decoder-sol/internal/consts"
	"ix-decoder-sol/internal/logic/decoder/tokenswap"
	"ix-decoder-sol/internal/svc"
	"ix-decoder-sol/internal/types"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/near/borsh-go"
	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProducer struct {
	mu     sync.Mutex
	topics []string
}

func (r *recordingProducer) Produce(msg *kafka.Message, ch chan kafka.Event) error {
	r.mu.Lock()
	r.topics = append(r.topics, *msg.TopicPartition.Topic)
	r.mu.Unlock()
	ch <- msg
	return nil
}

type recordingSubmitter struct {
	ranges [][2]uint64
}

func (r *recordingSubmitter) Submit(from, to uint64) {
	r.ranges = append(r.ranges, [2]uint64{from, to})
}

func fillKey(seed byte) []byte {
	b := make([]byte, 32)
	for i := range b {
		b[i] = seed
	}
	return b
}

// sampleBlock 一笔交易：token swap 存入（成功）+ stake 截断数据（失败）+ system 指令（不解码）
func sampleBlock(t *testing.T) *pb.SubscribeUpdateBlock {
	args, err := borsh.Serialize(tokenswap.DepositAllTokenTypesArgs{
		PoolTokenAmount: 7, MaximumTokenAAmount: 100, MaximumTokenBAmount: 200,
	})
	require.NoError(t, err)
	deposit := append([]byte{tokenswap.InstructionDepositAllTokenTypes}, args...)

	keys := make([][]byte, 0, 13)
	for i := 0; i < 10; i++ {
		keys = append(keys, fillKey(byte(i+1)))
	}
	keys = append(keys, consts.TokenSwapProgram[:], consts.StakeProgram[:], make([]byte, 32)) // system program 为全零地址

	sig := make([]byte, 64)
	sig[3] = 1
	tx := &pb.SubscribeUpdateTransactionInfo{
		Signature: sig,
		Transaction: &pb.Transaction{
			Signatures: [][]byte{sig},
			Message: &pb.Message{
				AccountKeys: keys,
				Instructions: []*pb.CompiledInstruction{
					{ProgramIdIndex: 10, Accounts: []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, Data: deposit},
					{ProgramIdIndex: 11, Accounts: []byte{0}, Data: []byte{3, 0, 0}},
					{ProgramIdIndex: 12, Accounts: []byte{0, 1}, Data: []byte{2, 0, 0, 0}},
				},
			},
		},
		Meta: &pb.TransactionStatusMeta{},
	}
	vote := &pb.SubscribeUpdateTransactionInfo{IsVote: true}

	return &pb.SubscribeUpdateBlock{
		Slot:         100,
		ParentSlot:   99,
		BlockTime:    &pb.UnixTimestamp{Timestamp: 1_700_000_000},
		Transactions: []*pb.SubscribeUpdateTransactionInfo{tx, vote},
	}
}

func testProcessor() *BlockProcessor {
	sc := &svc.GrpcServiceContext{Config: config.GrpcConfig{
		KafkaProducerConf: config.KafkaProducerConfig{TopicPrefix: "sol.", Partitions: 4},
		Workers:           2,
	}}
	return newBlockProcessor(sc, make(chan *pb.SubscribeUpdateBlock, 1))
}

func TestDecodeBlock(t *testing.T) {
	p := testProcessor()
	block := sampleBlock(t)

	result, jobs, failures := p.decodeBlock(buildTxContext(block), block)
	assert.Equal(t, 1, result.ValidTxs, "投票交易被过滤")
	assert.Equal(t, 2, result.Instructions, "system 指令不展开")
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, 1, result.Failed)

	require.Len(t, jobs, 2)
	for _, job := range jobs {
		assert.Equal(t, "sol."+tokenswap.PegFlowsTable, job.Topic)
		assert.Equal(t, jobs[0].Partition, job.Partition)
	}

	require.Len(t, failures, 1)
	assert.Equal(t, consts.StakeProgramStr, failures[0].Program)
	assert.Equal(t, int32(1), failures[0].TxInstructionID)
	assert.Equal(t, uint64(100), failures[0].Slot)
	assert.NotEmpty(t, failures[0].Reason)
}

func TestProcBlock_SendsJobs(t *testing.T) {
	p := testProcessor()
	producer := &recordingProducer{}
	p.producer = producer

	p.procBlock(sampleBlock(t))
	assert.Len(t, producer.topics, 2)
}

func TestSubmitGap(t *testing.T) {
	p := testProcessor()
	sub := &recordingSubmitter{}
	p.checker = sub

	p.submitGap(10)
	p.submitGap(11)
	p.submitGap(15)
	p.submitGap(12) // 乱序的旧 slot 不产生区间
	assert.Equal(t, [][2]uint64{{12, 14}}, sub.ranges)
	assert.Equal(t, uint64(15), p.lastSlot)
}

func TestBuildTxContext(t *testing.T) {
	ctx := buildTxContext(&pb.SubscribeUpdateBlock{Slot: 5, ParentSlot: 3, Blockhash: "not-base58-0OIl"})
	assert.Equal(t, uint64(5), ctx.Slot)
	assert.Equal(t, int64(0), ctx.BlockTime, "缺少 BlockTime 时为 0")
	assert.Equal(t, types.Hash{}, ctx.BlockHash, "非法 blockhash 使用零值")
}

func TestStartStopsOnClosedChannel(t *testing.T) {
	p := testProcessor()
	close(p.blockChan)
	done := make(chan struct{})
	go func() {
		p.Start()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("block processor 未退出")
	}
}

func TestMergeRanges(t *testing.T) {
	now := time.Now()
	merged := mergeRanges([]SlotRange{
		{From: 20, To: 25, SubmitAt: now},
		{From: 1, To: 5, SubmitAt: now},
		{From: 6, To: 10, SubmitAt: now},
	})
	require.Len(t, merged, 2, "相邻段合并，不相邻的保持独立")
	assert.Equal(t, uint64(1), merged[0].From)
	assert.Equal(t, uint64(10), merged[0].To)
	assert.Equal(t, uint64(20), merged[1].From)

	big := mergeRanges([]SlotRange{{From: 0, To: maxRangeSize*2 + 5}})
	require.Len(t, big, 3)
	for _, r := range big {
		assert.LessOrEqual(t, r.To-r.From+1, uint64(maxRangeSize))
	}
	assert.Nil(t, mergeRanges(nil))
}

func TestTakeReady(t *testing.T) {
	now := time.Now()
	ready, waiting := takeReady([]SlotRange{
		{From: 1, To: 1, SubmitAt: now.Add(-delayBeforeCheck)},
		{From: 2, To: 2, SubmitAt: now.Add(-time.Second)},
	}, now)
	require.Len(t, ready, 1)
	assert.Equal(t, uint64(1), ready[0].From)
	require.Len(t, waiting, 1)
	assert.Equal(t, uint64(2), waiting[0].From)
}

func TestCheckSlotRanges(t *testing.T) {
	calls := 0
	checker := newSlotChecker(func(_ context.Context, from, to uint64) ([]uint64, error) {
		calls++
		if from >= 100 {
			return nil, errors.New("rpc down")
		}
		return []uint64{11, 13}, nil
	})
	checker.retryDelay = time.Millisecond
	defer checker.Stop()

	result := checker.checkSlotRanges([]SlotRange{
		{From: 10, To: 13},
		{From: 12, To: 14},
		{From: 100, To: 101},
	})
	assert.Equal(t, []uint64{10, 12, 14}, result.Empty)
	assert.Equal(t, []uint64{11, 13}, result.Missing, "链上有块但未处理")
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 1+3, calls, "失败区间重试 3 次")
}

func TestInRanges(t *testing.T) {
	failed := []SlotRange{{From: 5, To: 7}, {From: 20, To: 20}}
	assert.True(t, inRanges(6, failed))
	assert.True(t, inRanges(20, failed))
	assert.False(t, inRanges(4, failed))
	assert.False(t, inRanges(8, failed))
	assert.False(t, inRanges(8, nil))
}

func TestSubscribeRequest(t *testing.T) {
	req := buildSubscribeRequest()
	filter := req.Blocks["blocks"]
	require.NotNil(t, filter)
	assert.ElementsMatch(t, consts.GrpcAccountInclude, filter.AccountInclude)
	assert.True(t, filter.GetIncludeTransactions())
	assert.Equal(t, pb.CommitmentLevel_CONFIRMED, req.GetCommitment())
}

func TestBackoffInterval(t *testing.T) {
	assert.Equal(t, time.Second, backoffInterval(time.Second, 1))
	assert.Equal(t, 2*time.Second, backoffInterval(time.Second, 4))
	assert.Equal(t, 3*time.Second, secOrDefault(0, 3))
}
