package dispatcher

import (
	"testing"

	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/pkg/utils"
	"ix-decoder-sol/internal/schema"

	"github.com/hamba/avro/v2"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = schema.MustParse(`{
  "type": "record",
  "name": "TestRow",
  "namespace": "io.solana.decoder.test",
  "fields": [
    {"name": "tx_hash", "type": "string"},
    {"name": "amount", "type": "long"}
  ]
}`)

type testRow struct {
	TxHash string `avro:"tx_hash"`
	Amount int64  `avro:"amount"`
}

type brokenRow struct {
	TxHash string `avro:"tx_hash"`
}

func testSignature(seed byte) string {
	sig := make([]byte, 64)
	for i := range sig {
		sig[i] = seed + byte(i)
	}
	return base58.Encode(sig)
}

func decodedOf(txHash string, parent *int32, tables ...*core.TableData) DecodedInstruction {
	return DecodedInstruction{
		Instruction: &core.Instruction{
			Program:         "Prog",
			TxInstructionID: 4,
			TransactionHash: txHash,
			ParentIndex:     parent,
		},
		Tables: tables,
	}
}

func TestBuildKafkaJobs(t *testing.T) {
	sig := testSignature(1)
	parent := int32(1)
	decoded := []DecodedInstruction{
		decodedOf(sig, nil,
			core.NewTableData(testSchema, "rows_a", &testRow{TxHash: sig, Amount: 1}, &testRow{TxHash: sig, Amount: 2}),
			core.NewTableData(testSchema, "rows_b", &testRow{TxHash: sig, Amount: 3}),
		),
		decodedOf(sig, &parent, core.NewTableData(testSchema, "rows_a", &testRow{TxHash: sig, Amount: 4})),
		decodedOf(sig, nil),
	}

	jobs, failed := BuildKafkaJobs("sol.", 12, decoded, 4)
	require.Empty(t, failed)
	require.Len(t, jobs, 4, "每行一条消息")

	raw, err := base58.Decode(sig)
	require.NoError(t, err)
	wantPartition := int32(utils.PartitionHashBytes(raw, 12))

	topics := []string{"sol.rows_a", "sol.rows_a", "sol.rows_b", "sol.rows_a"}
	for i, job := range jobs {
		assert.Equal(t, topics[i], job.Topic, "输入顺序保持")
		assert.Equal(t, []byte(sig), job.Key)
		assert.Equal(t, wantPartition, job.Partition, "同一交易落在同一分区")
		assert.Equal(t, "4", job.Headers[HeaderTxInstructionID])
	}
	_, hasParent := jobs[0].Headers[HeaderParentIndex]
	assert.False(t, hasParent, "主指令不带 parent_index")
	assert.Equal(t, "1", jobs[3].Headers[HeaderParentIndex])
	assert.Equal(t, "rows_b", jobs[2].Headers[HeaderTable])

	var row testRow
	require.NoError(t, avro.Unmarshal(testSchema, jobs[1].Value, &row))
	assert.Equal(t, testRow{TxHash: sig, Amount: 2}, row)
}

func TestBuildKafkaJobs_EncodeFailureDropsInstruction(t *testing.T) {
	sig := testSignature(9)
	decoded := []DecodedInstruction{
		decodedOf(sig, nil, core.NewTableData(testSchema, "rows_a",
			&testRow{TxHash: sig, Amount: 1},
			&brokenRow{TxHash: sig},
		)),
		decodedOf(sig, nil, core.NewTableData(testSchema, "rows_b", &testRow{TxHash: sig, Amount: 7})),
	}

	jobs, failed := BuildKafkaJobs("sol.", 1, decoded, 1)
	require.Len(t, failed, 1)
	assert.Equal(t, "rows_a", failed[0].Table)
	assert.Equal(t, sig, failed[0].TxHash)
	require.NotNil(t, failed[0].Instruction)
	assert.Nil(t, failed[0].Instruction.ParentIndex)
	assert.Contains(t, failed[0].Error(), "encode row failed")

	require.Len(t, jobs, 1, "失败指令的已编码行也被丢弃")
	assert.Equal(t, "sol.rows_b", jobs[0].Topic)
	assert.Equal(t, int32(0), jobs[0].Partition)
}

func TestTxHashBytes(t *testing.T) {
	sig := testSignature(3)
	raw, _ := base58.Decode(sig)
	assert.Equal(t, raw, txHashBytes(sig))
	assert.Equal(t, []byte("0OIl"), txHashBytes("0OIl"), "非法 base58 退回原字节")
}
