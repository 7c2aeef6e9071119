package dispatcher

import (
	"fmt"
	"strconv"

	"ix-decoder-sol/internal/consts"
	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/pkg/mq"
	"ix-decoder-sol/internal/pkg/utils"

	"github.com/hamba/avro/v2"
	"github.com/mr-tron/base58"
)

const (
	HeaderTable           = "table"
	HeaderTxInstructionID = "tx_instruction_id"
	HeaderParentIndex     = "parent_index"
)

// DecodedInstruction 一条指令及其解码产出
type DecodedInstruction struct {
	Instruction *core.Instruction
	Tables      []*core.TableData
}

// EncodeError 某一行 avro 编码失败
type EncodeError struct {
	Table       string
	TxHash      string
	Instruction *core.Instruction
	Err         error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode row failed: table=%s tx=%s: %v", e.Table, e.TxHash, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// BuildKafkaJobs 将解码结果逐行 avro 编码为 KafkaJob。
// topic = prefix + 表名；同一交易的行落在同一分区，保证交易内顺序。
// 单条指令任一行编码失败时，该指令的全部行都不输出，错误随 failed 返回。
func BuildKafkaJobs(
	topicPrefix string,
	partitions int,
	decoded []DecodedInstruction,
	workers int,
) (jobs []*mq.KafkaJob, failed []*EncodeError) {
	if partitions <= 0 {
		partitions = consts.DefaultKafkaPartitions
	}

	type built struct {
		jobs []*mq.KafkaJob
		err  *EncodeError
	}
	results := utils.ParallelMap(decoded, workers, func(d DecodedInstruction) built {
		out, err := buildInstructionJobs(topicPrefix, partitions, d)
		return built{jobs: out, err: err}
	})

	total := 0
	for _, r := range results {
		total += len(r.jobs)
	}
	jobs = make([]*mq.KafkaJob, 0, total)
	for _, r := range results {
		if r.err != nil {
			failed = append(failed, r.err)
			continue
		}
		jobs = append(jobs, r.jobs...)
	}
	return jobs, failed
}

func buildInstructionJobs(topicPrefix string, partitions int, d DecodedInstruction) ([]*mq.KafkaJob, *EncodeError) {
	ix := d.Instruction
	partition := int32(utils.PartitionHashBytes(txHashBytes(ix.TransactionHash), uint32(partitions)))
	key := []byte(ix.TransactionHash)

	out := make([]*mq.KafkaJob, 0, core.RowCount(d.Tables))
	for _, table := range d.Tables {
		headers := instructionHeaders(ix, table.TableName)
		for _, row := range table.Rows {
			value, err := avro.Marshal(table.Schema, row)
			if err != nil {
				return nil, &EncodeError{Table: table.TableName, TxHash: ix.TransactionHash, Instruction: ix, Err: err}
			}
			out = append(out, &mq.KafkaJob{
				Topic:     topicPrefix + table.TableName,
				Key:       key,
				Partition: partition,
				Value:     value,
				Headers:   headers,
			})
		}
	}
	return out, nil
}

func instructionHeaders(ix *core.Instruction, table string) map[string]string {
	headers := map[string]string{
		HeaderTable:           table,
		HeaderTxInstructionID: strconv.FormatInt(int64(ix.TxInstructionID), 10),
	}
	if ix.IsInner() {
		headers[HeaderParentIndex] = strconv.FormatInt(int64(*ix.ParentIndex), 10)
	}
	return headers
}

// txHashBytes base58 签名解码失败时退回原始字符串字节，分区仍然稳定
func txHashBytes(hash string) []byte {
	if b, err := base58.Decode(hash); err == nil && len(b) > 0 {
		return b
	}
	return []byte(hash)
}
