package progress

// SlotStatus 表示 slot 的处理状态（统一 Redis 与 DB 编码）
type SlotStatus int

const (
	SlotUnknown   SlotStatus = 0 // Redis 不存在
	SlotProcessed SlotStatus = 1 // 已处理成功
	SlotInvalid   SlotStatus = 2 // 明确结构错误、跳过
	SlotPending   SlotStatus = 3 // Redis 标记中，暂未完成（仅 Redis 用）
)

// Source 表示 slot 来源模块（grpc、rpc）
const (
	SourceUnknown int16 = 0
	SourceGrpc    int16 = 1
	SourceRpc     int16 = 2
)

func SourceName(src int16) string {
	switch src {
	case SourceGrpc:
		return "grpc"
	case SourceRpc:
		return "rpc"
	default:
		return "unknown"
	}
}

// SlotRecord 表示一条待写入 DB 的 slot 记录
type SlotRecord struct {
	Slot      uint64     // Solana slot
	Source    int16      // 来源：1=grpc, 2=rpc
	BlockTime int64      // Unix timestamp（秒）
	Status    SlotStatus // 处理状态：1=已处理，2=无效
	Rows      int        // 该 slot 输出的行数
	Failed    int        // 该 slot 解码失败的指令数
}

// FailedInstruction 一条解码失败的指令，落库供离线排查与重放
type FailedInstruction struct {
	Slot            uint64
	TxHash          string
	TxInstructionID int32
	ParentIndex     *int32 // 主指令为 nil
	Program         string
	Data            []byte
	Reason          string
	BlockTime       int64
}
