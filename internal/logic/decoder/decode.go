package decoder

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sort"

	"ix-decoder-sol/internal/consts"
	"ix-decoder-sol/internal/logic/core"
	"ix-decoder-sol/internal/logic/decoder/auction"
	"ix-decoder-sol/internal/logic/decoder/auctionmanager"
	"ix-decoder-sol/internal/logic/decoder/common"
	"ix-decoder-sol/internal/logic/decoder/loader"
	"ix-decoder-sol/internal/logic/decoder/market"
	"ix-decoder-sol/internal/logic/decoder/stake"
	"ix-decoder-sol/internal/logic/decoder/tokenswap"
	"ix-decoder-sol/internal/pkg/logger"
)

// handlers 程序地址 → 解码入口的静态路由表，包初始化后只读
var handlers = buildHandlers()

// setDecoders 属性包形式的解码入口
var setDecoders = map[string]func(*core.Instruction) (*core.InstructionSet, error){
	consts.BPFLoaderDeprecatedProgramStr: loader.DecodeInstructionSet,
	consts.BPFLoaderProgramStr:           loader.DecodeInstructionSet,
	consts.StakeProgramStr:               stake.DecodeInstructionSet,
	consts.SerumDexV2ProgramStr:          market.DecodeInstructionSet,
	consts.SerumDexV3ProgramStr:          market.DecodeInstructionSet,
}

func buildHandlers() map[string]common.InstructionHandler {
	m := make(map[string]common.InstructionHandler)
	loader.RegisterHandlers(m)
	stake.RegisterHandlers(m)
	market.RegisterHandlers(m)
	auction.RegisterHandlers(m)
	auctionmanager.RegisterHandlers(m)
	tokenswap.RegisterHandlers(m)
	return m
}

// IsSupported 是否存在该程序的解码器
func IsSupported(program string) bool {
	_, ok := handlers[program]
	return ok
}

// SupportedPrograms 全部可解码程序地址（排序后返回）
func SupportedPrograms() []string {
	out := make([]string, 0, len(handlers))
	for program := range handlers {
		out = append(out, program)
	}
	sort.Strings(out)
	return out
}

// ErrUnsupportedProgram 指令所属程序没有对应的解码器
var ErrUnsupportedProgram = errors.New("unsupported program")

// Decode 解码单条指令，返回失败原因，由调用方决定是否交给 ReportFailure。
// 普通失败不写日志；panic 会记录堆栈后转换为 common.ErrDecode。
func Decode(ix *core.Instruction) (tables []*core.TableData, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[decoder::Decode] panic program=%s tx=%s: %+v\nstack: %s",
				ix.Program, ix.TransactionHash, r, debug.Stack())
			tables, err = nil, common.DecodeErrorf("panic: %v", r)
		}
	}()

	handler, found := handlers[ix.Program]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProgram, ix.Program)
	}
	return handler(ix)
}

// ReportFailure 记录一条解码失败，未知程序只记 warn 不算解码错误
func ReportFailure(ix *core.Instruction, err error) {
	if errors.Is(err, ErrUnsupportedProgram) {
		logger.Warnf("[decoder::DecodeInstruction] unsupported program=%s tx=%s", ix.Program, ix.TransactionHash)
		return
	}
	logger.Warnf("[decoder::DecodeInstruction] decode failed: program=%s reason=%v tx=%s ix=%d",
		ix.Program, err, ix.TransactionHash, ix.TxInstructionID)
}

// DecodeInstruction 解码单条指令。
// 返回 ok=false 表示未知程序或解码失败（已记录日志），调用方应跳过该指令；
// ok=true 时 tables 可能为空（已识别但不产出行的指令）。
func DecodeInstruction(ix *core.Instruction) (tables []*core.TableData, ok bool) {
	tables, err := Decode(ix)
	if err != nil {
		ReportFailure(ix, err)
		return nil, false
	}
	return tables, true
}

// DecodeInstructionSet 属性包形式的解码（loader / stake / market），其余程序返回 ok=false
func DecodeInstructionSet(ix *core.Instruction) (set *core.InstructionSet, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[decoder::DecodeInstructionSet] panic program=%s tx=%s: %+v\nstack: %s",
				ix.Program, ix.TransactionHash, r, debug.Stack())
			set, ok = nil, false
		}
	}()

	decode, found := setDecoders[ix.Program]
	if !found {
		return nil, false
	}
	set, err := decode(ix)
	if err != nil {
		logger.Warnf("[decoder::DecodeInstructionSet] decode failed: program=%s reason=%v tx=%s ix=%d",
			ix.Program, err, ix.TransactionHash, ix.TxInstructionID)
		return nil, false
	}
	return set, true
}
