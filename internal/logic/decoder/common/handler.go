package common

import (
	"ix-decoder-sol/internal/logic/core"
)

// InstructionHandler 单个程序的解码入口。
//
// 返回值：
//   - tables: 成功时的输出，可以为空（已识别但不产出行的指令）
//   - err:    任一字段或账户读取失败，此时 tables 必须为 nil
type InstructionHandler func(ix *core.Instruction) ([]*core.TableData, error)
