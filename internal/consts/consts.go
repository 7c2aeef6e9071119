package consts

import "runtime"

// CpuCount 逻辑 CPU 核心数，未配置 workers 时据此决定解码并发度
var CpuCount = runtime.NumCPU()

// DefaultKafkaPartitions 未配置分区数时每个输出 topic 的分区数
const DefaultKafkaPartitions = 1
