package utils

// PartitionHashBytes 从交易签名中选取 4 字节构造 uint32 并模 mod，用于选择 Kafka 分区。
// 签名本身近似均匀分布，这里不需要真正的哈希；同一笔交易的所有行落在同一分区。
func PartitionHashBytes(b []byte, mod uint32) uint32 {
	if len(b) < 28 || mod <= 1 {
		return 0
	}
	switch mod {
	case 2, 4, 8, 16:
		return uint32(b[27]) & (mod - 1)
	}
	hash := uint32(b[7])<<24 | uint32(b[15])<<16 | uint32(b[19])<<8 | uint32(b[27])
	return hash % mod
}
