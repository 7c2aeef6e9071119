package consts

// Base58 程序地址（与指令中的 Program 字段逐字节比较）
const (
	// BPF Loader：deprecated 与 v2 共用同一解码器
	BPFLoaderDeprecatedProgramStr = "BPFLoader1111111111111111111111111111111111"
	BPFLoaderProgramStr           = "BPFLoader2111111111111111111111111111111111"

	StakeProgramStr = "Stake11111111111111111111111111111111111111"

	// Serum DEX 订单簿
	SerumDexV2ProgramStr = "EUqojwWA2rd19FZrzeBncJsm38Jm1hEhE3zsmX3bRc2o"
	SerumDexV3ProgramStr = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"

	// Metaplex 拍卖 / 拍卖管理
	MetaplexAuctionProgramStr = "auctxRXPeJoc4817jDhf4HbjnhEcr1cCXenosMhK5R8"
	MetaplexManagerProgramStr = "p1exdMJcjVao65QdewkaZRUnU6VPSXhus9n2GzWfh98"

	// SPL Token Swap 及其 Orca fork（指令布局一致）
	TokenSwapProgramStr  = "SwaPpA9LAaLfeLi3a68M4DjnLqgtticKg6CnyNwgAC8"
	OrcaSwapV1ProgramStr = "DjVE6JNiYqPL2QXyCUUh8rNjHrbz9hXHNYt99MQ59qw1"
	OrcaSwapV2ProgramStr = "9W959DqEETiGZocYWCQPaJ6sBmUzgfxXfqGeTEdp3aQP"
)
