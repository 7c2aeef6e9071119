package consts

// GrpcAccountInclude 区块订阅过滤器：只推送涉及可解码程序的交易所在区块
var GrpcAccountInclude = []string{
	BPFLoaderDeprecatedProgramStr,
	BPFLoaderProgramStr,
	StakeProgramStr,
	SerumDexV2ProgramStr,
	SerumDexV3ProgramStr,
	MetaplexAuctionProgramStr,
	MetaplexManagerProgramStr,
	TokenSwapProgramStr,
	OrcaSwapV1ProgramStr,
	OrcaSwapV2ProgramStr,
}
