package consts

import (
	"ix-decoder-sol/internal/types"
)

// 公钥形式的程序地址，txadapter 展平交易时按原始字节过滤，无需先做 base58 编码
var (
	BPFLoaderDeprecatedProgram = types.PubkeyFromBase58(BPFLoaderDeprecatedProgramStr)
	BPFLoaderProgram           = types.PubkeyFromBase58(BPFLoaderProgramStr)
	StakeProgram               = types.PubkeyFromBase58(StakeProgramStr)
	SerumDexV2Program          = types.PubkeyFromBase58(SerumDexV2ProgramStr)
	SerumDexV3Program          = types.PubkeyFromBase58(SerumDexV3ProgramStr)
	MetaplexAuctionProgram     = types.PubkeyFromBase58(MetaplexAuctionProgramStr)
	MetaplexManagerProgram     = types.PubkeyFromBase58(MetaplexManagerProgramStr)
	TokenSwapProgram           = types.PubkeyFromBase58(TokenSwapProgramStr)
	OrcaSwapV1Program          = types.PubkeyFromBase58(OrcaSwapV1ProgramStr)
	OrcaSwapV2Program          = types.PubkeyFromBase58(OrcaSwapV2ProgramStr)
)

// DecodablePrograms 有对应解码器的全部程序
var DecodablePrograms = map[types.Pubkey]struct{}{
	BPFLoaderDeprecatedProgram: {},
	BPFLoaderProgram:           {},
	StakeProgram:               {},
	SerumDexV2Program:          {},
	SerumDexV3Program:          {},
	MetaplexAuctionProgram:     {},
	MetaplexManagerProgram:     {},
	TokenSwapProgram:           {},
	OrcaSwapV1Program:          {},
	OrcaSwapV2Program:          {},
}

func IsDecodableProgram(p types.Pubkey) bool {
	_, ok := DecodablePrograms[p]
	return ok
}
