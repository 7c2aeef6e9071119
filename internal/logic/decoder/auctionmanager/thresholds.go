package auctionmanager

// 账户数超过阈值时为扩展布局：可选账户出现，其后的账户整体后移一位
const (
	// DeprecatedRedeemParticipationBid 扩展布局在 #9 多出 bidder
	ParticipationBidV1ExtendedThreshold = 21

	// EmptyPaymentAccount 扩展布局在 #6 多出 master edition metadata
	EmptyPaymentExtendedThreshold = 15

	// DecommissionAuctionManager 扩展布局在末尾 #7 多出 vault program
	DecommissionVaultProgramThreshold = 7

	// ValidateSafetyDepositBoxV2 扩展布局在 #13 多出 metadata authority
	ValidateSafetyDepositV2ExtendedThreshold = 18

	// SetStoreIndex 前后相邻的 auction cache 各自独立可选
	SetStoreIndexAboveCacheThreshold = 6
	SetStoreIndexBelowCacheThreshold = 7
)

// 末尾可选账户的位置
const (
	ClaimBidAuctionExtendedIndex = 12

	RedeemBidSafetyDepositConfigIndex = 18
	RedeemBidAuctionExtendedIndex     = 19

	FullRightsSafetyDepositConfigIndex = 20
	FullRightsAuctionExtendedIndex     = 21
)
