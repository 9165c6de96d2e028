package protocol

// 错误码
const (
	ErrCodeUnknown           = 1000
	ErrCodeInvalidMsg        = 1001
	ErrCodeInvalidName       = 1003
	ErrCodeLobbyNotFound     = 2001
	ErrCodeLobbyFull         = 2002
	ErrCodeGameStarted       = 2004 // 游戏已开始
	ErrCodeNotEnoughPlayers  = 2005
	ErrCodeNoAIPlayer        = 2006
	ErrCodeDeckTooSmall      = 2007
	ErrCodeGameNotStart      = 3001
	ErrCodeNotYourTurn       = 3002
	ErrCodeInvalidMeld       = 3003
	ErrCodeWrongPhase        = 3004
	ErrCodeCardNotFound      = 3005
	ErrCodeNonDiscardable    = 3006
	ErrCodeMustKeepDiscard   = 3007
	ErrCodeServerMaintenance = 5003 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:           "未知错误",
	ErrCodeInvalidMsg:        "无效的消息格式",
	ErrCodeInvalidName:       "名字须为 1-20 个字符且包含字母或数字",
	ErrCodeLobbyNotFound:     "大厅不存在",
	ErrCodeLobbyFull:         "大厅已满",
	ErrCodeGameStarted:       "游戏已开始",
	ErrCodeNotEnoughPlayers:  "至少需要两名玩家",
	ErrCodeNoAIPlayer:        "没有可移除的电脑玩家",
	ErrCodeDeckTooSmall:      "牌不够发",
	ErrCodeGameNotStart:      "游戏尚未开始",
	ErrCodeNotYourTurn:       "还没轮到您",
	ErrCodeInvalidMeld:       "无效的牌组",
	ErrCodeWrongPhase:        "当前阶段不能这样做",
	ErrCodeCardNotFound:      "找不到这张牌",
	ErrCodeNonDiscardable:    "刚从弃牌堆拿的牌本回合不能弃掉",
	ErrCodeMustKeepDiscard:   "必须留一张牌用于弃牌",
	ErrCodeServerMaintenance: "服务器维护中",
}
