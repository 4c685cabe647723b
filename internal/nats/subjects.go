package nats

// NATS Subject 常量定义
const (
	// SubjectRoundFinishedPrefix 牌局结束事件前缀
	// 完整格式: mahjong.round.finished.{game_type}
	SubjectRoundFinishedPrefix = "mahjong.round.finished."

	// SubjectRoundFinishedAll 订阅所有规则类型的牌局结束事件
	SubjectRoundFinishedAll = SubjectRoundFinishedPrefix + ">"
)

// BuildRoundFinishedSubject 构建牌局结束事件 Subject
func BuildRoundFinishedSubject(gameType string) string {
	return SubjectRoundFinishedPrefix + gameType
}
