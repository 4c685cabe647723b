package core

import "fmt"

// GameError 游戏错误类型
type GameError struct {
	Code    string         // 错误代码
	Message string         // 错误消息
	Context map[string]any // 错误上下文
}

func (e *GameError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is 按错误代码匹配，带上下文的副本与预定义错误视为同一种错误
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewGameError 创建游戏错误
func NewGameError(code, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
	}
}

// clone 复制错误，预定义错误本身不会被修改
func (e *GameError) clone() *GameError {
	ctx := make(map[string]any, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	return &GameError{
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
	}
}

// WithContext 添加上下文信息
func (e *GameError) WithContext(key string, value any) *GameError {
	c := e.clone()
	c.Context[key] = value
	return c
}

// 牌相关错误
var (
	ErrInvalidTile  = NewGameError("INVALID_TILE", "无效的麻将牌")
	ErrTileNotFound = NewGameError("TILE_NOT_FOUND", "牌组中没有指定的牌")
)

// 牌墙与手牌相关错误
var (
	ErrEmptyWall = NewGameError("EMPTY_WALL", "牌墙已空")
	ErrEmptyHand = NewGameError("EMPTY_HAND", "手牌为空")
)

// 牌局相关错误
var (
	ErrInvalidPlayerCount = NewGameError("INVALID_PLAYER_COUNT", "玩家数量不正确")
	ErrRoundNotStarted    = NewGameError("ROUND_NOT_STARTED", "牌局尚未开始")
)
