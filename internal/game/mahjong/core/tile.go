package core

import (
	"strconv"
	"strings"
	"unicode"
)

// 牌种常量
const (
	// SuitedValues 每门数牌的牌种数量（1-9）
	SuitedValues = 9
	// HonorValues 字牌牌种数量（东南西北白发中）
	HonorValues = 7
	// TileKinds 总牌种数量（27种数牌 + 7种字牌）
	TileKinds = 3*SuitedValues + HonorValues
	// CopiesPerKind 每种牌的张数
	CopiesPerKind = 4
	// TotalTiles 一副牌的总张数
	TotalTiles = TileKinds * CopiesPerKind
)

// Suit 牌的花色
type Suit int8

const (
	SuitMan   Suit = iota // 万
	SuitPin               // 筒
	SuitSou               // 条
	SuitHonor             // 字牌
)

// String 返回花色名称
func (s Suit) String() string {
	switch s {
	case SuitMan:
		return "man"
	case SuitPin:
		return "pin"
	case SuitSou:
		return "sou"
	case SuitHonor:
		return "honor"
	default:
		return "unknown"
	}
}

// IsSuited 是否为数牌花色
func (s Suit) IsSuited() bool {
	return s >= SuitMan && s <= SuitSou
}

// Honor 字牌枚举，顺序即规范顺序
type Honor int8

const (
	HonorEast  Honor = iota + 1 // 东
	HonorSouth                  // 南
	HonorWest                   // 西
	HonorNorth                  // 北
	HonorWhite                  // 白
	HonorGreen                  // 发
	HonorRed                    // 中
)

var honorNames = [...]string{"", "east", "south", "west", "north", "white", "green", "red"}

// 字牌显示符号，白发中沿用 P F C 避免与西风 W 冲突
var honorSymbols = [...]string{"", "E", "S", "W", "N", "P", "F", "C"}

var suitSymbols = [...]byte{'m', 'p', 's'}

// String 返回字牌名称
func (h Honor) String() string {
	if h < HonorEast || h > HonorRed {
		return "unknown"
	}
	return honorNames[h]
}

// Tile 麻将牌（值对象，可直接比较与作为 map key）
type Tile struct {
	Suit  Suit `json:"suit"`  // 花色
	Value int8 `json:"value"` // 数牌 1-9，字牌为 Honor 枚举值
}

// NewTile 创建麻将牌（带验证）
func NewTile(suit Suit, value int) (Tile, error) {
	t := Tile{Suit: suit, Value: int8(value)}
	if value < -128 || value > 127 || !t.IsValid() {
		return Tile{}, ErrInvalidTile.WithContext("suit", suit.String()).WithContext("value", value)
	}
	return t, nil
}

// NewHonor 创建字牌
func NewHonor(h Honor) (Tile, error) {
	return NewTile(SuitHonor, int(h))
}

// MustTile 创建麻将牌，非法时 panic，仅用于常量表
func MustTile(suit Suit, value int) Tile {
	t, err := NewTile(suit, value)
	if err != nil {
		panic(err)
	}
	return t
}

// IsValid 判断牌是否合法
func (t Tile) IsValid() bool {
	switch {
	case t.Suit.IsSuited():
		return t.Value >= 1 && t.Value <= SuitedValues
	case t.Suit == SuitHonor:
		return t.Value >= int8(HonorEast) && t.Value <= int8(HonorRed)
	default:
		return false
	}
}

// IsHonor 是否为字牌
func (t Tile) IsHonor() bool {
	return t.Suit == SuitHonor
}

// IsSuited 是否为数牌
func (t Tile) IsSuited() bool {
	return t.Suit.IsSuited()
}

// IsTerminal 是否为幺九牌（数牌 1 或 9）
func (t Tile) IsTerminal() bool {
	return t.IsSuited() && (t.Value == 1 || t.Value == SuitedValues)
}

// IsTerminalOrHonor 是否为幺九牌或字牌
func (t Tile) IsTerminalOrHonor() bool {
	return t.IsTerminal() || t.IsHonor()
}

// Honor 返回字牌枚举，数牌返回 0
func (t Tile) Honor() Honor {
	if !t.IsHonor() {
		return 0
	}
	return Honor(t.Value)
}

// Index 规范顺序下标（0-33）：万 筒 条 各9种，之后是7种字牌
func (t Tile) Index() int {
	if t.IsHonor() {
		return 3*SuitedValues + int(t.Value) - 1
	}
	return int(t.Suit)*SuitedValues + int(t.Value) - 1
}

// Compare 按规范顺序比较
func (t Tile) Compare(other Tile) int {
	return t.Index() - other.Index()
}

// Less 按规范顺序比较
func (t Tile) Less(other Tile) bool {
	return t.Index() < other.Index()
}

// Next 同花色下一张数牌，字牌或 9 返回 false
func (t Tile) Next(offset int) (Tile, bool) {
	if !t.IsSuited() {
		return Tile{}, false
	}
	v := int(t.Value) + offset
	if v < 1 || v > SuitedValues {
		return Tile{}, false
	}
	return Tile{Suit: t.Suit, Value: int8(v)}, true
}

// String 返回牌的简写（1m 5p 9s E S W N P F C）
func (t Tile) String() string {
	if !t.IsValid() {
		return "?"
	}
	if t.IsHonor() {
		return honorSymbols[t.Value]
	}
	return strconv.Itoa(int(t.Value)) + string(suitSymbols[t.Suit])
}

// tileOrder 规范顺序表，初始化后只读
var tileOrder = buildTileOrder()

func buildTileOrder() [TileKinds]Tile {
	var order [TileKinds]Tile
	i := 0
	for _, suit := range []Suit{SuitMan, SuitPin, SuitSou} {
		for v := 1; v <= SuitedValues; v++ {
			order[i] = Tile{Suit: suit, Value: int8(v)}
			i++
		}
	}
	for h := HonorEast; h <= HonorRed; h++ {
		order[i] = Tile{Suit: SuitHonor, Value: int8(h)}
		i++
	}
	return order
}

// AllTiles 返回 34 种牌（规范顺序的副本）
func AllTiles() []Tile {
	tiles := make([]Tile, TileKinds)
	copy(tiles, tileOrder[:])
	return tiles
}

// TileAt 根据规范下标获取牌
func TileAt(index int) (Tile, bool) {
	if index < 0 || index >= TileKinds {
		return Tile{}, false
	}
	return tileOrder[index], true
}

// ParseTile 解析单张牌：1m 5p 9s 3z、E/S/W/N/P/F/C 或 east/white 等名称
func ParseTile(s string) (Tile, error) {
	tiles, err := ParseTiles(s)
	if err != nil {
		return Tile{}, err
	}
	if len(tiles) != 1 {
		return Tile{}, ErrInvalidTile.WithContext("input", s)
	}
	return tiles[0], nil
}

// ParseTiles 解析牌串，支持空格或逗号分隔，以及 123m456p 的紧凑写法
func ParseTiles(s string) ([]Tile, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})

	tiles := make([]Tile, 0, len(fields))
	for _, field := range fields {
		parsed, err := parseToken(field)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, parsed...)
	}
	return tiles, nil
}

func parseToken(token string) ([]Tile, error) {
	lower := strings.ToLower(token)
	for h := HonorEast; h <= HonorRed; h++ {
		if lower == honorNames[h] {
			return []Tile{{Suit: SuitHonor, Value: int8(h)}}, nil
		}
	}

	if honors, ok := parseHonorSymbols(token); ok {
		return honors, nil
	}

	var tiles []Tile
	digits := make([]int, 0, len(token))
	for _, r := range lower {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r == 'm' || r == 'p' || r == 's' || r == 'z':
			if len(digits) == 0 {
				return nil, ErrInvalidTile.WithContext("input", token)
			}
			suit := map[rune]Suit{'m': SuitMan, 'p': SuitPin, 's': SuitSou, 'z': SuitHonor}[r]
			for _, d := range digits {
				t, err := NewTile(suit, d)
				if err != nil {
					return nil, ErrInvalidTile.WithContext("input", token)
				}
				tiles = append(tiles, t)
			}
			digits = digits[:0]
		default:
			return nil, ErrInvalidTile.WithContext("input", token)
		}
	}
	if len(digits) > 0 || len(tiles) == 0 {
		return nil, ErrInvalidTile.WithContext("input", token)
	}
	return tiles, nil
}

// parseHonorSymbols 解析连续的字牌符号，如 EEE 或 ESWN
func parseHonorSymbols(token string) ([]Tile, bool) {
	tiles := make([]Tile, 0, len(token))
	for _, r := range strings.ToUpper(token) {
		h := Honor(strings.IndexRune("_ESWNPFC", r))
		if h < HonorEast {
			return nil, false
		}
		tiles = append(tiles, Tile{Suit: SuitHonor, Value: int8(h)})
	}
	return tiles, len(tiles) > 0
}
