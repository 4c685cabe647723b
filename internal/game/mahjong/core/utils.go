package core

import (
	"slices"
	"strings"
)

// SortTiles 按规范顺序对牌进行排序
func SortTiles(tiles []Tile) {
	slices.SortFunc(tiles, Tile.Compare)
}

// CountTile 统计某张牌的数量
func CountTile(tiles []Tile, target Tile) int {
	count := 0
	for _, t := range tiles {
		if t == target {
			count++
		}
	}
	return count
}

// RemoveTile 从牌组中移除一张牌，没有时返回 ErrTileNotFound
func RemoveTile(tiles []Tile, target Tile) ([]Tile, error) {
	i := slices.Index(tiles, target)
	if i < 0 {
		return tiles, ErrTileNotFound.WithContext("tile", target.String())
	}
	return slices.Delete(tiles, i, i+1), nil
}

// validateTiles 检查牌组中每张牌都合法
func validateTiles(tiles []Tile) error {
	for i, t := range tiles {
		if !t.IsValid() {
			return ErrInvalidTile.WithContext("index", i).WithContext("tile", t)
		}
	}
	return nil
}

// CloneTiles 克隆牌组
func CloneTiles(tiles []Tile) []Tile {
	result := make([]Tile, len(tiles))
	copy(result, tiles)
	return result
}

// FormatTiles 排序后以空格连接的显示串
func FormatTiles(tiles []Tile) string {
	sorted := CloneTiles(tiles)
	SortTiles(sorted)
	return joinTiles(sorted)
}

// joinTiles 按原顺序连接
func joinTiles(tiles []Tile) string {
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
