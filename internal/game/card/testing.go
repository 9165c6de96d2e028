//go:build !production

package card

// MustParse 测试辅助：解析失败直接 panic
func MustParse(codes ...string) []*Card {
	cards, err := Parse(codes...)
	if err != nil {
		panic(err)
	}
	return cards
}
