package creature

import "fmt"

// BuildPrompt 把三个参数拼成生成后端的文本提示词
func BuildPrompt(p Params) string {
	return fmt.Sprintf(
		"A cute cartoon %s %s creature with a %s personality, "+
			"full body, centered, simple flat solid background, "+
			"high quality digital illustration, sticker style",
		p.Color, p.Type, p.Personality,
	)
}
