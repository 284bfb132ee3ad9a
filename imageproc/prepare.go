package imageproc

import (
	"bytes"
	"image"
	"image/png"
	"time"

	"github.com/Sogni-AI/sogni-creatures-api/cache"
)

// Preparer 生成引导图的模糊版本，并按标识符缓存，
// 同一张引导图在 TTL 内不会重复计算。
type Preparer struct {
	cache   *cache.TTLCache
	ttl     time.Duration
	maxEdge int
}

func NewPreparer(c *cache.TTLCache, ttl time.Duration, maxEdge int) *Preparer {
	return &Preparer{
		cache:   c,
		ttl:     ttl,
		maxEdge: maxEdge,
	}
}

// Prepare 返回标识符对应引导图的预处理结果。
// 命中缓存时不调用 load；radius 为 0 时跳过解码和模糊，缓存原始字节。
func (p *Preparer) Prepare(id string, load func() ([]byte, error), radius int) ([]byte, error) {
	if data, ok := p.cache.Get(id); ok {
		return data, nil
	}

	raw, err := load()
	if err != nil {
		return nil, &PreparationError{ID: id, Err: err}
	}

	if radius == 0 {
		p.cache.Set(id, raw, p.ttl)
		return raw, nil
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, &PreparationError{ID: id, Err: err}
	}

	nrgba := resizeWithinMax(toNRGBA(img), p.maxEdge)
	blurred := GaussianBlur(nrgba, radius)

	var buf bytes.Buffer
	if err := png.Encode(&buf, blurred); err != nil {
		return nil, &PreparationError{ID: id, Err: err}
	}

	out := buf.Bytes()
	p.cache.Set(id, out, p.ttl)
	return out, nil
}
