package imageproc

import (
	"bytes"
	"image"
	"image/png"
	"math"

	_ "image/jpeg"
)

type point struct {
	x, y int
}

// RemoveBackground 把从边缘可达、且与 (0,0) 参考色距离 <= tolerance 的像素
// alpha 置 0。不可达的内部区域即使撞色也保持不透明。原地修改 alpha 通道。
func RemoveBackground(img *image.NRGBA, tolerance float64) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w == 0 || h == 0 {
		return
	}

	refR := float64(img.Pix[0])
	refG := float64(img.Pix[1])
	refB := float64(img.Pix[2])

	// 四条边全部入队作为种子，角上重复无妨
	worklist := make([]point, 0, 2*(w+h))
	for x := 0; x < w; x++ {
		worklist = append(worklist, point{x, 0}, point{x, h - 1})
	}
	for y := 0; y < h; y++ {
		worklist = append(worklist, point{0, y}, point{w - 1, y})
	}

	visited := make([]bool, w*h)

	// 广度优先，队列语义保证由边缘向内扩散
	for head := 0; head < len(worklist); head++ {
		p := worklist[head]
		if p.x < 0 || p.x >= w || p.y < 0 || p.y >= h {
			continue
		}
		if visited[p.y*w+p.x] {
			continue
		}
		visited[p.y*w+p.x] = true

		i := p.y*img.Stride + p.x*4
		dr := float64(img.Pix[i]) - refR
		dg := float64(img.Pix[i+1]) - refG
		db := float64(img.Pix[i+2]) - refB
		distance := math.Sqrt(dr*dr + dg*dg + db*db)

		if distance > tolerance {
			// 色差过大即为“墙”，不再向内扩散
			continue
		}

		img.Pix[i+3] = 0
		worklist = append(worklist,
			point{p.x, p.y - 1},
			point{p.x, p.y + 1},
			point{p.x - 1, p.y},
			point{p.x + 1, p.y},
		)
	}
}

// Strip 解码图片字节，去除背景后重新编码为 PNG
func Strip(data []byte, tolerance float64) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	nrgba := toNRGBA(img)
	RemoveBackground(nrgba, tolerance)

	var buf bytes.Buffer
	if err := png.Encode(&buf, nrgba); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
