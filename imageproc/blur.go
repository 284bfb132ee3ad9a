package imageproc

import (
	"image"
	"math"
)

// gaussianKernel 一维高斯核，半径 radius，sigma 取 radius/3
func gaussianKernel(radius int) []float64 {
	sigma := float64(radius) / 3.0
	if sigma < 0.5 {
		sigma = 0.5
	}

	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// GaussianBlur 高斯模糊，水平、垂直两次一维卷积，边界取最近像素
func GaussianBlur(img *image.NRGBA, radius int) *image.NRGBA {
	if radius <= 0 {
		return img
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	kernel := gaussianKernel(radius)

	clamp := func(v, lo, hi int) int {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}

	// 水平
	tmp := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a float64
			for k := -radius; k <= radius; k++ {
				i := y*img.Stride + clamp(x+k, 0, w-1)*4
				weight := kernel[k+radius]
				r += float64(img.Pix[i]) * weight
				g += float64(img.Pix[i+1]) * weight
				b += float64(img.Pix[i+2]) * weight
				a += float64(img.Pix[i+3]) * weight
			}
			o := y*tmp.Stride + x*4
			tmp.Pix[o] = uint8(r + 0.5)
			tmp.Pix[o+1] = uint8(g + 0.5)
			tmp.Pix[o+2] = uint8(b + 0.5)
			tmp.Pix[o+3] = uint8(a + 0.5)
		}
	}

	// 垂直
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a float64
			for k := -radius; k <= radius; k++ {
				i := clamp(y+k, 0, h-1)*tmp.Stride + x*4
				weight := kernel[k+radius]
				r += float64(tmp.Pix[i]) * weight
				g += float64(tmp.Pix[i+1]) * weight
				b += float64(tmp.Pix[i+2]) * weight
				a += float64(tmp.Pix[i+3]) * weight
			}
			o := y*dst.Stride + x*4
			dst.Pix[o] = uint8(r + 0.5)
			dst.Pix[o+1] = uint8(g + 0.5)
			dst.Pix[o+2] = uint8(b + 0.5)
			dst.Pix[o+3] = uint8(a + 0.5)
		}
	}

	return dst
}
