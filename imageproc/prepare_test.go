package imageproc

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sogni-AI/sogni-creatures-api/cache"
)

func guidePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, uniformImage(16, 16, color.NRGBA{R: 128, G: 128, B: 128, A: 255})))
	return buf.Bytes()
}

func countingLoader(data []byte, err error) (func() ([]byte, error), *int) {
	calls := 0
	return func() ([]byte, error) {
		calls++
		return data, err
	}, &calls
}

func TestPreparer_CacheHit(t *testing.T) {
	t.Parallel()

	p := NewPreparer(cache.NewTTLCache(), time.Hour, 512)
	load, calls := countingLoader(guidePNG(t), nil)

	first, err := p.Prepare("cat.png", load, 4)
	require.NoError(t, err)
	second, err := p.Prepare("cat.png", load, 4)
	require.NoError(t, err)

	assert.Equal(t, first, second, "两次结果字节一致")
	assert.Equal(t, 1, *calls, "命中缓存不再读取源图")
}

func TestPreparer_Expiry(t *testing.T) {
	t.Parallel()

	p := NewPreparer(cache.NewTTLCache(), 10*time.Millisecond, 512)
	load, calls := countingLoader(guidePNG(t), nil)

	_, err := p.Prepare("cat.png", load, 4)
	require.NoError(t, err)

	time.Sleep(25 * time.Millisecond)

	_, err = p.Prepare("cat.png", load, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls, "过期后重新计算")
}

func TestPreparer_ZeroRadiusCachesRawBytes(t *testing.T) {
	t.Parallel()

	p := NewPreparer(cache.NewTTLCache(), time.Hour, 512)
	raw := []byte("raw guide bytes, not even an image")
	load, calls := countingLoader(raw, nil)

	got, err := p.Prepare("fox.png", load, 0)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	got, err = p.Prepare("fox.png", load, 0)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
	assert.Equal(t, 1, *calls)
}

func TestPreparer_LoadFailure(t *testing.T) {
	t.Parallel()

	c := cache.NewTTLCache()
	p := NewPreparer(c, time.Hour, 512)
	load, _ := countingLoader(nil, errors.New("no such file"))

	_, err := p.Prepare("dog.png", load, 4)
	require.Error(t, err)

	var prepErr *PreparationError
	require.ErrorAs(t, err, &prepErr)
	assert.Equal(t, "dog.png", prepErr.ID)
	assert.Equal(t, 0, c.Len(), "失败时不写缓存")
}

func TestPreparer_UndecodableSource(t *testing.T) {
	t.Parallel()

	c := cache.NewTTLCache()
	p := NewPreparer(c, time.Hour, 512)
	load, _ := countingLoader([]byte("junk"), nil)

	_, err := p.Prepare("owl.png", load, 4)
	require.Error(t, err)

	var prepErr *PreparationError
	require.ErrorAs(t, err, &prepErr)
	assert.Equal(t, 0, c.Len())
}

func TestPreparer_BlurredOutputIsPNG(t *testing.T) {
	t.Parallel()

	p := NewPreparer(cache.NewTTLCache(), time.Hour, 512)
	load, _ := countingLoader(guidePNG(t), nil)

	out, err := p.Prepare("bear.png", load, 8)
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
}
