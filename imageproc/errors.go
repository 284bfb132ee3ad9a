package imageproc

import "fmt"

// PreparationError 引导图读取或模糊失败
type PreparationError struct {
	ID  string
	Err error
}

func (e *PreparationError) Error() string {
	return fmt.Sprintf("prepare guide image %q: %v", e.ID, e.Err)
}

func (e *PreparationError) Unwrap() error { return e.Err }

// DecodeError 图片字节无法解码
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
