package sogni

import "fmt"

// GenerateRequest 提交给生成后端的一次渲染任务
type GenerateRequest struct {
	Prompt        string
	Model         string
	Steps         int
	Guidance      float64
	Scheduler     string
	GuideImage    []byte // 可选引导图（PNG 字节）
	GuideStrength float64
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string `json:"token"`
}

type createProjectReq struct {
	Prompt                string  `json:"prompt"`
	Model                 string  `json:"model"`
	Steps                 int     `json:"steps"`
	Guidance              float64 `json:"guidance"`
	Scheduler             string  `json:"scheduler,omitempty"`
	StartingImage         string  `json:"startingImage,omitempty"` // base64
	StartingImageStrength float64 `json:"startingImageStrength,omitempty"`
}

type createProjectResp struct {
	ProjectID string `json:"projectId"`
}

type projectStatusResp struct {
	Status    string   `json:"status"` // queued / processing / completed / failed
	ImageURLs []string `json:"imageUrls"`
	Error     string   `json:"error"`
}

// GenerationError 后端拒绝或渲染失败
type GenerationError struct {
	ProjectID string
	Reason    string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (project %s): %s", e.ProjectID, e.Reason)
}
