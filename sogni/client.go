package sogni

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Sogni-AI/sogni-creatures-api/config"
	"github.com/Sogni-AI/sogni-creatures-api/util"
	nhttp "github.com/Sogni-AI/sogni-creatures-api/util/http"
)

const (
	loginPath   = "/v1/account/login"
	projectPath = "/v1/projects"

	defaultPollInterval = 500 * time.Millisecond
)

// Client 生成后端的 REST 客户端：提交任务后轮询直到 completed/failed，
// 返回唯一一张结果图的字节。
type Client struct {
	baseURL  string
	username string
	password string
	token    string

	cli          nhttp.IClient
	pollInterval time.Duration
	download     func(url string) ([]byte, error)
}

func NewClient(cfg config.SogniConfig) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		username:     cfg.Username,
		password:     cfg.Password,
		cli:          nhttp.NewHTTPClient(),
		pollInterval: defaultPollInterval,
		download:     util.DownloadBytes,
	}
}

// Login 获取会话 token，进程内复用
func (c *Client) Login(ctx context.Context) error {
	resp := &loginResp{}
	err := c.cli.DoHTTPRequest(ctx, &nhttp.RequestParam{
		RequestURI: c.baseURL + loginPath,
		Method:     "POST",
		Header:     map[string]string{"Content-Type": "application/json"},
		Body:       &loginReq{Username: c.username, Password: c.password},
		Response:   resp,
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return errors.New("login: empty token")
	}

	c.token = resp.Token
	return nil
}

// Generate 提交渲染任务并等待终态，成功返回结果图字节
func (c *Client) Generate(ctx context.Context, req *GenerateRequest) ([]byte, error) {
	if c.token == "" {
		if err := c.Login(ctx); err != nil {
			return nil, err
		}
	}

	projectID, err := c.createProject(ctx, req)
	if err != nil {
		// 会话过期重新登录一次再试
		if strings.Contains(err.Error(), "status 401") {
			if err = c.Login(ctx); err != nil {
				return nil, err
			}
			projectID, err = c.createProject(ctx, req)
		}
		if err != nil {
			return nil, err
		}
	}

	util.Logger.Info("project submitted", zap.String("project_id", projectID))

	imageURL, err := c.awaitCompletion(ctx, projectID)
	if err != nil {
		return nil, err
	}

	data, err := c.download(imageURL)
	if err != nil {
		return nil, &GenerationError{ProjectID: projectID, Reason: fmt.Sprintf("download result: %v", err)}
	}
	return data, nil
}

func (c *Client) createProject(ctx context.Context, req *GenerateRequest) (string, error) {
	body := &createProjectReq{
		Prompt:    req.Prompt,
		Model:     req.Model,
		Steps:     req.Steps,
		Guidance:  req.Guidance,
		Scheduler: req.Scheduler,
	}
	if len(req.GuideImage) > 0 {
		body.StartingImage = base64.StdEncoding.EncodeToString(req.GuideImage)
		body.StartingImageStrength = req.GuideStrength
	}

	resp := &createProjectResp{}
	err := c.cli.DoHTTPRequest(ctx, &nhttp.RequestParam{
		RequestURI: c.baseURL + projectPath,
		Method:     "POST",
		Header:     c.authHeader(),
		Body:       body,
		Response:   resp,
	})
	if err != nil {
		return "", fmt.Errorf("create project: %w", err)
	}
	if resp.ProjectID == "" {
		return "", errors.New("create project: empty project id")
	}
	return resp.ProjectID, nil
}

// awaitCompletion 轮询项目状态直到唯一终态事件
func (c *Client) awaitCompletion(ctx context.Context, projectID string) (string, error) {
	for {
		resp := &projectStatusResp{}
		err := c.cli.DoHTTPRequest(ctx, &nhttp.RequestParam{
			RequestURI: c.baseURL + projectPath + "/" + projectID,
			Method:     "GET",
			Header:     c.authHeader(),
			Response:   resp,
		})
		if err != nil {
			return "", fmt.Errorf("poll project %s: %w", projectID, err)
		}

		switch resp.Status {
		case "completed":
			if len(resp.ImageURLs) == 0 {
				return "", &GenerationError{ProjectID: projectID, Reason: "completed without image"}
			}
			return resp.ImageURLs[0], nil
		case "failed":
			reason := resp.Error
			if reason == "" {
				reason = "unknown backend failure"
			}
			return "", &GenerationError{ProjectID: projectID, Reason: reason}
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

func (c *Client) authHeader() map[string]string {
	return map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + c.token,
	}
}
