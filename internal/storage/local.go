package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/autoluxe/internal/constants"
)

// LocalHost 本地磁盘存储，通过静态路由对外提供
type LocalHost struct {
	dir     string
	baseURL string
}

// NewLocalHost 创建本地存储
func NewLocalHost(dir, baseURL string) *LocalHost {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "./uploads"
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalHost{dir: dir, baseURL: baseURL}
}

// Dir 本地存储根目录
func (h *LocalHost) Dir() string {
	return h.dir
}

// BaseURL 对外访问前缀
func (h *LocalHost) BaseURL() string {
	return h.baseURL
}

// Driver 驱动名称
func (h *LocalHost) Driver() string {
	return constants.MediaDriverLocal
}

// Configured 本地存储总是可用
func (h *LocalHost) Configured() bool {
	return true
}

// Upload 保存文件
func (h *LocalHost) Upload(ctx context.Context, obj Object) (string, error) {
	if obj.Body == nil {
		return "", errors.New("empty upload body")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := objectName(obj.Folder, obj.Ext)
	savePath := filepath.Join(h.dir, filepath.FromSlash(name))

	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, obj.Body); err != nil {
		_ = dst.Close()
		_ = os.Remove(savePath)
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", h.baseURL, name), nil
}

// Release 删除文件
func (h *LocalHost) Release(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, ok := trimURLPrefix(url, h.baseURL)
	if !ok {
		return fmt.Errorf("url %q is not managed by local media host", url)
	}
	err := os.Remove(filepath.Join(h.dir, filepath.FromSlash(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
