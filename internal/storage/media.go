package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/constants"

	"github.com/oklog/ulid/v2"
)

// Object 待上传的文件
type Object struct {
	Folder      string
	Ext         string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaHost 商品图片托管
type MediaHost interface {
	// Upload 保存文件并返回可公开访问的地址
	Upload(ctx context.Context, obj Object) (string, error)
	// Release 删除地址对应的文件，文件不存在视为成功
	Release(ctx context.Context, url string) error
	Driver() string
	Configured() bool
}

// New 按配置创建图片托管实现
func New(ctx context.Context, cfg config.MediaConfig) (MediaHost, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", constants.MediaDriverLocal:
		return NewLocalHost(cfg.Local.Dir, cfg.Local.BaseURL), nil
	case constants.MediaDriverGCS:
		return NewGCSHost(ctx, cfg.GCS)
	default:
		return nil, fmt.Errorf("unsupported media driver: %s", cfg.Driver)
	}
}

// objectName 生成 <folder>/<ulid><ext>
func objectName(folder, ext string) string {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		folder = "common"
	}
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path.Join(folder, strings.ToLower(ulid.Make().String())+ext)
}

// trimURLPrefix 从公开地址中解析对象路径
func trimURLPrefix(url, prefix string) (string, bool) {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	url = strings.TrimSpace(url)
	if prefix == "" || !strings.HasPrefix(url, prefix+"/") {
		return "", false
	}
	name := strings.TrimPrefix(url, prefix+"/")
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	cleaned := path.Clean("/" + name)
	if cleaned == "/" || cleaned != "/"+name {
		return "", false
	}
	return name, true
}
