package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/constants"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSHost Google Cloud Storage 存储
type GCSHost struct {
	client        *gcs.Client
	bucket        string
	publicBaseURL string
}

// NewGCSHost 创建 GCS 存储
func NewGCSHost(ctx context.Context, cfg config.GCSMediaConfig) (*GCSHost, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.New("media gcs: bucket is required")
	}
	var opts []option.ClientOption
	if credentialsFile := strings.TrimSpace(cfg.CredentialsFile); credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("media gcs: create client failed: %w", err)
	}
	return NewGCSHostWithClient(client, bucket, cfg.PublicBaseURL), nil
}

// NewGCSHostWithClient 使用已有客户端创建 GCS 存储
func NewGCSHostWithClient(client *gcs.Client, bucket, publicBaseURL string) *GCSHost {
	base := strings.TrimRight(strings.TrimSpace(publicBaseURL), "/")
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	return &GCSHost{
		client:        client,
		bucket:        strings.TrimSpace(bucket),
		publicBaseURL: base,
	}
}

// Driver 驱动名称
func (h *GCSHost) Driver() string {
	return constants.MediaDriverGCS
}

// Configured 是否已配置客户端与 bucket
func (h *GCSHost) Configured() bool {
	return h != nil && h.client != nil && h.bucket != ""
}

func (h *GCSHost) urlPrefix() string {
	return fmt.Sprintf("%s/%s", h.publicBaseURL, h.bucket)
}

// Upload 写入对象
func (h *GCSHost) Upload(ctx context.Context, obj Object) (string, error) {
	if !h.Configured() {
		return "", errors.New("media gcs: client is not initialised")
	}
	if obj.Body == nil {
		return "", errors.New("empty upload body")
	}
	name := objectName(obj.Folder, obj.Ext)
	writer := h.client.Bucket(h.bucket).Object(name).NewWriter(ctx)
	writer.ContentType = obj.ContentType
	writer.CacheControl = "public, max-age=86400"
	if _, err := io.Copy(writer, obj.Body); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("media gcs: write %s failed: %w", name, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("media gcs: close %s failed: %w", name, err)
	}
	return fmt.Sprintf("%s/%s", h.urlPrefix(), name), nil
}

// Release 删除对象
func (h *GCSHost) Release(ctx context.Context, url string) error {
	if !h.Configured() {
		return errors.New("media gcs: client is not initialised")
	}
	name, ok := trimURLPrefix(url, h.urlPrefix())
	if !ok {
		return fmt.Errorf("url %q is not managed by bucket %s", url, h.bucket)
	}
	err := h.client.Bucket(h.bucket).Object(name).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return err
	}
	return nil
}

// Close 关闭客户端
func (h *GCSHost) Close() error {
	if h == nil || h.client == nil {
		return nil
	}
	return h.client.Close()
}
