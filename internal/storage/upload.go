package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/autoluxe/internal/config"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// 上传校验错误
var (
	ErrFileTooLarge        = errors.New("file too large")
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
	ErrTypeNotAllowed      = errors.New("file type not allowed")
	ErrImageUnreadable     = errors.New("image cannot be decoded")
)

// OpenImage 校验上传图片并返回可上传的对象，调用方负责关闭返回的 io.Closer
func OpenImage(file *multipart.FileHeader, folder string, cfg config.UploadConfig) (Object, io.Closer, error) {
	if file == nil {
		return Object{}, nil, errors.New("missing file")
	}
	if cfg.MaxSize > 0 && file.Size > cfg.MaxSize {
		return Object{}, nil, fmt.Errorf("%w: max %d MB", ErrFileTooLarge, cfg.MaxSize/1024/1024)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(cfg.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, cfg.AllowedExtensions) {
			return Object{}, nil, fmt.Errorf("%w: %s", ErrExtensionNotAllowed, ext)
		}
	}

	src, err := file.Open()
	if err != nil {
		return Object{}, nil, err
	}
	contentType, err := sniffContentType(src)
	if err != nil {
		_ = src.Close()
		return Object{}, nil, err
	}
	if len(cfg.AllowedTypes) > 0 && !isAllowedContentType(contentType, cfg.AllowedTypes) {
		_ = src.Close()
		return Object{}, nil, fmt.Errorf("%w: %s", ErrTypeNotAllowed, contentType)
	}
	if strings.HasPrefix(contentType, "image/") {
		if _, _, err := decodeImageDimensions(src, contentType); err != nil {
			_ = src.Close()
			return Object{}, nil, fmt.Errorf("%w: %v", ErrImageUnreadable, err)
		}
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		_ = src.Close()
		return Object{}, nil, err
	}

	return Object{
		Folder:      folder,
		Ext:         ext,
		ContentType: contentType,
		Size:        file.Size,
		Body:        src,
	}, src, nil
}

func sniffContentType(src io.ReadSeeker) (string, error) {
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buffer[:n]), nil
}

func isAllowedContentType(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if strings.EqualFold(contentType, strings.TrimSpace(t)) {
			return true
		}
	}
	return false
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}

func decodeImageDimensions(src io.ReadSeeker, contentType string) (int, int, error) {
	if strings.EqualFold(contentType, "image/webp") {
		return decodeWebPDimensions(src)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

func decodeWebPDimensions(src io.ReadSeeker) (int, int, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}

	header := make([]byte, 12)
	if _, err := io.ReadFull(src, header); err != nil {
		return 0, 0, err
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WEBP" {
		return 0, 0, errors.New("invalid webp header")
	}

	for {
		chunkHeader := make([]byte, 8)
		if _, err := io.ReadFull(src, chunkHeader); err != nil {
			return 0, 0, err
		}
		chunkType := string(chunkHeader[0:4])
		chunkSize := int(binary.LittleEndian.Uint32(chunkHeader[4:8]))
		if chunkSize < 0 {
			return 0, 0, errors.New("invalid webp chunk")
		}

		data := make([]byte, chunkSize)
		if _, err := io.ReadFull(src, data); err != nil {
			return 0, 0, err
		}

		switch chunkType {
		case "VP8X":
			if len(data) < 10 {
				return 0, 0, errors.New("short VP8X chunk")
			}
			width := 1 + int(data[4]) + int(data[5])<<8 + int(data[6])<<16
			height := 1 + int(data[7]) + int(data[8])<<8 + int(data[9])<<16
			return width, height, nil
		case "VP8 ":
			if len(data) < 10 {
				return 0, 0, errors.New("short VP8 chunk")
			}
			width := int(binary.LittleEndian.Uint16(data[6:8]) & 0x3FFF)
			height := int(binary.LittleEndian.Uint16(data[8:10]) & 0x3FFF)
			return width, height, nil
		case "VP8L":
			if len(data) < 5 || data[0] != 0x2f {
				return 0, 0, errors.New("invalid VP8L chunk")
			}
			bits := binary.LittleEndian.Uint32(data[1:5])
			width := int(bits&0x3FFF) + 1
			height := int((bits>>14)&0x3FFF) + 1
			return width, height, nil
		}

		if chunkSize%2 == 1 {
			if _, err := src.Seek(1, io.SeekCurrent); err != nil {
				return 0, 0, err
			}
		}
	}
}
