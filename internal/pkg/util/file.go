package util

import (
	"io"
	"net/http"
)

// GetSafeContentType 根据文件头嗅探真实的 MIME 类型，读完后回退到文件开头
func GetSafeContentType(file io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}
