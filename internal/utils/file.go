package utils

import (
	"path/filepath"
	"strings"
)

// FileExtension 返回小写的文件扩展名（不带点），没有扩展名时返回空串
func FileExtension(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// AllowedFile 检查文件扩展名是否在白名单内
func AllowedFile(filename string, allowed []string) bool {
	ext := FileExtension(filename)
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
