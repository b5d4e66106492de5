package confgen

import (
	"errors"
	"path/filepath"
)

// Write 将生成内容写入 outDir/filename，覆盖旧文件。
//
// outDir 为空返回 ErrMissingEnvironment；写入失败（目录不存在、无权限）
// 返回 ErrWriteFailure，旧文件保持不变。返回写入的完整路径。
func Write(outDir, filename string, content []byte) (string, error) {
	if outDir == "" {
		return "", &Error{Kind: ErrMissingEnvironment, Err: errors.New("output directory is not set")}
	}
	if filename == "" {
		filename = DefaultFilename
	}

	path := filepath.Join(outDir, filename)
	if err := writeFileAtomic(path, content); err != nil {
		return "", &Error{Kind: ErrWriteFailure, Path: path, Err: err}
	}

	return path, nil
}
