package archive

import (
	"bytes"
	"fmt"
	"time"

	"github.com/klauspost/compress/zip"
)

// File 打包条目
type File struct {
	Name string
	Data []byte
}

// SheetName 第 i 个（从 1 开始）阅卷表在压缩包中的文件名
func SheetName(i int) string {
	return fmt.Sprintf("grading_sheet_%d.xlsx", i)
}

// Bundle 把文件按顺序打包为 deflate 压缩的 zip
func Bundle(files []File) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	seen := make(map[string]struct{}, len(files))
	now := time.Now()
	for _, f := range files {
		if _, dup := seen[f.Name]; dup {
			zw.Close()
			return nil, fmt.Errorf("duplicate archive entry %q", f.Name)
		}
		seen[f.Name] = struct{}{}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: now,
		})
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("create entry %s: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("write entry %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Entries 读取压缩包内的文件（按包内顺序）
func Entries(data []byte) ([]File, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	out := make([]File, 0, len(zr.File))
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("open entry %s: %w", zf.Name, err)
		}
		var b bytes.Buffer
		_, err = b.ReadFrom(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read entry %s: %w", zf.Name, err)
		}
		out = append(out, File{Name: zf.Name, Data: b.Bytes()})
	}
	return out, nil
}
