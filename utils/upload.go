package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxScreenshotBytes caps payment-proof uploads.
const MaxScreenshotBytes = 5 << 20 // 5MB

var allowedScreenshotExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".heic": true,
	".heif": true,
}

// ValidateScreenshot checks extension and size of an uploaded payment proof.
func ValidateScreenshot(handler *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(handler.Filename))
	if !allowedScreenshotExts[ext] {
		return fmt.Errorf("screenshot must be JPG/PNG/WEBP/HEIC")
	}
	if handler.Size > MaxScreenshotBytes {
		return fmt.Errorf("screenshot must be at most 5MB")
	}
	return nil
}

// SaveScreenshot persists an uploaded payment proof and returns the path the
// trade record stores. Files go to R2 when configured, otherwise to the local
// uploads directory served statically under /uploads/.
func SaveScreenshot(file multipart.File, handler *multipart.FileHeader, tradeRef string) (string, error) {
	ext := strings.ToLower(filepath.Ext(handler.Filename))
	name := fmt.Sprintf("screenshots/%s-%d%s", tradeRef, time.Now().Unix(), ext)

	if R2Configured() {
		if err := UploadToS3(name, file); err != nil {
			return "", err
		}
		return name, nil
	}

	dir := UploadDir()
	if err := os.MkdirAll(filepath.Join(dir, "screenshots"), 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// DeleteScreenshot removes a previously saved payment proof. It accepts the
// path exactly as SaveScreenshot returned it: "/uploads/..." for local files,
// a bare object name for R2.
func DeleteScreenshot(storedPath string) error {
	if local, ok := strings.CutPrefix(storedPath, "/uploads/"); ok {
		return os.Remove(filepath.Join(UploadDir(), filepath.Clean(local)))
	}
	return DeleteFromS3(storedPath)
}

// UploadDir returns the local upload root.
func UploadDir() string {
	if d := os.Getenv("UPLOAD_DIR"); d != "" {
		return d
	}
	return "uploads"
}
