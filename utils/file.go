package utils

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"luxe-commerce/config"
)

var allowedReceiptExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// SaveReceipt stores a payment receipt under
// {uploadDir}/receipts/{userID}/{orderID}/{uuid}{ext} and returns the path
// relative to the receipts root, the value persisted on the payment record.
func SaveReceipt(c *gin.Context, fileHeader *multipart.FileHeader, userID, orderID int) (string, error) {
	if fileHeader.Size > config.AppConfig.MaxUploadSize {
		return "", errors.New("file size exceeds maximum allowed size")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedReceiptExtensions[ext] {
		return "", errors.New("invalid file type. Only images and PDF are allowed")
	}

	relPath := filepath.Join(strconv.Itoa(userID), strconv.Itoa(orderID), uuid.NewString()+ext)
	fullPath := filepath.Join(config.AppConfig.UploadDir, "receipts", relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), os.ModePerm); err != nil {
		return "", err
	}
	if err := c.SaveUploadedFile(fileHeader, fullPath); err != nil {
		return "", err
	}

	return relPath, nil
}

// ReceiptFilePath resolves a stored receipt path to an absolute path,
// rejecting anything that escapes the receipts root.
func ReceiptFilePath(relPath string) (string, error) {
	root, err := filepath.Abs(filepath.Join(config.AppConfig.UploadDir, "receipts"))
	if err != nil {
		return "", err
	}

	full, err := filepath.Abs(filepath.Join(root, relPath))
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(full, root+string(os.PathSeparator)) {
		return "", errors.New("invalid receipt path")
	}
	if _, err := os.Stat(full); err != nil {
		return "", err
	}
	return full, nil
}

// SaveTempImage writes an uploaded product image to a temp location for the
// Cloudinary upload step. Caller removes the file afterwards.
func SaveTempImage(c *gin.Context, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > config.AppConfig.MaxUploadSize {
		return "", errors.New("file size exceeds maximum allowed size")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		return "", errors.New("invalid file type. Only images are allowed")
	}

	tmpDir := filepath.Join(config.AppConfig.UploadDir, "tmp")
	if err := os.MkdirAll(tmpDir, os.ModePerm); err != nil {
		return "", err
	}

	path := filepath.Join(tmpDir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(fileHeader, path); err != nil {
		return "", err
	}
	return path, nil
}
