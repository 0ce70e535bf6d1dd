package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"lms/config"
)

// UploadMaterial stores a lesson material and returns its public URL. With
// a storage endpoint configured the file goes to the blob-storage
// collaborator over its REST API; otherwise it lands in the local upload
// directory. Callers persist the returned URL and never look at the file
// contents again.
func UploadMaterial(file *multipart.FileHeader, folder string) (string, error) {
	if config.AppConfig.StorageApiURL == "" {
		return saveLocal(file, folder)
	}
	return uploadRemote(file, folder)
}

func uploadRemote(file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	cfg := config.AppConfig
	objectPath := fmt.Sprintf("%s/%s%s", folder,
		time.Now().Format("20060102150405"), filepath.Ext(file.Filename))

	client := resty.New().SetBaseURL(cfg.StorageApiURL)
	resp, err := client.R().
		SetAuthToken(cfg.StorageApiKey).
		SetFileReader("file", file.Filename, src).
		Post(fmt.Sprintf("/storage/v1/object/%s/%s", cfg.StorageBucket, objectPath))
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("storage upload failed: %s", resp.Status())
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		cfg.StorageApiURL, cfg.StorageBucket, objectPath), nil
}

func saveLocal(file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	destDir := filepath.Join(config.AppConfig.UploadDir, folder)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	newFilename := time.Now().Format("20060102150405") + filepath.Ext(file.Filename)
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/uploads/" + folder + "/" + newFilename, nil
}
