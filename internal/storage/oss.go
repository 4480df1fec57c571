package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"assignment-service/internal/models"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OSSUploader stores assignment images in an Alibaba Cloud OSS bucket and
// hands back the durable public URL.
type OSSUploader struct {
	Bucket     *oss.Bucket
	BucketName string
	Endpoint   string
	Folder     string
}

// NewOSSUploaderFromEnv builds the uploader from OSS_ENDPOINT,
// OSS_ACCESS_KEY, OSS_SECRET_KEY, OSS_BUCKET and optional OSS_FOLDER.
func NewOSSUploaderFromEnv() (*OSSUploader, error) {
	endpoint := os.Getenv("OSS_ENDPOINT")
	accessKey := os.Getenv("OSS_ACCESS_KEY")
	secretKey := os.Getenv("OSS_SECRET_KEY")
	bucketName := os.Getenv("OSS_BUCKET")
	if endpoint == "" || accessKey == "" || secretKey == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: OSS_ENDPOINT/OSS_ACCESS_KEY/OSS_SECRET_KEY/OSS_BUCKET")
	}
	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss bucket %q: %w", bucketName, err)
	}
	folder := os.Getenv("OSS_FOLDER")
	if folder == "" {
		folder = "assignments"
	}
	return &OSSUploader{
		Bucket:     bucket,
		BucketName: bucketName,
		Endpoint:   endpoint,
		Folder:     folder,
	}, nil
}

// Upload puts the object under a unique key and returns its descriptor.
func (u *OSSUploader) Upload(ctx context.Context, fileName string, r io.Reader, size int64, contentType string) (models.ImageFile, error) {
	key := fmt.Sprintf("%s/%d-%s%s",
		u.Folder,
		time.Now().UnixNano(),
		primitive.NewObjectID().Hex(),
		strings.ToLower(path.Ext(fileName)),
	)
	opts := []oss.Option{oss.WithContext(ctx)}
	if contentType != "" {
		opts = append(opts, oss.ContentType(contentType))
	}
	if err := u.Bucket.PutObject(key, r, opts...); err != nil {
		return models.ImageFile{}, err
	}
	return models.ImageFile{
		FileName: fileName,
		FilePath: u.publicURL(key),
		FileType: contentType,
		FileSize: FileSizeFormatter(size, 2),
	}, nil
}

func (u *OSSUploader) publicURL(key string) string {
	endpoint := strings.TrimPrefix(u.Endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	return fmt.Sprintf("https://%s.%s/%s", u.BucketName, endpoint, key)
}

// FileSizeFormatter renders a byte count as a human-readable string, e.g.
// "2.53 MB". Presentation only; the stored value is never parsed back.
func FileSizeFormatter(bytes int64, decimals int) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB", "TB"}
	size := float64(bytes)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%.*f %s", decimals, size, units[i])
}
