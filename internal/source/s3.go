package source

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Bucket lists and downloads resumes from an S3-compatible bucket
// (Cloudflare R2 included). Objects are written to downloadDir and handed to
// the pipeline as local files.
type Bucket struct {
	client      *s3.Client
	bucket      string
	prefix      string
	downloadDir string
}

// NewBucket builds a bucket source. A non-empty accountID points the client
// at Cloudflare R2 instead of plain S3.
func NewBucket(awsConfig aws.Config, accountID, bucket, prefix, downloadDir string) *Bucket {
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if accountID != "" {
			o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID))
		}
	})
	return &Bucket{
		client:      client,
		bucket:      bucket,
		prefix:      prefix,
		downloadDir: downloadDir,
	}
}

func (b *Bucket) List(ctx context.Context) ([]Document, error) {
	out, err := b.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
		Prefix: aws.String(b.prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("listing bucket %s: %w", b.bucket, err)
	}

	var docs []Document
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		name := path.Base(key)
		if !IsPDF(name) {
			continue // don't download what the pipeline will skip anyway
		}

		localPath, err := b.download(ctx, key, name)
		if err != nil {
			log.Printf("skipping %s: download failed: %v", name, err)
			continue
		}
		docs = append(docs, Document{Name: name, Path: localPath})
	}
	return docs, nil
}

func (b *Bucket) download(ctx context.Context, key, name string) (string, error) {
	if err := os.MkdirAll(b.downloadDir, 0755); err != nil {
		return "", err
	}

	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("fetching object %s: %w", key, err)
	}
	defer out.Body.Close()

	localPath := filepath.Join(b.downloadDir, name)
	f, err := os.Create(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, out.Body); err != nil {
		return "", fmt.Errorf("writing %s: %w", localPath, err)
	}
	return localPath, nil
}
