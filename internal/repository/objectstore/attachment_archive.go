package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"go-inquiry-backend/internal/domain"
	"go-inquiry-backend/pkg/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type attachmentArchive struct {
	client storage.ObjectPutter
	bucket string
}

// NewAttachmentArchive stores quote attachments under quotes/<quoteNumber>/.
func NewAttachmentArchive(client storage.ObjectPutter, bucket string) domain.AttachmentArchive {
	return &attachmentArchive{client: client, bucket: bucket}
}

// Archive uploads every file and stops at the first failure.
func (a *attachmentArchive) Archive(ctx context.Context, quoteNumber string, files []domain.Attachment) error {
	for _, f := range files {
		key := ObjectKey(quoteNumber, f.Filename)
		_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(a.bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(f.Data),
			ContentType:   aws.String(f.ContentType),
			ContentLength: aws.Int64(int64(len(f.Data))),
		})
		if err != nil {
			return fmt.Errorf("failed to archive %s: %w", key, err)
		}
	}
	return nil
}

// ObjectKey builds the archive key. Directory parts of the client-supplied
// filename are dropped.
func ObjectKey(quoteNumber, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "attachment"
	}
	return path.Join("quotes", quoteNumber, name)
}
