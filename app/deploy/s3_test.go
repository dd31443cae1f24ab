package deploy

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploaded struct {
	key, contentType, cacheControl, body string
}

type fakeUploader struct {
	objects []uploaded
	failOn  string
}

func (f *fakeUploader) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	key := aws.ToString(input.Key)
	if key == f.failOn {
		return nil, errors.New("access denied")
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.objects = append(f.objects, uploaded{
		key:          key,
		contentType:  aws.ToString(input.ContentType),
		cacheControl: aws.ToString(input.CacheControl),
		body:         string(body),
	})
	return &manager.UploadOutput{Key: input.Key}, nil
}

func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html":            "<html></html>",
		"projects/1.html":       "<p>one</p>",
		"static/css/site.css":   "body{}",
		"static/js/site.js":     "void 0;",
		"static/img/photo.webp": "RIFF",
	}
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	}
	return dir
}

func TestPublish(t *testing.T) {
	dir := writeSite(t)
	up := &fakeUploader{}
	p := &S3Publisher{Bucket: "site", Prefix: "/www/", CacheControl: "max-age=60", Uploader: up}

	n, err := p.Publish(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	require.Len(t, up.objects, 5)

	byKey := map[string]uploaded{}
	for _, o := range up.objects {
		byKey[o.key] = o
	}
	assert.Equal(t, "<html></html>", byKey["www/index.html"].body)
	assert.Contains(t, byKey["www/index.html"].contentType, "text/html")
	assert.Contains(t, byKey["www/static/css/site.css"].contentType, "text/css")
	assert.Equal(t, "max-age=60", byKey["www/projects/1.html"].cacheControl)
}

func TestPublishStopsOnFailure(t *testing.T) {
	dir := writeSite(t)
	up := &fakeUploader{failOn: "projects/1.html"}
	p := &S3Publisher{Bucket: "site", Uploader: up}

	n, err := p.Publish(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projects/1.html")
	// files are uploaded in sorted order: index.html comes first
	assert.Equal(t, 1, n)
}

func TestPublishEmptyDir(t *testing.T) {
	p := &S3Publisher{Bucket: "site", Uploader: &fakeUploader{}}
	_, err := p.Publish(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "index.html", ObjectKey("", "index.html"))
	assert.Equal(t, "blog/blog/a.html", ObjectKey("/blog/", filepath.Join("blog", "a.html")))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/octet-stream", ContentType("LICENSE"))
	assert.Contains(t, ContentType("app.js"), "javascript")
}
