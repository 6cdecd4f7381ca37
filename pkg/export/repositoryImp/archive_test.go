package repositoryImp

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNop(t *testing.T) {
	a := NewNop()
	where, err := a.Put(context.Background(), "k", []byte("x"), "")
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Equal(t, "none", a.Driver())
}

func TestFSArchive(t *testing.T) {
	root := t.TempDir()
	a := NewFS(root)
	where, err := a.Put(context.Background(), "exports/20260101T000000Z-crop_data.csv", []byte("a,b\n"), "text/csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "exports", "20260101T000000Z-crop_data.csv"), where)

	b, err := os.ReadFile(where)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(b))

	_, err = a.Put(context.Background(), "../escape.csv", nil, "")
	assert.Error(t, err)
}

// fakeS3 records PUT requests made by the SDK.
type fakeS3 struct {
	mu   sync.Mutex
	puts map[string][]byte
	ct   map[string]string
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.Method != http.MethodPut {
		return &http.Response{StatusCode: http.StatusNotImplemented, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
	}
	body, _ := io.ReadAll(req.Body)
	key := strings.TrimPrefix(req.URL.Path, "/")
	f.puts[key] = body
	f.ct[key] = req.Header.Get("Content-Type")
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{"ETag": {"\"etag\""}}}, nil
}

func TestS3Archive(t *testing.T) {
	rt := &fakeS3{puts: map[string][]byte{}, ct: map[string]string{}}
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	require.NoError(t, err)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String("https://mock.s3.local")
		o.HTTPClient = &http.Client{Transport: rt}
		o.UsePathStyle = true
	})

	a := NewS3FromClient(client, "farm-exports")
	where, err := a.Put(context.Background(), "exports/x-crop_data.csv", []byte("Crop Name\n"), "text/csv")
	require.NoError(t, err)
	assert.Equal(t, "s3://farm-exports/exports/x-crop_data.csv", where)
	assert.Equal(t, "s3", a.Driver())

	rt.mu.Lock()
	defer rt.mu.Unlock()
	body, ok := rt.puts["farm-exports/exports/x-crop_data.csv"]
	require.True(t, ok, "keys: %v", rt.puts)
	assert.Contains(t, string(body), "Crop Name")
	assert.Equal(t, "text/csv", rt.ct["farm-exports/exports/x-crop_data.csv"])
}

func TestNewS3NeedsBucket(t *testing.T) {
	_, err := NewS3(context.Background(), S3Config{})
	assert.Error(t, err)
}
