package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	mock.Mock
}

var _ s3API = (*mockS3)(nil)

func (m *mockS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3.HeadObjectOutput)
	return out, args.Error(1)
}

func (m *mockS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func (m *mockS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func TestS3Store_PutSeekable(t *testing.T) {
	m := new(mockS3)
	s := &S3Store{client: m, bucket: "evidence"}
	ctx := context.Background()

	m.On("HeadObject", ctx, mock.Anything).Return(nil, &types.NotFound{})
	m.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "evidence" &&
			aws.ToString(in.Key) == "p/1" &&
			aws.ToString(in.ContentType) == "image/jpeg" &&
			aws.ToInt64(in.ContentLength) == 5
	})).Return(&s3.PutObjectOutput{ETag: aws.String(`"abc"`)}, nil)

	info, err := s.Put(ctx, "p/1", strings.NewReader("hello"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size)
	assert.Equal(t, "abc", info.ETag)
	assert.Equal(t, DriverS3, s.Driver())
	m.AssertExpectations(t)
}

func TestS3Store_PutStreamSized(t *testing.T) {
	m := new(mockS3)
	s := &S3Store{client: m, bucket: "evidence"}
	ctx := context.Background()

	m.On("HeadObject", ctx, mock.Anything).Return(nil, &types.NotFound{})
	m.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		_, seekable := in.Body.(io.ReadSeeker)
		return seekable && aws.ToInt64(in.ContentLength) == 8
	})).Return(&s3.PutObjectOutput{}, nil)

	info, err := s.Put(ctx, "p/2", iotest.OneByteReader(strings.NewReader("streamed")), "")
	require.NoError(t, err)
	assert.Equal(t, int64(8), info.Size)
}

func TestS3Store_PutExisting(t *testing.T) {
	m := new(mockS3)
	s := &S3Store{client: m, bucket: "evidence"}
	ctx := context.Background()

	m.On("HeadObject", ctx, mock.Anything).Return(&s3.HeadObjectOutput{}, nil)

	_, err := s.Put(ctx, "p/1", strings.NewReader("x"), "")
	assert.True(t, errors.Is(err, ErrExists))
	m.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}

func TestS3Store_Get(t *testing.T) {
	m := new(mockS3)
	s := &S3Store{client: m, bucket: "evidence"}
	ctx := context.Background()

	m.On("GetObject", ctx, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return aws.ToString(in.Key) == "p/1"
	})).Return(&s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader("hello")),
		ContentType:   aws.String("image/png"),
		ContentLength: aws.Int64(5),
	}, nil)
	m.On("GetObject", ctx, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return aws.ToString(in.Key) == "missing"
	})).Return(nil, &types.NoSuchKey{})

	info, rc, err := s.Get(ctx, "p/1")
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "image/png", info.ContentType)
	assert.Equal(t, int64(5), info.Size)

	_, _, err = s.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

// fakeS3 — минимальный S3 по http: path-style, объекты в памяти.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.Method {
	case http.MethodHead, http.MethodGet:
		b, ok := f.objects[r.URL.Path]
		if !ok {
			if r.Method == http.MethodGet {
				w.Header().Set("Content-Type", "application/xml")
				w.WriteHeader(http.StatusNotFound)
				_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>not found</Message></Error>`)
				return
			}
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", f.types[r.URL.Path])
		w.Header().Set("Content-Length", strconv.Itoa(len(b)))
		w.Header().Set("ETag", `"e1"`)
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write(b)
		}
	case http.MethodPut:
		b, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.objects[r.URL.Path] = b
		f.types[r.URL.Path] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"e1"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3Store_PlainHTTPEndpoint(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	ctx := context.Background()
	s, err := NewS3Store(ctx, S3Config{
		Bucket:          "evidence",
		Region:          "us-east-1",
		Endpoint:        srv.URL,
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		PathStyle:       true,
	})
	require.NoError(t, err)

	// тело без Seek, как после чтения из multipart-потока
	photo := []byte("\x89PNG\r\n\x1a\nphoto-bytes")
	body := io.MultiReader(bytes.NewReader(photo[:4]), bytes.NewReader(photo[4:]))
	info, err := s.Put(ctx, "properties/p1/a", body, "image/png")
	require.NoError(t, err)
	assert.Equal(t, int64(len(photo)), info.Size)
	assert.Equal(t, "e1", info.ETag)

	fake.mu.Lock()
	stored := fake.objects["/evidence/properties/p1/a"]
	fake.mu.Unlock()
	assert.Equal(t, photo, stored)

	got, rc, err := s.Get(ctx, "properties/p1/a")
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, photo, b)
	assert.Equal(t, "image/png", got.ContentType)

	_, err = s.Put(ctx, "properties/p1/a", bytes.NewReader(photo), "image/png")
	assert.True(t, errors.Is(err, ErrExists))

	_, _, err = s.Get(ctx, "properties/p1/missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}
