package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putKey string
	putErr error

	getRC  io.ReadCloser
	getErr error

	removedKey string
	removeErr  error

	statErr error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeMinio) MakeBucket(_ context.Context, bucketName string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = bucketName
	return f.makeBucketErr
}

func (f *fakeMinio) PutObject(_ context.Context, _, objectName string, _ io.Reader, _ int64, _ minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.putKey = objectName
	return minioLib.UploadInfo{}, f.putErr
}

func (f *fakeMinio) GetObject(_ context.Context, _, _ string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	return f.getRC, f.getErr
}

func (f *fakeMinio) RemoveObject(_ context.Context, _, objectName string, _ minioLib.RemoveObjectOptions) error {
	f.removedKey = objectName
	return f.removeErr
}

func (f *fakeMinio) StatObject(_ context.Context, _, _ string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return minioLib.ObjectInfo{}, f.statErr
}

func TestNewClientWithAPI_BucketExists(t *testing.T) {
	api := &fakeMinio{bucketExists: true}

	c, err := NewClientWithAPI(context.Background(), api, "images")
	require.NoError(t, err)
	assert.Equal(t, "images", c.bucket)
	assert.Empty(t, api.madeBucket)
}

func TestNewClientWithAPI_CreateBucket(t *testing.T) {
	api := &fakeMinio{bucketExists: false}

	c, err := NewClientWithAPI(context.Background(), api, "images")
	require.NoError(t, err)
	assert.Equal(t, "images", c.bucket)
	assert.Equal(t, "images", api.madeBucket)
}

func TestNewClientWithAPI_BucketExistsError(t *testing.T) {
	api := &fakeMinio{bucketExistsErr: errors.New("network down")}

	c, err := NewClientWithAPI(context.Background(), api, "images")
	assert.Nil(t, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure bucket exists")
}

func TestNewClientWithAPI_MakeBucketError(t *testing.T) {
	api := &fakeMinio{bucketExists: false, makeBucketErr: errors.New("denied")}

	c, err := NewClientWithAPI(context.Background(), api, "images")
	assert.Nil(t, c)
	require.Error(t, err)
}

func TestClient_Upload(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, "images")
	require.NoError(t, err)

	err = c.Upload(context.Background(), "object-key", bytes.NewReader([]byte("image bytes")))
	require.NoError(t, err)
	assert.Equal(t, "object-key", api.putKey)
}

func TestClient_UploadError(t *testing.T) {
	api := &fakeMinio{bucketExists: true, putErr: errors.New("quota exceeded")}
	c, err := NewClientWithAPI(context.Background(), api, "images")
	require.NoError(t, err)

	err = c.Upload(context.Background(), "object-key", bytes.NewReader(nil))
	require.Error(t, err)
}

func TestClient_Download(t *testing.T) {
	api := &fakeMinio{
		bucketExists: true,
		getRC:        io.NopCloser(bytes.NewReader([]byte("image bytes"))),
	}
	c, err := NewClientWithAPI(context.Background(), api, "images")
	require.NoError(t, err)

	rc, err := c.Download(context.Background(), "object-key")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), data)
}

func TestClient_DownloadError(t *testing.T) {
	api := &fakeMinio{bucketExists: true, getErr: errors.New("unavailable")}
	c, err := NewClientWithAPI(context.Background(), api, "images")
	require.NoError(t, err)

	rc, err := c.Download(context.Background(), "object-key")
	assert.Nil(t, rc)
	require.Error(t, err)
}

func TestClient_Delete(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, "images")
	require.NoError(t, err)

	err = c.Delete(context.Background(), "object-key")
	require.NoError(t, err)
	assert.Equal(t, "object-key", api.removedKey)
}

func TestClient_Exists(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, "images")
	require.NoError(t, err)

	exists, err := c.Exists(context.Background(), "object-key")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestClient_ExistsNoSuchKey(t *testing.T) {
	api := &fakeMinio{
		bucketExists: true,
		statErr:      minioLib.ErrorResponse{Code: "NoSuchKey"},
	}
	c, err := NewClientWithAPI(context.Background(), api, "images")
	require.NoError(t, err)

	exists, err := c.Exists(context.Background(), "object-key")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClient_ExistsError(t *testing.T) {
	api := &fakeMinio{bucketExists: true, statErr: errors.New("timeout")}
	c, err := NewClientWithAPI(context.Background(), api, "images")
	require.NoError(t, err)

	exists, err := c.Exists(context.Background(), "object-key")
	require.Error(t, err)
	assert.False(t, exists)
}
