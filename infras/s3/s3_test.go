package s3_test

import (
	"bytes"
	"context"
	"errors"
	"larisa/infras/otel/mocks"
	"larisa/infras/s3"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsS3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	put     *awsS3.PutObjectInput
	deleted *awsS3.DeleteObjectInput
	err     error
}

func (f *fakeObjects) PutObject(_ context.Context, params *awsS3.PutObjectInput, _ ...func(*awsS3.Options)) (*awsS3.PutObjectOutput, error) {
	f.put = params

	return &awsS3.PutObjectOutput{}, f.err
}

func (f *fakeObjects) DeleteObject(_ context.Context, params *awsS3.DeleteObjectInput, _ ...func(*awsS3.Options)) (*awsS3.DeleteObjectOutput, error) {
	f.deleted = params

	return &awsS3.DeleteObjectOutput{}, f.err
}

func TestUpload(t *testing.T) {
	objects := &fakeObjects{}
	storage := s3.NewWithClient(objects, "larisa", "https://cdn.larisa.test/", mocks.NewOtel())

	url, err := storage.Upload(context.Background(), "room", "a.png", "image/png", bytes.NewReader([]byte("png")), 3)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.larisa.test/room/a.png", url)
	assert.Equal(t, "room/a.png", aws.ToString(objects.put.Key))
	assert.Equal(t, "larisa", aws.ToString(objects.put.Bucket))
	assert.Equal(t, "image/png", aws.ToString(objects.put.ContentType))
	assert.Equal(t, "a.png", storage.ObjectNameFromURL(url))
	assert.Empty(t, storage.ObjectNameFromURL("https://elsewhere.test/room/a.png"))
}

func TestUploadFailure(t *testing.T) {
	storage := s3.NewWithClient(&fakeObjects{err: errors.New("access denied")}, "larisa", "https://cdn.larisa.test", mocks.NewOtel())

	_, err := storage.Upload(context.Background(), "room", "a.png", "image/png", bytes.NewReader(nil), 0)

	assert.ErrorContains(t, err, "failed to upload file to S3")
}

func TestDelete(t *testing.T) {
	objects := &fakeObjects{}
	storage := s3.NewWithClient(objects, "larisa", "https://cdn.larisa.test", mocks.NewOtel())

	require.NoError(t, storage.Delete(context.Background(), "room", "a.png"))
	assert.Equal(t, "room/a.png", aws.ToString(objects.deleted.Key))
}
