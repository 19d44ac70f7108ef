package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	headErr   error
	deleted   []string
	deleteErr error
}

func (f *fakeObjects) HeadObject(_ context.Context, _ *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, *in.Key)
	return &s3.DeleteObjectOutput{}, f.deleteErr
}

type fakePresign struct{}

func (fakePresign) PresignPutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return &v4.PresignedHTTPRequest{URL: "https://s3/" + *in.Bucket + "/" + *in.Key + "?put", Method: "PUT"}, nil
}

func (fakePresign) PresignGetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return &v4.PresignedHTTPRequest{URL: "https://s3/" + *in.Bucket + "/" + *in.Key + "?get", Method: "GET"}, nil
}

func TestS3Store_UploadURL(t *testing.T) {
	s := newS3Store(&fakeObjects{}, fakePresign{}, "receipts", time.Minute)
	u, err := s.UploadURL(context.Background(), "users/u1/k")
	require.NoError(t, err)
	assert.Equal(t, "https://s3/receipts/users/u1/k?put", u)
}

func TestS3Store_URLObjetoInexistente(t *testing.T) {
	s := newS3Store(&fakeObjects{headErr: &types.NotFound{}}, fakePresign{}, "receipts", time.Minute)
	u, err := s.URL(context.Background(), "users/u1/k")
	require.NoError(t, err)
	assert.Empty(t, u)
}

func TestS3Store_URLExistente(t *testing.T) {
	s := newS3Store(&fakeObjects{}, fakePresign{}, "receipts", time.Minute)
	u, err := s.URL(context.Background(), "users/u1/k")
	require.NoError(t, err)
	assert.Equal(t, "https://s3/receipts/users/u1/k?get", u)
}

func TestS3Store_URLErrorDeRed(t *testing.T) {
	s := newS3Store(&fakeObjects{headErr: errors.New("timeout")}, fakePresign{}, "receipts", time.Minute)
	_, err := s.URL(context.Background(), "k")
	assert.Error(t, err)
}

func TestS3Store_Delete(t *testing.T) {
	objs := &fakeObjects{}
	s := newS3Store(objs, fakePresign{}, "receipts", time.Minute)
	require.NoError(t, s.Delete(context.Background(), "users/u1/k"))
	assert.Equal(t, []string{"users/u1/k"}, objs.deleted)
}

func TestMemoryStore_CicloDeVida(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore("http://localhost:8080/files")

	u, err := m.URL(ctx, "users/u1/k")
	require.NoError(t, err)
	assert.Empty(t, u)

	up, err := m.UploadURL(ctx, "users/u1/k")
	require.NoError(t, err)
	assert.Contains(t, up, "upload=1")

	u, err = m.URL(ctx, "users/u1/k")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/users%2Fu1%2Fk", u)

	require.NoError(t, m.Delete(ctx, "users/u1/k"))
	u, err = m.URL(ctx, "users/u1/k")
	require.NoError(t, err)
	assert.Empty(t, u)
}
