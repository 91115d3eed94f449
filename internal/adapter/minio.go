package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-state-sync/internal/config"
	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/utils"
	"github.com/MKhiriev/go-state-sync/models"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	minioObjectPrefix = "states/"

	minioVersionKey = "Version"
	minioHashKey    = "Content-Hash"
)

type minioRemoteProvider struct {
	client *minio.Client
	bucket string

	logger *logger.Logger
}

// NewMinioRemoteProvider constructs an S3-compatible implementation of
// [RemoteProvider]. Every state is one object under the "states/" prefix of
// cfg.Bucket; its remote version and content hash travel in the object's
// user metadata.
//
// Versions are derived from the previous object's metadata, so two devices
// pushing the same id at the same moment may be assigned the same version.
func NewMinioRemoteProvider(cfg config.Minio, logger *logger.Logger) (RemoteProvider, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: minio needs an endpoint and a bucket", ErrInvalidAddress)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &minioRemoteProvider{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

// Name implements [RemoteProvider].
func (m *minioRemoteProvider) Name() string {
	return "minio"
}

// IsAvailable implements [RemoteProvider]. The bucket must exist.
func (m *minioRemoteProvider) IsAvailable(ctx context.Context) bool {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		m.logger.Debug().Err(err).Str("func", "minioRemoteProvider.IsAvailable").Msg("bucket check failed")
		return false
	}
	return exists
}

// Fetch implements [RemoteProvider].
func (m *minioRemoteProvider) Fetch(ctx context.Context, id models.StateID) (*models.RemoteState, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, objectKey(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		if isNoSuchKey(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat object: %w", err)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}

	return remoteStateFromObject(info, string(data)), nil
}

// Push implements [RemoteProvider].
func (m *minioRemoteProvider) Push(ctx context.Context, id models.StateID, state models.StoredState) (uint64, error) {
	current, _, err := m.GetVersion(ctx, id)
	if err != nil {
		return 0, err
	}
	next := current + 1

	_, err = m.client.PutObject(ctx, m.bucket, objectKey(id),
		strings.NewReader(state.Data), int64(len(state.Data)),
		minio.PutObjectOptions{
			ContentType: "application/octet-stream",
			UserMetadata: map[string]string{
				minioVersionKey: strconv.FormatUint(next, 10),
				minioHashKey:    strconv.FormatUint(utils.ContentHash(state.Data), 10),
			},
		})
	if err != nil {
		return 0, fmt.Errorf("put object: %w", err)
	}

	return next, nil
}

// Delete implements [RemoteProvider].
func (m *minioRemoteProvider) Delete(ctx context.Context, id models.StateID) (bool, error) {
	_, ok, err := m.GetVersion(ctx, id)
	if err != nil || !ok {
		return false, err
	}

	if err = m.client.RemoveObject(ctx, m.bucket, objectKey(id), minio.RemoveObjectOptions{}); err != nil {
		return false, fmt.Errorf("remove object: %w", err)
	}
	return true, nil
}

// List implements [RemoteProvider].
func (m *minioRemoteProvider) List(ctx context.Context) ([]models.StateID, error) {
	var ids []models.StateID
	for info := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: minioObjectPrefix, Recursive: true}) {
		if info.Err != nil {
			return nil, fmt.Errorf("list objects: %w", info.Err)
		}
		ids = append(ids, idFromKey(info.Key))
	}
	return ids, nil
}

// GetVersion implements [RemoteProvider].
func (m *minioRemoteProvider) GetVersion(ctx context.Context, id models.StateID) (uint64, bool, error) {
	info, err := m.client.StatObject(ctx, m.bucket, objectKey(id), minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("stat object: %w", err)
	}
	return metaUint(info.Metadata, minioVersionKey), true, nil
}

func objectKey(id models.StateID) string {
	return minioObjectPrefix + id.String()
}

func idFromKey(key string) models.StateID {
	return models.StateID(strings.TrimPrefix(key, minioObjectPrefix))
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

// metaUint reads a numeric user metadata value. Missing or malformed values
// read as zero.
func metaUint(h http.Header, key string) uint64 {
	v, err := strconv.ParseUint(h.Get("X-Amz-Meta-"+key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func remoteStateFromObject(info minio.ObjectInfo, data string) *models.RemoteState {
	hash := metaUint(info.Metadata, minioHashKey)
	if hash == 0 {
		hash = utils.ContentHash(data)
	}

	modified := info.LastModified
	if modified.IsZero() {
		modified = time.Now()
	}

	return &models.RemoteState{
		Data:        data,
		Version:     metaUint(info.Metadata, minioVersionKey),
		ModifiedAt:  modified.UTC(),
		ContentHash: hash,
	}
}
