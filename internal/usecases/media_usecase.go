package usecases

import (
	"context"
	"io"

	"motorhub.backend/internal/domain/authz"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/domain/repositories"
)

// MediaUsecase uploads listing images and KYC artifacts
type MediaUsecase struct {
	blobStore repositories.BlobStore
}

// NewMediaUsecase creates a new media usecase
func NewMediaUsecase(blobStore repositories.BlobStore) *MediaUsecase {
	return &MediaUsecase{blobStore: blobStore}
}

// Upload stores a file for the caller and returns its public URL
func (u *MediaUsecase) Upload(ctx context.Context, actor entities.Actor, filename, contentType string, r io.Reader) (string, error) {
	if err := authz.Require(actor, authz.UploadBlob, authz.SubjectTarget(actor.ID)); err != nil {
		return "", err
	}
	return u.blobStore.Upload(ctx, filename, contentType, r)
}
