package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageServiceInterface is the object-storage boundary: it takes an
// uploaded proof image and returns a durable URL. The engine only ever
// stores the returned reference.
type StorageServiceInterface interface {
	UploadPaymentProof(ctx context.Context, file *multipart.FileHeader, reference string) (string, error)
}

type cloudinaryStorageService struct {
	client *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorageService(cloudinaryURL string) (StorageServiceInterface, error) {
	client, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &cloudinaryStorageService{client: client, folder: "payment-proofs"}, nil
}

func (s *cloudinaryStorageService) UploadPaymentProof(ctx context.Context, file *multipart.FileHeader, reference string) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	// The public ID is the transaction reference with overwrite on, so a
	// reference can never accumulate more than one asset: an upload whose
	// status transition loses its race is replaced by the next submission
	// rather than orphaned alongside it.
	result, err := s.client.Upload.Upload(ctx, f, uploader.UploadParams{
		Folder:    s.folder,
		PublicID:  reference,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return result.SecureURL, nil
}
