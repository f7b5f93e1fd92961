package service

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/forkful/forkful-backend/config"
)

// ImageService stores recipe images in S3 and hands back the public URL that
// becomes the recipe's image reference.
type ImageService struct {
	s3Config *config.S3Config
	log      zerolog.Logger
}

// NewImageService creates a new ImageService instance.
func NewImageService(s3Config *config.S3Config, log zerolog.Logger) *ImageService {
	return &ImageService{s3Config: s3Config, log: log}
}

// UploadRecipeImage uploads image data under a fresh key and returns the
// public URL.
func (s *ImageService) UploadRecipeImage(ctx context.Context, imageData []byte, contentType, ext string) (string, error) {
	if ext == "" {
		ext = ".png"
	}
	fileName := path.Join("recipe-images", uuid.New().String()+ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	s.log.Info().Str("url", publicURL).Msg("uploaded recipe image")
	return publicURL, nil
}
