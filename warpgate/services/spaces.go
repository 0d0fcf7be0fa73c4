package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	wgconfig "github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
)

// ObjectStore is the part of the S3 client the service uses.
type ObjectStore interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type SpacesService struct {
	client   ObjectStore
	bucket   string
	region   string
	CardRoot string
}

func NewSpacesService(ctx context.Context, spacesKey, spacesSecret, region, bucket, cardRoot string) (*SpacesService, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf(wgconfig.SpacesEndpointFormat, region))
	})
	return NewSpacesServiceWithClient(client, region, bucket, cardRoot), nil
}

func NewSpacesServiceWithClient(client ObjectStore, region, bucket, cardRoot string) *SpacesService {
	return &SpacesService{
		client:   client,
		bucket:   bucket,
		region:   region,
		CardRoot: strings.Trim(cardRoot, "/"),
	}
}

var unsafeKeyChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// CardKey is the object key for a card template's artwork.
func (s *SpacesService) CardKey(card *models.Card, ext string) string {
	slug := unsafeKeyChars.ReplaceAllString(strings.ToLower(card.BaseName), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "card"
	}
	name := fmt.Sprintf("%d_%s%s", card.ID, slug, ext)
	return path.Join(s.CardRoot, card.Rarity, name)
}

// PublicURL is the CDN address of key.
func (s *SpacesService) PublicURL(key string) string {
	return fmt.Sprintf(wgconfig.SpacesPublicFormat, s.bucket, s.region, key)
}

// UploadCardImage stores image data for card and returns its public URL.
func (s *SpacesService) UploadCardImage(ctx context.Context, card *models.Card, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image for card %d", card.ID)
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported image type %s", contentType)
	}

	key := s.CardKey(card, ext)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
		ACL:          types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	slog.Info("Card image uploaded",
		slog.String("type", "sys"),
		slog.Int64("card_id", card.ID),
		slog.String("key", key))
	return s.PublicURL(key), nil
}

// DeleteCardImage removes the artwork stored under url, if it is ours.
func (s *SpacesService) DeleteCardImage(ctx context.Context, url string) error {
	base := s.PublicURL("")
	if !strings.HasPrefix(url, base) {
		return fmt.Errorf("image %s is not stored in bucket %s", url, s.bucket)
	}
	key := strings.TrimPrefix(url, base)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// CardImageSetter persists the artwork URL of a card template.
type CardImageSetter interface {
	SetImage(ctx context.Context, id int64, url string) error
}

// AttachCardImage uploads data and points the card at it. The object is
// removed again when the URL cannot be saved.
func (s *SpacesService) AttachCardImage(ctx context.Context, cards CardImageSetter, card *models.Card, data []byte) (string, error) {
	url, err := s.UploadCardImage(ctx, card, data)
	if err != nil {
		return "", err
	}
	if err := cards.SetImage(ctx, card.ID, url); err != nil {
		if delErr := s.DeleteCardImage(ctx, url); delErr != nil {
			slog.Warn("Failed to remove orphaned card image",
				slog.String("type", "sys"),
				slog.String("url", url),
				slog.Any("error", delErr))
		}
		return "", fmt.Errorf("failed to save image url: %w", err)
	}
	card.ImageURL = url
	return url, nil
}

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}
