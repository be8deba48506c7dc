package utils

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"resumeforge/internal/config"
	"resumeforge/internal/logging"
	"resumeforge/internal/logging/types"
)

// SpacesClient wraps the S3 client for DigitalOcean Spaces operations
type SpacesClient struct {
	client     *s3.S3
	bucketName string
	bucketURL  string
	cdnURL     string
	logger     types.Logger
}

// NewSpacesClient creates a new DigitalOcean Spaces client
func NewSpacesClient(cfg *config.Config) (*SpacesClient, error) {
	logger := logging.GetGlobalLogger()

	if cfg.DigitalOcean.Spaces.AccessKeyID == "" || cfg.DigitalOcean.Spaces.AccessKeySecret == "" {
		return nil, fmt.Errorf("DigitalOcean Spaces credentials are required")
	}

	if cfg.DigitalOcean.Spaces.BucketURL == "" {
		return nil, fmt.Errorf("DigitalOcean Spaces bucket URL is required")
	}

	// Region-based endpoint, e.g. https://blr1.digitaloceanspaces.com
	endpoint := fmt.Sprintf("https://%s.digitaloceanspaces.com", cfg.DigitalOcean.Spaces.Region)

	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(
			cfg.DigitalOcean.Spaces.AccessKeyID,
			cfg.DigitalOcean.Spaces.AccessKeySecret,
			"",
		),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(cfg.DigitalOcean.Spaces.Region),
		S3ForcePathStyle: aws.Bool(false), // virtual-hosted-style for DigitalOcean Spaces
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create DigitalOcean Spaces session: %w", err)
	}

	logger.Info("DigitalOcean Spaces client initialized", map[string]interface{}{
		"bucket_name": cfg.DigitalOcean.Spaces.BucketName,
		"region":      cfg.DigitalOcean.Spaces.Region,
		"endpoint":    endpoint,
	})

	return &SpacesClient{
		client:     s3.New(sess),
		bucketName: cfg.DigitalOcean.Spaces.BucketName,
		bucketURL:  cfg.DigitalOcean.Spaces.BucketURL,
		cdnURL:     cfg.DigitalOcean.Spaces.CDNEndpoint,
		logger:     logger,
	}, nil
}

// UploadResumePDF uploads a generated resume PDF and returns its public URL.
// The object key embeds the user ID and the upload timestamp so successive
// exports never overwrite each other.
func (sc *SpacesClient) UploadResumePDF(userID string, pdfData []byte) (string, error) {
	objectKey := fmt.Sprintf("resumes/generated/%s-%d.pdf", userID, time.Now().Unix())

	sc.logger.Info("Uploading resume PDF to DigitalOcean Spaces", map[string]interface{}{
		"user_id":    userID,
		"object_key": objectKey,
		"size_bytes": len(pdfData),
	})

	_, err := sc.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(sc.bucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(pdfData),
		ContentType: aws.String("application/pdf"),
		ACL:         aws.String("public-read"),
	})

	if err != nil {
		sc.logger.Error("Failed to upload resume PDF to DigitalOcean Spaces", map[string]interface{}{
			"user_id":    userID,
			"object_key": objectKey,
			"error":      err.Error(),
		})
		return "", fmt.Errorf("failed to upload resume pdf: %w", err)
	}

	url := sc.publicURL(objectKey)

	sc.logger.Info("Resume PDF uploaded successfully", map[string]interface{}{
		"user_id":    userID,
		"object_key": objectKey,
		"url":        url,
	})

	return url, nil
}

// publicURL builds the externally reachable URL for an object key, preferring
// the CDN endpoint when one is configured.
func (sc *SpacesClient) publicURL(objectKey string) string {
	if sc.cdnURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(sc.cdnURL, "/"), objectKey)
	}

	if sc.bucketURL != "" {
		base := strings.TrimRight(sc.bucketURL, "/")
		if !strings.HasPrefix(base, "https://") {
			base = "https://" + base
		}
		return fmt.Sprintf("%s/%s", base, objectKey)
	}

	region := ""
	if sc.client.Config.Region != nil {
		region = *sc.client.Config.Region
	}
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", sc.bucketName, region, objectKey)
}

// IsHealthy checks if the Spaces client can communicate with the service
func (sc *SpacesClient) IsHealthy() bool {
	_, err := sc.client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(sc.bucketName),
	})

	healthy := err == nil
	if !healthy {
		sc.logger.Error("DigitalOcean Spaces health check failed", map[string]interface{}{
			"bucket_name": sc.bucketName,
			"error":       err.Error(),
		})
	}

	return healthy
}
