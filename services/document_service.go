package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/anjiri1684/aptitude_quiz/documents"
	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const documentFolder = "aptitude_quiz_documents"

type DocumentExtraction struct {
	Text      string `json:"text"`
	SourceURL string `json:"source_url,omitempty"`
}

// Archiver keeps a copy of an uploaded source document.
type Archiver interface {
	Archive(ctx context.Context, filename string, data []byte) (string, error)
}

type DocumentService struct {
	archiver Archiver
}

func NewDocumentService(archiver Archiver) *DocumentService {
	return &DocumentService{archiver: archiver}
}

func (s *DocumentService) Extract(ctx context.Context, filename string, data []byte) (DocumentExtraction, error) {
	if len(data) == 0 {
		return DocumentExtraction{}, fmt.Errorf("%w: uploaded file is empty", models.ErrValidation)
	}
	text, err := documents.ExtractText(filename, data)
	if err != nil {
		return DocumentExtraction{}, err
	}

	out := DocumentExtraction{Text: text}
	if s.archiver != nil {
		sourceURL, err := s.archiver.Archive(ctx, filename, data)
		if err != nil {
			log.Printf("⚠️ Failed to archive uploaded document %s: %v", filename, err)
		} else {
			out.SourceURL = sourceURL
		}
	}
	return out, nil
}

type CloudinaryArchiver struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryArchiver(cloudinaryURL string) (*CloudinaryArchiver, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("initialize cloudinary: %w", err)
	}
	return &CloudinaryArchiver{cld: cld}, nil
}

func (a *CloudinaryArchiver) Archive(ctx context.Context, filename string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	res, err := a.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     fmt.Sprintf("%s_%s", base, uuid.New().String()),
		Folder:       documentFolder,
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}

type UploadSignature struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	APIKey    string `json:"api_key"`
	CloudName string `json:"cloud_name"`
	Folder    string `json:"folder"`
}

// SignUpload lets the browser upload a document straight to Cloudinary.
func SignUpload(cloudinaryURL string, now time.Time) (UploadSignature, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return UploadSignature{}, fmt.Errorf("initialize cloudinary: %w", err)
	}
	parsedURL, err := url.Parse(cloudinaryURL)
	if err != nil {
		return UploadSignature{}, fmt.Errorf("parse cloudinary url: %w", err)
	}
	secret, _ := parsedURL.User.Password()

	paramsToSign, err := api.StructToParams(uploader.UploadParams{Folder: documentFolder})
	if err != nil {
		return UploadSignature{}, fmt.Errorf("prepare signature params: %w", err)
	}
	timestamp := now.Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return UploadSignature{}, fmt.Errorf("sign upload params: %w", err)
	}

	return UploadSignature{
		Signature: signature,
		Timestamp: timestamp,
		APIKey:    cld.Config.Cloud.APIKey,
		CloudName: cld.Config.Cloud.CloudName,
		Folder:    documentFolder,
	}, nil
}
