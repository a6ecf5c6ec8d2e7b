package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"health_record_ms/config"
	"health_record_ms/domain"
	"health_record_ms/dtos/request"
	"health_record_ms/dtos/response"
	"health_record_ms/repository"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type IDocumentService interface {
	List(userID uint) ([]domain.Document, error)
	Get(id uint) (*domain.Document, error)
	CreateUpload(ctx context.Context, userID uint, req *request.DocumentCreate) (*response.DocumentUpload, error)
	Download(ctx context.Context, id uint) (*response.DocumentDownload, error)
	DownloadShared(ctx context.Context, shareToken string) (*response.DocumentDownload, error)
	Transcribe(ctx context.Context, id uint) (*response.Transcript, error)
	Delete(ctx context.Context, id uint) error
}

type DocumentService struct {
	db         *gorm.DB
	repo       repository.IDocumentRepository
	storage    IStorageService
	transcribe ITranscriptionService
}

func NewDocumentService(db *gorm.DB, repo repository.IDocumentRepository, storage IStorageService, transcribe ITranscriptionService) IDocumentService {
	return &DocumentService{db: db, repo: repo, storage: storage, transcribe: transcribe}
}

func (s *DocumentService) List(userID uint) ([]domain.Document, error) {
	return s.repo.ListByUser(s.db, userID)
}

func (s *DocumentService) Get(id uint) (*domain.Document, error) {
	d, err := s.repo.GetByID(s.db, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return d, err
}

// CreateUpload records the document row and hands back a presigned PUT URL;
// the client uploads the bytes straight to object storage.
func (s *DocumentService) CreateUpload(ctx context.Context, userID uint, req *request.DocumentCreate) (*response.DocumentUpload, error) {
	key, err := s.storage.NewObjectKey(userID)
	if err != nil {
		return nil, err
	}
	doc, err := s.repo.Create(s.db, &domain.Document{
		UserID:      userID,
		Title:       req.Title,
		StorageKey:  key,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		return nil, err
	}
	uploadURL, err := s.storage.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		return nil, err
	}
	return &response.DocumentUpload{
		DocumentId: doc.ID,
		StorageKey: key,
		UploadUrl:  uploadURL,
	}, nil
}

func shareLinkTTL() time.Duration {
	mins := config.Conf.Application.Security.ShareLinkValidityInMins
	if mins <= 0 {
		mins = 15
	}
	return time.Duration(mins) * time.Minute
}

// shareToken signs a short-lived claim on the document id so a download link
// can be re-validated without a session.
func shareToken(documentID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.Itoa(int(documentID)),
		"iss": config.Conf.Application.DisplayName,
		"exp": time.Now().Add(shareLinkTTL()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Conf.Application.Security.ShareLinkSecret))
}

func parseShareToken(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.Conf.Application.Security.ShareLinkSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrUnauthenticated
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrUnauthenticated
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, domain.ErrUnauthenticated
	}
	id, err := strconv.Atoi(sub)
	if err != nil || id < 1 {
		return 0, domain.ErrUnauthenticated
	}
	return uint(id), nil
}

func (s *DocumentService) Download(ctx context.Context, id uint) (*response.DocumentDownload, error) {
	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	url, err := s.storage.PresignDownload(ctx, doc.StorageKey)
	if err != nil {
		return nil, err
	}
	share, err := shareToken(doc.ID)
	if err != nil {
		return nil, err
	}
	return &response.DocumentDownload{
		DocumentId:  doc.ID,
		DownloadUrl: url,
		ShareToken:  share,
	}, nil
}

func (s *DocumentService) DownloadShared(ctx context.Context, tokenStr string) (*response.DocumentDownload, error) {
	id, err := parseShareToken(tokenStr)
	if err != nil {
		return nil, err
	}
	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	url, err := s.storage.PresignDownload(ctx, doc.StorageKey)
	if err != nil {
		return nil, err
	}
	return &response.DocumentDownload{
		DocumentId:  doc.ID,
		DownloadUrl: url,
	}, nil
}

// Transcribe runs speech-to-text over an uploaded voice memo and caches the
// result on the document row.
func (s *DocumentService) Transcribe(ctx context.Context, id uint) (*response.Transcript, error) {
	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if doc.Transcript != "" {
		return &response.Transcript{DocumentId: doc.ID, Transcript: doc.Transcript}, nil
	}
	url, err := s.storage.PresignDownload(ctx, doc.StorageKey)
	if err != nil {
		return nil, err
	}
	text, err := s.transcribe.TranscribeURL(ctx, url, doc.ContentType)
	if err != nil {
		return nil, err
	}
	doc.Transcript = text
	if err := s.repo.Update(s.db, doc); err != nil {
		return nil, err
	}
	return &response.Transcript{DocumentId: doc.ID, Transcript: text}, nil
}

func (s *DocumentService) Delete(ctx context.Context, id uint) error {
	doc, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(s.db, id); err != nil {
		return err
	}
	// best effort; an orphaned object is reaped by bucket lifecycle rules
	_ = s.storage.DeleteObject(ctx, doc.StorageKey)
	return nil
}
