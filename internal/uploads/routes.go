package uploads

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vistapra/content-hub-go/internal/api"
	"github.com/vistapra/content-hub-go/internal/apperrors"
)

// maxUploadBytes caps a single uploaded file at 32 MiB.
const maxUploadBytes = 32 << 20

// Service stores uploaded media under a static-file root and hands back
// publicly-resolvable URLs. Consumers only ever treat these URLs as
// opaque strings in image/media fields.
type Service struct {
	dir           string
	publicBaseURL string
}

// NewService creates the upload service, making sure the directory exists.
func NewService(dir, publicBaseURL string) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Service{dir: dir, publicBaseURL: publicBaseURL}, nil
}

// Dir returns the static-file root, for serving.
func (s *Service) Dir() string { return s.dir }

// RegisterRoutes wires upload routes to the router.
func RegisterRoutes(router chi.Router, service *Service) {
	router.Method(http.MethodPost, "/v1/uploads", api.Handler(uploadFile(service)))
}

func uploadFile(service *Service) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		file, header, err := r.FormFile("file")
		if err != nil {
			return apperrors.NewAppError(apperrors.ErrorCodeUploadRejected, "No file uploaded", 400, nil)
		}
		defer file.Close()

		url, err := service.Store(file, header.Filename)
		if err != nil {
			return apperrors.NewInternalError("Failed to store upload")
		}

		return api.WriteResource(w, http.StatusCreated, map[string]any{
			"object": api.ObjectUpload,
			"url":    url,
		})
	}
}

// Store writes the uploaded content under a uuid filename (original
// extension kept) and returns its public URL.
func (s *Service) Store(src io.Reader, originalName string) (string, error) {
	name := uuid.NewString() + filepath.Ext(originalName)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}

	return s.publicBaseURL + "/v1/uploads/" + name, nil
}
