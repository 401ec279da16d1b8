package common

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"blueline/reservehub/internal/constants"
)

// StorageService stores uploaded member files (resumes, policy PDFs) on disk
// and hands out short-lived signed download URLs. Signed URLs are cached so a
// dashboard re-render within the TTL reuses the same link.
type StorageService struct {
	root       string
	endpoint   string
	signingKey []byte
	cache      CacheInterface
}

const signedURLTTL = 15 * time.Minute

func NewStorageService(cache CacheInterface) *StorageService {
	root := os.Getenv("STORAGE_ROOT")
	if root == "" {
		root = "./uploads"
	}

	endpoint := os.Getenv("STORAGE_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	key := os.Getenv("STORAGE_SIGNING_KEY")
	if key == "" {
		key = "dev-storage-key"
	}

	return &StorageService{
		root:       root,
		endpoint:   endpoint,
		signingKey: []byte(key),
		cache:      cache,
	}
}

// Upload writes the file contents under a generated name and returns the
// storage path recorded on the owning row.
func (s *StorageService) Upload(dir, originalName string, contents io.Reader) (string, error) {
	ext := filepath.Ext(originalName)
	name := uuid.New().String() + ext
	relPath := filepath.Join(dir, name)
	fullPath := filepath.Join(s.root, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage dir: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, contents); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return relPath, nil
}

// Open returns a reader for a previously stored path.
func (s *StorageService) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.root, path))
	if err != nil {
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return f, nil
}

// SignedURL returns a download URL carrying an HMAC-signed token for the path.
func (s *StorageService) SignedURL(path string) (string, error) {
	cacheKey := string(constants.CachePrefixSignedURL) + path
	if val, found := s.cache.Get(cacheKey); found {
		if url, ok := val.(string); ok {
			return url, nil
		}
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"path": path,
		"jti":  uuid.New().String(),
		"exp":  now.Add(signedURLTTL).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/files?token=%s", s.endpoint, tokenString)

	// Cache slightly under the token TTL so a cached URL is never expired
	s.cache.Set(cacheKey, url, signedURLTTL-time.Minute)
	return url, nil
}

// ValidateDownloadToken checks a signed download token and returns the path it grants.
func (s *StorageService) ValidateDownloadToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	path, ok := (*claims)["path"].(string)
	if !ok {
		return "", errors.New("missing or invalid path claim")
	}

	return path, nil
}
