// Package bundle exports a recommendation together with the requirements that
// produced it, protected by a content hash and an HMAC signature.
package bundle

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

// Version of the bundle format
const Version = "1.0"

// Bundle is the exported, self-verifying document
type Bundle struct {
	Version      string                      `json:"version"`
	ID           uuid.UUID                   `json:"id"`
	CreatedAt    string                      `json:"created_at"`
	Requirements models.ProjectRequirements  `json:"requirements"`
	Result       models.RecommendationResult `json:"result"`
	ContentHash  string                      `json:"content_hash"`
	HashChain    string                      `json:"hash_chain"`
	Signature    string                      `json:"signature,omitempty"`
}

// VerificationResult holds the result of verification
type VerificationResult struct {
	Valid          bool     `json:"valid"`
	HashValid      bool     `json:"hash_valid"`
	SignatureValid bool     `json:"signature_valid"`
	Signed         bool     `json:"signed"`
	Errors         []string `json:"errors"`
}

// Service signs and verifies bundles
type Service struct {
	signingKey []byte
	now        func() time.Time
}

// NewService creates a Service; an empty key produces unsigned bundles
func NewService(signingKey string) *Service {
	return &Service{signingKey: []byte(signingKey), now: time.Now}
}

// Build creates a bundle for result
func (s *Service) Build(req models.ProjectRequirements, result models.RecommendationResult) (*Bundle, error) {
	b := &Bundle{
		Version:      Version,
		ID:           uuid.New(),
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
		Requirements: req,
		Result:       result,
	}

	contentHash, err := computeContentHash(b)
	if err != nil {
		return nil, err
	}
	b.ContentHash = contentHash
	b.HashChain = computeHashChain(b)
	if len(s.signingKey) > 0 {
		b.Signature = s.sign(b.HashChain)
	}
	return b, nil
}

// Verify recomputes hash and signature. An unsigned bundle is valid with a
// warning only when the verifier holds no signing key.
func (s *Service) Verify(b *Bundle) VerificationResult {
	result := VerificationResult{Valid: true, Errors: []string{}}

	expected, err := computeContentHash(b)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to hash content: %v", err))
		return result
	}
	result.HashValid = expected == b.ContentHash && computeHashChain(b) == b.HashChain
	if !result.HashValid {
		result.Valid = false
		result.Errors = append(result.Errors, "Content hash mismatch - bundle may have been tampered")
	}

	switch {
	case b.Signature == "" && len(s.signingKey) > 0:
		result.Valid = false
		result.Errors = append(result.Errors, "bundle is unsigned but a signing key is configured")
	case b.Signature == "":
		result.SignatureValid = true
		result.Errors = append(result.Errors, "Warning: Bundle is unsigned")
	case len(s.signingKey) == 0:
		result.Signed = true
		result.Errors = append(result.Errors, "Warning: no signing key available, signature not checked")
	default:
		result.Signed = true
		result.SignatureValid = hmac.Equal([]byte(s.sign(b.HashChain)), []byte(b.Signature))
		if !result.SignatureValid {
			result.Valid = false
			result.Errors = append(result.Errors, "Signature verification failed")
		}
	}
	return result
}

// Load reads a bundle from disk
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	return &b, nil
}

// Write stores a bundle as indented JSON
func Write(path string, b *Bundle) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// computeContentHash hashes the canonical JSON of requirements and result
func computeContentHash(b *Bundle) (string, error) {
	canonical, err := json.Marshal(struct {
		Requirements models.ProjectRequirements  `json:"requirements"`
		Result       models.RecommendationResult `json:"result"`
	}{b.Requirements, b.Result})
	if err != nil {
		return "", fmt.Errorf("canonical encoding: %w", err)
	}
	return "sha256:" + computeHash(canonical), nil
}

// computeHashChain binds the content hash to the bundle identity and time
func computeHashChain(b *Bundle) string {
	data := fmt.Sprintf("%s:%s:%s:%s", b.Version, b.ID.String(), b.CreatedAt, b.ContentHash)
	return computeHash([]byte(data))
}

func computeHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// sign creates an HMAC-SHA256 signature
func (s *Service) sign(data string) string {
	h := hmac.New(sha256.New, s.signingKey)
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
