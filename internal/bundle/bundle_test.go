package bundle

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

func sample() (models.ProjectRequirements, models.RecommendationResult) {
	req := models.ProjectRequirements{Domain: models.DomainGeneric, ProjectName: "Shop", ProjectType: "webapp", Description: "An online shop"}
	res := models.RecommendationResult{
		ID:          uuid.New(),
		Origin:      models.OriginFallback,
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Recommendation: models.ArchitectureRecommendation{
			Pattern:     "Layered Architecture",
			Description: "A webapp application with a layered architecture approach.",
		},
	}
	return req, res
}

func TestBuildAndVerify(t *testing.T) {
	svc := NewService("test-secret-key-123")
	req, res := sample()

	b, err := svc.Build(req, res)
	require.NoError(t, err)
	assert.Equal(t, Version, b.Version)
	assert.Contains(t, b.ContentHash, "sha256:")
	assert.Len(t, b.HashChain, 64)
	assert.NotEmpty(t, b.Signature)

	result := svc.Verify(b)
	assert.True(t, result.Valid)
	assert.True(t, result.HashValid)
	assert.True(t, result.SignatureValid)
	assert.Empty(t, result.Errors)
}

func TestVerifyDetectsTampering(t *testing.T) {
	svc := NewService("key")
	req, res := sample()
	b, err := svc.Build(req, res)
	require.NoError(t, err)

	b.Result.Recommendation.Pattern = "Microservices"
	result := svc.Verify(b)
	assert.False(t, result.Valid)
	assert.False(t, result.HashValid)
}

func TestVerifyDetectsWrongKey(t *testing.T) {
	req, res := sample()
	b, err := NewService("key-a").Build(req, res)
	require.NoError(t, err)

	result := NewService("key-b").Verify(b)
	assert.True(t, result.HashValid)
	assert.False(t, result.SignatureValid)
	assert.False(t, result.Valid)
}

func TestUnsignedBundle(t *testing.T) {
	req, res := sample()
	b, err := NewService("").Build(req, res)
	require.NoError(t, err)
	assert.Empty(t, b.Signature)

	result := NewService("").Verify(b)
	assert.True(t, result.Valid)
	assert.Contains(t, result.Errors, "Warning: Bundle is unsigned")
}

func TestVerifyRejectsStrippedSignature(t *testing.T) {
	svc := NewService("secret")
	req, res := sample()
	b, err := svc.Build(req, res)
	require.NoError(t, err)

	b.Result.Recommendation.Pattern = "Tampered"
	b.ContentHash, err = computeContentHash(b)
	require.NoError(t, err)
	b.HashChain = computeHashChain(b)
	b.Signature = ""

	result := svc.Verify(b)
	assert.True(t, result.HashValid)
	assert.False(t, result.SignatureValid)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "bundle is unsigned but a signing key is configured")
}

func TestWriteLoadRoundTrip(t *testing.T) {
	svc := NewService("key")
	req, res := sample()
	b, err := svc.Build(req, res)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, Write(path, b))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, svc.Verify(loaded).Valid)
}
