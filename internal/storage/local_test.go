package storage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrportal/internal/config"
	"hrportal/pkg/apperror"
)

func TestLocalStorage_SaveThenResolve(t *testing.T) {
	st, err := NewLocalStorage(&config.StorageConfig{UploadDir: t.TempDir(), PublicBaseURL: "/uploads/"})
	require.NoError(t, err)
	ctx := context.Background()

	company := uuid.New()

	key, err := st.Save(ctx, company, "../../Employment Letter.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, "-Employment_Letter.pdf"), key)
	assert.NotContains(t, key, "/")

	owner, ok := UploadCompany(key)
	require.True(t, ok)
	assert.Equal(t, company, owner)

	path, err := st.Path(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(st.dir, key), path)

	url, err := st.Resolve(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+key, url)
}

func TestLocalStorage_ResolveRejectsUnknownAndTraversal(t *testing.T) {
	st, err := NewLocalStorage(&config.StorageConfig{UploadDir: t.TempDir(), PublicBaseURL: "/uploads"})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = st.Resolve(ctx, "missing.pdf")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = st.Resolve(ctx, "../etc/passwd")
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	_, err = st.Resolve(ctx, "")
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestUploadCompany(t *testing.T) {
	company := uuid.New()

	got, ok := UploadCompany(company.String() + "_" + uuid.NewString() + "-letter.pdf")
	assert.True(t, ok)
	assert.Equal(t, company, got)

	for _, key := range []string{"", "letter.pdf", uuid.NewString(), "not-a-uuid-at-all-not-a-uuid-at-all_x"} {
		_, ok := UploadCompany(key)
		assert.False(t, ok, key)
	}
}
