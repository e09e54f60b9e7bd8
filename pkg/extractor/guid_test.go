//go:build unit

package extractor

import (
	"context"
	"errors"
	iofs "io/fs"
	"path/filepath"
	"testing"

	"github.com/lerenn/asset-cleaner/pkg/catalog"
	fsmocks "github.com/lerenn/asset-cleaner/pkg/fs/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	guidMat    = "1111111111111111aaaaaaaaaaaaaaaa"
	guidTex    = "2222222222222222bbbbbbbbbbbbbbbb"
	guidPrefab = "3333333333333333cccccccccccccccc"
)

// newMemFS returns a mock FS serving ReadFile from the given project relative files.
func newMemFS(ctrl *gomock.Controller, root string, files map[string]string) *fsmocks.MockFS {
	mockFS := fsmocks.NewMockFS(ctrl)
	mockFS.EXPECT().ReadFile(gomock.Any()).DoAndReturn(func(path string) ([]byte, error) {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, err
		}
		content, ok := files[filepath.ToSlash(rel)]
		if !ok {
			return nil, &iofs.PathError{Op: "open", Path: path, Err: iofs.ErrNotExist}
		}
		return []byte(content), nil
	}).AnyTimes()
	mockFS.EXPECT().IsNotExist(gomock.Any()).DoAndReturn(func(err error) bool {
		return errors.Is(err, iofs.ErrNotExist)
	}).AnyTimes()
	return mockFS
}

func meta(guid string) string {
	return "fileFormatVersion: 2\nguid: " + guid + "\nNativeFormatImporter:\n  userData: \n"
}

func TestGUIDExtractor_GetDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	files := map[string]string{
		"Assets/wood.mat":          "Material:\n  m_Texture: {fileID: 2800000, guid: " + guidTex + ", type: 3}\n  again: {guid: " + guidTex + "}\n  builtin: {guid: 0000000000000000f000000000000000}\n",
		"Assets/wood.mat.meta":     meta(guidMat),
		"Assets/wood.png":          "\x89PNG\x00\x00guid: " + guidMat,
		"Assets/wood.png.meta":     meta(guidTex),
		"Assets/crate.prefab":      "m_Material: {guid: " + strings32upper(guidMat) + "}\nself: {guid: " + guidPrefab + "}\n",
		"Assets/crate.prefab.meta": meta(guidPrefab),
	}
	e := NewGUIDExtractor(NewGUIDExtractorParams{FS: newMemFS(ctrl, "/project", files), ProjectRoot: "/project"})

	require.NoError(t, e.Prepare(context.Background(), []catalog.Item{
		{Path: "Assets/wood.mat"},
		{Path: "Assets/wood.png"},
		{Path: "Assets/crate.prefab"},
	}))

	deps, err := e.GetDependencies("Assets/wood.mat")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/wood.png"}, deps, "duplicates and unknown GUIDs are dropped")

	deps, err = e.GetDependencies("Assets/wood.png")
	require.NoError(t, err)
	assert.Empty(t, deps, "binary content has no dependencies")

	deps, err = e.GetDependencies("Assets/crate.prefab")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/wood.mat", "Assets/crate.prefab"}, deps, "self references are left to the caller")

	guid, ok := e.IdentifierOf("Assets/wood.png")
	assert.True(t, ok)
	assert.Equal(t, guidTex, guid)
}

func TestGUIDExtractor_MissingItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := NewGUIDExtractor(NewGUIDExtractorParams{FS: newMemFS(ctrl, "/project", nil), ProjectRoot: "/project"})

	_, err := e.GetDependencies("Assets/gone.mat")
	assert.ErrorIs(t, err, catalog.ErrMissingItem)
}

func TestGUIDExtractor_Prepare_SkipsMissingAndDuplicateSidecars(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	files := map[string]string{
		"Assets/a.mat.meta": meta(guidMat),
		"Assets/b.mat.meta": meta(guidMat),
		"Assets/c.mat.meta": "not: [valid",
	}
	e := NewGUIDExtractor(NewGUIDExtractorParams{FS: newMemFS(ctrl, "/project", files), ProjectRoot: "/project"})

	require.NoError(t, e.Prepare(context.Background(), []catalog.Item{
		{Path: "Assets/a.mat"},
		{Path: "Assets/b.mat"},
		{Path: "Assets/c.mat"},
		{Path: "Assets/d.mat"},
	}))

	_, ok := e.IdentifierOf("Assets/a.mat")
	assert.True(t, ok)
	for _, p := range []string{"Assets/b.mat", "Assets/c.mat", "Assets/d.mat"} {
		_, ok := e.IdentifierOf(p)
		assert.False(t, ok, p)
	}
}

func TestGUIDExtractor_Prepare_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := NewGUIDExtractor(NewGUIDExtractorParams{FS: fsmocks.NewMockFS(ctrl), ProjectRoot: "/project"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Prepare(ctx, []catalog.Item{{Path: "Assets/a.mat"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseMetaGUID(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
		err      error
	}{
		{name: "plain yaml", content: meta(guidMat), expected: guidMat},
		{name: "upper case guid", content: "guid: " + strings32upper(guidTex), expected: guidTex},
		{name: "broken yaml falls back to pattern", content: "%TAG !u! x\n--- !u!1\nguid: " + guidPrefab + "\n: :", expected: guidPrefab},
		{name: "no guid", content: "fileFormatVersion: 2\n", err: ErrMetaParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guid, err := parseMetaGUID([]byte(tt.content))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, guid)
		})
	}
}

func strings32upper(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c >= 'a' && c <= 'f' {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}
