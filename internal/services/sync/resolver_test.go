package sync_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheMichaelB/quihex/internal/config"
	"github.com/TheMichaelB/quihex/internal/hexo"
	"github.com/TheMichaelB/quihex/internal/models"
	"github.com/TheMichaelB/quihex/internal/services/sync"
	"github.com/TheMichaelB/quihex/internal/storage"
	"github.com/TheMichaelB/quihex/test/testutil"
)

func newNote(uuid, title string, tags ...string) *models.Note {
	if tags == nil {
		tags = []string{}
	}
	created := time.Date(2016, 5, 1, 10, 30, 0, 0, time.Local)
	return &models.Note{
		UUID:      uuid,
		Title:     title,
		Tags:      tags,
		Content:   "body of " + title,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func setupResolver(t *testing.T, opts testutil.BlogOptions) (*sync.Resolver, *storage.MockStore, *config.Config) {
	t.Helper()

	blog := testutil.NewBlog(t, opts)
	cfg := testutil.NewConfig(blog, t.TempDir(), "NB")
	store := storage.NewMockStore()

	return sync.NewResolver(store, testutil.NewTestLogger()), store, cfg
}

func TestResolveStatuses(t *testing.T) {
	opts := testutil.DefaultBlogOptions()
	opts.NewPostName = ":year-:month-:day-:title.md"

	tests := []struct {
		name  string
		note  *models.Note
		setup func(store *storage.MockStore, post *models.RenderedPost)
		want  models.Status
	}{
		{
			name: "no file is new",
			note: newNote("N1", "Hello"),
			want: models.StatusNew,
		},
		{
			name: "identical file is stable",
			note: newNote("N1", "Hello"),
			setup: func(store *storage.MockStore, post *models.RenderedPost) {
				store.Put(post.FilePath, []byte(post.Text()))
			},
			want: models.StatusStable,
		},
		{
			name: "different file is update",
			note: newNote("N1", "Hello"),
			setup: func(store *storage.MockStore, post *models.RenderedPost) {
				store.Put(post.FilePath, []byte(post.Text()+"\n"))
			},
			want: models.StatusUpdate,
		},
		{
			name: "excluded tag without file is skip",
			note: newNote("N1", "Hello", "go", "hide"),
			want: models.StatusSkip,
		},
		{
			name: "excluded tag with differing file is skip",
			note: newNote("N1", "Hello", "wip"),
			setup: func(store *storage.MockStore, post *models.RenderedPost) {
				store.Put(post.FilePath, []byte("old"))
				store.FailRead(post.FilePath, errors.New("must not be read"))
			},
			want: models.StatusSkip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, store, cfg := setupResolver(t, opts)

			blog, err := hexo.LoadConfig(cfg.Hexo)
			require.NoError(t, err)
			if tt.setup != nil {
				tt.setup(store, hexo.Render(tt.note, blog))
			}

			status, err := resolver.Resolve(context.Background(), cfg, tt.note)
			require.NoError(t, err)
			assert.Equal(t, tt.want, status.Status)
			assert.Equal(t, filepath.Join(cfg.Hexo, "source", "_posts", "2016-05-01-Hello.md"), status.Post.FilePath)
		})
	}
}

func TestResolveSkipDoesNoIO(t *testing.T) {
	resolver, store, cfg := setupResolver(t, testutil.DefaultBlogOptions())

	status, err := resolver.Resolve(context.Background(), cfg, newNote("N1", "Secret", "secret"))
	require.NoError(t, err)

	assert.Equal(t, models.StatusSkip, status.Status)
	assert.Zero(t, store.Reads())
	assert.Zero(t, store.Writes())
}

func TestResolveMissingNewPostName(t *testing.T) {
	opts := testutil.DefaultBlogOptions()
	opts.NewPostName = ""
	resolver, store, cfg := setupResolver(t, opts)

	_, err := resolver.Resolve(context.Background(), cfg, newNote("N1", "Hello"))
	require.Error(t, err)

	assert.True(t, models.IsConfigError(err))
	assert.Contains(t, err.Error(), "new_post_name")
	assert.Zero(t, store.Reads())
}

func TestResolveReadError(t *testing.T) {
	resolver, store, cfg := setupResolver(t, testutil.DefaultBlogOptions())
	note := newNote("N1", "Hello")

	blog, err := hexo.LoadConfig(cfg.Hexo)
	require.NoError(t, err)
	path := hexo.Render(note, blog).FilePath

	denied := errors.New("permission denied")
	store.Put(path, []byte("x"))
	store.FailRead(path, denied)

	_, err = resolver.Resolve(context.Background(), cfg, note)
	require.Error(t, err)
	assert.ErrorIs(t, err, denied)

	var syncErr *models.SyncError
	require.True(t, errors.As(err, &syncErr))
	assert.Equal(t, models.ErrCodeStorage, syncErr.Code)
	assert.Equal(t, path, syncErr.Path)
}

func TestResolveIdempotentAfterWrite(t *testing.T) {
	blog := testutil.NewBlog(t, testutil.DefaultBlogOptions())
	cfg := testutil.NewConfig(blog, t.TempDir(), "NB")
	store := storage.NewLocalStore(testutil.NewTestLogger())
	resolver := sync.NewResolver(store, testutil.NewTestLogger())
	note := newNote("N1", "Hello", "a", "b")

	status, err := resolver.Resolve(context.Background(), cfg, note)
	require.NoError(t, err)
	require.Equal(t, models.StatusNew, status.Status)

	require.NoError(t, store.Write(status.Post.FilePath, []byte(status.Post.Text())))

	again, err := resolver.Resolve(context.Background(), cfg, note)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStable, again.Status)

	// Any content change flips it to update.
	note.Content += "!"
	changed, err := resolver.Resolve(context.Background(), cfg, note)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUpdate, changed.Status)
}

func TestClassifyCancelled(t *testing.T) {
	resolver, _, cfg := setupResolver(t, testutil.DefaultBlogOptions())
	blog, err := hexo.LoadConfig(cfg.Hexo)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = resolver.Classify(ctx, blog, cfg.TagsForNotSync, newNote("N1", "Hello"))
	assert.ErrorIs(t, err, context.Canceled)
}
