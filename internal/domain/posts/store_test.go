package posts_test

import (
	"testing"
	"time"

	"artfeed-backend/internal/domain/engagement"
	"artfeed-backend/internal/domain/posts"
	"artfeed-backend/internal/domain/social"
	"artfeed-backend/internal/domain/users"
	"artfeed-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func create(t *testing.T, store *posts.Store, p posts.Post) *posts.Post {
	t.Helper()
	require.NoError(t, store.Create(&p))
	return &p
}

func TestCreateStartsPending(t *testing.T) {
	store := posts.NewStore(testutil.DB(t))

	p := create(t, store, posts.Post{
		Author:   "alice",
		Title:    "dawn",
		IdeaText: "sunset over hills",
		Images:   posts.ImageList{"/img/a.jpg", "/img/b.jpg"},
	})

	assert.Equal(t, posts.NarrativePending, p.NarrativeStatus)
	assert.Equal(t, "/img/a.jpg", p.ImagePath, "first image becomes the primary")

	detail, err := store.Detail(p.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Story)
	assert.Empty(t, detail.Purpose)
	assert.Empty(t, detail.ArtistBio)
}

func TestFeedFilters(t *testing.T) {
	db := testutil.DB(t)
	store := posts.NewStore(db)
	graph := social.NewGraph(db)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, p := range []posts.Post{
		{Author: "alice", Title: "a1", Category: "painting"},
		{Author: "bob", Title: "b1", Category: "pottery"},
		{Author: "carol", Title: "c1", Category: "painting"},
	} {
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		create(t, store, p)
	}

	all, err := store.Feed(posts.FeedFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c1", all[0].Title, "newest first")

	painting, err := store.Feed(posts.FeedFilter{Category: "painting"})
	require.NoError(t, err)
	require.Len(t, painting, 2)

	_, err = graph.Follow("viewer", "bob")
	require.NoError(t, err)
	followed, err := store.Feed(posts.FeedFilter{FollowedBy: "viewer"})
	require.NoError(t, err)
	require.Len(t, followed, 1)
	assert.Equal(t, "b1", followed[0].Title)

	both, err := store.Feed(posts.FeedFilter{FollowedBy: "viewer", Category: "painting"})
	require.NoError(t, err)
	assert.Empty(t, both)
}

func TestFeedFollowFilterMatchesMixedCaseAuthor(t *testing.T) {
	db := testutil.DB(t)
	store := posts.NewStore(db)
	graph := social.NewGraph(db)

	// Author stored with legacy mixed case; the follow edge is canonical.
	require.NoError(t, db.Create(&posts.Post{Author: " Bob ", Title: "legacy"}).Error)
	_, err := graph.Follow("viewer", "bob")
	require.NoError(t, err)

	followed, err := store.Feed(posts.FeedFilter{FollowedBy: "viewer"})
	require.NoError(t, err)
	require.Len(t, followed, 1)
	assert.Equal(t, "legacy", followed[0].Title)
}

func TestDetailResolvesAuthorCaseInsensitively(t *testing.T) {
	db := testutil.DB(t)
	store := posts.NewStore(db)
	userStore := users.NewStore(db)
	ledger := engagement.NewLedger(db)

	_, err := userStore.Create("alice", "alice@example.com", "password1", "", "")
	require.NoError(t, err)

	// Legacy post with mixed-case author text still resolves to the user.
	require.NoError(t, db.Create(&posts.Post{Author: "Alice", Title: "dawn", ImagePath: "/img/a.jpg"}).Error)
	var p posts.Post
	require.NoError(t, db.Where("title = ?", "dawn").First(&p).Error)

	require.NoError(t, ledger.Like("bob", p.ID))
	require.NoError(t, ledger.Like("carol", p.ID))

	detail, err := store.Detail(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", detail.AuthorEmail)
	assert.Equal(t, int64(2), detail.LikeCount)
	assert.Equal(t, posts.ImageList{"/img/a.jpg"}, detail.Images, "single image backfills the list")
}

func TestDetailNotFound(t *testing.T) {
	store := posts.NewStore(testutil.DB(t))
	_, err := store.Detail(99)
	assert.ErrorIs(t, err, posts.ErrPostNotFound)
}

func TestByAuthorIsCaseInsensitive(t *testing.T) {
	store := posts.NewStore(testutil.DB(t))
	create(t, store, posts.Post{Author: "alice", Title: "one"})
	create(t, store, posts.Post{Author: "alice", Title: "two"})
	create(t, store, posts.Post{Author: "bob", Title: "other"})

	mine, err := store.ByAuthor("ALICE")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestPendingLifecycle(t *testing.T) {
	db := testutil.DB(t)
	store := posts.NewStore(db)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first := create(t, store, posts.Post{Author: "alice", Title: "first", CreatedAt: base})
	second := create(t, store, posts.Post{Author: "alice", Title: "second", CreatedAt: base.Add(time.Minute)})

	// Oldest pending claimed first.
	next, err := store.NextPending()
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, first.ID, next.ID)

	require.NoError(t, store.BumpAttempts(first.ID))
	require.NoError(t, store.SetNarrative(first.ID, "story", "purpose", "bio"))

	next, err = store.NextPending()
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, second.ID, next.ID)

	require.NoError(t, store.SetNarrative(second.ID, "s", "p", "b"))
	next, err = store.NextPending()
	require.NoError(t, err)
	assert.Nil(t, next, "outbox drained")

	var done posts.Post
	require.NoError(t, db.First(&done, first.ID).Error)
	assert.Equal(t, posts.NarrativeReady, done.NarrativeStatus)
	assert.Equal(t, 1, done.NarrativeAttempts)
	assert.Equal(t, "story", done.Story)
}

func TestLatest(t *testing.T) {
	db := testutil.DB(t)
	store := posts.NewStore(db)

	_, err := store.Latest()
	assert.ErrorIs(t, err, posts.ErrPostNotFound)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	create(t, store, posts.Post{Author: "alice", Title: "old", CreatedAt: base})
	create(t, store, posts.Post{Author: "alice", Title: "new", CreatedAt: base.Add(time.Hour)})

	latest, err := store.Latest()
	require.NoError(t, err)
	assert.Equal(t, "new", latest.Title)
}

func TestImageListRoundTrip(t *testing.T) {
	db := testutil.DB(t)

	require.NoError(t, db.Create(&posts.Post{Author: "alice", Images: posts.ImageList{"/a.jpg", "/b.jpg"}}).Error)
	require.NoError(t, db.Create(&posts.Post{Author: "alice", Title: "none"}).Error)

	var withImages, without posts.Post
	require.NoError(t, db.Where("title = ?", "").First(&withImages).Error)
	require.NoError(t, db.Where("title = ?", "none").First(&without).Error)
	assert.Equal(t, posts.ImageList{"/a.jpg", "/b.jpg"}, withImages.Images)
	assert.Nil(t, without.Images)
}
