package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rooftopgarden/internal/apperrors"
	"rooftopgarden/internal/models"
)

func newTestForumService() *ForumService {
	fs := NewForumService(NewSpamDetector())
	clock := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	fs.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return fs
}

func TestForumPost_AppendsOnePost(t *testing.T) {
	fs := newTestForumService()
	forum := models.NewForum()

	require.NoError(t, fs.Post(forum, " Asha ", " Best tomatoes for pots? "))
	require.NoError(t, fs.Post(forum, "Ravi", "Try cherry varieties."))

	require.Len(t, forum.Posts, 2)
	assert.Equal(t, "Asha", forum.Posts[0].Author)
	assert.Equal(t, "Best tomatoes for pots?", forum.Posts[0].Content)
	assert.Empty(t, forum.Posts[0].Replies)
	assert.NotNil(t, forum.Posts[0].Replies)
	assert.True(t, forum.Posts[0].CreatedAt.Before(forum.Posts[1].CreatedAt))
}

func TestForumPost_MissingFieldsNoMutation(t *testing.T) {
	fs := newTestForumService()
	forum := models.NewForum()

	assert.ErrorIs(t, fs.Post(forum, "", "content"), apperrors.ErrMissingFields)
	assert.ErrorIs(t, fs.Post(forum, "name", "   "), apperrors.ErrMissingFields)
	assert.Empty(t, forum.Posts)
}

func TestForumPost_SpamRejected(t *testing.T) {
	fs := newTestForumService()
	forum := models.NewForum()

	assert.ErrorIs(t, fs.Post(forum, "bot", "Earn money fast with BITCOIN"), apperrors.ErrSpam)
	assert.Empty(t, forum.Posts)
}

func TestForumReply_TargetsOnePost(t *testing.T) {
	fs := newTestForumService()
	forum := models.NewForum()
	require.NoError(t, fs.Post(forum, "A", "first"))
	require.NoError(t, fs.Post(forum, "B", "second"))

	_, err := fs.ToggleReplyForm(forum, 1)
	require.NoError(t, err)
	require.True(t, forum.ReplyFormOpen(1))

	require.NoError(t, fs.Reply(forum, 1, "C", "reply one"))
	require.NoError(t, fs.Reply(forum, 1, "D", "reply two"))

	assert.Empty(t, forum.Posts[0].Replies)
	require.Len(t, forum.Posts[1].Replies, 2)
	assert.Equal(t, "reply one", forum.Posts[1].Replies[0].Content)
	assert.Equal(t, "reply two", forum.Posts[1].Replies[1].Content)
	assert.False(t, forum.ReplyFormOpen(1), "reply closes the form")
}

func TestForumReply_Errors(t *testing.T) {
	fs := newTestForumService()
	forum := models.NewForum()
	require.NoError(t, fs.Post(forum, "A", "first"))

	assert.ErrorIs(t, fs.Reply(forum, 5, "C", "x"), apperrors.ErrPostNotFound)
	assert.ErrorIs(t, fs.Reply(forum, -1, "C", "x"), apperrors.ErrPostNotFound)
	assert.ErrorIs(t, fs.Reply(forum, 0, "", "x"), apperrors.ErrMissingFields)
	assert.Empty(t, forum.Posts[0].Replies)
}

func TestToggleReplyForm(t *testing.T) {
	fs := newTestForumService()
	forum := models.NewForum()
	require.NoError(t, fs.Post(forum, "A", "first"))

	open, err := fs.ToggleReplyForm(forum, 0)
	require.NoError(t, err)
	assert.True(t, open)

	open, err = fs.ToggleReplyForm(forum, 0)
	require.NoError(t, err)
	assert.False(t, open)

	_, err = fs.ToggleReplyForm(forum, 3)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}
