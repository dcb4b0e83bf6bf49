package services

import (
	"strings"
	"time"

	"rooftopgarden/internal/apperrors"
	"rooftopgarden/internal/models"
)

// ForumService, oturumdaki tartışma listesine gönderi ve cevap ekler
type ForumService struct {
	spam *SpamDetector
	now  func() time.Time
}

// NewForumService, yeni bir ForumService oluşturur. spam nil olabilir.
func NewForumService(spam *SpamDetector) *ForumService {
	return &ForumService{spam: spam, now: time.Now}
}

// Post, yeni bir gönderiyi boş cevap listesiyle sona ekler
func (fs *ForumService) Post(forum *models.Forum, author, content string) error {
	author, content, err := fs.clean(author, content)
	if err != nil {
		return err
	}
	forum.Posts = append(forum.Posts, models.ForumPost{
		Author:    author,
		Content:   content,
		Replies:   []models.Reply{},
		CreatedAt: fs.now(),
	})
	return nil
}

// Reply, idx numaralı gönderiye cevap ekler ve cevap formunu kapatır
func (fs *ForumService) Reply(forum *models.Forum, idx int, author, content string) error {
	if idx < 0 || idx >= len(forum.Posts) {
		return apperrors.ErrPostNotFound
	}
	author, content, err := fs.clean(author, content)
	if err != nil {
		return err
	}
	post := &forum.Posts[idx]
	post.Replies = append(post.Replies, models.Reply{
		Author:    author,
		Content:   content,
		CreatedAt: fs.now(),
	})
	forum.SetReplyFormOpen(idx, false)
	return nil
}

// ToggleReplyForm flips the reply form of post idx and returns the new state.
func (fs *ForumService) ToggleReplyForm(forum *models.Forum, idx int) (bool, error) {
	if idx < 0 || idx >= len(forum.Posts) {
		return false, apperrors.ErrPostNotFound
	}
	open := !forum.ReplyFormOpen(idx)
	forum.SetReplyFormOpen(idx, open)
	return open, nil
}

func (fs *ForumService) clean(author, content string) (string, string, error) {
	author = strings.TrimSpace(author)
	content = strings.TrimSpace(content)
	if author == "" || content == "" {
		return "", "", apperrors.ErrMissingFields
	}
	if fs.spam != nil && fs.spam.IsSpam(content) {
		return "", "", apperrors.ErrSpam
	}
	return author, content, nil
}
