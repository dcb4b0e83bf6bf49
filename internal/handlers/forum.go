package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rooftopgarden/internal/apperrors"
	"rooftopgarden/internal/models"
	"rooftopgarden/internal/session"
)

// postView, şablonda gösterilen gönderi
type postView struct {
	models.ForumPost
	Index     int
	ReplyOpen bool
}

// ForumPage, gönderileri eklenme sırasıyla cevaplarıyla birlikte gösterir
func (h *Handler) ForumPage(c *gin.Context) {
	forum := session.From(c).Forum
	posts := make([]postView, 0, len(forum.Posts))
	for i, p := range forum.Posts {
		posts = append(posts, postView{ForumPost: p, Index: i, ReplyOpen: forum.ReplyFormOpen(i)})
	}
	h.render(c, http.StatusOK, "forum.html", "Forum", gin.H{"posts": posts})
}

// HandlePost, yeni bir gönderi ekler
func (h *Handler) HandlePost(c *gin.Context) {
	s := session.From(c)
	if err := h.forumService.Post(s.Forum, c.PostForm("author"), c.PostForm("content")); err != nil {
		h.forumRejected(c, err)
		h.respondError(c, err, "/forum")
		return
	}
	h.metrics.ForumPosts.Inc()
	h.respondOK(c, "✅ Your post has been added!", "/forum", gin.H{"posts": len(s.Forum.Posts)})
}

// HandleToggleReply, gönderinin cevap formunu açar veya kapatır
func (h *Handler) HandleToggleReply(c *gin.Context) {
	s := session.From(c)
	idx, err := postIndex(c)
	if err == nil {
		_, err = h.forumService.ToggleReplyForm(s.Forum, idx)
	}
	if err != nil {
		h.respondError(c, err, "/forum")
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/forum#post-%d", idx))
}

// HandleReply, gönderiye cevap ekler ve cevap formunu kapatır
func (h *Handler) HandleReply(c *gin.Context) {
	s := session.From(c)
	idx, err := postIndex(c)
	if err == nil {
		err = h.forumService.Reply(s.Forum, idx, c.PostForm("author"), c.PostForm("content"))
	}
	if err != nil {
		h.forumRejected(c, err)
		h.respondError(c, err, "/forum")
		return
	}
	h.metrics.ForumReplies.Inc()
	h.respondOK(c, "✅ Your reply has been added!", fmt.Sprintf("/forum#post-%d", idx), nil)
}

func (h *Handler) forumRejected(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrSpam) {
		h.security.LogSecurityEvent("SPAM_DETECTED", c.Request.URL.Path, c.ClientIP())
	}
}

func postIndex(c *gin.Context) (int, error) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrPostNotFound, err)
	}
	return idx, nil
}
