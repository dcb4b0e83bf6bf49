package models

import "time"

// Forum, oturuma ait tartışma listesini tutar.
// Gönderiler eklenme sırasıyla gösterilir, silinmez ve yeniden sıralanmaz.
type Forum struct {
	Posts []ForumPost `json:"posts"`
	// replying, cevap formu açık olan gönderilerin indeksleri
	replying map[int]bool
}

// ForumPost, bir tartışma gönderisini temsil eder
type ForumPost struct {
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Replies   []Reply   `json:"replies"`
	CreatedAt time.Time `json:"created_at"`
}

// Reply, gönderiye verilen cevabı temsil eder
type Reply struct {
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewForum() *Forum {
	return &Forum{
		Posts:    []ForumPost{},
		replying: map[int]bool{},
	}
}

// ReplyFormOpen reports whether the reply form of post idx is shown.
func (f *Forum) ReplyFormOpen(idx int) bool {
	return f.replying[idx]
}

// SetReplyFormOpen sets the reply form flag of post idx.
func (f *Forum) SetReplyFormOpen(idx int, open bool) {
	if f.replying == nil {
		f.replying = map[int]bool{}
	}
	if open {
		f.replying[idx] = true
		return
	}
	delete(f.replying, idx)
}
