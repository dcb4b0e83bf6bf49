// Package session, tarayıcı başına süreç içi oturum durumunu tutar.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rooftopgarden/internal/logger"
	"rooftopgarden/internal/models"
)

// Flash kinds
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashError   = "error"
)

// Flash, bir sonraki sayfada bir kez gösterilecek mesaj
type Flash struct {
	Kind    string
	Message string
}

// Session, tek bir tarayıcının sunucu tarafı durumu.
// İstek boyunca kilitlidir; aynı oturuma gelen istekler sırayla işlenir.
type Session struct {
	mu sync.Mutex

	ID              string
	LoggedIn        bool
	Username        string
	Email           string
	WaterStart      *time.Time
	FertilizerStart *time.Time
	Cart            *models.Cart
	Forum           *models.Forum
	APIKey          string
	Flashes         []Flash
	LastSeen        time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:       id,
		Cart:     models.NewCart(),
		Forum:    models.NewForum(),
		LastSeen: now,
	}
}

// Login, oturumu giriş yapmış olarak işaretler ve iki hatırlatıcıyı şimdi başlatır
func (s *Session) Login(user *models.User, now time.Time) {
	s.LoggedIn = true
	s.Username = user.Username
	s.Email = user.Email
	water, fert := now, now
	s.WaterStart = &water
	s.FertilizerStart = &fert
}

// Logout clears login state and timers. Cart, forum and API key are kept.
func (s *Session) Logout() {
	s.LoggedIn = false
	s.Username = ""
	s.Email = ""
	s.WaterStart = nil
	s.FertilizerStart = nil
}

// AddFlash queues a message for the next rendered page.
func (s *Session) AddFlash(kind, message string) {
	s.Flashes = append(s.Flashes, Flash{Kind: kind, Message: message})
}

// PopFlashes returns queued messages and clears the queue.
func (s *Session) PopFlashes() []Flash {
	f := s.Flashes
	s.Flashes = nil
	return f
}

// Store, süreç genelindeki oturum tablosu
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idleTTL  time.Duration
	now      func() time.Time
}

// NewStore, yeni bir oturum deposu oluşturur. idleTTL <= 0 ise oturumlar süresiz tutulur.
func NewStore(idleTTL time.Duration) *Store {
	return &Store{
		sessions: map[string]*Session{},
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Get, id'ye ait canlı oturumu döndürür. Süresi geçmiş oturumlar bu sırada silinir.
func (st *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	now := st.now()
	st.sweep(now)

	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return s, true
}

// Create, yeni kimlikli boş bir oturum oluşturur
func (st *Store) Create() *Session {
	now := st.now()
	s := newSession(uuid.New().String(), now)
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Rotate, oturumu yeni bir kimliğe taşır ve eski kimliği geçersiz kılar.
// Çağıran oturum kilidini tutmalıdır.
func (st *Store) Rotate(s *Session) string {
	newID := uuid.New().String()
	st.mu.Lock()
	delete(st.sessions, s.ID)
	s.ID = newID
	st.sessions[newID] = s
	st.mu.Unlock()
	return newID
}

// Delete removes a session.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// touch records activity on s.
func (st *Store) touch(s *Session) {
	st.mu.Lock()
	s.LastSeen = st.now()
	st.mu.Unlock()
}

func (st *Store) sweep(now time.Time) {
	if st.idleTTL <= 0 {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if now.Sub(s.LastSeen) > st.idleTTL {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		logger.Log.Debug("Store.sweep - idle sessions removed", zap.Int("count", removed))
	}
}
