package models

import "time"

// ContactMessage - iletişim formundan gelen mesaj, contact_messages tablosuna yazılır
type ContactMessage struct {
	ID        int64      `json:"id,omitempty" form:"-"`
	Name      string     `json:"name" form:"name" binding:"required,notblank"`
	Email     string     `json:"email" form:"email" binding:"required,email"`
	Message   string     `json:"message" form:"message" binding:"required,notblank"`
	CreatedAt *time.Time `json:"created_at,omitempty" form:"-"`
}
