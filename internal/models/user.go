package models

// User, giriş yapmış kullanıcı bilgilerini temsil eder.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginForm, giriş formu verileri
type LoginForm struct {
	Username string `form:"username" binding:"required,notblank"`
	Password string `form:"password" binding:"required"`
}

// RegisterForm, kayıt formu verileri
type RegisterForm struct {
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" binding:"required,eqfield=Password"`
}
