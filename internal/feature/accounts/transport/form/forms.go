// Package form はaccountsフィーチャーのHTMLフォームのデータ転送オブジェクトを定義します。
package form

// RegisterForm は/registerのフォームを表します。
// Ginのbindingタグでバリデーションを行います（必須、文字数、メール形式、確認一致）。
type RegisterForm struct {
	Username  string `form:"username" binding:"required,min=3,max=80"`
	Email     string `form:"email" binding:"required,email,max=120"`
	Password  string `form:"password" binding:"required,min=6"`
	Password2 string `form:"password2" binding:"required,eqfield=Password"`
}

// LoginForm は/loginのフォームを表します。
// 必須フィールドとメール形式のバリデーションを含みます。
type LoginForm struct {
	Email      string `form:"email" binding:"required,email"`
	Password   string `form:"password" binding:"required"`
	RememberMe bool   `form:"remember_me"`
}
