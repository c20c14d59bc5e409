package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors はバリデーション失敗をフォームのフィールド名から
// 人間向けメッセージへのマップに変換します。フィールドに対応付けられない
// バインドエラーは"form"キーに集約されます。
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "Invalid form submission."
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		out[field] = fieldMessage(field, fe)
	}
	return out
}

// fieldMessage は検証タグごとのメッセージを組み立てます。
func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "eqfield":
		return "Passwords must match."
	case "min":
		if field == "password" {
			return fmt.Sprintf("Password must be at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}
