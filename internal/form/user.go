package form

import (
	"regexp"
	"strings"
)

// 与常见用户名规则一致：字母、数字和 @.+-_
var usernameRe = regexp.MustCompile(`^[\p{L}\p{N}@.+\-_]+$`)

// SignupInput 注册表单
type SignupInput struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Username  string `form:"username" validate:"required,max=150"`
	Email     string `form:"email" validate:"omitempty,email"`
	Password  string `form:"password" validate:"required,min=8"`
}

type SignupData struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

func ValidateSignup(in SignupInput) (SignupData, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	ve := check(in)
	if ve == nil {
		ve = &ValidationError{}
	}
	if in.Username != "" && ve.Get("username") == "" && !usernameRe.MatchString(in.Username) {
		ve.Add("username", "Допустимы только буквы, цифры и символы @/./+/-/_.")
	}
	if !ve.empty() {
		return SignupData{}, ve
	}
	return SignupData{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.Password,
	}, nil
}

// LoginInput 登录表单
type LoginInput struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func ValidateLogin(in LoginInput) (LoginInput, error) {
	in.Username = strings.TrimSpace(in.Username)
	if ve := check(in); ve != nil {
		return LoginInput{}, ve
	}
	return in, nil
}
