package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/form"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/logger"
	"github.com/d60-Lab/yatube/web"
)

// Login GET 显示登录表单；POST 校验凭据，签发令牌写入 cookie 后跳转到 next
func (h *Handler) Login(c *gin.Context) {
	d := &web.Data{Title: "Войти", Next: c.Query("next")}
	if c.Request.Method != http.MethodPost {
		h.html(c, http.StatusOK, web.PageLogin, d)
		return
	}

	d.Next = c.PostForm("next")
	in := form.LoginInput{Username: c.PostForm("username"), Password: c.PostForm("password")}
	d.Form = map[string]string{"username": in.Username}
	login, err := form.ValidateLogin(in)
	if ve, ok := form.AsValidation(err); ok {
		d.Errors = ve
		h.html(c, http.StatusOK, web.PageLogin, d)
		return
	}

	u, err := h.userService.Authenticate(c.Request.Context(), login.Username, login.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		d.Errors = &form.ValidationError{}
		d.Errors.Add("__all__", "Введите правильные имя пользователя и пароль.")
		h.html(c, http.StatusOK, web.PageLogin, d)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.logIn(c, u); err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, auth.SafeNext(d.Next, "/"))
}

// Signup 注册后自动登录
func (h *Handler) Signup(c *gin.Context) {
	d := &web.Data{Title: "Регистрация"}
	if c.Request.Method != http.MethodPost {
		h.html(c, http.StatusOK, web.PageSignup, d)
		return
	}

	in := form.SignupInput{
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
	}
	d.Form = map[string]string{
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"username":   in.Username,
		"email":      in.Email,
	}
	data, err := form.ValidateSignup(in)
	if ve, ok := form.AsValidation(err); ok {
		d.Errors = ve
		h.html(c, http.StatusOK, web.PageSignup, d)
		return
	}

	u, err := h.userService.SignUp(c.Request.Context(), data)
	if errors.Is(err, service.ErrUsernameTaken) {
		d.Errors = &form.ValidationError{}
		d.Errors.Add("username", "Пользователь с таким именем уже существует.")
		h.html(c, http.StatusOK, web.PageSignup, d)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	logger.Info("user signed up", zap.String("user_id", u.ID), zap.String("username", u.Username))
	if err := h.logIn(c, u); err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	auth.ClearCookie(c, h.opts.CookieName)
	h.redirect(c, "/")
}

func (h *Handler) logIn(c *gin.Context, u *model.User) error {
	token, err := h.tokens.Issue(auth.Principal{UserID: u.ID, Username: u.Username})
	if err != nil {
		return err
	}
	auth.SetCookie(c, h.opts.CookieName, token, h.tokens.TTL())
	return nil
}
