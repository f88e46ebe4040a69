package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/web"
)

const aboutText = "На создание этой страницы у меня ушло пять минут! Ай да я."

func (h *Handler) AboutAuthor(c *gin.Context) {
	h.html(c, http.StatusOK, web.PageAuthor, &web.Data{
		Title:      "Об авторе проекта",
		AboutTitle: "Об авторе проекта",
		AboutText:  aboutText,
	})
}

func (h *Handler) AboutTech(c *gin.Context) {
	h.html(c, http.StatusOK, web.PageTech, &web.Data{
		Title:      "Технологии",
		AboutTitle: "Технологии",
		AboutText:  aboutText,
	})
}
