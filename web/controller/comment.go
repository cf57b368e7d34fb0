package controller

import (
	"net/http"

	"blog/web/middleware"
	"blog/web/service"
	"blog/web/session"

	"github.com/gin-gonic/gin"
)

// CommentForm is the comment create/update request body.
type CommentForm struct {
	PostId  int    `json:"postId" form:"postId"`
	Content string `json:"content" form:"content"`
}

// CommentController handles public comment reads and guarded comment
// mutations.
type CommentController struct {
	BaseController

	authService    *service.AuthService
	commentService service.CommentService
}

func NewCommentController(g *gin.RouterGroup, authService *service.AuthService) *CommentController {
	a := &CommentController{authService: authService}
	a.initRouter(g)
	return a
}

func (a *CommentController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/comments")

	g.GET("/:id", a.getComment)

	auth := g.Group("", middleware.RequireLogin(a.authService))
	auth.POST("", a.createComment)
	auth.PATCH("/:id", a.updateComment)
	auth.DELETE("/:id", a.deleteComment)
}

func (a *CommentController) getComment(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	comment, err := a.commentService.GetById(id)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, comment)
}

func (a *CommentController) createComment(c *gin.Context) {
	var form CommentForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if form.PostId == 0 || form.Content == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "postId and content are required")
		return
	}

	user := session.GetLoginUser(c)
	comment, err := a.commentService.CreateComment(user.Id, form.PostId, form.Content)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, comment)
}

func (a *CommentController) updateComment(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	comment, err := a.commentService.GetById(id)
	if err != nil {
		jsonErr(c, err)
		return
	}
	if !a.guardOwner(c, comment.AuthorId) {
		return
	}

	var form CommentForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}

	updated, err := a.commentService.UpdateComment(id, form.Content)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, updated)
}

func (a *CommentController) deleteComment(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	comment, err := a.commentService.GetById(id)
	if err != nil {
		jsonErr(c, err)
		return
	}
	if !a.guardOwner(c, comment.AuthorId) {
		return
	}

	if err := a.commentService.DeleteComment(id); err != nil {
		jsonErr(c, err)
		return
	}
	jsonMsg(c, "comment deleted")
}
