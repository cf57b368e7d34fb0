package controller

import (
	"net/http"
	"strconv"

	"blog/web/middleware"
	"blog/web/service"
	"blog/web/session"

	"github.com/gin-gonic/gin"
)

// PostForm is the post create/update request body.
type PostForm struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
}

// PostController handles public post reads and guarded post mutations.
type PostController struct {
	BaseController

	authService *service.AuthService
	postService service.PostService
}

func NewPostController(g *gin.RouterGroup, authService *service.AuthService) *PostController {
	a := &PostController{authService: authService}
	a.initRouter(g)
	return a
}

func (a *PostController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/posts")

	g.GET("", a.listPosts)
	g.GET("/:id", a.getPost)
	g.GET("/:id/comments", a.getPostComments)

	auth := g.Group("", middleware.RequireLogin(a.authService))
	auth.POST("", a.createPost)
	auth.PATCH("/:id", a.updatePost)
	auth.DELETE("/:id", a.deletePost)
}

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid id")
		return 0, false
	}
	return id, true
}

func (a *PostController) listPosts(c *gin.Context) {
	posts, err := a.postService.List()
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, posts)
}

func (a *PostController) getPost(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	post, err := a.postService.GetById(id)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, post)
}

func (a *PostController) getPostComments(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	if _, err := a.postService.GetById(id); err != nil {
		jsonErr(c, err)
		return
	}

	comments, err := a.postService.GetCommentsByPost(id)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, comments)
}

func (a *PostController) createPost(c *gin.Context) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if form.Title == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "title is required")
		return
	}

	user := session.GetLoginUser(c)
	post, err := a.postService.CreatePost(user.Id, form.Title, form.Content)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, post)
}

func (a *PostController) updatePost(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	post, err := a.postService.GetById(id)
	if err != nil {
		jsonErr(c, err)
		return
	}
	if !a.guardOwner(c, post.AuthorId) {
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}

	updated, err := a.postService.UpdatePost(id, form.Title, form.Content)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, updated)
}

func (a *PostController) deletePost(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	post, err := a.postService.GetById(id)
	if err != nil {
		jsonErr(c, err)
		return
	}
	if !a.guardOwner(c, post.AuthorId) {
		return
	}

	if err := a.postService.DeletePost(id); err != nil {
		jsonErr(c, err)
		return
	}
	jsonMsg(c, "post deleted")
}
