package controller

import (
	"net/http"

	"blog/database"
	"blog/database/model"
	"blog/web/middleware"
	"blog/web/service"
	"blog/web/session"

	"github.com/gin-gonic/gin"
)

// RegisterForm is the registration request body.
type RegisterForm struct {
	UserId   string `json:"userid" form:"userid"`
	Nickname string `json:"nickname" form:"nickname"`
	Password string `json:"password" form:"password"`
}

// UserUpdateForm is the profile update request body. Empty fields are left
// unchanged.
type UserUpdateForm struct {
	Nickname string     `json:"nickname" form:"nickname"`
	Password string     `json:"password" form:"password"`
	Role     model.Role `json:"role" form:"role"`
}

// UserController handles registration, profile reads and guarded profile
// mutations.
type UserController struct {
	BaseController

	authService *service.AuthService
	userService service.UserService
}

func NewUserController(g *gin.RouterGroup, authService *service.AuthService) *UserController {
	a := &UserController{authService: authService}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/users")

	g.POST("", a.register)
	g.GET("/:userid", a.getUser)
	g.GET("/:userid/posts", a.getUserPosts)
	g.GET("/:userid/comments", a.getUserComments)

	auth := g.Group("", middleware.RequireLogin(a.authService))
	auth.PATCH("/:userid", a.updateUser)
	auth.DELETE("/:userid", a.deleteUser)
}

// register creates a new member account. Registration never assigns a role;
// promoting a user to admin is a guarded profile update by an admin.
func (a *UserController) register(c *gin.Context) {
	var form RegisterForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if form.UserId == "" || form.Nickname == "" || form.Password == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "userid, nickname and password are required")
		return
	}

	user, err := a.userService.CreateUser(form.UserId, form.Nickname, form.Password, model.RoleMember)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, user)
}

func (a *UserController) getUser(c *gin.Context) {
	user, err := a.userService.GetByUserId(c.Param("userid"))
	if database.IsNotFound(err) {
		jsonErr(c, service.ErrNotFound)
		return
	} else if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, user)
}

func (a *UserController) getUserPosts(c *gin.Context) {
	user, err := a.userService.GetByUserId(c.Param("userid"))
	if database.IsNotFound(err) {
		jsonErr(c, service.ErrNotFound)
		return
	} else if err != nil {
		jsonErr(c, err)
		return
	}

	posts, err := a.userService.GetPostsByUser(user.Id)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, posts)
}

func (a *UserController) getUserComments(c *gin.Context) {
	user, err := a.userService.GetByUserId(c.Param("userid"))
	if database.IsNotFound(err) {
		jsonErr(c, service.ErrNotFound)
		return
	} else if err != nil {
		jsonErr(c, err)
		return
	}

	comments, err := a.userService.GetCommentsByUser(user.Id)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, comments)
}

func (a *UserController) updateUser(c *gin.Context) {
	target, err := a.userService.GetByUserId(c.Param("userid"))
	if database.IsNotFound(err) {
		jsonErr(c, service.ErrNotFound)
		return
	} else if err != nil {
		jsonErr(c, err)
		return
	}

	if !a.guardOwner(c, target.Id) {
		return
	}

	var form UserUpdateForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}

	// Only admins may touch roles; owners can otherwise edit themselves.
	if form.Role != "" {
		current := session.GetLoginUser(c)
		if current == nil || current.Role != model.RoleAdmin {
			jsonErr(c, service.ErrForbidden)
			return
		}
	}

	user, err := a.userService.UpdateUser(target.Id, form.Nickname, form.Password, form.Role)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, user)
}

func (a *UserController) deleteUser(c *gin.Context) {
	target, err := a.userService.GetByUserId(c.Param("userid"))
	if database.IsNotFound(err) {
		jsonErr(c, service.ErrNotFound)
		return
	} else if err != nil {
		jsonErr(c, err)
		return
	}

	if !a.guardOwner(c, target.Id) {
		return
	}

	if err := a.userService.DeleteUser(target.Id); err != nil {
		jsonErr(c, err)
		return
	}
	jsonMsg(c, "user deleted")
}
