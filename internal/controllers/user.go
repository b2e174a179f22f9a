package controllers

import (
	"context"

	"hnreader/internal/models"
)

const MsgUserFailed = "Failed to fetch user"

type UserSource interface {
	UserByID(ctx context.Context, id string) (*models.User, error)
}

type UserController struct {
	users UserSource
}

func NewUserController(users UserSource) *UserController {
	return &UserController{users: users}
}

func (c *UserController) GetUser(ctx context.Context, id string) (res Result[*models.User]) {
	defer recoverInto(&res, "UserController.GetUser", MsgUserFailed, nil)

	user, err := c.users.UserByID(ctx, id)
	if err != nil {
		logFailure("UserController.GetUser", err)
		return Failure[*models.User](MsgUserFailed, nil)
	}
	return Success(user)
}
