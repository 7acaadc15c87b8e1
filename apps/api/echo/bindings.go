package echoapi

import (
	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/core/user"
)

type (
	LoginResponse struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	SubmitRequest struct {
		Answer *int `json:"answer" validate:"required"`
	}
)

func (r SubmitRequest) Validate() error {
	return core.Validate.Struct(r)
}
