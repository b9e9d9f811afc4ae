package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"roomrent/errors"
)

// idParam reads a positive numeric path parameter
func idParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Validation(name, name+" must be a positive integer")
	}
	return uint(id), nil
}
