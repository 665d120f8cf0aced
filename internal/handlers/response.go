package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/herald/internal/store"
	"github.com/monocle-dev/herald/internal/types"
)

func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, types.Response{Status: types.StatusSuccess, Data: data})
}

func respondPage[T any](ctx *gin.Context, result *store.Result[T]) {
	ctx.JSON(http.StatusOK, types.Response{
		Status:     types.StatusSuccess,
		Data:       result.Items,
		Pagination: result.Pagination,
	})
}

func respondMessage(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, types.Response{Status: types.StatusSuccess, Message: message})
}
