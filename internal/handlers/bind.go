package handlers

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/monocle-dev/herald/internal/apperror"
	"github.com/monocle-dev/herald/internal/auth"
	"github.com/monocle-dev/herald/internal/store"
	"github.com/monocle-dev/herald/internal/types"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules and reports fields by their JSON name.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return field.Name
		})

		_ = v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
			return auth.ValidatePassword(fl.Field().String()) == nil
		})
	})
}

func bindJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		_ = ctx.Error(err)
		return false
	}
	return true
}

func bindPage(ctx *gin.Context) (store.Page, bool) {
	var query types.PageQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		_ = ctx.Error(queryError(ctx, err))
		return store.Page{}, false
	}

	page, err := store.NewPage(query.Page, query.Limit)
	if err != nil {
		_ = ctx.Error(err)
		return store.Page{}, false
	}
	return page, true
}

// queryError names the pagination parameter that failed to parse as an integer.
func queryError(ctx *gin.Context, err error) error {
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		return err
	}

	field := "page"
	if _, perr := strconv.Atoi(ctx.Query("page")); perr == nil || ctx.Query("page") == "" {
		field = "limit"
	}
	return apperror.Wrap(apperror.KindValidation, field+": must be a positive integer", err)
}
