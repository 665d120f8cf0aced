package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/monocle-dev/herald/internal/apperror"
	"github.com/monocle-dev/herald/internal/types"
	"github.com/rs/zerolog"
)

// ErrorHandler renders the last error pushed with ctx.Error as the failure envelope.
// With development set the envelope also carries the error chain.
func ErrorHandler(log zerolog.Logger, development bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		if len(ctx.Errors) == 0 || ctx.Writer.Written() {
			return
		}

		err := ctx.Errors.Last().Err
		appErr := Translate(err)
		status := appErr.StatusCode()

		resp := types.ErrorResponse{
			Status:     types.StatusFail,
			StatusCode: status,
			Message:    appErr.Message,
		}

		if status >= http.StatusInternalServerError {
			resp.Status = types.StatusError
			log.Error().Err(err).
				Str("method", ctx.Request.Method).
				Str("path", ctx.Request.URL.Path).
				Msg("Request failed")
			if development && appErr.Cause != nil {
				resp.Message = appErr.Cause.Error()
			}
		} else {
			log.Debug().Err(err).Int("status", status).Msg("Request rejected")
		}

		if development {
			resp.Stack = fmt.Sprintf("%+v", err)
		}

		ctx.AbortWithStatusJSON(status, resp)
	}
}

// Translate converts any error raised while handling a request into an *apperror.Error.
func Translate(err error) *apperror.Error {
	if appErr, ok := apperror.As(err); ok {
		return appErr
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperror.Wrap(apperror.KindValidation, FlattenValidation(verrs), err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var numErr *strconv.NumError
	switch {
	case errors.Is(err, io.EOF):
		return apperror.Wrap(apperror.KindValidation, "Request body is required", err)
	case errors.As(err, &syntaxErr):
		return apperror.Wrap(apperror.KindValidation, "Malformed JSON body", err)
	case errors.As(err, &typeErr):
		return apperror.Wrap(apperror.KindValidation, fmt.Sprintf("%s: has the wrong type", typeErr.Field), err)
	case errors.As(err, &numErr):
		return apperror.Wrap(apperror.KindValidation, fmt.Sprintf("%q is not a valid number", numErr.Num), err)
	}

	return apperror.Internal(err)
}

// FlattenValidation joins validator errors into "field: message, field: message".
func FlattenValidation(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), validationMessage(fe)))
	}
	return strings.Join(parts, ", ")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "password_strength":
		return "must be at least 8 characters and contain a number and a special character"
	default:
		return fmt.Sprintf("failed the %s check", fe.Tag())
	}
}

func NoRoute(ctx *gin.Context) {
	_ = ctx.Error(apperror.NotFound("Route not found"))
}

func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(ctx *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Str("path", ctx.Request.URL.Path).Msg("Recovered from panic")
		_ = ctx.Error(apperror.Internal(fmt.Errorf("panic: %v", recovered)))
		ctx.Abort()
	})
}
