// Package ginbind binds gin requests to non-empty slices and replies with
// them.
package ginbind

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sooomo/nonempty"
)

type ReplyDto[TCode any, TData any] struct {
	Code TCode  `json:"code"`
	Msg  string `json:"msg"`
	Data TData  `json:"data"`
}

const (
	CodeOK         = 0
	CodeBadRequest = http.StatusBadRequest
)

const queryKeyPrefix = "ginbind.query."

func abortBadRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, ReplyDto[int, any]{
		Code: CodeBadRequest,
		Msg:  err.Error(),
	})
}

// BindJSON binds the request body, a JSON array with at least one element.
// On failure it aborts with 400 and a ReplyDto, and returns false.
func BindJSON[T any](c *gin.Context) (nonempty.Slice1[T], bool) {
	var items nonempty.Slice1[T]
	if err := c.ShouldBindJSON(&items); err != nil {
		abortBadRequest(c, fmt.Errorf("bind body: %w", err))
		return nonempty.Slice1[T]{}, false
	}
	return items, true
}

// QueryArray1 returns every value of the query parameter name. A missing
// parameter fails with nonempty.ErrEmpty.
func QueryArray1(c *gin.Context, name string) (nonempty.Slice1[string], error) {
	values, err := nonempty.TryFromSlice(c.QueryArray(name))
	if err != nil {
		return nonempty.Slice1[string]{}, fmt.Errorf("query %q: %w", name, err)
	}
	return values, nil
}

// RequireQuery aborts with 400 unless the query parameter name is present.
// Handlers further down read the values with Slice1From.
func RequireQuery(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, err := QueryArray1(c, name)
		if err != nil {
			abortBadRequest(c, err)
			return
		}
		c.Set(queryKeyPrefix+name, values)
		c.Next()
	}
}

// Slice1From returns the values stored by RequireQuery(name).
func Slice1From(c *gin.Context, name string) (nonempty.Slice1[string], bool) {
	v, ok := c.Get(queryKeyPrefix + name)
	if !ok {
		return nonempty.Slice1[string]{}, false
	}
	values, ok := v.(nonempty.Slice1[string])
	return values, ok
}

// Reply writes items with status 200 inside a ReplyDto.
func Reply[T any](c *gin.Context, items nonempty.Slice1[T]) {
	c.JSON(http.StatusOK, ReplyDto[int, nonempty.Slice1[T]]{
		Code: CodeOK,
		Msg:  "ok",
		Data: items,
	})
}
