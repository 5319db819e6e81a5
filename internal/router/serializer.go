package router

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// jsonSerializer is echo's JSON codec backed by goccy/go-json. Decode
// failures are reported as 400 echo errors, like the default serializer.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i any, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i any) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		msg := fmt.Sprintf("Unmarshal type error: expected=%v, got=%v, field=%v, offset=%v",
			typeErr.Type, typeErr.Value, typeErr.Field, typeErr.Offset)
		return echo.NewHTTPError(http.StatusBadRequest, msg).SetInternal(err)
	case errors.As(err, &syntaxErr):
		msg := fmt.Sprintf("Syntax error: offset=%v, error=%v", syntaxErr.Offset, syntaxErr.Error())
		return echo.NewHTTPError(http.StatusBadRequest, msg).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body").SetInternal(err)
}
