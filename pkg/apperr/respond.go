package apperr

import "github.com/labstack/echo/v4"

// Respond writes err as {"error": "..."} with the status HTTPStatus picks.
func Respond(c echo.Context, err error) error {
	return c.JSON(HTTPStatus(err), map[string]string{"error": err.Error()})
}
