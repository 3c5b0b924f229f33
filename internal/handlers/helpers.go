package handlers

import (
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/cadencehq/cadence-api/pkg/dto"
	"github.com/cadencehq/cadence-api/pkg/validate"
)

// bindAndValidate decodes the JSON body into req and validates it.
// On failure it writes the error response and returns false.
func bindAndValidate(c *drift.Context, req any) bool {
	if err := c.BindJSON(req); err != nil {
		c.BadRequest("invalid request body")
		return false
	}

	if errs := validate.Struct(req); errs != nil {
		_ = c.JSON(400, dto.ValidationErrorResponse{
			Message: "validation failed",
			Errors:  errs,
		})
		return false
	}

	return true
}
