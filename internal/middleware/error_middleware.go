package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aosora/coursehub/internal/app/models/dto"
	"github.com/aosora/coursehub/internal/pkg/apperrors"
)

// HandleAPIError translates domain error conditions into transport
// status codes and structured error bodies. Error translation lives
// here and nowhere else; the services only ever return domain errors.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidArgument, err.Error()),
		))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()),
		))
	case errors.Is(err, apperrors.ErrCourseNotFound):
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())
		if details := apperrors.Details(err); details != nil {
			detail = detail.WithDetails(details)
		}
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrNoCourseData):
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeSourceNoData, "catalog source has no data for the requested year"),
		))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		))
	}
}
