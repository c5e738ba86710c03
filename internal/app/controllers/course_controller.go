package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aosora/coursehub/internal/app/catalog"
	"github.com/aosora/coursehub/internal/app/models"
	"github.com/aosora/coursehub/internal/app/models/dto"
	"github.com/aosora/coursehub/internal/app/repositories"
	"github.com/aosora/coursehub/internal/app/search"
	"github.com/aosora/coursehub/internal/app/services"
	"github.com/aosora/coursehub/internal/middleware"
	"github.com/aosora/coursehub/internal/pkg/apperrors"
)

// CourseController handles course catalog operations
type CourseController struct {
	courseService *services.CourseService
	searchService *services.SearchService
	syncService   *services.SyncService
	catalogClient catalog.Client
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(
	courseService *services.CourseService,
	searchService *services.SearchService,
	syncService *services.SyncService,
	catalogClient catalog.Client,
	logger zerolog.Logger,
) *CourseController {
	return &CourseController{
		courseService: courseService,
		searchService: searchService,
		syncService:   syncService,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// UpdateCourseDatabase synchronizes one catalog year
// @Summary Update the course database for a year
// @Description Fetches the catalog snapshot for the given year and reconciles it against stored state in one atomic batch
// @Tags courses
// @Accept json
// @Produce json
// @Param year path int true "Academic year"
// @Param force query bool false "Update every record regardless of lastUpdate"
// @Success 200 {object} dto.APIResponse{data=services.SyncResult} "Synchronization report"
// @Failure 400 {object} dto.ErrorResponse "Invalid year"
// @Failure 503 {object} dto.ErrorResponse "Catalog source has no data for the year"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /course-database/{year} [put]
func (c *CourseController) UpdateCourseDatabase(ctx *gin.Context) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidArgument, "Invalid year")
		errorDetail = errorDetail.WithDetails("Year must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	force := ctx.Query("force") == "true"

	records, err := c.catalogClient.FetchCatalog(ctx, year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result, err := c.syncService.Sync(ctx, year, records, force)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// GetCourses retrieves courses by id
// @Summary Get courses by ids
// @Description Retrieves the courses with the given ids, in request order, fully hydrated
// @Tags courses
// @Accept json
// @Produce json
// @Param ids query string true "Comma-separated course ids"
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Duplicate or missing ids parameter"
// @Failure 404 {object} dto.ErrorResponse "Some ids were not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	raw := ctx.Query("ids")
	if raw == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidArgument, "ids parameter is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	ids := strings.Split(raw, ",")

	courses, err := c.courseService.GetCourses(ctx, ids)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}

// GetCoursesByCode retrieves courses by (year, code) conditions
// @Summary Get courses by year and code
// @Description Retrieves courses matching the given (year, code) conditions
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.GetCoursesByCodeRequest true "Lookup conditions"
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Duplicate conditions"
// @Failure 404 {object} dto.ErrorResponse "Some conditions matched nothing"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/by-code [post]
func (c *CourseController) GetCoursesByCode(ctx *gin.Context) {
	var req dto.GetCoursesByCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	conditions := make([]repositories.YearCode, len(req.Conditions))
	for i, cond := range req.Conditions {
		conditions[i] = repositories.YearCode{Year: cond.Year, Code: cond.Code}
	}

	courses, err := c.courseService.GetCoursesByCode(ctx, conditions, req.SuppressNotFoundError)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}

// ListAllCourses retrieves every stored course
// @Summary List all courses
// @Description Retrieves every stored course, fully hydrated
// @Tags courses
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/all [get]
func (c *CourseController) ListAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListAllCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}

// SearchCourse searches courses by keywords, code prefixes and timetable
// @Summary Search courses
// @Description Searches one catalog year by keywords (AND), code prefixes (OR) and an optional timetable occupancy filter with Cover or Contain semantics
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.SearchCourseRequest true "Search request"
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Matching page of courses"
// @Failure 400 {object} dto.ErrorResponse "Invalid search request"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/search [post]
func (c *CourseController) SearchCourse(ctx *gin.Context) {
	var req dto.SearchCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	input, err := searchInputFromRequest(req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courses, err := c.searchService.Search(ctx, *input)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}

// searchInputFromRequest converts the transport payload into a search
// input, rejecting unknown mode, module and day names.
func searchInputFromRequest(req dto.SearchCourseRequest) (*services.SearchInput, error) {
	input := &services.SearchInput{
		Year:         req.Year,
		Keywords:     req.Keywords,
		CodePrefixes: req.CodePrefixes,
		Offset:       req.Offset,
		Limit:        req.Limit,
	}

	switch req.SearchMode {
	case "", "Cover":
		input.Mode = search.ModeCover
	case "Contain":
		input.Mode = search.ModeContain
	default:
		return nil, apperrors.NewInvalidArgumentError(fmt.Sprintf("unknown search mode %q", req.SearchMode))
	}

	if req.Timetable != nil {
		input.Timetable = map[models.Module]map[models.Day][]bool{}
		for moduleName, days := range req.Timetable {
			module, err := models.ParseModule(moduleName)
			if err != nil {
				return nil, apperrors.NewInvalidArgumentError("invalid timetable: "+err.Error())
			}
			input.Timetable[module] = map[models.Day][]bool{}
			for dayName, periods := range days {
				day, err := models.ParseDay(dayName)
				if err != nil {
					return nil, apperrors.NewInvalidArgumentError("invalid timetable: "+err.Error())
				}
				input.Timetable[module][day] = periods
			}
		}
	}

	return input, nil
}
