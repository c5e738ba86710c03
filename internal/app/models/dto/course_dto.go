package dto

// GetCoursesByCodeRequest looks up courses by their (year, code)
// natural keys.
type GetCoursesByCodeRequest struct {
	Conditions []CodeCondition `json:"conditions" binding:"required"`
	// SuppressNotFoundError returns partial results instead of failing
	// when some conditions match nothing.
	SuppressNotFoundError bool `json:"suppressNotFoundError"`
}

// CodeCondition is one (year, code) lookup condition.
type CodeCondition struct {
	Year int    `json:"year" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// SearchCourseRequest is the search endpoint payload. Timetable is
// keyed by module name then day name; each boolean slice is indexed by
// period, index 0 being the "no specific period" slot.
type SearchCourseRequest struct {
	Year         int                          `json:"year" binding:"required"`
	Keywords     []string                     `json:"keywords"`
	CodePrefixes []string                     `json:"codePrefixes"`
	Timetable    map[string]map[string][]bool `json:"timetable"`
	SearchMode   string                       `json:"searchMode" example:"Cover" enums:"Cover,Contain"`
	Offset       int                          `json:"offset"`
	Limit        int                          `json:"limit" binding:"required"`
}
