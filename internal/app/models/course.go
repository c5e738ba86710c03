package models

import "time"

// Course is the aggregate root for one catalog entry. The (year, code)
// pair is the natural key used during synchronization; ID is the stable
// surrogate key handed out to external callers and never reassigned.
type Course struct {
	ID            string    `json:"id" db:"id"`
	Year          int       `json:"year" db:"year"`
	Code          string    `json:"code" db:"code"`
	Name          string    `json:"name" db:"name"`
	Instructor    string    `json:"instructor" db:"instructor"`
	Credit        float64   `json:"credit" db:"credit"`
	Overview      string    `json:"overview" db:"overview"`
	Remarks       string    `json:"remarks" db:"remarks"`
	LastUpdate    time.Time `json:"lastUpdate" db:"last_update"`
	HasParseError bool      `json:"hasParseError" db:"has_parse_error"`

	// Child collections. Written in lock-step with the course row and
	// fully replaced on update, never partially patched.
	Schedules         []CourseSchedule         `json:"schedules"`
	Methods           []CourseMethod           `json:"methods"`
	RecommendedGrades []CourseRecommendedGrade `json:"recommendedGrades"`
}

// CourseSchedule is one (module, day, period, room) slot a course
// occupies. Period 0 means "no specific period" and is used for
// Intensive/Appointment/AnyTime style days. Stored entries always carry
// a concrete module; Annual is expanded at ingestion.
type CourseSchedule struct {
	CourseID string `json:"-" db:"course_id"`
	Module   Module `json:"module" db:"module"`
	Day      Day    `json:"day" db:"day"`
	Period   int    `json:"period" db:"period"`
	Room     string `json:"room" db:"room"`
}

// CourseMethod is a delivery method tag of a course.
type CourseMethod struct {
	CourseID string           `json:"-" db:"course_id"`
	Method   CourseMethodKind `json:"method" db:"method"`
}

// CourseRecommendedGrade is a recommended grade level of a course.
type CourseRecommendedGrade struct {
	CourseID string `json:"-" db:"course_id"`
	Grade    int    `json:"grade" db:"grade"`
}
