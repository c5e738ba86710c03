// Package catalog talks to the external catalog-source service, which
// parses the university's raw timetable data and serves it back as
// structured per-year course records.
package catalog

import "time"

// CourseRecord is one course as produced by the catalog parser. Module
// and day names are the parser's enum spellings; they are cross-mapped
// to stored enums during synchronization.
type CourseRecord struct {
	Code              string           `json:"code"`
	Name              string           `json:"name"`
	Instructor        string           `json:"instructor"`
	Credits           float64          `json:"credits"`
	Overview          string           `json:"overview"`
	Remarks           string           `json:"remarks"`
	LastUpdate        time.Time        `json:"lastUpdate"`
	RecommendedGrades []int            `json:"recommendedGrades"`
	Schedules         []ScheduleRecord `json:"schedules"`
	HasParseError     bool             `json:"error"`
}

// ScheduleRecord is one schedule slot of a parsed course.
type ScheduleRecord struct {
	Module string `json:"module"`
	Day    string `json:"day"`
	Period int    `json:"period"`
	Room   string `json:"room"`
}
