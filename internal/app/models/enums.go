package models

import "fmt"

// Module is an academic term a course runs in. Stored as text.
type Module string

const (
	ModuleSpringA        Module = "SpringA"
	ModuleSpringB        Module = "SpringB"
	ModuleSpringC        Module = "SpringC"
	ModuleFallA          Module = "FallA"
	ModuleFallB          Module = "FallB"
	ModuleFallC          Module = "FallC"
	ModuleSummerVacation Module = "SummerVacation"
	ModuleSpringVacation Module = "SpringVacation"
	ModuleAnnual         Module = "Annual"
	ModuleUnknown        Module = "Unknown"
)

// ConcreteModules are the six term modules an Annual schedule entry
// expands into at ingestion time.
var ConcreteModules = []Module{
	ModuleSpringA, ModuleSpringB, ModuleSpringC,
	ModuleFallA, ModuleFallB, ModuleFallC,
}

// ParseModule parses a module name as supplied by API callers.
// Unrecognized names are an error, unlike catalog-side mapping which
// degrades to Unknown.
func ParseModule(s string) (Module, error) {
	switch Module(s) {
	case ModuleSpringA, ModuleSpringB, ModuleSpringC,
		ModuleFallA, ModuleFallB, ModuleFallC,
		ModuleSummerVacation, ModuleSpringVacation,
		ModuleAnnual, ModuleUnknown:
		return Module(s), nil
	}
	return "", fmt.Errorf("unknown module %q", s)
}

// Day is the weekday (or scheduling style) of a schedule entry. Stored as text.
type Day string

const (
	DaySun         Day = "Sun"
	DayMon         Day = "Mon"
	DayTue         Day = "Tue"
	DayWed         Day = "Wed"
	DayThu         Day = "Thu"
	DayFri         Day = "Fri"
	DaySat         Day = "Sat"
	DayIntensive   Day = "Intensive"
	DayAppointment Day = "Appointment"
	DayAnyTime     Day = "AnyTime"
	DayUnknown     Day = "Unknown"
)

// ParseDay parses a day name as supplied by API callers.
func ParseDay(s string) (Day, error) {
	switch Day(s) {
	case DaySun, DayMon, DayTue, DayWed, DayThu, DayFri, DaySat,
		DayIntensive, DayAppointment, DayAnyTime, DayUnknown:
		return Day(s), nil
	}
	return "", fmt.Errorf("unknown day %q", s)
}

// CourseMethodKind is a delivery method tag derived from the remarks column.
type CourseMethodKind string

const (
	MethodOnlineAsynchronous CourseMethodKind = "OnlineAsynchronous"
	MethodOnlineSynchronous  CourseMethodKind = "OnlineSynchronous"
	MethodFaceToFace         CourseMethodKind = "FaceToFace"
	MethodOthers             CourseMethodKind = "Others"
)
