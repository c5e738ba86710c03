package services

import (
	"fmt"
	"strings"

	"github.com/aosora/coursehub/internal/app/catalog"
	"github.com/aosora/coursehub/internal/app/models"
	"github.com/aosora/coursehub/internal/pkg/apperrors"
)

// moduleFromRecord maps a catalog-source module name to the stored
// enum. Unknown spellings degrade to Unknown rather than failing the
// record; the source vocabulary is not under our control.
func moduleFromRecord(s string) models.Module {
	switch s {
	case "SpringA", "春A":
		return models.ModuleSpringA
	case "SpringB", "春B":
		return models.ModuleSpringB
	case "SpringC", "春C":
		return models.ModuleSpringC
	case "FallA", "秋A":
		return models.ModuleFallA
	case "FallB", "秋B":
		return models.ModuleFallB
	case "FallC", "秋C":
		return models.ModuleFallC
	case "SummerVacation", "夏季休業中":
		return models.ModuleSummerVacation
	case "SpringVacation", "春季休業中":
		return models.ModuleSpringVacation
	case "Annual", "通年":
		return models.ModuleAnnual
	default:
		return models.ModuleUnknown
	}
}

// dayFromRecord maps a catalog-source day name to the stored enum.
func dayFromRecord(s string) models.Day {
	switch s {
	case "Sun", "日":
		return models.DaySun
	case "Mon", "月":
		return models.DayMon
	case "Tue", "火":
		return models.DayTue
	case "Wed", "水":
		return models.DayWed
	case "Thu", "木":
		return models.DayThu
	case "Fri", "金":
		return models.DayFri
	case "Sat", "土":
		return models.DaySat
	case "Intensive", "集中":
		return models.DayIntensive
	case "Appointment", "応談":
		return models.DayAppointment
	case "AnyTime", "随時":
		return models.DayAnyTime
	default:
		return models.DayUnknown
	}
}

// methodsFromRemarks derives delivery method tags by scanning the
// remarks column for the fixed phrases the catalog uses. A remarks
// value matching none of them yields no tags; Others is never derived
// here.
func methodsFromRemarks(remarks string) []models.CourseMethodKind {
	var res []models.CourseMethodKind
	if strings.Contains(remarks, "対面") {
		res = append(res, models.MethodFaceToFace)
	}
	if strings.Contains(remarks, "オンデマンド") {
		res = append(res, models.MethodOnlineAsynchronous)
	}
	if strings.Contains(remarks, "双方向") {
		res = append(res, models.MethodOnlineSynchronous)
	}
	return res
}

// validateRecord rejects records the aggregate cannot be built from.
// A single bad record fails the whole sync batch.
func validateRecord(rec catalog.CourseRecord) error {
	if strings.TrimSpace(rec.Code) == "" {
		return fmt.Errorf("%w: course code is required", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(rec.Name) == "" {
		return fmt.Errorf("%w: course name is required (code %s)", apperrors.ErrValidationFailed, rec.Code)
	}
	if rec.LastUpdate.IsZero() {
		return fmt.Errorf("%w: course last update is required (code %s)", apperrors.ErrValidationFailed, rec.Code)
	}
	return nil
}

// buildCourse constructs the full aggregate for one catalog record.
// The id is assigned by the caller: a fresh uuid on insert, the
// existing id on update.
func buildCourse(rec catalog.CourseRecord, year int, id string) (*models.Course, error) {
	if err := validateRecord(rec); err != nil {
		return nil, err
	}

	course := &models.Course{
		ID:            id,
		Year:          year,
		Code:          rec.Code,
		Name:          rec.Name,
		Instructor:    rec.Instructor,
		Credit:        rec.Credits,
		Overview:      rec.Overview,
		Remarks:       rec.Remarks,
		LastUpdate:    rec.LastUpdate,
		HasParseError: rec.HasParseError,
	}

	for _, g := range rec.RecommendedGrades {
		course.RecommendedGrades = append(course.RecommendedGrades, models.CourseRecommendedGrade{
			CourseID: id,
			Grade:    g,
		})
	}

	for _, m := range methodsFromRemarks(rec.Remarks) {
		course.Methods = append(course.Methods, models.CourseMethod{
			CourseID: id,
			Method:   m,
		})
	}

	for _, s := range rec.Schedules {
		module := moduleFromRecord(s.Module)
		day := dayFromRecord(s.Day)

		// An Annual entry is shorthand for all six term modules. Stored
		// schedule rows always carry a concrete module so the search
		// compiler never has to special-case Annual.
		if module == models.ModuleAnnual {
			for _, m := range models.ConcreteModules {
				course.Schedules = append(course.Schedules, models.CourseSchedule{
					CourseID: id,
					Module:   m,
					Day:      day,
					Period:   s.Period,
					Room:     s.Room,
				})
			}
			continue
		}

		course.Schedules = append(course.Schedules, models.CourseSchedule{
			CourseID: id,
			Module:   module,
			Day:      day,
			Period:   s.Period,
			Room:     s.Room,
		})
	}

	return course, nil
}
