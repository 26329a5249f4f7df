package service

import (
	"sort"
	"time"

	"github.com/hari-dev-003/Achieve/app/model"
)

// GroupByStudent partitions one class's achievement records by student. Every
// input record lands in exactly one group; records within a group are sorted
// by submission time and groups by student name for stable display.
func GroupByStudent(records []model.Achievement) []model.StudentGroup {
	byStudent := map[string]*model.StudentGroup{}
	order := []string{}

	for _, rec := range records {
		group, ok := byStudent[rec.StudentID]
		if !ok {
			group = &model.StudentGroup{
				StudentID:   rec.StudentID,
				StudentName: rec.StudentName,
			}
			byStudent[rec.StudentID] = group
			order = append(order, rec.StudentID)
		}
		group.Achievements = append(group.Achievements, rec)
	}

	groups := make([]model.StudentGroup, 0, len(order))
	for _, id := range order {
		group := byStudent[id]
		sort.SliceStable(group.Achievements, func(i, j int) bool {
			return group.Achievements[i].SubmittedAt.Before(group.Achievements[j].SubmittedAt)
		})
		groups = append(groups, *group)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].StudentName != groups[j].StudentName {
			return groups[i].StudentName < groups[j].StudentName
		}
		return groups[i].StudentID < groups[j].StudentID
	})
	return groups
}

// EngagementByMonth counts submissions per (year, month) of submittedAt.
// The series is ordered chronologically, not by label text; a string sort on
// "Jan 25" style labels would misorder months across a year boundary.
func EngagementByMonth(records []model.Achievement) []model.MonthCount {
	type monthKey struct {
		year  int
		month time.Month
	}

	counts := map[monthKey]int{}
	for _, rec := range records {
		t := rec.SubmittedAt
		counts[monthKey{t.Year(), t.Month()}]++
	}

	series := make([]model.MonthCount, 0, len(counts))
	for key, n := range counts {
		series = append(series, model.MonthCount{
			Year:        key.year,
			Month:       int(key.month),
			Label:       time.Date(key.year, key.month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 06"),
			Submissions: n,
		})
	}

	sort.Slice(series, func(i, j int) bool {
		if series[i].Year != series[j].Year {
			return series[i].Year < series[j].Year
		}
		return series[i].Month < series[j].Month
	})
	return series
}

// PerformanceByDepartment counts records per department, sorted by name.
func PerformanceByDepartment(records []model.Achievement) []model.DepartmentCount {
	counts := map[string]int{}
	for _, rec := range records {
		counts[rec.Department]++
	}

	series := make([]model.DepartmentCount, 0, len(counts))
	for dept, n := range counts {
		series = append(series, model.DepartmentCount{
			Department:   dept,
			Achievements: n,
		})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Department < series[j].Department
	})
	return series
}
