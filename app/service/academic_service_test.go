package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hari-dev-003/Achieve/app/model"
)

type stubReportWriter struct {
	document string
	err      error

	reportType string
	lines      []string
}

func (s *stubReportWriter) ComposeReport(_ context.Context, reportType, _, _ string, achievements []string) (string, error) {
	s.reportType = reportType
	s.lines = achievements
	return s.document, s.err
}

func TestClassRosterGroupsByStudent(t *testing.T) {
	faculty := facultyUser()
	arun := studentUser()
	bianca := studentUser()
	bianca.Name = "Bianca"
	bianca.Email = "bianca@college.edu"

	achievements := newMemAchievementRepo()
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	seedPending(t, achievements, arun, "Arun 1", base)
	seedPending(t, achievements, bianca, "Bianca 1", base.Add(time.Hour))
	seedPending(t, achievements, arun, "Arun 2", base.Add(2*time.Hour))

	svc := NewAcademicService(achievements, newMemUserRepo(faculty, arun, bianca), &stubReportWriter{})
	app := testApp(sessionFor(faculty))
	app.Get("/class", svc.ClassRoster)

	resp, err := app.Test(httptest.NewRequest("GET", "/class?department=CSE&year=3&section=A", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []model.StudentGroup `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "Arun", body.Data[0].StudentName)
	require.Len(t, body.Data[0].Achievements, 2)
	assert.Equal(t, "Arun 1", body.Data[0].Achievements[0].Title)
	assert.Equal(t, "Bianca", body.Data[1].StudentName)
}

func TestAnalyticsAggregatesAllRecords(t *testing.T) {
	faculty := facultyUser()
	cse := studentUser()
	ece := studentUser()
	ece.Department = "ECE"

	achievements := newMemAchievementRepo()
	seedPending(t, achievements, cse, "A", time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC))
	seedPending(t, achievements, cse, "B", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC))
	seedPending(t, achievements, ece, "C", time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC))

	svc := NewAcademicService(achievements, newMemUserRepo(faculty), &stubReportWriter{})
	app := testApp(sessionFor(faculty))
	app.Get("/analytics", svc.Analytics)

	resp, err := app.Test(httptest.NewRequest("GET", "/analytics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data model.AnalyticsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Len(t, body.Data.Engagement, 2)
	assert.Equal(t, "Dec 24", body.Data.Engagement[0].Label)
	assert.Equal(t, 1, body.Data.Engagement[0].Submissions)
	assert.Equal(t, "Jan 25", body.Data.Engagement[1].Label)
	assert.Equal(t, 2, body.Data.Engagement[1].Submissions)

	require.Len(t, body.Data.Performance, 2)
	assert.Equal(t, model.DepartmentCount{Department: "CSE", Achievements: 2}, body.Data.Performance[0])
	assert.Equal(t, model.DepartmentCount{Department: "ECE", Achievements: 1}, body.Data.Performance[1])
}

func TestGenerateReportUsesVerifiedRecordsOnly(t *testing.T) {
	faculty := facultyUser()
	student := studentUser()
	achievements := newMemAchievementRepo()

	verified := seedPending(t, achievements, student, "Hackathon Winner", time.Now())
	require.NoError(t, achievements.MarkVerified(context.Background(), verified.ID.Hex(), faculty.ID.String(), "deadbeef", time.Now()))
	seedPending(t, achievements, student, "Unreviewed entry", time.Now())

	writer := &stubReportWriter{document: "To whom it may concern..."}
	svc := NewAcademicService(achievements, newMemUserRepo(faculty, student), writer)
	app := testApp(sessionFor(faculty))
	app.Post("/reports", svc.GenerateReport)

	payload := fmt.Sprintf(`{"studentId":%q,"type":"recommendation"}`, student.ID.String())
	req := httptest.NewRequest("POST", "/reports", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Document string `json:"document"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "To whom it may concern...", body.Data.Document)

	assert.Equal(t, "recommendation", writer.reportType)
	require.Len(t, writer.lines, 1)
	assert.Contains(t, writer.lines[0], "Hackathon Winner")
}

func TestGenerateReportRejectsUnknownType(t *testing.T) {
	faculty := facultyUser()
	svc := NewAcademicService(newMemAchievementRepo(), newMemUserRepo(faculty), &stubReportWriter{})
	app := testApp(sessionFor(faculty))
	app.Post("/reports", svc.GenerateReport)

	payload := fmt.Sprintf(`{"studentId":%q,"type":"transcript"}`, studentUser().ID.String())
	req := httptest.NewRequest("POST", "/reports", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGenerateReportNeedsVerifiedRecords(t *testing.T) {
	faculty := facultyUser()
	student := studentUser()
	achievements := newMemAchievementRepo()
	seedPending(t, achievements, student, "Pending only", time.Now())

	writer := &stubReportWriter{}
	svc := NewAcademicService(achievements, newMemUserRepo(faculty, student), writer)
	app := testApp(sessionFor(faculty))
	app.Post("/reports", svc.GenerateReport)

	payload := fmt.Sprintf(`{"studentId":%q,"type":"progress"}`, student.ID.String())
	req := httptest.NewRequest("POST", "/reports", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, writer.reportType)
}

func TestGenerateReportSurfacesWriterFailure(t *testing.T) {
	faculty := facultyUser()
	student := studentUser()
	achievements := newMemAchievementRepo()
	verified := seedPending(t, achievements, student, "Paper", time.Now())
	require.NoError(t, achievements.MarkVerified(context.Background(), verified.ID.Hex(), faculty.ID.String(), "deadbeef", time.Now()))

	svc := NewAcademicService(achievements, newMemUserRepo(faculty, student), &stubReportWriter{err: fmt.Errorf("model overloaded")})
	app := testApp(sessionFor(faculty))
	app.Post("/reports", svc.GenerateReport)

	payload := fmt.Sprintf(`{"studentId":%q,"type":"progress"}`, student.ID.String())
	req := httptest.NewRequest("POST", "/reports", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}
