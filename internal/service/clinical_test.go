package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/patient"
)

func TestClinicalChart(t *testing.T) {
	h := newHarness(t, testNow)
	ctx := context.Background()

	chart, err := h.svc.Clinical.Chart(ctx, staff, "pat_001")
	require.NoError(t, err)

	assert.Equal(t, "Ayşe Yılmaz", chart.Patient.FullName())
	assert.Equal(t, 38, chart.Age)
	assert.Equal(t, []string{"ses_001"}, ids(chart.Sessions))
	assert.Equal(t, []string{"asm_001"}, ids(chart.Assessments))
	assert.Equal(t, []string{"tp_001"}, ids(chart.TherapyPlans))
	assert.Equal(t, []string{"doc_001", "doc_002"}, ids(chart.Documents))
	assert.Equal(t, []string{"pay_001"}, ids(chart.Payments))
	assert.Equal(t, []string{"inv_001"}, ids(chart.Invoices))
	assert.Empty(t, chart.PlansDueForReview)
	h.requireAudited(t, domain.ActionRead, "patient-chart", "pat_001")

	empty, err := h.svc.Clinical.Chart(ctx, staff, "pat_003")
	require.NoError(t, err)
	assert.NotNil(t, empty.Sessions)
	assert.Empty(t, empty.Sessions)

	_, err = h.svc.Clinical.Chart(ctx, staff, "pat_404")
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}

func TestClinicalChartReviewDue(t *testing.T) {
	h := newHarness(t, time.Date(2024, time.April, 15, 9, 0, 0, 0, time.UTC))

	chart, err := h.svc.Clinical.Chart(context.Background(), staff, "pat_001")
	require.NoError(t, err)
	assert.Equal(t, []string{"tp_001"}, chart.PlansDueForReview)
}

func TestClinicalPatientDeleteDoesNotCascade(t *testing.T) {
	h := newHarness(t, testNow)
	ctx := context.Background()

	_, err := h.svc.Clinical.Patients.Delete(ctx, staff, "pat_001")
	require.NoError(t, err)

	sessions, err := h.svc.Clinical.Sessions.ListBy(ctx, "patientId", "pat_001")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestClinicalPatientsByPsychologist(t *testing.T) {
	h := newHarness(t, testNow)

	got, err := h.svc.Clinical.Patients.List(context.Background(), Query{"psychologist": "Dr. Zeynep Kaya"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pat_001", "pat_002", "pat_003"}, ids(got))
}

func TestClinicalFollowUps(t *testing.T) {
	h := newHarness(t, testNow)
	assert.Equal(t, []string{"call_001"}, ids(h.svc.Clinical.FollowUps(context.Background())))
}

func TestOfficeAgendaAndSearch(t *testing.T) {
	h := newHarness(t, testNow)
	ctx := context.Background()

	agenda := h.svc.Office.Agenda(ctx, domain.MustDate("2024-01-15"))
	assert.Equal(t, []string{"apt_001"}, ids(agenda.Appointments))
	assert.Equal(t, []string{"shf_001", "shf_002"}, ids(agenda.Shifts))
	assert.Empty(t, agenda.Meetings)
	assert.NotNil(t, agenda.Meetings)

	res := h.svc.Office.Search(ctx, "fatura")
	assert.Equal(t, []string{"exp_002"}, ids(res.Expenses))
	assert.Empty(t, res.Appointments)

	res = h.svc.Office.Search(ctx, "  ")
	assert.Empty(t, res.Expenses)
	assert.Empty(t, res.Appointments)
}

func TestNotificationsMarkRead(t *testing.T) {
	h := newHarness(t, testNow)
	ctx := context.Background()
	svc := h.svc.Notifications

	assert.Equal(t, []string{"ntf_001", "ntf_002"}, ids(svc.Unread(ctx)))

	n, err := svc.MarkAsRead(ctx, staff, "ntf_001")
	require.NoError(t, err)
	assert.True(t, n.Read)
	h.requireAudited(t, domain.ActionUpdate, "notifications", "ntf_001")

	_, err = svc.MarkAsRead(ctx, staff, "ntf_404")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 1, svc.MarkAllAsRead(ctx, staff))
	assert.Empty(t, svc.Unread(ctx))
	assert.Zero(t, svc.MarkAllAsRead(ctx, staff))
}
