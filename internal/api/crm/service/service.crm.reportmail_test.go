// Package crmsvc - Test render HTML cho email báo cáo tuần.
package crmsvc

import (
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
)

func TestFormatDateMs(t *testing.T) {
	ms := time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC).UnixMilli()
	if got := formatDateMs(ms); got != "24/08/2026" {
		t.Errorf("formatDateMs = %q, kỳ vọng 24/08/2026", got)
	}
	if got := formatDateMs(0); got != "-" {
		t.Errorf("Mốc 0 phải cho \"-\", nhận được %q", got)
	}
	if got := formatDateTimeMs(ms); got != "24/08/2026 10:30" {
		t.Errorf("formatDateTimeMs = %q, kỳ vọng 24/08/2026 10:30", got)
	}
}

func TestRenderWeeklyReportHTML(t *testing.T) {
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC).UnixMilli()
	report := &WeeklyReport{
		WeekStart:            weekStart,
		WeekEnd:              weekStart + 7*msPerDay - 1,
		OverdueActivityCount: 2,
		OverdueContactCount:  1,
		Pipeline: PipelineMetrics{
			ActiveCount: 3,
			ActiveValue: 1500,
		},
		Entries: []WeeklyReportEntry{
			{
				Opportunity: crmmodels.Opportunity{
					ID:                 primitive.NewObjectID(),
					Title:              "Deal lớn",
					Stage:              crmmodels.StageNegotiation,
					Priority:           crmmodels.PriorityHigh,
					EstimatedDealValue: 1000,
				},
				AccountName: "Acme",
				ThisWeekActivities: []crmmodels.Activity{
					{Type: crmmodels.ActivityTypeMeeting, Status: crmmodels.ActivityStatusScheduled, DateTime: weekStart + msPerDay},
				},
				NextWeekActivities: []crmmodels.Activity{},
				RiskFactors:        []string{RiskUnresolvedBlockers},
			},
		},
	}

	html := RenderWeeklyReportHTML(report)

	for _, want := range []string{
		"24/08/2026",       // đầu tuần
		"Deal lớn",         // title opportunity
		"Acme",             // account name
		"Negotiation",      // stage
		"1000.00",          // giá trị deal
		RiskUnresolvedBlockers,
		"Activity tuần này",
		crmmodels.ActivityTypeMeeting,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML thiếu %q", want)
		}
	}
	if strings.Contains(html, "Activity tuần tới") {
		t.Error("Entry không có activity tuần tới thì không render mục đó")
	}
}

func TestRenderWeeklyReportHTML_KhongCoEntry(t *testing.T) {
	report := &WeeklyReport{
		WeekStart: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC).UnixMilli(),
		WeekEnd:   time.Date(2026, 8, 30, 23, 59, 59, 999000000, time.UTC).UnixMilli(),
	}
	html := RenderWeeklyReportHTML(report)
	if !strings.Contains(html, "<table") {
		t.Error("HTML phải luôn có bảng tổng hợp, kể cả khi không có entry")
	}
}
