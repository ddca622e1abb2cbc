// Package crmsvc - Test cửa sổ tuần và báo cáo pipeline tuần.
package crmsvc

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
)

func TestWeekWindow_BatDauThuHaiUTC(t *testing.T) {
	tests := []struct {
		name      string
		anchor    time.Time
		wantStart time.Time
	}{
		{
			name:      "giữa tuần (thứ Tư)",
			anchor:    time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC),
			wantStart: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "đúng thứ Hai 00:00",
			anchor:    time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Chủ nhật thuộc tuần của thứ Hai trước đó",
			anchor:    time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC),
			wantStart: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekWindow(tt.anchor.UnixMilli())
			if start != tt.wantStart.UnixMilli() {
				t.Errorf("weekStart = %d, kỳ vọng %d (%s)", start, tt.wantStart.UnixMilli(), tt.wantStart)
			}
			// Cửa sổ là đoạn đóng: end = start + 7 ngày − 1ms
			wantEnd := tt.wantStart.AddDate(0, 0, 7).Add(-time.Millisecond).UnixMilli()
			if end != wantEnd {
				t.Errorf("weekEnd = %d, kỳ vọng %d", end, wantEnd)
			}
		})
	}
}

func TestWeekWindow_DoanDong(t *testing.T) {
	anchor := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC).UnixMilli()
	start, end := WeekWindow(anchor)

	if !inWindow(start, start, end) {
		t.Error("Mốc đầu tuần phải nằm trong cửa sổ (đoạn đóng)")
	}
	if !inWindow(end, start, end) {
		t.Error("Mốc cuối tuần phải nằm trong cửa sổ (đoạn đóng)")
	}
	if inWindow(end+1, start, end) {
		t.Error("1ms sau cuối tuần phải nằm ngoài cửa sổ")
	}
}

func TestComputeWeeklyReport_PhanLoaiActivityTheoTuan(t *testing.T) {
	anchor := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	anchorMs := anchor.UnixMilli()
	nowMs := anchorMs
	weekStart, _ := WeekWindow(anchorMs)

	accountID := primitive.NewObjectID()
	opp := crmmodels.Opportunity{
		ID:        primitive.NewObjectID(),
		AccountID: accountID,
		Title:     "Deal",
		Stage:     crmmodels.StageProposal,
		Activities: []crmmodels.Activity{
			{ActivityID: primitive.NewObjectID(), Status: crmmodels.ActivityStatusScheduled, DateTime: weekStart + msPerDay},      // tuần này
			{ActivityID: primitive.NewObjectID(), Status: crmmodels.ActivityStatusScheduled, DateTime: weekStart + 8*msPerDay},    // tuần sau
			{ActivityID: primitive.NewObjectID(), Status: crmmodels.ActivityStatusCompleted, DateTime: weekStart - 2*msPerDay},    // tuần trước
			{ActivityID: primitive.NewObjectID(), Status: crmmodels.ActivityStatusScheduled, DateTime: weekStart - 10*msPerDay},   // quá hạn toàn cục
		},
	}
	accounts := []crmmodels.Account{{ID: accountID, Name: "Acme"}}

	report := ComputeWeeklyReport([]crmmodels.Opportunity{opp}, accounts, nil, anchorMs, nowMs)

	if len(report.Entries) != 1 {
		t.Fatalf("Kỳ vọng 1 entry, nhận được %d", len(report.Entries))
	}
	entry := report.Entries[0]
	if entry.AccountName != "Acme" {
		t.Errorf("AccountName = %q, kỳ vọng Acme", entry.AccountName)
	}
	if len(entry.ThisWeekActivities) != 1 {
		t.Errorf("Kỳ vọng 1 activity tuần này, nhận được %d", len(entry.ThisWeekActivities))
	}
	if len(entry.NextWeekActivities) != 1 {
		t.Errorf("Kỳ vọng 1 activity tuần sau, nhận được %d", len(entry.NextWeekActivities))
	}
	// Quá hạn đếm toàn cục: cả activity tuần này (đã qua mốc now) lẫn activity 10 ngày trước
	if report.OverdueActivityCount != 2 {
		t.Errorf("OverdueActivityCount = %d, kỳ vọng 2 (mọi Scheduled có DateTime < now)", report.OverdueActivityCount)
	}
}

func TestComputeWeeklyReport_DemContactQuaHan(t *testing.T) {
	nowMs := int64(1000 * msPerDay)

	contacts := []crmmodels.Contact{
		{ID: primitive.NewObjectID(), LastContactDate: nowMs - 40*msPerDay}, // quá hạn
		{ID: primitive.NewObjectID(), LastContactDate: nowMs - msPerDay},    // mới liên hệ
		{ID: primitive.NewObjectID()},                                       // chưa từng liên hệ → không quá hạn
	}

	report := ComputeWeeklyReport(nil, nil, contacts, nowMs, nowMs)
	if report.OverdueContactCount != 1 {
		t.Errorf("OverdueContactCount = %d, kỳ vọng 1", report.OverdueContactCount)
	}
}

func TestComputeWeeklyReport_XepHangTheoPriorityRoiRisk(t *testing.T) {
	nowMs := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC).UnixMilli()

	// Medium không risk, Critical không risk, High có risk (blocker chưa giải quyết),
	// High không risk → thứ tự: Critical, High-risk, High, Medium
	mkOpp := func(priority string, blockers []crmmodels.Blocker) crmmodels.Opportunity {
		return crmmodels.Opportunity{
			ID:       primitive.NewObjectID(),
			Stage:    crmmodels.StageProposal,
			Priority: priority,
			Blockers: blockers,
			Activities: []crmmodels.Activity{
				{Status: crmmodels.ActivityStatusCompleted, DateTime: nowMs - msPerDay},
			},
		}
	}
	opps := []crmmodels.Opportunity{
		mkOpp(crmmodels.PriorityMedium, nil),
		mkOpp(crmmodels.PriorityHigh, nil),
		mkOpp(crmmodels.PriorityHigh, []crmmodels.Blocker{{Completed: false}}),
		mkOpp(crmmodels.PriorityCritical, nil),
	}

	report := ComputeWeeklyReport(opps, nil, nil, nowMs, nowMs)
	if len(report.Entries) != 4 {
		t.Fatalf("Kỳ vọng 4 entry, nhận được %d", len(report.Entries))
	}

	gotPriorities := []string{
		report.Entries[0].Opportunity.Priority,
		report.Entries[1].Opportunity.Priority,
		report.Entries[2].Opportunity.Priority,
		report.Entries[3].Opportunity.Priority,
	}
	want := []string{
		crmmodels.PriorityCritical,
		crmmodels.PriorityHigh,
		crmmodels.PriorityHigh,
		crmmodels.PriorityMedium,
	}
	for i := range want {
		if gotPriorities[i] != want[i] {
			t.Fatalf("Thứ tự entry sai tại vị trí %d: nhận được %v, kỳ vọng %v", i, gotPriorities, want)
		}
	}
	// Trong cùng priority High, entry nhiều risk factor hơn đứng trước
	if len(report.Entries[1].RiskFactors) < len(report.Entries[2].RiskFactors) {
		t.Errorf("Cùng priority phải xếp theo số risk factor giảm dần: %d < %d",
			len(report.Entries[1].RiskFactors), len(report.Entries[2].RiskFactors))
	}
}

func TestOpportunityRiskFactors(t *testing.T) {
	nowMs := int64(1000 * msPerDay)

	opp := &crmmodels.Opportunity{
		Stage:             crmmodels.StageDiscovery,
		ExpectedCloseDate: nowMs + 5*msPerDay,
		CreatedAt:         nowMs - 20*msPerDay,
		Activities: []crmmodels.Activity{
			{Status: crmmodels.ActivityStatusScheduled, DateTime: nowMs - 20*msPerDay},
		},
		Blockers: []crmmodels.Blocker{{Completed: false}},
	}

	factors := opportunityRiskFactors(opp, nowMs)
	wantAll := map[string]bool{
		RiskOverdueActivities:  true,
		RiskNoRecentActivity:   true,
		RiskUnresolvedBlockers: true,
		RiskEarlyStageClosing:  true,
	}
	if len(factors) != len(wantAll) {
		t.Fatalf("Kỳ vọng đủ %d risk factor, nhận được %v", len(wantAll), factors)
	}
	for _, f := range factors {
		if !wantAll[f] {
			t.Errorf("Risk factor không mong đợi: %q", f)
		}
	}

	// Opportunity khỏe mạnh thì không có risk factor nào
	healthy := &crmmodels.Opportunity{
		Stage: crmmodels.StageNegotiation,
		Activities: []crmmodels.Activity{
			{Status: crmmodels.ActivityStatusCompleted, DateTime: nowMs - msPerDay},
		},
	}
	if factors := opportunityRiskFactors(healthy, nowMs); len(factors) != 0 {
		t.Errorf("Opportunity khỏe mạnh không được có risk factor, nhận được %v", factors)
	}
}
