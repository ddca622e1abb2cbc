package crmsvc

import (
	"sort"
	"time"

	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
)

// Risk factor của opportunity trong báo cáo tuần.
const (
	RiskOverdueActivities  = "overdue-activities"
	RiskNoRecentActivity   = "no-recent-activity"
	RiskUnresolvedBlockers = "unresolved-blockers"
	RiskEarlyStageClosing  = "early-stage-closing-soon"
)

// WeeklyReportEntry là một opportunity trong báo cáo tuần, kèm activity trong cửa sổ
// tuần này/tuần sau và danh sách risk factor.
type WeeklyReportEntry struct {
	Opportunity        crmmodels.Opportunity `json:"opportunity"`
	AccountName        string                `json:"accountName,omitempty"`
	ThisWeekActivities []crmmodels.Activity  `json:"thisWeekActivities"`
	NextWeekActivities []crmmodels.Activity  `json:"nextWeekActivities"`
	RiskFactors        []string              `json:"riskFactors"`
}

// WeeklyReport là báo cáo pipeline tuần, tính quanh một ngày neo.
// Tuần bắt đầu thứ Hai 00:00:00 UTC, kết thúc hết Chủ nhật.
type WeeklyReport struct {
	WeekStart     int64 `json:"weekStart"` // unix milli
	WeekEnd       int64 `json:"weekEnd"`
	NextWeekStart int64 `json:"nextWeekStart"`
	NextWeekEnd   int64 `json:"nextWeekEnd"`

	// Đếm toàn cục (không giới hạn trong cửa sổ tuần)
	OverdueActivityCount int `json:"overdueActivityCount"`
	OverdueContactCount  int `json:"overdueContactCount"`

	Pipeline PipelineMetrics `json:"pipeline"`

	// Xếp hạng theo priority (Critical > High > Medium > Low) rồi theo số risk factor giảm dần
	Entries []WeeklyReportEntry `json:"entries"`
}

// WeekWindow trả về mốc đầu tuần (thứ Hai 00:00 UTC) và cuối tuần (hết Chủ nhật)
// của tuần chứa anchorMs, dạng unix milli. Cửa sổ là đoạn đóng [start, end].
func WeekWindow(anchorMs int64) (startMs, endMs int64) {
	anchor := time.UnixMilli(anchorMs).UTC()
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)

	// time.Weekday: Sunday = 0, Monday = 1
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start.UnixMilli(), end.UnixMilli()
}

// inWindow kiểm tra mốc thời gian nằm trong đoạn đóng [startMs, endMs].
func inWindow(ms, startMs, endMs int64) bool {
	return ms >= startMs && ms <= endMs
}

func priorityRank(priority string) int {
	switch priority {
	case crmmodels.PriorityCritical:
		return 0
	case crmmodels.PriorityHigh:
		return 1
	case crmmodels.PriorityLow:
		return 3
	default: // Medium hoặc thiếu
		return 2
	}
}

// opportunityRiskFactors tính hợp các risk factor của opportunity tại mốc nowMs.
func opportunityRiskFactors(opp *crmmodels.Opportunity, nowMs int64) []string {
	var factors []string

	if countOverdueScheduled(opp, nowMs) > 0 {
		factors = append(factors, RiskOverdueActivities)
	}

	lastActivity := lastActivityDate(opp)
	if lastActivity == 0 {
		lastActivity = opp.CreatedAt
	}
	if float64(nowMs-lastActivity)/float64(msPerDay) > StalledDays {
		factors = append(factors, RiskNoRecentActivity)
	}

	if countUnresolvedBlockers(opp) > 0 {
		factors = append(factors, RiskUnresolvedBlockers)
	}

	// Sắp đóng trong 14 ngày mà vẫn ở stage sớm nhất
	if opp.ExpectedCloseDate > 0 && opp.ExpectedCloseDate < nowMs+14*msPerDay && opp.Stage == crmmodels.StageDiscovery {
		factors = append(factors, RiskEarlyStageClosing)
	}
	return factors
}

// ComputeWeeklyReport dựng báo cáo tuần từ các collection đã fetch sẵn. Hàm thuần.
// anchorMs chọn tuần; nowMs dùng cho các phép đếm quá hạn toàn cục.
func ComputeWeeklyReport(opportunities []crmmodels.Opportunity, accounts []crmmodels.Account, contacts []crmmodels.Contact, anchorMs, nowMs int64) WeeklyReport {
	weekStart, weekEnd := WeekWindow(anchorMs)
	nextWeekStart := weekStart + 7*msPerDay
	nextWeekEnd := weekEnd + 7*msPerDay

	accountNames := make(map[string]string, len(accounts))
	for i := range accounts {
		accountNames[accounts[i].ID.Hex()] = accounts[i].Name
	}

	report := WeeklyReport{
		WeekStart:     weekStart,
		WeekEnd:       weekEnd,
		NextWeekStart: nextWeekStart,
		NextWeekEnd:   nextWeekEnd,
		Pipeline:      ComputePipelineMetrics(opportunities),
	}

	for i := range contacts {
		if IsContactOverdue(&contacts[i], nowMs) {
			report.OverdueContactCount++
		}
	}

	for i := range opportunities {
		opp := opportunities[i]
		entry := WeeklyReportEntry{
			Opportunity:        opp,
			AccountName:        accountNames[opp.AccountID.Hex()],
			ThisWeekActivities: []crmmodels.Activity{},
			NextWeekActivities: []crmmodels.Activity{},
			RiskFactors:        opportunityRiskFactors(&opp, nowMs),
		}

		for _, a := range opp.Activities {
			if inWindow(a.DateTime, weekStart, weekEnd) {
				entry.ThisWeekActivities = append(entry.ThisWeekActivities, a)
			}
			if inWindow(a.DateTime, nextWeekStart, nextWeekEnd) {
				entry.NextWeekActivities = append(entry.NextWeekActivities, a)
			}
			if a.Status == crmmodels.ActivityStatusScheduled && a.DateTime < nowMs {
				report.OverdueActivityCount++
			}
		}

		report.Entries = append(report.Entries, entry)
	}

	sort.SliceStable(report.Entries, func(i, j int) bool {
		ri := priorityRank(report.Entries[i].Opportunity.Priority)
		rj := priorityRank(report.Entries[j].Opportunity.Priority)
		if ri != rj {
			return ri < rj
		}
		return len(report.Entries[i].RiskFactors) > len(report.Entries[j].RiskFactors)
	})

	return report
}
