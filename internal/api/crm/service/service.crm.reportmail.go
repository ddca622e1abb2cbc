package crmsvc

import (
	"context"
	"fmt"
	"strings"
	"time"

	authsvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/auth/service"
	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/logger"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/mailer"
)

func formatDateMs(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return time.UnixMilli(ms).UTC().Format("02/01/2006")
}

func formatDateTimeMs(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return time.UnixMilli(ms).UTC().Format("02/01/2006 15:04")
}

func renderActivityRows(b *strings.Builder, title string, activities []crmmodels.Activity) {
	if len(activities) == 0 {
		return
	}
	fmt.Fprintf(b, "<p style='margin:4px 0;font-weight:bold;'>%s</p><ul style='margin:4px 0;'>", title)
	for _, a := range activities {
		fmt.Fprintf(b, "<li>%s - %s (%s)</li>", formatDateTimeMs(a.DateTime), a.Type, a.Status)
	}
	b.WriteString("</ul>")
}

// RenderWeeklyReportHTML dựng nội dung HTML cho email báo cáo tuần
func RenderWeeklyReportHTML(report *WeeklyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h2>Báo cáo pipeline tuần %s - %s</h2>",
		formatDateMs(report.WeekStart), formatDateMs(report.WeekEnd))

	fmt.Fprintf(&b, "<p>Pipeline đang mở: <b>%d</b> opportunity, tổng giá trị <b>%.2f</b>. "+
		"Activity quá hạn: <b>%d</b>. Contact quá hạn liên hệ: <b>%d</b>.</p>",
		report.Pipeline.ActiveCount, report.Pipeline.ActiveValue,
		report.OverdueActivityCount, report.OverdueContactCount)

	b.WriteString("<table border='1' cellpadding='6' cellspacing='0' style='border-collapse:collapse;'>")
	b.WriteString("<tr style='background:#f0f0f0;'><th>Opportunity</th><th>Account</th><th>Stage</th><th>Priority</th><th>Giá trị</th><th>Ngày chốt dự kiến</th><th>Rủi ro</th></tr>")
	for _, entry := range report.Entries {
		opp := entry.Opportunity
		risk := strings.Join(entry.RiskFactors, "; ")
		if risk == "" {
			risk = "-"
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%.2f</td><td>%s</td><td>%s</td></tr>",
			opp.Title, entry.AccountName, opp.Stage, opp.Priority,
			opp.EstimatedDealValue, formatDateMs(opp.ExpectedCloseDate), risk)
	}
	b.WriteString("</table>")

	for _, entry := range report.Entries {
		if len(entry.ThisWeekActivities) == 0 && len(entry.NextWeekActivities) == 0 {
			continue
		}
		fmt.Fprintf(&b, "<h4 style='margin-bottom:2px;'>%s</h4>", entry.Opportunity.Title)
		renderActivityRows(&b, "Activity tuần này", entry.ThisWeekActivities)
		renderActivityRows(&b, "Activity tuần tới", entry.NextWeekActivities)
	}

	return b.String()
}

// weeklyReportRecipients lọc các user đã bật nhận báo cáo tuần qua email
func weeklyReportRecipients(ctx context.Context) ([]string, error) {
	users, err := authsvc.GetUserCache().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var recipients []string
	for i := range users {
		prefs := users[i].NotificationPrefs
		if prefs.EmailEnabled && prefs.WeeklyReportEnabled {
			recipients = append(recipients, users[i].Email)
		}
	}
	return recipients, nil
}

// SendWeeklyReport dựng báo cáo tuần quanh anchorMs và gửi cho các user đã
// đăng ký nhận. Trả về số người nhận đã gửi.
func (s *InsightsService) SendWeeklyReport(ctx context.Context, anchorMs int64) (int, error) {
	report, err := s.GetWeeklyReport(ctx, anchorMs)
	if err != nil {
		return 0, err
	}

	recipients, err := weeklyReportRecipients(ctx)
	if err != nil {
		return 0, err
	}
	if len(recipients) == 0 {
		logger.GetAppLogger().Warn("⚠️ [REPORT] Không có user nào đăng ký nhận báo cáo tuần")
		return 0, nil
	}

	subject := fmt.Sprintf("Báo cáo pipeline tuần %s - %s",
		formatDateMs(report.WeekStart), formatDateMs(report.WeekEnd))
	if err := mailer.SendHTML(recipients, subject, RenderWeeklyReportHTML(&report)); err != nil {
		return 0, err
	}
	return len(recipients), nil
}

// SendOverdueContactAlerts gửi cảnh báo các contact quá hạn liên hệ cho user
// đã bật overdueAlerts. Không có contact quá hạn thì không gửi gì.
func (s *InsightsService) SendOverdueContactAlerts(ctx context.Context) (int, error) {
	overdue, err := s.ListOverdueContacts(ctx)
	if err != nil {
		return 0, err
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	users, err := authsvc.GetUserCache().GetAll(ctx)
	if err != nil {
		return 0, err
	}
	var recipients []string
	for i := range users {
		prefs := users[i].NotificationPrefs
		if prefs.EmailEnabled && prefs.OverdueAlertsEnabled {
			recipients = append(recipients, users[i].Email)
		}
	}
	if len(recipients) == 0 {
		return 0, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%d contact quá hạn liên hệ</h2><ul>", len(overdue))
	for i := range overdue {
		fmt.Fprintf(&b, "<li>%s - liên hệ gần nhất: %s</li>",
			overdue[i].Name, formatDateMs(overdue[i].LastContactDate))
	}
	b.WriteString("</ul>")

	subject := fmt.Sprintf("Cảnh báo: %d contact quá hạn liên hệ", len(overdue))
	if err := mailer.SendHTML(recipients, subject, b.String()); err != nil {
		return 0, err
	}
	return len(recipients), nil
}
