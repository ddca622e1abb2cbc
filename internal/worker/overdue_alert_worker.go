package worker

import (
	"context"
	"time"

	crmsvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/service"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/logger"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/mailer"
)

// OverdueAlertWorker quét định kỳ các contact quá hạn liên hệ (không có tương tác
// nào trong 30 ngày) và gửi email cảnh báo cho các user đã bật overdueAlerts.
// Chạy mặc định mỗi 24 giờ.
type OverdueAlertWorker struct {
	insightsService *crmsvc.InsightsService
	interval        time.Duration // Khoảng thời gian giữa các lần quét
}

// NewOverdueAlertWorker tạo mới OverdueAlertWorker.
// Tham số:
//   - interval: Khoảng thời gian giữa các lần quét (mặc định: 24 giờ)
func NewOverdueAlertWorker(interval time.Duration) (*OverdueAlertWorker, error) {
	insightsService, err := crmsvc.NewInsightsService()
	if err != nil {
		return nil, err
	}
	if interval < time.Minute {
		interval = 24 * time.Hour
	}
	return &OverdueAlertWorker{
		insightsService: insightsService,
		interval:        interval,
	}, nil
}

// Start chạy worker trong vòng lặp: mỗi interval quét contacts quá hạn và gửi mail.
// SMTP chưa cấu hình thì worker chỉ log số contact quá hạn, không gửi gì.
func (w *OverdueAlertWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("⏰ [OVERDUE] Starting Overdue Alert Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("⏰ [OVERDUE] Overdue Alert Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("⏰ [OVERDUE] Panic khi quét contact quá hạn, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				if !mailer.IsConfigured() {
					overdue, err := w.insightsService.ListOverdueContacts(ctx)
					if err != nil {
						log.WithError(err).Error("⏰ [OVERDUE] Lỗi quét contact quá hạn")
						return
					}
					if len(overdue) > 0 {
						log.WithFields(map[string]interface{}{
							"count": len(overdue),
						}).Warn("⏰ [OVERDUE] Có contact quá hạn liên hệ nhưng SMTP chưa cấu hình, không gửi cảnh báo")
					}
					return
				}

				sent, err := w.insightsService.SendOverdueContactAlerts(ctx)
				if err != nil {
					log.WithError(err).Error("⏰ [OVERDUE] Lỗi gửi cảnh báo contact quá hạn")
					return
				}
				if sent > 0 {
					log.WithFields(map[string]interface{}{
						"recipients": sent,
					}).Info("⏰ [OVERDUE] Đã gửi cảnh báo contact quá hạn")
				}
			}()
		}
	}
}
