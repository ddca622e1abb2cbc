package crmsvc

import (
	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
)

// NoProductsGroup là nhóm sentinel cho opportunity không khai báo sản phẩm nào.
const NoProductsGroup = "No Products Defined"

// PipelineGroup là một nhóm trong pipeline metrics (theo stage/priority/region/product).
type PipelineGroup struct {
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// PipelineMetrics là tổng hợp pipeline trên toàn bộ opportunities.
// Active = stage không thuộc {Closed-Won, Closed-Lost}.
type PipelineMetrics struct {
	TotalCount      int     `json:"totalCount"`
	TotalValue      float64 `json:"totalValue"`
	ActiveCount     int     `json:"activeCount"`
	ActiveValue     float64 `json:"activeValue"`
	ClosedWonCount  int     `json:"closedWonCount"`
	AverageDealSize float64 `json:"averageDealSize"` // ActiveValue / ActiveCount, 0 nếu không có active
	ConversionRate  float64 `json:"conversionRate"`  // ClosedWonCount / TotalCount × 100, 0 nếu rỗng

	ByStage    map[string]PipelineGroup `json:"byStage"`
	ByPriority map[string]PipelineGroup `json:"byPriority"` // priority thiếu tính là Medium
	ByRegion   map[string]PipelineGroup `json:"byRegion"`   // region thiếu tính là Unknown
	ByProduct  map[string]PipelineGroup `json:"byProduct"`  // deal value chia đều cho N sản phẩm khai báo
}

// isActiveStage kiểm tra stage còn mở.
func isActiveStage(stage string) bool {
	return stage != crmmodels.StageClosedWon && stage != crmmodels.StageClosedLost
}

// ComputePipelineMetrics tính tổng hợp pipeline. Hàm thuần, không gọi store.
func ComputePipelineMetrics(opportunities []crmmodels.Opportunity) PipelineMetrics {
	m := PipelineMetrics{
		ByStage:    make(map[string]PipelineGroup),
		ByPriority: make(map[string]PipelineGroup),
		ByRegion:   make(map[string]PipelineGroup),
		ByProduct:  make(map[string]PipelineGroup),
	}

	for i := range opportunities {
		opp := &opportunities[i]
		value := opp.EstimatedDealValue // thiếu giá trị mặc định là 0

		m.TotalCount++
		m.TotalValue += value
		if isActiveStage(opp.Stage) {
			m.ActiveCount++
			m.ActiveValue += value
		}
		if opp.Stage == crmmodels.StageClosedWon {
			m.ClosedWonCount++
		}

		addToGroup(m.ByStage, opp.Stage, value)

		priority := opp.Priority
		if priority == "" {
			priority = crmmodels.PriorityMedium
		}
		addToGroup(m.ByPriority, priority, value)

		region := opp.Region
		if region == "" {
			region = "Unknown"
		}
		addToGroup(m.ByRegion, region, value)

		// Không khai báo sản phẩm → nhóm sentinel; có N sản phẩm → chia đều value N phần
		if len(opp.Products) == 0 {
			addToGroup(m.ByProduct, NoProductsGroup, value)
		} else {
			share := value / float64(len(opp.Products))
			for _, product := range opp.Products {
				addToGroup(m.ByProduct, product, share)
			}
		}
	}

	if m.ActiveCount > 0 {
		m.AverageDealSize = m.ActiveValue / float64(m.ActiveCount)
	}
	if m.TotalCount > 0 {
		m.ConversionRate = float64(m.ClosedWonCount) / float64(m.TotalCount) * 100
	}
	return m
}

func addToGroup(groups map[string]PipelineGroup, key string, value float64) {
	g := groups[key]
	g.Count++
	g.Value += value
	groups[key] = g
}

// OpportunityHealth phân loại sức khỏe của các opportunity đang mở.
// Các bucket tính độc lập, đánh giá theo thứ tự stalled → atRisk → healthy;
// atRisk loại trừ tường minh những cái đã stalled. Deal đã đóng
// (Closed-Won/Closed-Lost) đứng ngoài cả bốn bucket.
type OpportunityHealth struct {
	Stalled     []crmmodels.Opportunity `json:"stalled"`     // > 14 ngày từ activity gần nhất
	AtRisk      []crmmodels.Opportunity `json:"atRisk"`      // xem điều kiện trong ComputeOpportunityHealth
	ClosingSoon []crmmodels.Opportunity `json:"closingSoon"` // expectedCloseDate < now + 30 ngày
	Healthy     []crmmodels.Opportunity `json:"healthy"`     // không stalled/atRisk và ≤ 7 ngày từ activity gần nhất
}

// ComputeOpportunityHealth phân loại opportunities theo sức khỏe tại mốc nowMs. Hàm thuần.
//
// Chỉ xét deal đang mở; stage Closed-Won/Closed-Lost bỏ qua hoàn toàn.
// stalled: số ngày từ activity gần nhất (theo DateTime, mọi trạng thái) > 14.
// Chưa có activity nào thì tính từ thời điểm tạo.
// atRisk (và chưa stalled): có activity Scheduled quá hạn, HOẶC > 7 ngày không hoạt động,
// HOẶC (expectedCloseDate < now + 7 ngày VÀ stage = Discovery).
// healthy: không stalled/atRisk và ≤ 7 ngày từ activity gần nhất.
// closingSoon: expectedCloseDate < now + 30 ngày, tính độc lập với ba bucket trên.
func ComputeOpportunityHealth(opportunities []crmmodels.Opportunity, nowMs int64) OpportunityHealth {
	var health OpportunityHealth

	for i := range opportunities {
		opp := opportunities[i]

		if !isActiveStage(opp.Stage) {
			continue
		}

		if opp.ExpectedCloseDate > 0 && opp.ExpectedCloseDate < nowMs+ClosingSoonDays*msPerDay {
			health.ClosingSoon = append(health.ClosingSoon, opp)
		}

		lastActivity := lastActivityDate(&opp)
		if lastActivity == 0 {
			lastActivity = opp.CreatedAt
		}
		daysSince := float64(nowMs-lastActivity) / float64(msPerDay)

		stalled := daysSince > StalledDays
		if stalled {
			health.Stalled = append(health.Stalled, opp)
			continue
		}

		atRisk := hasOverdueScheduled(&opp, nowMs) ||
			daysSince > AtRiskDays ||
			(opp.ExpectedCloseDate > 0 && opp.ExpectedCloseDate < nowMs+AtRiskDays*msPerDay && opp.Stage == crmmodels.StageDiscovery)
		if atRisk {
			health.AtRisk = append(health.AtRisk, opp)
			continue
		}

		if daysSince <= AtRiskDays {
			health.Healthy = append(health.Healthy, opp)
		}
	}
	return health
}
