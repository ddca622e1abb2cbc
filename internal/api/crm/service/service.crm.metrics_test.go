// Package crmsvc - Test engine tính pipeline metrics và phân loại sức khỏe opportunity.
package crmsvc

import (
	"math"
	"testing"

	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputePipelineMetrics_TongHopCoBan(t *testing.T) {
	opps := []crmmodels.Opportunity{
		{Stage: crmmodels.StageDiscovery, EstimatedDealValue: 100, Priority: crmmodels.PriorityHigh, Region: "APAC"},
		{Stage: crmmodels.StageClosedWon, EstimatedDealValue: 200, Priority: crmmodels.PriorityLow, Region: "EMEA"},
		{Stage: crmmodels.StageClosedLost, EstimatedDealValue: 50},
		{Stage: crmmodels.StageNegotiation, EstimatedDealValue: 300, Region: "APAC"},
	}

	m := ComputePipelineMetrics(opps)

	if m.TotalCount != 4 {
		t.Errorf("TotalCount = %d, kỳ vọng 4", m.TotalCount)
	}
	if !almostEqual(m.TotalValue, 650) {
		t.Errorf("TotalValue = %v, kỳ vọng 650", m.TotalValue)
	}
	// Active = không thuộc Closed-Won/Closed-Lost
	if m.ActiveCount != 2 {
		t.Errorf("ActiveCount = %d, kỳ vọng 2", m.ActiveCount)
	}
	if !almostEqual(m.ActiveValue, 400) {
		t.Errorf("ActiveValue = %v, kỳ vọng 400", m.ActiveValue)
	}
	if m.ClosedWonCount != 1 {
		t.Errorf("ClosedWonCount = %d, kỳ vọng 1", m.ClosedWonCount)
	}
	if !almostEqual(m.AverageDealSize, 200) {
		t.Errorf("AverageDealSize = %v, kỳ vọng 400/2 = 200", m.AverageDealSize)
	}
	if !almostEqual(m.ConversionRate, 25) {
		t.Errorf("ConversionRate = %v, kỳ vọng 1/4 × 100 = 25", m.ConversionRate)
	}
}

func TestComputePipelineMetrics_MacDinhPriorityVaRegion(t *testing.T) {
	opps := []crmmodels.Opportunity{
		{Stage: crmmodels.StageDiscovery, EstimatedDealValue: 10},
	}
	m := ComputePipelineMetrics(opps)

	if g, ok := m.ByPriority[crmmodels.PriorityMedium]; !ok || g.Count != 1 {
		t.Errorf("Priority thiếu phải tính vào Medium, ByPriority = %v", m.ByPriority)
	}
	if g, ok := m.ByRegion["Unknown"]; !ok || g.Count != 1 {
		t.Errorf("Region thiếu phải tính vào Unknown, ByRegion = %v", m.ByRegion)
	}
	if g, ok := m.ByProduct[NoProductsGroup]; !ok || g.Count != 1 || !almostEqual(g.Value, 10) {
		t.Errorf("Không khai báo sản phẩm phải vào nhóm sentinel, ByProduct = %v", m.ByProduct)
	}
}

func TestComputePipelineMetrics_ChiaDeuValueChoSanPham(t *testing.T) {
	opps := []crmmodels.Opportunity{
		{Stage: crmmodels.StageProposal, EstimatedDealValue: 90, Products: []string{"A", "B", "C"}},
		{Stage: crmmodels.StageProposal, EstimatedDealValue: 30, Products: []string{"A"}},
	}
	m := ComputePipelineMetrics(opps)

	if g := m.ByProduct["A"]; g.Count != 2 || !almostEqual(g.Value, 60) {
		t.Errorf("Product A phải có count=2, value=30+30=60, nhận được %+v", g)
	}
	if g := m.ByProduct["B"]; g.Count != 1 || !almostEqual(g.Value, 30) {
		t.Errorf("Product B phải có count=1, value=30, nhận được %+v", g)
	}
}

func TestComputePipelineMetrics_DanhSachRong(t *testing.T) {
	m := ComputePipelineMetrics(nil)
	if m.TotalCount != 0 || m.ConversionRate != 0 || m.AverageDealSize != 0 {
		t.Errorf("Danh sách rỗng phải cho các giá trị 0, nhận được %+v", m)
	}
	if m.ByStage == nil || m.ByProduct == nil {
		t.Error("Các map nhóm phải được khởi tạo kể cả khi rỗng")
	}
}

func TestComputeOpportunityHealth_NguongStalled(t *testing.T) {
	nowMs := int64(1000 * msPerDay)

	// Đúng 14 ngày: daysSince == 14, không lớn hơn ngưỡng → chưa stalled
	exactly14 := crmmodels.Opportunity{
		Stage: crmmodels.StageProposal,
		Activities: []crmmodels.Activity{
			{Status: crmmodels.ActivityStatusCompleted, DateTime: nowMs - StalledDays*msPerDay},
		},
	}
	// Quá 14 ngày → stalled
	over14 := crmmodels.Opportunity{
		Stage: crmmodels.StageProposal,
		Activities: []crmmodels.Activity{
			{Status: crmmodels.ActivityStatusCompleted, DateTime: nowMs - StalledDays*msPerDay - 1},
		},
	}

	health := ComputeOpportunityHealth([]crmmodels.Opportunity{exactly14, over14}, nowMs)

	if len(health.Stalled) != 1 {
		t.Fatalf("Kỳ vọng đúng 1 opportunity stalled, nhận được %d", len(health.Stalled))
	}
	// exactly14 không stalled nhưng > 7 ngày không hoạt động → atRisk
	if len(health.AtRisk) != 1 {
		t.Errorf("Opportunity đúng 14 ngày phải rơi vào atRisk, nhận được %d atRisk", len(health.AtRisk))
	}
}

func TestComputeOpportunityHealth_AtRiskLoaiTruStalled(t *testing.T) {
	nowMs := int64(1000 * msPerDay)

	// Vừa stalled (> 14 ngày) vừa có Scheduled quá hạn → chỉ được tính stalled
	opp := crmmodels.Opportunity{
		Stage: crmmodels.StageProposal,
		Activities: []crmmodels.Activity{
			{Status: crmmodels.ActivityStatusScheduled, DateTime: nowMs - 20*msPerDay},
		},
	}
	health := ComputeOpportunityHealth([]crmmodels.Opportunity{opp}, nowMs)
	if len(health.Stalled) != 1 {
		t.Fatalf("Kỳ vọng 1 stalled, nhận được %d", len(health.Stalled))
	}
	if len(health.AtRisk) != 0 {
		t.Errorf("atRisk phải loại trừ opportunity đã stalled, nhận được %d", len(health.AtRisk))
	}
}

func TestComputeOpportunityHealth_Healthy(t *testing.T) {
	nowMs := int64(1000 * msPerDay)

	opp := crmmodels.Opportunity{
		Stage: crmmodels.StageNegotiation,
		Activities: []crmmodels.Activity{
			{Status: crmmodels.ActivityStatusCompleted, DateTime: nowMs - 3*msPerDay},
		},
	}
	health := ComputeOpportunityHealth([]crmmodels.Opportunity{opp}, nowMs)
	if len(health.Healthy) != 1 {
		t.Errorf("Opportunity hoạt động 3 ngày trước phải healthy, nhận được %d healthy", len(health.Healthy))
	}
	if len(health.Stalled) != 0 || len(health.AtRisk) != 0 {
		t.Errorf("Không được rơi vào stalled/atRisk, nhận được stalled=%d atRisk=%d",
			len(health.Stalled), len(health.AtRisk))
	}
}

func TestComputeOpportunityHealth_ChuaCoActivityTinhTuCreatedAt(t *testing.T) {
	nowMs := int64(1000 * msPerDay)

	opp := crmmodels.Opportunity{
		Stage:     crmmodels.StageDiscovery,
		CreatedAt: nowMs - 20*msPerDay,
	}
	health := ComputeOpportunityHealth([]crmmodels.Opportunity{opp}, nowMs)
	if len(health.Stalled) != 1 {
		t.Errorf("Chưa có activity, tạo 20 ngày trước phải stalled, nhận được %d", len(health.Stalled))
	}
}

func TestComputeOpportunityHealth_ClosingSoonDocLap(t *testing.T) {
	nowMs := int64(1000 * msPerDay)

	opp := crmmodels.Opportunity{
		Stage:             crmmodels.StageNegotiation,
		ExpectedCloseDate: nowMs + 10*msPerDay,
		Activities: []crmmodels.Activity{
			{Status: crmmodels.ActivityStatusCompleted, DateTime: nowMs - msPerDay},
		},
	}
	health := ComputeOpportunityHealth([]crmmodels.Opportunity{opp}, nowMs)
	if len(health.ClosingSoon) != 1 {
		t.Errorf("ExpectedCloseDate trong 30 ngày phải vào closingSoon, nhận được %d", len(health.ClosingSoon))
	}
	if len(health.Healthy) != 1 {
		t.Errorf("closingSoon tính độc lập, opportunity vẫn phải healthy, nhận được %d", len(health.Healthy))
	}

	// ExpectedCloseDate = 0 (chưa set) không được coi là sắp đóng
	noDate := crmmodels.Opportunity{
		Stage: crmmodels.StageDiscovery,
		Activities: []crmmodels.Activity{
			{Status: crmmodels.ActivityStatusCompleted, DateTime: nowMs - msPerDay},
		},
	}
	health = ComputeOpportunityHealth([]crmmodels.Opportunity{noDate}, nowMs)
	if len(health.ClosingSoon) != 0 {
		t.Errorf("ExpectedCloseDate chưa set không được vào closingSoon, nhận được %d", len(health.ClosingSoon))
	}
}

func TestComputeOpportunityHealth_AtRiskDiscoverySapDong(t *testing.T) {
	nowMs := int64(1000 * msPerDay)

	// Hoạt động gần đây nhưng Discovery sắp đóng trong 7 ngày → atRisk
	opp := crmmodels.Opportunity{
		Stage:             crmmodels.StageDiscovery,
		ExpectedCloseDate: nowMs + 3*msPerDay,
		Activities: []crmmodels.Activity{
			{Status: crmmodels.ActivityStatusCompleted, DateTime: nowMs - msPerDay},
		},
	}
	health := ComputeOpportunityHealth([]crmmodels.Opportunity{opp}, nowMs)
	if len(health.AtRisk) != 1 {
		t.Errorf("Discovery sắp đóng trong 7 ngày phải atRisk, nhận được %d", len(health.AtRisk))
	}

	// Cùng điều kiện nhưng stage Negotiation thì không atRisk
	opp.Stage = crmmodels.StageNegotiation
	health = ComputeOpportunityHealth([]crmmodels.Opportunity{opp}, nowMs)
	if len(health.AtRisk) != 0 {
		t.Errorf("Stage Negotiation sắp đóng không phải điều kiện atRisk, nhận được %d", len(health.AtRisk))
	}
}

func TestComputeOpportunityHealth_DealDaDongNgoaiMoiBucket(t *testing.T) {
	nowMs := int64(1000 * msPerDay)

	// Closed-Won với activity cuối 20 ngày trước: nếu còn mở sẽ stalled
	closedWon := crmmodels.Opportunity{
		Stage: crmmodels.StageClosedWon,
		Activities: []crmmodels.Activity{
			{Status: crmmodels.ActivityStatusCompleted, DateTime: nowMs - 20*msPerDay},
		},
	}
	// Closed-Lost có expectedCloseDate sát nút cũng không được vào closingSoon
	closedLost := crmmodels.Opportunity{
		Stage:             crmmodels.StageClosedLost,
		ExpectedCloseDate: nowMs + 5*msPerDay,
	}
	// Deal đang mở cùng hồ sơ với closedWon vẫn phân loại bình thường
	open := crmmodels.Opportunity{
		Stage: crmmodels.StageQualification,
		Activities: []crmmodels.Activity{
			{Status: crmmodels.ActivityStatusCompleted, DateTime: nowMs - 20*msPerDay},
		},
	}

	health := ComputeOpportunityHealth([]crmmodels.Opportunity{closedWon, closedLost, open}, nowMs)

	if len(health.Stalled) != 1 {
		t.Fatalf("Chỉ deal đang mở được tính stalled, kỳ vọng 1, nhận được %d", len(health.Stalled))
	}
	if health.Stalled[0].Stage != crmmodels.StageQualification {
		t.Errorf("Deal stalled phải là deal đang mở, nhận được stage %q", health.Stalled[0].Stage)
	}
	if len(health.AtRisk) != 0 || len(health.Healthy) != 0 {
		t.Errorf("Deal đã đóng không được vào atRisk/healthy, nhận được atRisk=%d healthy=%d",
			len(health.AtRisk), len(health.Healthy))
	}
	if len(health.ClosingSoon) != 0 {
		t.Errorf("Deal đã đóng không được vào closingSoon, nhận được %d", len(health.ClosingSoon))
	}
}
