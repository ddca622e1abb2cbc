// Package crmsvc - Test các hàm thuần tính toán trên activity nhúng của opportunity.
package crmsvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
)

func TestExtractContactActivities_LocTheoRelatedContactVaSapXepGiamDan(t *testing.T) {
	contactID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	opps := []crmmodels.Opportunity{
		{
			ID:    primitive.NewObjectID(),
			Title: "Deal A",
			Activities: []crmmodels.Activity{
				{ActivityID: primitive.NewObjectID(), DateTime: 1000, RelatedContactIDs: []primitive.ObjectID{contactID}},
				{ActivityID: primitive.NewObjectID(), DateTime: 3000, RelatedContactIDs: []primitive.ObjectID{otherID, contactID}},
				{ActivityID: primitive.NewObjectID(), DateTime: 2000, RelatedContactIDs: []primitive.ObjectID{otherID}},
			},
		},
		{
			ID:    primitive.NewObjectID(),
			Title: "Deal B",
			Activities: []crmmodels.Activity{
				{ActivityID: primitive.NewObjectID(), DateTime: 2500, RelatedContactIDs: []primitive.ObjectID{contactID}},
			},
		},
	}

	result := ExtractContactActivities(opps, contactID)
	if len(result) != 3 {
		t.Fatalf("Kỳ vọng 3 activity liên quan đến contact, nhận được %d", len(result))
	}
	if result[0].DateTime != 3000 || result[1].DateTime != 2500 || result[2].DateTime != 1000 {
		t.Errorf("Kết quả phải sắp xếp giảm dần theo DateTime, nhận được %d, %d, %d",
			result[0].DateTime, result[1].DateTime, result[2].DateTime)
	}
	if result[1].OpportunityTitle != "Deal B" {
		t.Errorf("Activity phải kèm ngữ cảnh opportunity sở hữu, nhận được title %q", result[1].OpportunityTitle)
	}
}

func TestExtractContactActivities_KhongCoActivityNao(t *testing.T) {
	contactID := primitive.NewObjectID()
	opps := []crmmodels.Opportunity{
		{ID: primitive.NewObjectID(), Activities: []crmmodels.Activity{
			{ActivityID: primitive.NewObjectID(), DateTime: 1000},
		}},
	}
	result := ExtractContactActivities(opps, contactID)
	if len(result) != 0 {
		t.Errorf("Contact không liên quan activity nào nhưng nhận được %d", len(result))
	}
}

func TestMostRecentContactDate(t *testing.T) {
	nowMs := int64(100 * msPerDay)

	tests := []struct {
		name       string
		activities []ContactActivity
		want       int64
	}{
		{
			name: "activity Completed tính theo CompletedAt",
			activities: []ContactActivity{
				{Activity: crmmodels.Activity{Status: crmmodels.ActivityStatusCompleted, DateTime: 10, CompletedAt: 50}},
			},
			want: 50,
		},
		{
			name: "Completed thiếu CompletedAt thì fallback DateTime",
			activities: []ContactActivity{
				{Activity: crmmodels.Activity{Status: crmmodels.ActivityStatusCompleted, DateTime: 30}},
			},
			want: 30,
		},
		{
			name: "Scheduled trong quá khứ coi như đã liên hệ",
			activities: []ContactActivity{
				{Activity: crmmodels.Activity{Status: crmmodels.ActivityStatusScheduled, DateTime: nowMs - 1}},
			},
			want: nowMs - 1,
		},
		{
			name: "Scheduled trong tương lai không tính",
			activities: []ContactActivity{
				{Activity: crmmodels.Activity{Status: crmmodels.ActivityStatusScheduled, DateTime: nowMs + 1}},
			},
			want: 0,
		},
		{
			name: "Cancelled không tính",
			activities: []ContactActivity{
				{Activity: crmmodels.Activity{Status: crmmodels.ActivityStatusCancelled, DateTime: 40}},
			},
			want: 0,
		},
		{
			name:       "không có activity nào trả về 0",
			activities: nil,
			want:       0,
		},
		{
			name: "lấy max trên nhiều activity",
			activities: []ContactActivity{
				{Activity: crmmodels.Activity{Status: crmmodels.ActivityStatusCompleted, CompletedAt: 70}},
				{Activity: crmmodels.Activity{Status: crmmodels.ActivityStatusScheduled, DateTime: nowMs - 5}},
				{Activity: crmmodels.Activity{Status: crmmodels.ActivityStatusCompleted, CompletedAt: 20}},
			},
			want: nowMs - 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MostRecentContactDate(tt.activities, nowMs)
			if got != tt.want {
				t.Errorf("MostRecentContactDate = %d, kỳ vọng %d", got, tt.want)
			}
		})
	}
}

func TestIsContactOverdue(t *testing.T) {
	nowMs := int64(1000 * msPerDay)

	tests := []struct {
		name            string
		lastContactDate int64
		want            bool
	}{
		{"chưa từng liên hệ thì không quá hạn", 0, false},
		{"đúng 30 ngày chưa quá hạn", nowMs - ContactOverdueDays*msPerDay, false},
		{"quá 30 ngày là quá hạn", nowMs - ContactOverdueDays*msPerDay - 1, true},
		{"vừa liên hệ hôm qua", nowMs - msPerDay, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contact := &crmmodels.Contact{LastContactDate: tt.lastContactDate}
			if got := IsContactOverdue(contact, nowMs); got != tt.want {
				t.Errorf("IsContactOverdue = %v, kỳ vọng %v (lastContactDate=%d)", got, tt.want, tt.lastContactDate)
			}
		})
	}
}

func TestLastActivityDate_MoiTrangThaiDeuTinh(t *testing.T) {
	opp := &crmmodels.Opportunity{
		Activities: []crmmodels.Activity{
			{Status: crmmodels.ActivityStatusCancelled, DateTime: 500},
			{Status: crmmodels.ActivityStatusCompleted, DateTime: 300},
			{Status: crmmodels.ActivityStatusScheduled, DateTime: 400},
		},
	}
	if got := lastActivityDate(opp); got != 500 {
		t.Errorf("lastActivityDate phải lấy DateTime lớn nhất bất kể trạng thái, nhận được %d", got)
	}
	if got := lastActivityDate(&crmmodels.Opportunity{}); got != 0 {
		t.Errorf("Không có activity phải trả về 0, nhận được %d", got)
	}
}

func TestCountOverdueScheduled(t *testing.T) {
	nowMs := int64(10 * msPerDay)
	opp := &crmmodels.Opportunity{
		Activities: []crmmodels.Activity{
			{Status: crmmodels.ActivityStatusScheduled, DateTime: nowMs - 1},
			{Status: crmmodels.ActivityStatusScheduled, DateTime: nowMs + 1},
			{Status: crmmodels.ActivityStatusCompleted, DateTime: nowMs - 100},
		},
	}
	if got := countOverdueScheduled(opp, nowMs); got != 1 {
		t.Errorf("Chỉ activity Scheduled quá hạn mới được đếm, nhận được %d", got)
	}
	if !hasOverdueScheduled(opp, nowMs) {
		t.Error("hasOverdueScheduled phải trả về true khi có Scheduled quá hạn")
	}
}

func TestCountUnresolvedBlockers(t *testing.T) {
	opp := &crmmodels.Opportunity{
		Blockers: []crmmodels.Blocker{
			{Completed: false},
			{Completed: true},
			{Completed: false},
		},
	}
	if got := countUnresolvedBlockers(opp); got != 2 {
		t.Errorf("Kỳ vọng 2 blocker chưa giải quyết, nhận được %d", got)
	}
}
