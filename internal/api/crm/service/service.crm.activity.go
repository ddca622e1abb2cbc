package crmsvc

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
)

// Các hàm trong file này là hàm thuần: chỉ tính trên dữ liệu đã fetch sẵn,
// không gọi store, không side effect. nowMs do caller truyền vào (unix milli).

const (
	msPerDay = int64(24 * 60 * 60 * 1000)

	// ContactOverdueDays là ngưỡng quá hạn liên hệ của contact
	ContactOverdueDays = 30
	// StalledDays là ngưỡng đình trệ của opportunity (phải LỚN HƠN, không phải >=)
	StalledDays = 14
	// AtRiskDays là ngưỡng lâu không hoạt động khiến opportunity thành at-risk
	AtRiskDays = 7
	// ClosingSoonDays là ngưỡng sắp đóng của opportunity
	ClosingSoonDays = 30
)

// ContactActivity là activity trích từ opportunity kèm ngữ cảnh opportunity sở hữu.
type ContactActivity struct {
	crmmodels.Activity
	OpportunityID    primitive.ObjectID `json:"opportunityId"`
	OpportunityTitle string             `json:"opportunityTitle"`
}

// ExtractContactActivities quét activity nhúng của mọi opportunity, lấy những activity
// có contactID trong RelatedContactIDs, sắp xếp giảm dần theo DateTime.
func ExtractContactActivities(opportunities []crmmodels.Opportunity, contactID primitive.ObjectID) []ContactActivity {
	var result []ContactActivity
	for i := range opportunities {
		opp := &opportunities[i]
		for _, activity := range opp.Activities {
			for _, related := range activity.RelatedContactIDs {
				if related == contactID {
					result = append(result, ContactActivity{
						Activity:         activity,
						OpportunityID:    opp.ID,
						OpportunityTitle: opp.Title,
					})
					break
				}
			}
		}
	}
	// SliceStable giữ thứ tự duyệt ổn định cho các activity cùng mốc thời gian
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DateTime > result[j].DateTime
	})
	return result
}

// MostRecentContactDate tìm mốc liên hệ gần nhất của contact từ các activity đã trích:
// activity Completed tính theo CompletedAt (thiếu thì DateTime); activity Scheduled chỉ
// tính khi DateTime đã ở quá khứ (lịch đã đến hạn coi như liên hệ đã diễn ra).
// Trả về 0 nếu không có mốc nào.
func MostRecentContactDate(activities []ContactActivity, nowMs int64) int64 {
	var max int64
	for _, a := range activities {
		var date int64
		switch a.Status {
		case crmmodels.ActivityStatusCompleted:
			date = a.CompletedAt
			if date == 0 {
				date = a.DateTime
			}
		case crmmodels.ActivityStatusScheduled:
			if a.DateTime < nowMs {
				date = a.DateTime
			}
		}
		if date > max {
			max = date
		}
	}
	return max
}

// IsContactOverdue kiểm tra contact quá hạn liên hệ: lastContactDate đã set và
// cách hiện tại quá 30 ngày. Chưa từng liên hệ (lastContactDate = 0) thì không quá hạn.
func IsContactOverdue(contact *crmmodels.Contact, nowMs int64) bool {
	if contact.LastContactDate == 0 {
		return false
	}
	return nowMs-contact.LastContactDate > ContactOverdueDays*msPerDay
}

// lastActivityDate trả về DateTime lớn nhất trong mọi activity của opportunity
// (không phân biệt trạng thái). 0 nếu không có activity.
func lastActivityDate(opp *crmmodels.Opportunity) int64 {
	var max int64
	for _, a := range opp.Activities {
		if a.DateTime > max {
			max = a.DateTime
		}
	}
	return max
}

// hasOverdueScheduled kiểm tra opportunity có activity Scheduled đã quá hạn không.
func hasOverdueScheduled(opp *crmmodels.Opportunity, nowMs int64) bool {
	for _, a := range opp.Activities {
		if a.Status == crmmodels.ActivityStatusScheduled && a.DateTime < nowMs {
			return true
		}
	}
	return false
}

// countOverdueScheduled đếm số activity Scheduled đã quá hạn của opportunity.
func countOverdueScheduled(opp *crmmodels.Opportunity, nowMs int64) int {
	count := 0
	for _, a := range opp.Activities {
		if a.Status == crmmodels.ActivityStatusScheduled && a.DateTime < nowMs {
			count++
		}
	}
	return count
}

// countUnresolvedBlockers đếm blocker chưa giải quyết của opportunity.
func countUnresolvedBlockers(opp *crmmodels.Opportunity) int {
	count := 0
	for _, b := range opp.Blockers {
		if !b.Completed {
			count++
		}
	}
	return count
}
