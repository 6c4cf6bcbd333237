package devserver

import (
	"time"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
)

// Seed fills s with a small demo data set.
func Seed(s *Store) {
	for _, w := range []models.NewWaitlistUser{
		{EmailAddress: "ada@example.com", FirstName: "Ada", LastName: "Obi", Country: "Nigeria"},
		{EmailAddress: "kofi@example.com", FirstName: "Kofi", LastName: "Mensah", Country: "Ghana", WalletAddress: "0xk0f1"},
		{EmailAddress: "zara@example.com", FirstName: "Zara", LastName: "Bello", Country: "Nigeria"},
	} {
		_, _ = s.AddToWaitlist(w)
	}

	for _, u := range []models.NewUser{
		{Username: "tunde", PhoneNumber: "+2348000000001", WalletAddress: "0x7u4d3", Pin: "1234", VerificationStatus: "verified"},
		{Username: "amina", PhoneNumber: "+2348000000002", Pin: "4321"},
		{Username: "yaw", PhoneNumber: "+233200000003"},
	} {
		_, _ = s.CreateUser(u)
	}

	var td models.TrackingData
	today := s.now().UTC()
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format(time.DateOnly)
		n := int64(7 - i)
		td.ButtonClicksByDate = append(td.ButtonClicksByDate, models.DateValue{Date: day, TotalClicks: 10 * n})
		td.ToolCallsByDate = append(td.ToolCallsByDate, models.DateValue{Date: day, TotalCalls: 4 * n})
		td.AppOpenCountByDate = append(td.AppOpenCountByDate, models.DateValue{Date: day, TotalOpenCount: 20 + n})
		td.PageOpenCountByDate = append(td.PageOpenCountByDate, models.DateValue{Date: day, TotalOpenCount: 30 + 2*n})
		td.TokenUsageByDate = append(td.TokenUsageByDate, models.DateValue{Date: day, TotalUsage: 100 * n})
	}
	td.ButtonClicksByButtonName = []models.NameValue{
		{ButtonName: "join_waitlist", TotalClicks: 180},
		{ButtonName: "connect_wallet", TotalClicks: 100},
	}
	td.ToolCallsByToolName = []models.NameValue{
		{ToolName: "swap", TotalCalls: 70},
		{ToolName: "balance", TotalCalls: 42},
	}
	td.PageOpenCountByPageName = []models.NameValue{
		{PageName: "home", TotalOpenCount: 160},
		{PageName: "wallet", TotalOpenCount: 82},
	}
	td.TokenUsageByTokenName = []models.NameValue{
		{TokenName: "USDT", TotalUsage: 1800},
		{TokenName: "ETH", TotalUsage: 1000},
	}
	s.SetTracking(td)
}
