package models

// DateValue is one point of a per-day series. Only the counter relevant to
// the series is set.
type DateValue struct {
	Date           string `json:"date"`
	TotalClicks    int64  `json:"total_clicks,omitempty"`
	TotalCalls     int64  `json:"total_calls,omitempty"`
	TotalOpenCount int64  `json:"total_open_count,omitempty"`
	TotalUsage     int64  `json:"total_usage,omitempty"`
}

// Value returns whichever counter is set.
func (d DateValue) Value() int64 {
	return d.TotalClicks + d.TotalCalls + d.TotalOpenCount + d.TotalUsage
}

// NameValue is one bucket of a per-name breakdown.
type NameValue struct {
	ButtonName     string `json:"button_name,omitempty"`
	ToolName       string `json:"tool_name,omitempty"`
	PageName       string `json:"page_name,omitempty"`
	TokenName      string `json:"token_name,omitempty"`
	TotalClicks    int64  `json:"total_clicks,omitempty"`
	TotalCalls     int64  `json:"total_calls,omitempty"`
	TotalOpenCount int64  `json:"total_open_count,omitempty"`
	TotalUsage     int64  `json:"total_usage,omitempty"`
}

func (n NameValue) Label() string {
	return firstNonEmpty(n.ButtonName, n.ToolName, n.PageName, n.TokenName)
}

func (n NameValue) Value() int64 {
	return n.TotalClicks + n.TotalCalls + n.TotalOpenCount + n.TotalUsage
}

// TrackingData is the usage-tracking report.
type TrackingData struct {
	ButtonClicksByDate       []DateValue `json:"button_clicks_by_date"`
	ButtonClicksByButtonName []NameValue `json:"button_clicks_by_button_name"`
	ToolCallsByDate          []DateValue `json:"tool_calls_by_date"`
	ToolCallsByToolName      []NameValue `json:"tool_calls_by_tool_name"`
	AppOpenCountByDate       []DateValue `json:"app_open_count_by_date"`
	PageOpenCountByDate      []DateValue `json:"page_open_count_by_date"`
	PageOpenCountByPageName  []NameValue `json:"page_open_count_by_page_name"`
	TokenUsageByDate         []DateValue `json:"token_usage_by_date"`
	TokenUsageByTokenName    []NameValue `json:"token_usage_by_token_name"`
}

func sumDates(series []DateValue) int64 {
	var total int64
	for _, d := range series {
		total += d.Value()
	}
	return total
}

// TrackingTotals are the headline numbers shown on the dashboard.
type TrackingTotals struct {
	ButtonClicks int64
	ToolCalls    int64
	AppOpens     int64
	PageOpens    int64
	TokenUsage   int64
}

func (t *TrackingData) Totals() TrackingTotals {
	if t == nil {
		return TrackingTotals{}
	}
	return TrackingTotals{
		ButtonClicks: sumDates(t.ButtonClicksByDate),
		ToolCalls:    sumDates(t.ToolCallsByDate),
		AppOpens:     sumDates(t.AppOpenCountByDate),
		PageOpens:    sumDates(t.PageOpenCountByDate),
		TokenUsage:   sumDates(t.TokenUsageByDate),
	}
}

// Top returns the bucket with the highest value, or false for an empty list.
func Top(buckets []NameValue) (NameValue, bool) {
	if len(buckets) == 0 {
		return NameValue{}, false
	}
	best := buckets[0]
	for _, b := range buckets[1:] {
		if b.Value() > best.Value() {
			best = b
		}
	}
	return best, true
}

type CountryCount struct {
	Country   string `json:"country"`
	UserCount int64  `json:"user_count"`
}

type VerificationCount struct {
	Status    string `json:"status"`
	UserCount int64  `json:"user_count"`
}

type WalletCount struct {
	WalletStatus string `json:"wallet_status"`
	UserCount    int64  `json:"user_count"`
}

type PinCount struct {
	PinStatus string `json:"pin_status"`
	UserCount int64  `json:"user_count"`
}

type RegistrationTrend struct {
	Date          string `json:"date"`
	Registrations int64  `json:"registrations"`
}

type MonthlyRegistration struct {
	Year          int   `json:"year"`
	Month         int   `json:"month"`
	Registrations int64 `json:"registrations"`
}

// UserDistribution is the user-analytics report.
type UserDistribution struct {
	CountryDistribution  []CountryCount        `json:"country_distribution"`
	RegistrationTrends   []RegistrationTrend   `json:"registration_trends"`
	MonthlyRegistrations []MonthlyRegistration `json:"monthly_registrations"`
	VerificationStatus   []VerificationCount   `json:"verification_status"`
	WalletStatus         []WalletCount         `json:"wallet_status"`
	PinStatus            []PinCount            `json:"pin_status"`
	TotalUsers           int64                 `json:"total_users"`
	RecentRegistrations  int64                 `json:"recent_registrations"`
	GrowthRate           float64               `json:"growth_rate"`
}
