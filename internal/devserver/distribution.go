package devserver

import (
	"cmp"
	"slices"
	"time"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
)

const (
	trendDays  = 30
	recentDays = 7
)

// Distribution computes the user-analytics report at the store's clock.
func (s *Store) Distribution() models.UserDistribution {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now().UTC()
	d := models.UserDistribution{TotalUsers: int64(len(s.users))}

	countries := map[string]int64{}
	for _, w := range s.waitlist {
		countries[w.Country]++
	}
	for c, n := range countries {
		d.CountryDistribution = append(d.CountryDistribution, models.CountryCount{Country: c, UserCount: n})
	}
	slices.SortFunc(d.CountryDistribution, func(a, b models.CountryCount) int {
		if c := cmp.Compare(b.UserCount, a.UserCount); c != 0 {
			return c
		}
		return cmp.Compare(a.Country, b.Country)
	})

	statuses := map[string]int64{}
	var withWallet, withPin int64
	daily := map[string]int64{}
	monthly := map[[2]int]int64{}
	var recent, previous int64

	for _, u := range s.users {
		statuses[u.VerificationStatus]++
		if u.HasWallet() {
			withWallet++
		}
		if s.pinSet[u.ID] {
			withPin++
		}

		created, err := time.Parse(timeLayout, u.CreatedAt)
		if err != nil {
			continue
		}
		age := now.Sub(created)
		if age <= trendDays*24*time.Hour {
			daily[created.Format(time.DateOnly)]++
		}
		switch {
		case age <= recentDays*24*time.Hour:
			recent++
		case age <= 2*recentDays*24*time.Hour:
			previous++
		}
		monthly[[2]int{created.Year(), int(created.Month())}]++
	}

	for _, st := range []string{"verified", "pending", "rejected"} {
		if n := statuses[st]; n > 0 {
			d.VerificationStatus = append(d.VerificationStatus, models.VerificationCount{Status: st, UserCount: n})
		}
	}
	d.WalletStatus = []models.WalletCount{
		{WalletStatus: "with_wallet", UserCount: withWallet},
		{WalletStatus: "without_wallet", UserCount: d.TotalUsers - withWallet},
	}
	d.PinStatus = []models.PinCount{
		{PinStatus: "pin_set", UserCount: withPin},
		{PinStatus: "pin_not_set", UserCount: d.TotalUsers - withPin},
	}

	for day, n := range daily {
		d.RegistrationTrends = append(d.RegistrationTrends, models.RegistrationTrend{Date: day, Registrations: n})
	}
	slices.SortFunc(d.RegistrationTrends, func(a, b models.RegistrationTrend) int {
		return cmp.Compare(a.Date, b.Date)
	})

	for ym, n := range monthly {
		d.MonthlyRegistrations = append(d.MonthlyRegistrations, models.MonthlyRegistration{Year: ym[0], Month: ym[1], Registrations: n})
	}
	slices.SortFunc(d.MonthlyRegistrations, func(a, b models.MonthlyRegistration) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})

	d.RecentRegistrations = recent
	switch {
	case previous > 0:
		d.GrowthRate = float64(recent-previous) / float64(previous) * 100
	case recent > 0:
		d.GrowthRate = 100
	}
	return d
}
