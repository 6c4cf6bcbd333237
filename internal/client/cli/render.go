package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/services"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printDashboard(w io.Writer, d *services.Dashboard) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Waitlist signups\t%d\n", d.WaitlistCount)
	if d.TrackingFailed {
		fmt.Fprintln(tw, "Usage tracking\tunavailable")
	} else {
		fmt.Fprintf(tw, "Button clicks\t%d\n", d.Totals.ButtonClicks)
		fmt.Fprintf(tw, "Tool calls\t%d\n", d.Totals.ToolCalls)
		fmt.Fprintf(tw, "App opens\t%d\n", d.Totals.AppOpens)
		fmt.Fprintf(tw, "Page opens\t%d\n", d.Totals.PageOpens)
		fmt.Fprintf(tw, "Token usage\t%d\n", d.Totals.TokenUsage)
		if d.TopButton != nil {
			fmt.Fprintf(tw, "Top button\t%s (%d)\n", d.TopButton.Label(), d.TopButton.Value())
		}
		if d.TopTool != nil {
			fmt.Fprintf(tw, "Top tool\t%s (%d)\n", d.TopTool.Label(), d.TopTool.Value())
		}
	}
	_ = tw.Flush()

	if len(d.LatestSignups) > 0 {
		fmt.Fprintln(w, "\nLatest signups:")
		printWaitlist(w, d.LatestSignups)
	}
}

func printSeries(tw *tabwriter.Writer, title string, series []models.DateValue) {
	if len(series) == 0 {
		return
	}
	fmt.Fprintf(tw, "%s\n", title)
	for _, p := range series {
		fmt.Fprintf(tw, "  %s\t%d\n", p.Date, p.Value())
	}
}

func printBuckets(tw *tabwriter.Writer, title string, buckets []models.NameValue) {
	if len(buckets) == 0 {
		return
	}
	fmt.Fprintf(tw, "%s\n", title)
	for _, b := range buckets {
		fmt.Fprintf(tw, "  %s\t%d\n", orDash(b.Label()), b.Value())
	}
}

func printTracking(w io.Writer, t *models.TrackingData) {
	if t == nil {
		fmt.Fprintln(w, "No tracking data.")
		return
	}
	tw := newTable(w)
	printSeries(tw, "Button clicks by date", t.ButtonClicksByDate)
	printBuckets(tw, "Button clicks by button", t.ButtonClicksByButtonName)
	printSeries(tw, "Tool calls by date", t.ToolCallsByDate)
	printBuckets(tw, "Tool calls by tool", t.ToolCallsByToolName)
	printSeries(tw, "App opens by date", t.AppOpenCountByDate)
	printSeries(tw, "Page opens by date", t.PageOpenCountByDate)
	printBuckets(tw, "Page opens by page", t.PageOpenCountByPageName)
	printSeries(tw, "Token usage by date", t.TokenUsageByDate)
	printBuckets(tw, "Token usage by token", t.TokenUsageByTokenName)
	_ = tw.Flush()
}

func printDistribution(w io.Writer, d *models.UserDistribution) {
	if d == nil {
		fmt.Fprintln(w, "No distribution data.")
		return
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "Total users\t%d\n", d.TotalUsers)
	fmt.Fprintf(tw, "Recent registrations\t%d\n", d.RecentRegistrations)
	fmt.Fprintf(tw, "Growth rate\t%.2f%%\n", d.GrowthRate)
	if len(d.CountryDistribution) > 0 {
		fmt.Fprintln(tw, "By country")
		for _, c := range d.CountryDistribution {
			fmt.Fprintf(tw, "  %s\t%d\n", orDash(c.Country), c.UserCount)
		}
	}
	if len(d.VerificationStatus) > 0 {
		fmt.Fprintln(tw, "By verification")
		for _, v := range d.VerificationStatus {
			fmt.Fprintf(tw, "  %s\t%d\n", orDash(v.Status), v.UserCount)
		}
	}
	if len(d.WalletStatus) > 0 {
		fmt.Fprintln(tw, "By wallet")
		for _, v := range d.WalletStatus {
			fmt.Fprintf(tw, "  %s\t%d\n", orDash(v.WalletStatus), v.UserCount)
		}
	}
	if len(d.PinStatus) > 0 {
		fmt.Fprintln(tw, "By PIN")
		for _, v := range d.PinStatus {
			fmt.Fprintf(tw, "  %s\t%d\n", orDash(v.PinStatus), v.UserCount)
		}
	}
	if len(d.MonthlyRegistrations) > 0 {
		fmt.Fprintln(tw, "Monthly registrations")
		for _, m := range d.MonthlyRegistrations {
			fmt.Fprintf(tw, "  %04d-%02d\t%d\n", m.Year, m.Month, m.Registrations)
		}
	}
	_ = tw.Flush()
}

func printWaitlist(w io.Writer, list []models.WaitlistUser) {
	if len(list) == 0 {
		fmt.Fprintln(w, "Waitlist is empty.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tCOUNTRY\tWALLET\tJOINED")
	for _, u := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s\t%s\t%s\n",
			u.ID, u.EmailAddress, u.FirstName, u.LastName, orDash(u.Country), orDash(u.WalletAddress), orDash(u.CreatedAt))
	}
	_ = tw.Flush()
}

func printUsers(w io.Writer, users []models.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tUSERNAME\tPHONE\tVERIFIED\tWALLET")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%t\n", u.ID, u.Username, orDash(u.PhoneNumber), u.Verified(), u.HasWallet())
	}
	_ = tw.Flush()
}

func printUser(w io.Writer, u *models.User) {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID\t%d\n", u.ID)
	fmt.Fprintf(tw, "Username\t%s\n", u.Username)
	fmt.Fprintf(tw, "Phone\t%s\n", orDash(u.PhoneNumber))
	fmt.Fprintf(tw, "Wallet\t%s\n", orDash(u.WalletAddress))
	fmt.Fprintf(tw, "Verification\t%s\n", orDash(u.VerificationStatus))
	fmt.Fprintf(tw, "Created\t%s\n", orDash(u.CreatedAt))
	_ = tw.Flush()
}

func printProfile(w io.Writer, p *models.Profile) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Name\t%s\n", orDash(p.DisplayName()))
	fmt.Fprintf(tw, "Email\t%s\n", orDash(p.Email))
	fmt.Fprintf(tw, "ID\t%s\n", orDash(p.ID))
	if p.IsActive != nil {
		fmt.Fprintf(tw, "Active\t%t\n", *p.IsActive)
	}
	fmt.Fprintf(tw, "Last login\t%s\n", orDash(p.LastLoginAt))
	_ = tw.Flush()
}

func printAdmins(w io.Writer, admins []models.Profile) {
	if len(admins) == 0 {
		fmt.Fprintln(w, "No admins.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tLAST LOGIN")
	for _, p := range admins {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", orDash(p.ID), orDash(p.DisplayName()), p.Email, orDash(p.LastLoginAt))
	}
	_ = tw.Flush()
}
