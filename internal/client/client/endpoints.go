package client

// Endpoints holds the backend paths, relative to the API base URL.
type Endpoints struct {
	Login                  string `json:"login"`
	Verify                 string `json:"verify"`
	ValidateToken          string `json:"validate_token"`
	UpdateProfile          string `json:"update_profile"`
	CreateAdmin            string `json:"create_admin"`
	FetchAdmins            string `json:"fetch_admins"`
	Waitlist               string `json:"waitlist"`
	AddToWaitlist          string `json:"add_to_waitlist"`
	TrackingData           string `json:"tracking_data"`
	UserDistribution       string `json:"user_distribution"`
	FetchUsers             string `json:"fetch_users"`
	FetchUser              string `json:"fetch_user"`
	CreateUser             string `json:"create_user"`
	UpdateUserVerification string `json:"update_user_verification"`
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login:                  "/admin/login-admin",
		Verify:                 "/admin/verify-admin",
		ValidateToken:          "/validate-token",
		UpdateProfile:          "/admin/update-profile",
		CreateAdmin:            "/admin/create-admin",
		FetchAdmins:            "/admin/fetch-admins",
		Waitlist:               "/get_waitlist",
		AddToWaitlist:          "/add_to_waitlist",
		TrackingData:           "/usage-tracking/get-tracking-data",
		UserDistribution:       "/user-analytics",
		FetchUsers:             "/fetch-users",
		FetchUser:              "/fetch-user",
		CreateUser:             "/create-user",
		UpdateUserVerification: "/update-user-verification",
	}
}

// withDefaults fills empty paths from DefaultEndpoints.
func (e Endpoints) withDefaults() Endpoints {
	d := DefaultEndpoints()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&e.Login, d.Login)
	fill(&e.Verify, d.Verify)
	fill(&e.ValidateToken, d.ValidateToken)
	fill(&e.UpdateProfile, d.UpdateProfile)
	fill(&e.CreateAdmin, d.CreateAdmin)
	fill(&e.FetchAdmins, d.FetchAdmins)
	fill(&e.Waitlist, d.Waitlist)
	fill(&e.AddToWaitlist, d.AddToWaitlist)
	fill(&e.TrackingData, d.TrackingData)
	fill(&e.UserDistribution, d.UserDistribution)
	fill(&e.FetchUsers, d.FetchUsers)
	fill(&e.FetchUser, d.FetchUser)
	fill(&e.CreateUser, d.CreateUser)
	fill(&e.UpdateUserVerification, d.UpdateUserVerification)
	return e
}
