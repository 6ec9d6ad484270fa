package models

// SignupRequest represents the signup request payload
type SignupRequest struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone"`
	Password  string  `json:"password" validate:"required,min=6"`
	Role      Role    `json:"role" validate:"required,oneof=USER ADMIN"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest carries the optional user fields; empty strings are ignored.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
}

// OnboardPlannerRequest treats an empty optional field the same as a missing one.
type OnboardPlannerRequest struct {
	UserID           ID     `json:"userId" validate:"required"`
	CompanyName      string `json:"companyName" validate:"required"`
	BusinessAddress  string `json:"businessAddress" validate:"required"`
	SocialMediaLinks string `json:"socialMediaLinks"`
	PortfolioWebsite string `json:"portfolioWebsite" validate:"omitempty,url"`
	CacNumber        string `json:"cacNumber"`
}

// UpdatePlannerRequest writes every field present in the body, empty strings included.
type UpdatePlannerRequest struct {
	CompanyName      *string `json:"companyName"`
	BusinessAddress  *string `json:"businessAddress"`
	CacNumber        *string `json:"cacNumber"`
	SocialMediaLinks *string `json:"socialMediaLinks"`
	PortfolioWebsite *string `json:"portfolioWebsite"`
}

type OnboardVendorRequest struct {
	UserID            ID     `json:"userId" validate:"required"`
	CompanyName       string `json:"companyName" validate:"required"`
	BusinessAddress   string `json:"businessAddress" validate:"required"`
	CacNumber         string `json:"cacNumber"`
	ServiceCategories string `json:"serviceCategories"`
	YearsOfExperience string `json:"yearsOfExperience"`
	Phone             string `json:"phone"`
}

type UpdateVendorRequest struct {
	CompanyName       *string `json:"companyName"`
	BusinessAddress   *string `json:"businessAddress"`
	CacNumber         *string `json:"cacNumber"`
	ServiceCategories *string `json:"serviceCategories"`
	YearsOfExperience *string `json:"yearsOfExperience"`
	Phone             *string `json:"phone"`
}
