package models

import "time"

type Planner struct {
	ID               ID        `json:"id" db:"id"`
	UserID           ID        `json:"userId" db:"user_id"`
	CompanyName      string    `json:"companyName" db:"company_name"`
	BusinessAddress  string    `json:"businessAddress" db:"business_address"`
	CacNumber        *string   `json:"cacNumber" db:"cac_number"`
	SocialMediaLinks *string   `json:"socialMediaLinks" db:"social_media_links"`
	PortfolioWebsite *string   `json:"portfolioWebsite" db:"portfolio_website"`
	ProfilePhoto     *string   `json:"profilePhoto" db:"profile_photo"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// PlannerDetail is a planner with its owning user embedded.
type PlannerDetail struct {
	*Planner
	User *User `json:"user"`
}

type PlannerPatch struct {
	CompanyName      Field[string]
	BusinessAddress  Field[string]
	CacNumber        Field[string]
	SocialMediaLinks Field[string]
	PortfolioWebsite Field[string]
	ProfilePhoto     Field[string]
}

func (p PlannerPatch) IsEmpty() bool {
	return !p.CompanyName.Set && !p.BusinessAddress.Set && !p.CacNumber.Set &&
		!p.SocialMediaLinks.Set && !p.PortfolioWebsite.Set && !p.ProfilePhoto.Set
}

// Apply writes the set fields onto planner, mirroring what a store update does.
func (p PlannerPatch) Apply(planner *Planner) {
	if p.CompanyName.Set && p.CompanyName.Value != nil {
		planner.CompanyName = *p.CompanyName.Value
	}
	if p.BusinessAddress.Set && p.BusinessAddress.Value != nil {
		planner.BusinessAddress = *p.BusinessAddress.Value
	}
	p.CacNumber.ApplyTo(&planner.CacNumber)
	p.SocialMediaLinks.ApplyTo(&planner.SocialMediaLinks)
	p.PortfolioWebsite.ApplyTo(&planner.PortfolioWebsite)
	p.ProfilePhoto.ApplyTo(&planner.ProfilePhoto)
}
