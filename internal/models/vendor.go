package models

import "time"

type Vendor struct {
	ID                ID         `json:"id" db:"id"`
	UserID            ID         `json:"userId" db:"user_id"`
	CompanyName       string     `json:"companyName" db:"company_name"`
	BusinessAddress   string     `json:"businessAddress" db:"business_address"`
	CacNumber         *string    `json:"cacNumber" db:"cac_number"`
	ServiceCategories *string    `json:"serviceCategories" db:"service_categories"`
	YearsOfExperience *int       `json:"yearsOfExperience" db:"years_of_experience"`
	Phone             *string    `json:"phone" db:"phone"`
	LicenseURL        *string    `json:"licenseUrl" db:"license_url"`
	LicenseUploadedAt *time.Time `json:"licenseUploadedAt" db:"license_uploaded_at"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`
}

// VendorDetail is a vendor with its owning user embedded.
type VendorDetail struct {
	*Vendor
	User *User `json:"user"`
}

type VendorPatch struct {
	CompanyName       Field[string]
	BusinessAddress   Field[string]
	CacNumber         Field[string]
	ServiceCategories Field[string]
	YearsOfExperience Field[int]
	Phone             Field[string]
	LicenseURL        Field[string]
	LicenseUploadedAt Field[time.Time]
}

func (p VendorPatch) IsEmpty() bool {
	return !p.CompanyName.Set && !p.BusinessAddress.Set && !p.CacNumber.Set &&
		!p.ServiceCategories.Set && !p.YearsOfExperience.Set && !p.Phone.Set &&
		!p.LicenseURL.Set && !p.LicenseUploadedAt.Set
}

// Apply writes the set fields onto vendor, mirroring what a store update does.
func (p VendorPatch) Apply(vendor *Vendor) {
	if p.CompanyName.Set && p.CompanyName.Value != nil {
		vendor.CompanyName = *p.CompanyName.Value
	}
	if p.BusinessAddress.Set && p.BusinessAddress.Value != nil {
		vendor.BusinessAddress = *p.BusinessAddress.Value
	}
	p.CacNumber.ApplyTo(&vendor.CacNumber)
	p.ServiceCategories.ApplyTo(&vendor.ServiceCategories)
	p.YearsOfExperience.ApplyTo(&vendor.YearsOfExperience)
	p.Phone.ApplyTo(&vendor.Phone)
	p.LicenseURL.ApplyTo(&vendor.LicenseURL)
	p.LicenseUploadedAt.ApplyTo(&vendor.LicenseUploadedAt)
}
