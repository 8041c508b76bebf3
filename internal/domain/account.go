package domain

type Role string

const (
	RoleHousehold    Role = "HOUSEHOLD"
	RoleOrganization Role = "ORGANIZATION"
	RoleCollector    Role = "COLLECTOR"
	RoleStaff        Role = "STAFF"
	RoleAdmin        Role = "ADMIN"
)

// Privileged reports whether the role may read and mutate arbitrary accounts.
func (r Role) Privileged() bool {
	return r == RoleStaff || r == RoleAdmin
}

func (r Role) Valid() bool {
	switch r {
	case RoleHousehold, RoleOrganization, RoleCollector, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

type Account struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Role        Role   `json:"role"`
	AvatarURL   string `json:"avatar_url"`

	// Absent for accounts that have never set a password; such accounts
	// cannot authenticate until a reset completes.
	PasswordHash string `json:"-"`

	BankName string `json:"bank_name"`
	// Stored as an encryption envelope at rest. Holds plaintext only after
	// the field cipher has opened it for an authorized reader.
	BankAccountNumber string `json:"bank_account_number"`
	BankAccountHolder string `json:"bank_account_holder"`
	Gender            string `json:"gender"`
	Address           string `json:"address"`
	Industry          string `json:"industry"`
	ESGScore          int32  `json:"esg_score"`

	Balance        int64   `json:"balance"`
	RecycledWeight float64 `json:"recycled_weight_kg"`

	Active    bool   `json:"active"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}

// ProfilePatch carries an owner-initiated profile update. Nil fields are
// left untouched.
type ProfilePatch struct {
	Name              *string `json:"name,omitempty"`
	PhoneNumber       *string `json:"phone_number,omitempty"`
	AvatarURL         *string `json:"avatar_url,omitempty"`
	Gender            *string `json:"gender,omitempty"`
	Address           *string `json:"address,omitempty"`
	Industry          *string `json:"industry,omitempty"`
	BankName          *string `json:"bank_name,omitempty"`
	BankAccountNumber *string `json:"bank_account_number,omitempty"`
	BankAccountHolder *string `json:"bank_account_holder,omitempty"`

	// Admin/staff only. Stripped for everyone else before reaching the store.
	Active   *bool   `json:"active,omitempty"`
	Role     *Role   `json:"role,omitempty"`
	ESGScore *int32  `json:"esg_score,omitempty"`
}
