// Package access decides which fields of an account record a requester may
// see or mutate. Projections are role- and ownership-based; forbidden fields
// in a write are silently stripped rather than rejected, so callers with a
// mixed patch still land their permitted changes.
package access

import "github.com/zoneboy/zilcycler/internal/domain"

// RestrictedAccount is the projection visible without ownership or an
// elevated role: enough for a person directory, nothing financial.
type RestrictedAccount struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	AvatarURL string      `json:"avatar_url"`
	Active    bool        `json:"active"`
	Industry  string      `json:"industry,omitempty"`
	ESGScore  int32       `json:"esg_score,omitempty"`
}

// CanViewFull reports whether the requester gets the full projection of the
// target account, including decrypted bank data and balance.
func CanViewFull(requesterRole domain.Role, requesterID, targetID string) bool {
	return requesterRole.Privileged() || requesterID == targetID
}

// Restrict strips an account down to its public directory fields.
func Restrict(a *domain.Account) *RestrictedAccount {
	return &RestrictedAccount{
		ID:        a.ID,
		Name:      a.Name,
		Role:      a.Role,
		AvatarURL: a.AvatarURL,
		Active:    a.Active,
		Industry:  a.Industry,
		ESGScore:  a.ESGScore,
	}
}

// Field names an account attribute for the write allow-lists.
type Field string

const (
	FieldName              Field = "name"
	FieldPhoneNumber       Field = "phone_number"
	FieldAvatarURL         Field = "avatar_url"
	FieldGender            Field = "gender"
	FieldAddress           Field = "address"
	FieldIndustry          Field = "industry"
	FieldBankName          Field = "bank_name"
	FieldBankAccountNumber Field = "bank_account_number"
	FieldBankAccountHolder Field = "bank_account_holder"
	FieldActive            Field = "active"
	FieldRole              Field = "role"
	FieldESGScore          Field = "esg_score"
)

// ownerFields is what an account owner may change about themselves. Balance,
// role and active never appear here: balance moves only through the ledger,
// the rest only through administrative action.
var ownerFields = fieldSet(
	FieldName, FieldPhoneNumber, FieldAvatarURL, FieldGender, FieldAddress,
	FieldIndustry, FieldBankName, FieldBankAccountNumber, FieldBankAccountHolder,
)

// adminFields is the staff/admin allow-list for arbitrary accounts.
var adminFields = fieldSet(
	FieldName, FieldPhoneNumber, FieldAvatarURL, FieldGender, FieldAddress,
	FieldIndustry, FieldBankName, FieldBankAccountNumber, FieldBankAccountHolder,
	FieldActive, FieldRole, FieldESGScore,
)

// AllowedFields returns the write allow-list for the requester against the
// target. A requester with no claim on the target gets an empty set.
func AllowedFields(requesterRole domain.Role, requesterID, targetID string) map[Field]bool {
	if requesterRole.Privileged() {
		return adminFields
	}
	if requesterID == targetID {
		return ownerFields
	}
	return map[Field]bool{}
}

// FilterPatch returns a copy of the patch with every field outside the
// requester's allow-list cleared. Stripped is the list of dropped fields,
// for audit logging.
func FilterPatch(requesterRole domain.Role, requesterID, targetID string, patch *domain.ProfilePatch) (*domain.ProfilePatch, []Field) {
	allowed := AllowedFields(requesterRole, requesterID, targetID)
	filtered := *patch
	var stripped []Field

	strip := func(f Field, present bool, clear func()) {
		if present && !allowed[f] {
			clear()
			stripped = append(stripped, f)
		}
	}

	strip(FieldName, filtered.Name != nil, func() { filtered.Name = nil })
	strip(FieldPhoneNumber, filtered.PhoneNumber != nil, func() { filtered.PhoneNumber = nil })
	strip(FieldAvatarURL, filtered.AvatarURL != nil, func() { filtered.AvatarURL = nil })
	strip(FieldGender, filtered.Gender != nil, func() { filtered.Gender = nil })
	strip(FieldAddress, filtered.Address != nil, func() { filtered.Address = nil })
	strip(FieldIndustry, filtered.Industry != nil, func() { filtered.Industry = nil })
	strip(FieldBankName, filtered.BankName != nil, func() { filtered.BankName = nil })
	strip(FieldBankAccountNumber, filtered.BankAccountNumber != nil, func() { filtered.BankAccountNumber = nil })
	strip(FieldBankAccountHolder, filtered.BankAccountHolder != nil, func() { filtered.BankAccountHolder = nil })
	strip(FieldActive, filtered.Active != nil, func() { filtered.Active = nil })
	strip(FieldRole, filtered.Role != nil, func() { filtered.Role = nil })
	strip(FieldESGScore, filtered.ESGScore != nil, func() { filtered.ESGScore = nil })

	return &filtered, stripped
}

func fieldSet(fields ...Field) map[Field]bool {
	set := make(map[Field]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
