package domain

import "encoding/json"

// Role enumerates the account roles known to the platform.
type Role string

const (
	RoleVisitor Role = "visitor"
	RoleManager Role = "manager"
	RoleAgency  Role = "agency"
	RoleAdmin   Role = "admin"
)

// Roles lists every valid role.
var Roles = []Role{RoleVisitor, RoleManager, RoleAgency, RoleAdmin}

// Valid reports whether the role belongs to the enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleVisitor, RoleManager, RoleAgency, RoleAdmin:
		return true
	}
	return false
}

// UserRecord is the persisted credential document. Records are stored as a
// single JSONB value, so fields outside the canonical set must survive a
// read back; Extra carries them through marshalling.
type UserRecord struct {
	Email        string
	PasswordHash string
	Role         Role

	Extra map[string]json.RawMessage
}

type userRecordJSON struct {
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
	Role         Role   `json:"role"`
}

// MarshalJSON emits the canonical field set plus any preserved extras.
func (u UserRecord) MarshalJSON() ([]byte, error) {
	doc := make(map[string]json.RawMessage, len(u.Extra)+3)
	for k, v := range u.Extra {
		doc[k] = v
	}

	known, err := json.Marshal(userRecordJSON{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
	})
	if err != nil {
		return nil, err
	}
	var knownDoc map[string]json.RawMessage
	if err := json.Unmarshal(known, &knownDoc); err != nil {
		return nil, err
	}
	for k, v := range knownDoc {
		doc[k] = v
	}

	return json.Marshal(doc)
}

// UnmarshalJSON fills the canonical fields and keeps everything else in Extra.
func (u *UserRecord) UnmarshalJSON(data []byte) error {
	var known userRecordJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	delete(doc, "email")
	delete(doc, "password")
	delete(doc, "role")

	u.Email = known.Email
	u.PasswordHash = known.PasswordHash
	u.Role = known.Role
	u.Extra = nil
	if len(doc) > 0 {
		u.Extra = doc
	}
	return nil
}

// Public returns the document without the password hash, for API responses.
func (u UserRecord) Public() map[string]any {
	out := map[string]any{
		"email": u.Email,
		"role":  u.Role,
	}
	for k, v := range u.Extra {
		out[k] = v
	}
	return out
}
