package models

// MemberRole enumerates the roles a user can hold within a family
type MemberRole string

const (
	RoleCreator             MemberRole = "CREATOR"
	RoleFather              MemberRole = "FATHER"
	RoleMother              MemberRole = "MOTHER"
	RoleGrandfather         MemberRole = "GRANDFATHER"
	RoleGrandmother         MemberRole = "GRANDMOTHER"
	RoleMaternalGrandfather MemberRole = "MATERNAL_GRANDFATHER"
	RoleMaternalGrandmother MemberRole = "MATERNAL_GRANDMOTHER"
	RoleOther               MemberRole = "OTHER"
)

var roleNames = map[MemberRole]string{
	RoleCreator:             "创建者",
	RoleFather:              "爸爸",
	RoleMother:              "妈妈",
	RoleGrandfather:         "爷爷",
	RoleGrandmother:         "奶奶",
	RoleMaternalGrandfather: "外公",
	RoleMaternalGrandmother: "外婆",
	RoleOther:               "其他",
}

// DisplayName returns the Chinese role label, falling back to the raw code
func (r MemberRole) DisplayName() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return string(r)
}

// Family represents a group of accounts sharing visibility into babies' records
type Family struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	InviteCode    string `json:"inviteCode"`
	CreatorUserID int64  `json:"creatorUserId"`
}

// FamilyMember represents one account's membership in a family
type FamilyMember struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Nickname  string     `json:"nickname"`
	AvatarURL string     `json:"avatarUrl"`
	Role      MemberRole `json:"role"`
}
