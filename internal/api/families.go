package api

import (
	"context"
	"fmt"
	"net/url"

	"yuyingbao/internal/models"
)

// CreateFamily creates a new family owned by the current user
func (c *Client) CreateFamily(ctx context.Context, name string) (*models.Family, error) {
	body := map[string]string{"name": name}
	var family models.Family
	if err := c.do(ctx, "POST", "/families", body, &family); err != nil {
		return nil, err
	}
	return &family, nil
}

// JoinFamily joins an existing family via its invite code
func (c *Client) JoinFamily(ctx context.Context, inviteCode string) (*models.Family, error) {
	body := map[string]string{"inviteCode": inviteCode}
	var family models.Family
	if err := c.do(ctx, "POST", "/families/join", body, &family); err != nil {
		return nil, err
	}
	return &family, nil
}

// ValidateInviteCode checks an invite code before attempting to join
func (c *Client) ValidateInviteCode(ctx context.Context, code string) (*models.Family, error) {
	var family models.Family
	path := "/families/validate-invite-code/" + url.PathEscape(code)
	if err := c.do(ctx, "GET", path, nil, &family); err != nil {
		return nil, err
	}
	return &family, nil
}

// MyFamilies lists the families the current user belongs to
func (c *Client) MyFamilies(ctx context.Context) ([]models.Family, error) {
	var families []models.Family
	if err := c.do(ctx, "GET", "/families/my", nil, &families); err != nil {
		return nil, err
	}
	return families, nil
}

// FamilyMembers lists the members of a family
func (c *Client) FamilyMembers(ctx context.Context, familyID int64) ([]models.FamilyMember, error) {
	var members []models.FamilyMember
	path := fmt.Sprintf("/families/%d/members", familyID)
	if err := c.do(ctx, "GET", path, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateMemberRole changes a member's role within a family
func (c *Client) UpdateMemberRole(ctx context.Context, familyID, memberID int64, role models.MemberRole) (*models.FamilyMember, error) {
	body := map[string]models.MemberRole{"role": role}
	var member models.FamilyMember
	path := fmt.Sprintf("/families/%d/members/%d/role", familyID, memberID)
	if err := c.do(ctx, "PUT", path, body, &member); err != nil {
		return nil, err
	}
	return &member, nil
}
