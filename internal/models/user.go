package models

// User represents an authenticated account as returned by the backend
type User struct {
	ID        int64  `json:"id"`
	OpenID    string `json:"openId,omitempty"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
}

// DeviceInfo describes the device a login originates from
type DeviceInfo struct {
	System   string `json:"system"`
	Platform string `json:"platform"`
	Brand    string `json:"brand,omitempty"`
	Model    string `json:"model,omitempty"`
	Version  string `json:"version,omitempty"`
}

// LoginRequest is the payload for the login-complete exchange
type LoginRequest struct {
	Code       string     `json:"code"`
	Nickname   string     `json:"nickname"`
	AvatarURL  string     `json:"avatarUrl"`
	DeviceID   string     `json:"deviceId"`
	DeviceInfo DeviceInfo `json:"deviceInfo"`
}

// LoginResult is the backend's answer to a successful login
type LoginResult struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	UserInfo  User   `json:"userInfo"`
}
