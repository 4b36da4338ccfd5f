package twitter

// UsersResponse represents the top-level response of the batched user lookup
type UsersResponse struct {
	Data UsersData `json:"data"`
}

// UsersData wraps the list of user entries in the response
type UsersData struct {
	Users []UserEntry `json:"users"`
}

// UserEntry wraps a single user result
type UserEntry struct {
	Result *UserResult `json:"result"`
}

// UserResult represents one looked-up user
type UserResult struct {
	RestID string      `json:"rest_id"`
	Legacy *UserLegacy `json:"legacy"`
}

// UserLegacy carries the legacy profile fields of a user.
// FollowersCount is a pointer so a missing field can be told apart from zero.
type UserLegacy struct {
	ScreenName     string `json:"screen_name"`
	FollowersCount *int   `json:"followers_count"`
}
