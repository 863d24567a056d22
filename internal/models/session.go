package models

// Session — данные активной сессии, хранящиеся по её токену.
type Session struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}
