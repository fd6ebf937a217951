package handler

type ContextKey string

var (
	RoleCtxKey    ContextKey = "role"
	SubCtxKey     ContextKey = "sub"
	MyInfoCtx     ContextKey = "myInfo"
	UserInfoCtx   ContextKey = "userInfo"
	ClientInfoCtx ContextKey = "clientInfo"
	ShiftCtx      ContextKey = "shift"
	SubmissionCtx ContextKey = "submission"
)
