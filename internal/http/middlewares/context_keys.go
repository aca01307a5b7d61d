package middlewares

// Keys used with gin's c.Set / c.Get.
const (
	CtxRequestID = "request_id"
	CtxScope     = "auth.scope"
)
