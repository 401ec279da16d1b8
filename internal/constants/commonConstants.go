package constants

type (
	RequestSource string
	APIStatus     string
	CachePrefix   string
)

const (
	RequestSourceSession RequestSource = "SESSION"
	RequestSourceBearer  RequestSource = "BEARER"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixSignedURL      CachePrefix = "SIGNED_URL_"
	CachePrefixOverdueNotice  CachePrefix = "OVERDUE_NOTICE_"
	CachePrefixDashboardStats CachePrefix = "DASH_STATS"
)
