package types

const ContextUserKey = "user"

// Default allowed origins for development
var DefaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)
