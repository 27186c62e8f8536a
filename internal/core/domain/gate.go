package domain

// GateFailure tags why a protected request was rejected. GateOK means the
// request may proceed.
type GateFailure int

const (
	GateOK GateFailure = iota
	GateMissingToken
	GateMalformedHeader
	GateInvalidToken
	GateExpiredToken
	GateInactiveAdmin
	GateUnavailable
)

var gateFailureNames = map[GateFailure]string{
	GateOK:              "ok",
	GateMissingToken:    "missing_token",
	GateMalformedHeader: "malformed_header",
	GateInvalidToken:    "invalid_token",
	GateExpiredToken:    "expired_token",
	GateInactiveAdmin:   "inactive_admin",
	GateUnavailable:     "unavailable",
}

// String is used as the metrics label for rejections.
func (f GateFailure) String() string {
	if s, ok := gateFailureNames[f]; ok {
		return s
	}
	return "unknown"
}

// GateResult is the outcome of running the access gate over a request.
// Exactly one of Identity (on GateOK) or Err (otherwise) is meaningful.
type GateResult struct {
	Failure  GateFailure
	Identity Identity
	Err      error
}

// OK reports whether the request passed every check.
func (r GateResult) OK() bool { return r.Failure == GateOK }
