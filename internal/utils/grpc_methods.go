package utils

// Names of the remote-state gRPC service. The service is declared by hand
// and carried with JSONCodec, so both the server and the client refer to
// the methods through these constants.
const (
	RemoteStatesService = "statesync.v1.RemoteStates"

	RemoteStatesPing       = "Ping"
	RemoteStatesFetch      = "Fetch"
	RemoteStatesPush       = "Push"
	RemoteStatesDelete     = "Delete"
	RemoteStatesList       = "List"
	RemoteStatesGetVersion = "GetVersion"
)

// FullMethodName returns the "/service/method" path of a remote-state method.
func FullMethodName(method string) string {
	return "/" + RemoteStatesService + "/" + method
}

// GRPCAuthorizationKey is the metadata key carrying the bearer token.
const GRPCAuthorizationKey = "authorization"
