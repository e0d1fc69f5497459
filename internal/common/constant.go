// Package common contains shared constants and sentinel errors used across
// HireBoard components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// ServiceName is the fully qualified name of the board gRPC service.
const ServiceName = "hireboard.v1.BoardService"

// AllowedResumeExtensions lists the document types accepted as résumés.
var AllowedResumeExtensions = []string{".pdf", ".doc", ".docx"}
