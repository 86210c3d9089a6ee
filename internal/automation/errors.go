package automation

import (
	"errors"
	"fmt"
)

// Sentinel errors for the scrape trigger failure taxonomy.
var (
	// ErrAuth is returned for 401/403 responses from the automation endpoint.
	ErrAuth = errors.New("automation endpoint rejected the bearer token")
	// ErrEndpointNotFound is returned for 404 responses.
	ErrEndpointNotFound = errors.New("automation endpoint not found")
	// ErrTimeout is returned when the call exceeds the configured deadline.
	ErrTimeout = errors.New("automation call timed out")
	// ErrNetwork is returned for transport-level failures.
	ErrNetwork = errors.New("automation endpoint unreachable")
)

// HTTPError is a non-success status outside the dedicated auth/not-found
// classes. Excerpt carries at most excerptLimit characters of the body.
type HTTPError struct {
	StatusCode int
	Excerpt    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, e.Excerpt)
}

// ToolError is a success-status response whose body carries a top-level
// JSON-RPC error object from the workflow.
type ToolError struct {
	Message string
}

func (e *ToolError) Error() string {
	return "workflow tool error: " + e.Message
}

// UserMessage maps a classified scrape failure to the message shown on the
// dashboard toast. The dashboard copy is Spanish.
func UserMessage(err error) string {
	var httpErr *HTTPError
	var toolErr *ToolError

	switch {
	case errors.Is(err, ErrAuth):
		return "Error de Autenticación. Revisa el Token Bearer."
	case errors.Is(err, ErrEndpointNotFound):
		return "Endpoint MCP no encontrado (404). Verifica la URL."
	case errors.Is(err, ErrTimeout):
		return "La petición tardó demasiado (Timeout)"
	case errors.Is(err, ErrNetwork):
		return "Error de Red / CORS. Asegúrate que n8n permite peticiones externas."
	case errors.As(err, &httpErr):
		return fmt.Sprintf("Error HTTP %d: %s", httpErr.StatusCode, httpErr.Excerpt)
	case errors.As(err, &toolErr):
		return "MCP Tool Error: " + toolErr.Message
	default:
		return err.Error()
	}
}
