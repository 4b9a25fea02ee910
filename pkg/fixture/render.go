package fixture

import (
	"fmt"
	"time"

	"github.com/mockforge/mockforge/pkg/protocol"
	"github.com/mockforge/mockforge/pkg/template"
)

// ToProtocolResponse renders the fixture's response into a
// ProtocolResponse, substituting the fixture's template variables into the
// body and headers. The status maps to the protocol-appropriate
// representation: an HTTP code for HTTP-family protocols, a gRPC code for
// gRPC, generic success/failure elsewhere.
func (f *Fixture) ToProtocolResponse(engine *template.Engine) *protocol.ProtocolResponse {
	return f.RenderResponse(engine, nil)
}

// RenderResponse is ToProtocolResponse with additional template variables,
// typically path parameters captured from the request. Extra variables
// override fixture variables of the same name.
func (f *Fixture) RenderResponse(engine *template.Engine, extra map[string]string) *protocol.ProtocolResponse {
	if engine == nil {
		engine = template.New()
	}

	vars := f.Response.TemplateVars
	if len(extra) > 0 {
		merged := make(map[string]string, len(vars)+len(extra))
		for k, v := range vars {
			merged[k] = v
		}
		for k, v := range extra {
			merged[k] = v
		}
		vars = merged
	}

	body := engine.Process(f.Response.Body, vars)

	return &protocol.ProtocolResponse{
		Status:      f.responseStatus(),
		Metadata:    engine.ProcessMap(f.Response.Headers, vars),
		Body:        []byte(body),
		ContentType: f.Response.ContentType,
	}
}

// Delay returns the artificial delay the serving layer should apply before
// responding. The core itself never sleeps.
func (f *Fixture) Delay() time.Duration {
	return time.Duration(f.Response.DelayMs) * time.Millisecond
}

func (f *Fixture) responseStatus() protocol.ResponseStatus {
	switch f.Protocol {
	case protocol.ProtocolHTTP, protocol.ProtocolGraphQL, protocol.ProtocolWebSocket:
		code := f.Response.Status
		if code == 0 {
			code = 200
		}
		return protocol.HTTPStatus(code)
	case protocol.ProtocolGRPC:
		return protocol.GRPCStatus(f.Response.Status)
	default:
		if f.Response.Status == 0 {
			return protocol.Success()
		}
		return protocol.Failure(fmt.Sprintf("fixture status %d", f.Response.Status))
	}
}
