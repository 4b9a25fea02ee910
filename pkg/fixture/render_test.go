package fixture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockforge/mockforge/pkg/protocol"
	"github.com/mockforge/mockforge/pkg/template"
)

func TestRenderResponse_Templating(t *testing.T) {
	f := &Fixture{
		Protocol: protocol.ProtocolHTTP,
		Response: ResponseSpec{
			Status:      201,
			Body:        `{"user":"{{name}}","env":"{{env}}"}`,
			Headers:     map[string]string{"X-Env": "{{env}}"},
			ContentType: "application/json",
			TemplateVars: map[string]string{
				"name": "alice",
				"env":  "staging",
			},
		},
	}

	resp := f.ToProtocolResponse(template.New())
	assert.Equal(t, `{"user":"alice","env":"staging"}`, string(resp.Body))
	assert.Equal(t, "staging", resp.Metadata["X-Env"])
	assert.Equal(t, "application/json", resp.ContentType)
	assert.Equal(t, protocol.HTTPStatus(201), resp.Status)
}

func TestRenderResponse_ExtraVarsOverride(t *testing.T) {
	f := &Fixture{
		Protocol: protocol.ProtocolHTTP,
		Request:  RequestSpec{Path: "/users/{id}"},
		Response: ResponseSpec{
			Body:         `{"id":"{{id}}"}`,
			TemplateVars: map[string]string{"id": "default"},
		},
	}

	req := httpRequest("GET", "/users/42")
	resp := f.RenderResponse(template.New(), f.PathVariables(req))
	assert.Equal(t, `{"id":"42"}`, string(resp.Body), "path variables override fixture vars")
}

func TestRenderResponse_NilEngine(t *testing.T) {
	f := &Fixture{
		Protocol: protocol.ProtocolMQTT,
		Response: ResponseSpec{Body: "plain"},
	}

	resp := f.RenderResponse(nil, nil)
	require.NotNil(t, resp)
	assert.Equal(t, "plain", string(resp.Body))
}

func TestResponseStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		proto  protocol.Protocol
		status int
		want   protocol.ResponseStatus
	}{
		{"http default", protocol.ProtocolHTTP, 0, protocol.HTTPStatus(200)},
		{"http explicit", protocol.ProtocolHTTP, 503, protocol.HTTPStatus(503)},
		{"graphql is http-family", protocol.ProtocolGraphQL, 0, protocol.HTTPStatus(200)},
		{"websocket is http-family", protocol.ProtocolWebSocket, 101, protocol.HTTPStatus(101)},
		{"grpc ok", protocol.ProtocolGRPC, 0, protocol.GRPCStatus(0)},
		{"grpc code", protocol.ProtocolGRPC, 5, protocol.GRPCStatus(5)},
		{"mqtt success", protocol.ProtocolMQTT, 0, protocol.Success()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Fixture{Protocol: tt.proto, Response: ResponseSpec{Status: tt.status}}
			assert.Equal(t, tt.want, f.ToProtocolResponse(nil).Status)
		})
	}

	// Non-zero status on a codeless protocol is a failure
	f := &Fixture{Protocol: protocol.ProtocolKafka, Response: ResponseSpec{Status: 1}}
	assert.False(t, f.ToProtocolResponse(nil).IsSuccess())
}

func TestFixtureDelay(t *testing.T) {
	f := &Fixture{Response: ResponseSpec{DelayMs: 250}}
	assert.Equal(t, 250*time.Millisecond, f.Delay())
	assert.Zero(t, (&Fixture{}).Delay())
}
