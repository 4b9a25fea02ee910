package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockforge/mockforge/pkg/protocol"
)

func TestSpecAdapter_Operations(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set(&Fixture{
		ID:       "users-get",
		Name:     "list users",
		Protocol: protocol.ProtocolHTTP,
		Request:  RequestSpec{Operation: "GET", Path: "/users"},
		Response: ResponseSpec{Body: `[]`},
	}))
	require.NoError(t, s.Set(&Fixture{
		ID:       "topic-pub",
		Protocol: protocol.ProtocolMQTT,
		Request:  RequestSpec{Topic: "sensors/#"},
	}))

	a := NewSpecAdapter(protocol.ProtocolHTTP, s)
	assert.Equal(t, protocol.ProtocolHTTP, a.Protocol())

	ops := a.Operations()
	require.Len(t, ops, 1, "only own-protocol fixtures appear")
	assert.Equal(t, "list users", ops[0].Name)
	assert.Equal(t, "/users", ops[0].Path)
	assert.Equal(t, "GET", ops[0].OperationType)
	assert.Equal(t, `[]`, ops[0].OutputSchema)

	// Fixtures without a name fall back to their ID; topic stands in for path
	mqtt := NewSpecAdapter(protocol.ProtocolMQTT, s).Operations()
	require.Len(t, mqtt, 1)
	assert.Equal(t, "topic-pub", mqtt[0].Name)
	assert.Equal(t, "sensors/#", mqtt[0].Path)
}

func TestSpecAdapter_FindOperation(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set(&Fixture{
		ID:       "users-get",
		Protocol: protocol.ProtocolHTTP,
		Request:  RequestSpec{Operation: "GET", Path: "/users/{id}"},
	}))

	a := NewSpecAdapter(protocol.ProtocolHTTP, s)

	op, ok := a.FindOperation("GET", "/users/42")
	require.True(t, ok)
	assert.Equal(t, "users-get", op.Name)

	_, ok = a.FindOperation("DELETE", "/users/42")
	assert.False(t, ok)
}
