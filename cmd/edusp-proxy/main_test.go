package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edusp-proxy/internal/activity"
	"edusp-proxy/internal/gateway"
	"edusp-proxy/internal/upstream"
)

type stubLists struct {
	pending, expired []byte
	err              error
}

func (s stubLists) ListPending(context.Context) ([]byte, error) { return s.pending, s.err }
func (s stubLists) ListExpired(context.Context) ([]byte, error) { return s.expired, s.err }

func newStubGateway(s stubLists) *gateway.Gateway {
	logger, _ := test.NewNullLogger()
	return gateway.New(gateway.Config{
		Lists:   s,
		Details: upstream.SampleDetails{},
		Logger:  logger,
	})
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"serve", "fetch", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, root.RunE, "root command should serve by default")
}

func TestFetchFlags(t *testing.T) {
	cmd := newFetchCmd()

	assert.NotNil(t, cmd.Flags().Lookup("id"))
	assert.NotNil(t, cmd.Flags().Lookup("status"))
}

func TestVersionCmd(t *testing.T) {
	cmd := newVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Equal(t, "edusp-proxy dev\n", out.String())
}

func TestRunFetch_Expired(t *testing.T) {
	gw := newStubGateway(stubLists{expired: []byte(`[{"task":{"title":"Lab","id":9}}]`)})

	var out bytes.Buffer
	err := runFetch(context.Background(), gw, activity.Query{Status: "expiradas"}, &out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pendentes":[],"expiradas":[{"title":"Lab","id":9}]}`, out.String())
}

func TestRunFetch_Detail(t *testing.T) {
	gw := newStubGateway(stubLists{})

	var out bytes.Buffer
	require.NoError(t, runFetch(context.Background(), gw, activity.Query{ID: "42"}, &out))
	assert.Contains(t, out.String(), `"questions"`)
}

func TestRunFetch_Failure(t *testing.T) {
	gw := newStubGateway(stubLists{err: errors.New("connection refused")})

	var out bytes.Buffer
	err := runFetch(context.Background(), gw, activity.Query{}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pending request failed")
	assert.JSONEq(t, `{"message":"Erro ao buscar dados da API externa."}`, out.String())
}
