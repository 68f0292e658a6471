package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/lynq-cli/internal/client/authtest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*HTTPClient, *authtest.Server) {
	t.Helper()
	srv := authtest.NewServer()
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", 5*time.Second), srv
}

func TestSignup_SendsJSONAndRequestID(t *testing.T) {
	c, srv := newTestClient(t)

	require.NoError(t, c.Signup(context.Background(), "a@b.co", "Abc12345!"))

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, PathSignup, reqs[0].Path)
	assert.Equal(t, map[string]string{"email": "a@b.co", "password": "Abc12345!"}, reqs[0].Body)

	_, err := uuid.Parse(reqs[0].RequestID)
	assert.NoError(t, err, "request id must be a uuid")
}

func TestSignup_ConflictMatchesErrConflict(t *testing.T) {
	c, srv := newTestClient(t)
	srv.AddUser("a@b.co", "x")

	err := c.Signup(context.Background(), "a@b.co", "Abc12345!")
	require.ErrorIs(t, err, ErrConflict)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "User already exists", apiErr.Message)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestLogin_RejectedCarriesMessage(t *testing.T) {
	c, _ := newTestClient(t)

	err := c.Login(context.Background(), "nobody@b.co", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConflict)

	msg, ok := MessageOf(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid email or password", msg)
}

func TestVerifyCode_ReturnsToken(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()
	srv.AddUser("a@b.co", "pw")
	require.NoError(t, c.Login(ctx, "a@b.co", "pw"))

	token, err := c.VerifyCode(ctx, "a@b.co", srv.CodeFor("a@b.co"))
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	reqs := srv.Requests()
	assert.Equal(t, PathVerifyCode, reqs[len(reqs)-1].Path)
	assert.Equal(t, "a@b.co", reqs[len(reqs)-1].Body["email"])
}

func TestVerifyCode_WrongCode(t *testing.T) {
	c, srv := newTestClient(t)
	srv.AddUser("a@b.co", "pw")

	_, err := c.VerifyCode(context.Background(), "a@b.co", "000000")
	msg, ok := MessageOf(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid or expired code", msg)
}

func TestVerifyCode_EmptyTokenIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, time.Second).VerifyCode(context.Background(), "a@b.co", "123456")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestVerifyCode_NonJSONSuccessIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>ok</html>`))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, time.Second).VerifyCode(context.Background(), "a@b.co", "123456")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestResendCode(t *testing.T) {
	c, srv := newTestClient(t)
	srv.AddUser("a@b.co", "pw")

	require.NoError(t, c.ResendCode(context.Background(), "a@b.co"))
	assert.NotEmpty(t, srv.CodeFor("a@b.co"))
	assert.Equal(t, map[string]string{"email": "a@b.co"}, srv.Requests()[0].Body)
}

func TestErrorBodyWithoutMessage(t *testing.T) {
	c, srv := newTestClient(t)
	srv.FailRaw(PathResendCode, http.StatusTooManyRequests, `rate limited`)

	err := c.ResendCode(context.Background(), "a@b.co")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Empty(t, apiErr.Message)

	_, ok := MessageOf(err)
	assert.False(t, ok)
	assert.Equal(t, "api error: status 429", apiErr.Error())
}

func TestTransportErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewHTTPClient(url, time.Second).Login(context.Background(), "a@b.co", "pw")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestContextCancelIsUnavailable(t *testing.T) {
	c, srv := newTestClient(t)
	release := srv.Hold(PathLogin)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Login(ctx, "a@b.co", "pw")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, errors.Is(ctx.Err(), context.DeadlineExceeded))
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "api error: status 400: bad", (&APIError{Status: 400, Message: "bad"}).Error())
	assert.NotErrorIs(t, &APIError{Status: 400}, ErrConflict)
	assert.ErrorIs(t, &APIError{Status: 409}, ErrConflict)
}

func TestWithHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: time.Minute}
	c := NewHTTPClient("http://x", 0, WithHTTPClient(custom))
	assert.Same(t, custom, c.http)
	assert.Equal(t, "http://x", c.baseURL)
}
