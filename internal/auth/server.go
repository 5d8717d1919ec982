package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// ErrStateMismatch is returned when the callback carries an unexpected state.
var ErrStateMismatch = errors.New("oauth state mismatch")

const pageTemplate = `<!DOCTYPE html>
<html>
<head><title>spotwave - Authorization</title></head>
<body style="font-family: sans-serif; text-align: center; padding: 50px;">
<h1>%s</h1>
<p>%s</p>
</body>
</html>`

type callbackResult struct {
	code string
	err  error
}

// CallbackServer receives the authorization code redirect.
type CallbackServer struct {
	server   *http.Server
	listener net.Listener
	results  chan callbackResult
	done     chan struct{}
}

// StartCallbackServer listens on the host and path of redirectURL and
// accepts a single callback whose state matches.
func StartCallbackServer(redirectURL, state string) (*CallbackServer, error) {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return nil, fmt.Errorf("parse redirect url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("redirect url %q has no host", redirectURL)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}

	listener, err := net.Listen("tcp", u.Host)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", u.Host, err)
	}

	mux := http.NewServeMux()
	cs := &CallbackServer{
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		listener: listener,
		results:  make(chan callbackResult, 1),
		done:     make(chan struct{}),
	}

	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var res callbackResult
		switch {
		case q.Get("error") != "":
			res.err = fmt.Errorf("%w: %s", ErrAuthFailure, q.Get("error"))
		case q.Get("state") != state:
			res.err = ErrStateMismatch
		case q.Get("code") == "":
			res.err = fmt.Errorf("%w: no code in callback", ErrAuthFailure)
		default:
			res.code = q.Get("code")
		}

		w.Header().Set("Content-Type", "text/html")
		if res.err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, pageTemplate, "Authorization Failed", "Please try again from the terminal.")
		} else {
			fmt.Fprintf(w, pageTemplate, "Authorization Successful!", "You can close this window and return to spotwave.")
		}

		select {
		case cs.results <- res:
		default:
		}
	})

	go func() {
		_ = cs.server.Serve(listener)
		close(cs.done)
	}()

	return cs, nil
}

// Addr returns the address the server is listening on.
func (cs *CallbackServer) Addr() string {
	return cs.listener.Addr().String()
}

// Wait blocks until a callback arrives or ctx is done.
func (cs *CallbackServer) Wait(ctx context.Context) (string, error) {
	select {
	case res := <-cs.results:
		return res.code, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Shutdown stops the server.
func (cs *CallbackServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = cs.server.Shutdown(ctx)
	<-cs.done
}
