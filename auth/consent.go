package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledger-calendar-bot/assistant/logger"
	"golang.org/x/oauth2"
)

// LoopbackConsent prints the authorization URL and waits for the browser to be
// redirected to a local callback server on a random port.
type LoopbackConsent struct {
	Logger logger.Logger
	// Open is called with the authorization URL, for instance to launch a browser
	Open func(url string)
}

type callbackResult struct {
	code string
	err  error
}

func (l *LoopbackConsent) Obtain(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to open callback listener: %w", err)
	}

	port := ln.Addr().(*net.TCPAddr).Port
	cfg := *config
	cfg.RedirectURL = fmt.Sprintf("http://localhost:%d/", port)
	state := uuid.NewString()

	results := make(chan callbackResult, 1)
	deliver := func(r callbackResult) {
		select {
		case results <- r:
		default:
		}
	}

	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		if c.Query("state") != state {
			c.String(http.StatusBadRequest, "Estado de autorização inválido.")
			return
		}
		if reason := c.Query("error"); reason != "" {
			c.String(http.StatusOK, "Autorização negada.")
			deliver(callbackResult{err: fmt.Errorf("authorization denied: %s", reason)})
			return
		}
		c.String(http.StatusOK, "Autorização concluída. Você já pode fechar esta janela.")
		deliver(callbackResult{code: c.Query("code")})
	})

	server := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			deliver(callbackResult{err: fmt.Errorf("callback server failed: %w", err)})
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	l.Logger.Info("open the following URL in a browser to authorize access", "url", authURL)
	if l.Open != nil {
		go l.Open(authURL)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-results:
		if result.err != nil {
			return nil, result.err
		}
		token, err := cfg.Exchange(ctx, result.code)
		if err != nil {
			return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
		}
		return token, nil
	}
}
