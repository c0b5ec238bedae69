package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-rider-auth/auth"
	"github.com/jrsteele09/go-rider-auth/internal/config"
	"github.com/jrsteele09/go-rider-auth/internal/errors"
	"github.com/jrsteele09/go-rider-auth/scope"
	"github.com/jrsteele09/go-rider-auth/server"
	"github.com/jrsteele09/go-rider-auth/token"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: riderauth [login|status|logout|estimates]`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("riderauth failed")
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = fmt.Errorf("panic recovered: %v", r)
		}
	}()

	command := "login"
	if len(args) > 0 {
		command = args[0]
	}

	c, err := config.New()
	if err != nil {
		return err
	}
	setupLogging(c)
	displayAppname(c.GetAppName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openTokenRepo(ctx, c)
	if err != nil {
		return err
	}
	defer closeRepo()

	jar, err := token.NewJar()
	if err != nil {
		return errors.Wrapf(err, "create cookie jar")
	}
	tokens, err := token.NewManager(repo, token.WithCookieClearer(token.NewJarCookieClearer(jar, c.GetRegion().Domain())))
	if err != nil {
		return err
	}

	switch command {
	case "login":
		tok, err := login(ctx, c, tokens)
		if err != nil {
			return err
		}
		printToken(tok)
		return nil
	case "status":
		tok, err := tokens.Get(ctx, c.GetTokenKey())
		if err != nil {
			return err
		}
		if tok == nil {
			return errors.ErrNoToken
		}
		printToken(tok)
		return nil
	case "logout":
		if err := tokens.Remove(ctx, c.GetTokenKey()); err != nil {
			return err
		}
		log.Info().Str("key", c.GetTokenKey()).Msg("access token removed")
		return nil
	case "estimates":
		tok, err := tokens.GetValid(ctx, c.GetTokenKey())
		if err != nil {
			return err
		}
		if tok == nil {
			return errors.ErrNoToken
		}
		return showEstimates(ctx, c, tok)
	default:
		return errors.Wrapf(errors.ErrUnsupported, "%s", usage)
	}
}

// login reuses a stored token that has not expired, otherwise runs the
// browser login through a loopback listener on the redirect URI.
func login(ctx context.Context, c config.Config, tokens *token.Manager) (*token.AccessToken, error) {
	if tok, err := tokens.GetValid(ctx, c.GetTokenKey()); err == nil && tok != nil {
		log.Info().Time("expires_at", tok.ExpiresAt).Msg("using stored access token")
		return tok, nil
	}

	scopes, err := scope.ParseNames(c.GetScopes())
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "RIDERAUTH_SCOPES: %v", err)
	}

	surface, err := server.NewLoopbackSurface(c.GetRedirectURI(), server.WithEnv(c.GetEnv()))
	if err != nil {
		return nil, err
	}
	httpServer := &http.Server{Addr: surface.Addr(), Handler: surface, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := listenAndServe(httpServer); err != nil {
			log.Err(err).Msg("loopback listener stopped")
			surface.Close()
		}
	}()
	defer func() {
		if err := shutdown(httpServer); err != nil {
			log.Err(err).Msg("loopback shutdown")
		}
	}()

	manager, err := auth.NewLoginManager(auth.Config{
		ClientID:     c.GetClientID(),
		RedirectURI:  c.GetRedirectURI(),
		Region:       c.GetRegion(),
		ResponseType: c.GetResponseType(),
		CustomScopes: c.GetCustomScopes(),
		SDKVersion:   c.GetSDKVersion(),
		RequestURI:   c.GetRequestURI(),
		TokenKey:     c.GetTokenKey(),
		SessionTTL:   c.GetSessionTTL(),
	}, tokens, surface)
	if err != nil {
		return nil, err
	}
	defer manager.Close()

	loginCtx, cancel := context.WithTimeout(ctx, c.GetLoginTimeout())
	defer cancel()

	res := <-manager.Login(loginCtx, scopes)
	switch res.Outcome {
	case auth.OutcomeSuccess:
		return res.Token, nil
	case auth.OutcomeCancelled:
		return nil, errors.ErrLoginCancelled
	default:
		return nil, errors.Wrapf(errors.ErrLoginFailed, "%s", res.Err.String())
	}
}

func printToken(tok *token.AccessToken) {
	log.Info().
		Str("scopes", token.EncodeScopes(tok.Scopes)).
		Time("expires_at", tok.ExpiresAt).
		Bool("expired", tok.Expired(time.Now())).
		Msg("access token")
}

func setupLogging(c config.Config) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func listenAndServe(server *http.Server) error {
	log.Debug().Str("addr", server.Addr).Msg("loopback listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
