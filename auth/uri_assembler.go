package auth

import (
	"fmt"

	"github.com/jrsteele09/go-rider-auth/oauthmodel"
	"golang.org/x/oauth2"
)

const (
	implicitAuthorizePath  = "/oauth/v2/authorize"
	universalAuthorizePath = "/oauth/v2/universal/authorize"
	tokenPath              = "/oauth/v2/token"
	sdkPlatform            = "android"
)

// Endpoint returns the x/oauth2 endpoint for region. The implicit grant is
// served from the login host and the code flow from the auth host.
func Endpoint(region oauthmodel.Region, responseType oauthmodel.ResponseType) oauth2.Endpoint {
	domain := region.Domain()
	authURL := fmt.Sprintf("https://login.%s%s", domain, implicitAuthorizePath)
	if responseType == oauthmodel.CodeResponseType {
		authURL = fmt.Sprintf("https://auth.%s%s", domain, universalAuthorizePath)
	}
	return oauth2.Endpoint{
		AuthURL:   authURL,
		TokenURL:  fmt.Sprintf("https://auth.%s%s", domain, tokenPath),
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

// AssembleAuthURL builds the authorization URL for p. For the code flow
// p.CodeChallenge must already hold the S256 challenge.
func AssembleAuthURL(p *oauthmodel.AuthorizationParameters) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	responseType := p.ResponseType
	if responseType == "" {
		responseType = oauthmodel.TokenResponseType
	}

	cfg := &oauth2.Config{
		ClientID:    p.ClientID,
		RedirectURL: p.RedirectURI,
		Endpoint:    Endpoint(p.Region, responseType),
	}

	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("response_type", string(responseType)),
		oauth2.SetAuthURLParam("scope", p.ScopeString()),
	}
	if responseType == oauthmodel.CodeResponseType {
		opts = append(opts,
			oauth2.SetAuthURLParam("sdk", sdkPlatform),
			oauth2.SetAuthURLParam("sdk_version", p.SDKVersion),
			oauth2.SetAuthURLParam("code_challenge", p.CodeChallenge),
			oauth2.SetAuthURLParam("code_challenge_method", string(oauthmodel.CodeMethodTypeS256)),
		)
		if p.RequestURI != "" {
			opts = append(opts, oauth2.SetAuthURLParam("request_uri", p.RequestURI))
		}
	} else {
		opts = append(opts, oauth2.SetAuthURLParam("show_fb", "false"))
	}

	return cfg.AuthCodeURL("", opts...), nil
}

// NewPKCE returns a fresh verifier and its S256 challenge.
func NewPKCE() (verifier, challenge string) {
	verifier = oauth2.GenerateVerifier()
	return verifier, oauth2.S256ChallengeFromVerifier(verifier)
}
