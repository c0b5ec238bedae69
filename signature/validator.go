package signature

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
)

// ReleaseDigest is the SHA-1 of the certificate the Uber apps ship with.
const ReleaseDigest = "411c40b31f6d01dac68d711df99b6eafeec8e73b"

var ErrPackageNotFound = errors.New("package not found")

// PackageInfo is what the host reports about an installed package.
type PackageInfo struct {
	PackageName  string
	VersionCode  int
	Certificates [][]byte
}

// PackageInspector looks up installed packages on the host.
type PackageInspector interface {
	Lookup(ctx context.Context, packageName string) (*PackageInfo, error)
}

// Digester hashes one raw certificate into a lower-case hex digest.
type Digester func(cert []byte) (string, error)

// SHA1Digester is the default Digester.
func SHA1Digester(cert []byte) (string, error) {
	sum := sha1.Sum(cert)
	return hex.EncodeToString(sum[:]), nil
}

// DebugSignal identifies a development build running on an emulator.
type DebugSignal struct {
	Debuggable bool
	Brand      string
}

// Active is true only for debuggable builds on a "generic" brand host.
func (d DebugSignal) Active() bool {
	return d.Debuggable && strings.HasPrefix(d.Brand, "generic")
}

// Validator decides whether a companion app can be trusted.
type Validator struct {
	allowed   map[string]struct{}
	debug     DebugSignal
	digest    Digester
	inspector PackageInspector
}

type ValidatorOption func(*Validator)

// WithAllowedDigests replaces the allow-list.
func WithAllowedDigests(digests ...string) ValidatorOption {
	return func(v *Validator) {
		v.allowed = make(map[string]struct{}, len(digests))
		for _, d := range digests {
			v.allowed[strings.ToLower(d)] = struct{}{}
		}
	}
}

func WithDebugSignal(signal DebugSignal) ValidatorOption {
	return func(v *Validator) {
		v.debug = signal
	}
}

func WithDigester(digest Digester) ValidatorOption {
	return func(v *Validator) {
		v.digest = digest
	}
}

func WithPackageInspector(inspector PackageInspector) ValidatorOption {
	return func(v *Validator) {
		v.inspector = inspector
	}
}

// NewValidator returns a Validator trusting ReleaseDigest by default.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		allowed: map[string]struct{}{ReleaseDigest: {}},
		digest:  SHA1Digester,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// IsGenuineApp reports whether every certificate hashes to an allowed
// digest. No certificates, or a digest failure, means untrusted.
func (v *Validator) IsGenuineApp(certs [][]byte) bool {
	if v.debug.Active() {
		return true
	}
	if len(certs) == 0 || v.digest == nil {
		return false
	}
	for _, cert := range certs {
		d, err := v.digest(cert)
		if err != nil {
			log.Warn().Err(err).Msg("certificate digest unavailable")
			return false
		}
		if _, ok := v.allowed[strings.ToLower(d)]; !ok {
			return false
		}
	}
	return true
}

// ValidateSignature looks up packageName and checks its certificates.
func (v *Validator) ValidateSignature(ctx context.Context, packageName string) bool {
	info, ok := v.lookup(ctx, packageName)
	if !ok {
		return false
	}
	return v.IsGenuineApp(info.Certificates)
}

// MinimumVersionSatisfied compares version codes.
func (v *Validator) MinimumVersionSatisfied(installed, minimum int) bool {
	if v.debug.Active() {
		return true
	}
	return installed >= minimum
}

// IsInstalled reports whether app is present, at least minimum, and
// signed with an allowed certificate.
func (v *Validator) IsInstalled(ctx context.Context, app AppType, minimum int) bool {
	info, ok := v.lookup(ctx, app.PackageName)
	if !ok {
		return false
	}
	return v.MinimumVersionSatisfied(info.VersionCode, minimum) && v.IsGenuineApp(info.Certificates)
}

// FirstInstalled returns the first app in apps that IsInstalled at its
// redirect-capable minimum version.
func (v *Validator) FirstInstalled(ctx context.Context, apps ...AppType) (AppType, bool) {
	for _, app := range apps {
		if v.IsInstalled(ctx, app, app.MinimumRedirectVersion) {
			return app, true
		}
	}
	return AppType{}, false
}

func (v *Validator) lookup(ctx context.Context, packageName string) (*PackageInfo, bool) {
	if v.inspector == nil {
		return nil, false
	}
	info, err := v.inspector.Lookup(ctx, packageName)
	if err != nil || info == nil {
		if err != nil && !errors.Is(err, ErrPackageNotFound) {
			log.Warn().Err(err).Str("package", packageName).Msg("package lookup failed")
		}
		return nil, false
	}
	return info, true
}
