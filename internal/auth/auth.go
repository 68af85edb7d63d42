// Package auth issues and verifies console session tokens. The console has a
// single operator login configured per deployment; a session is an HS256 JWT
// carried in a cookie. It gates routes only and imposes no data contract on
// the lead pipeline.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/stellar-voice/leads-console/internal/config"
)

// CookieName carries the session token.
const CookieName = "stellar_session"

// ErrInvalidCredentials is returned for a failed login.
var ErrInvalidCredentials = eris.New("auth: invalid email or password")

// ErrInvalidSession is returned for a missing, malformed, or expired token.
var ErrInvalidSession = eris.New("auth: invalid or expired session")

// Sessions issues and verifies session tokens for the configured operator.
type Sessions struct {
	cfg    config.AuthConfig
	secret []byte
	ttl    time.Duration
}

// NewSessions builds a session manager from config. When no jwt_secret is
// configured, an ephemeral random secret is generated: sessions then survive
// only as long as the process.
func NewSessions(cfg config.AuthConfig) (*Sessions, error) {
	secret := []byte(strings.TrimSpace(cfg.JWTSecret))
	if len(secret) == 0 {
		buf := make([]byte, 48)
		if _, err := rand.Read(buf); err != nil {
			return nil, eris.Wrap(err, "auth: generate fallback secret")
		}
		secret = []byte(base64.RawURLEncoding.EncodeToString(buf))
		zap.L().Warn("auth.jwt_secret is not set; using ephemeral in-memory secret")
	}

	ttl := time.Duration(cfg.SessionHours) * time.Hour
	if ttl <= 0 {
		ttl = 168 * time.Hour
	}

	return &Sessions{cfg: cfg, secret: secret, ttl: ttl}, nil
}

// Login checks the credentials and returns a signed session token.
func (s *Sessions) Login(email, password string) (string, error) {
	if !s.checkCredentials(email, password) {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": s.cfg.Email,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", eris.Wrap(err, "auth: sign token")
	}
	return signed, nil
}

// Verify parses and validates a session token, returning the subject email.
func (s *Sessions) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, eris.Errorf("auth: unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSession
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidSession
	}
	return sub, nil
}

// TTL returns the configured session lifetime.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// checkCredentials compares in constant time. A bcrypt-looking configured
// password is verified as a hash; anything else is compared literally.
func (s *Sessions) checkCredentials(email, password string) bool {
	if s.cfg.Email == "" || s.cfg.Password == "" {
		return false
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.cfg.Email)) == 1

	var passOK bool
	if isBcryptHash(s.cfg.Password) {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.cfg.Password), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
	}

	return emailOK && passOK
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// SessionCookie builds the cookie carrying a freshly issued token.
func (s *Sessions) SessionCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie builds the cookie that ends the session.
func ClearCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Middleware rejects requests without a valid session cookie.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			unauthorized(w, "not logged in")
			return
		}
		if _, err := s.Verify(cookie.Value); err != nil {
			unauthorized(w, "invalid or expired session")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
