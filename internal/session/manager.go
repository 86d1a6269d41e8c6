package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smallbiznis/storewatch/internal/clock"
	"github.com/smallbiznis/storewatch/internal/config"
	feesdomain "github.com/smallbiznis/storewatch/internal/fees/domain"
)

const (
	cookieName = "_sid"
	contextKey = "session.state"

	// Sessions idle longer than this are dropped by the sweeper.
	idleTTL = 12 * time.Hour
)

type entry struct {
	state    *State
	lastSeen time.Time
}

// Manager issues session cookies and keeps the token to state mapping.
type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry

	fees   *config.FeeConfigHolder
	clock  clock.Clock
	log    *zap.Logger
	secure bool
}

func NewManager(cfg config.Config, fees *config.FeeConfigHolder, clk clock.Clock, log *zap.Logger) *Manager {
	return &Manager{
		entries: make(map[string]*entry),
		fees:    fees,
		clock:   clk,
		log:     log.Named("session.manager"),
		secure:  cfg.Environment == "production",
	}
}

// Middleware resolves the session for the request, creating one when the
// cookie is absent or unknown, and attaches the state to the gin context.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			token = m.issue(c)
		}

		state, ok := m.lookup(token)
		if !ok {
			// Stale cookie from a restarted process. Re-issue.
			token = m.issue(c)
			state, _ = m.lookup(token)
		}

		c.Set(contextKey, state)
		c.Next()
	}
}

// FromContext returns the state installed by Middleware.
func FromContext(c *gin.Context) *State {
	v, _ := c.Get(contextKey)
	state, _ := v.(*State)
	return state
}

func (m *Manager) issue(c *gin.Context) string {
	token := uuid.NewString()

	m.mu.Lock()
	m.entries[token] = &entry{
		state:    newState(m.initialSchedule()),
		lastSeen: m.clock.Now(),
	}
	m.mu.Unlock()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, token, int(idleTTL.Seconds()), "/", "", m.secure, true)
	m.log.Debug("session issued", zap.String("token", token))
	return token
}

func (m *Manager) lookup(token string) (*State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[token]
	if !ok {
		return nil, false
	}
	e.lastSeen = m.clock.Now()
	return e.state, true
}

func (m *Manager) initialSchedule() feesdomain.Schedule {
	if m.fees != nil {
		return m.fees.Get()
	}
	return feesdomain.DefaultSchedule()
}

// Sweep drops sessions idle longer than the TTL. Called periodically from
// the server lifecycle.
func (m *Manager) Sweep() {
	cutoff := m.clock.Now().Add(-idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()
	for token, e := range m.entries {
		if e.lastSeen.Before(cutoff) {
			delete(m.entries, token)
		}
	}
}
