package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/osamaqaseem39/stationary-gbs/internal/catalog"
	apperrors "github.com/osamaqaseem39/stationary-gbs/pkg/errors"
)

// ProfileFetcher retrieves the customer profile for a token. The catalog
// client satisfies this.
type ProfileFetcher interface {
	Profile(ctx context.Context, token string) (*catalog.Customer, error)
}

// Login holds one signed-in customer session: the upstream bearer token and
// the customer snapshot taken at sign-in or last refresh.
type Login struct {
	Token    string            `json:"token"`
	Customer *catalog.Customer `json:"customer,omitempty"`
}

// CustomerSubscriber receives the session after every change; a nil login
// means signed out.
type CustomerSubscriber func(sessionID string, login *Login)

// CustomerStore manages sign-in sessions behind the persistence port.
type CustomerStore struct {
	port    Port
	profile ProfileFetcher
	logger  *slog.Logger

	mu      sync.Mutex
	subs    map[int]CustomerSubscriber
	nextSub int
}

// NewCustomerStore creates a customer store over the given port.
func NewCustomerStore(port Port, profile ProfileFetcher, logger *slog.Logger) *CustomerStore {
	return &CustomerStore{
		port:    port,
		profile: profile,
		logger:  logger,
		subs:    make(map[int]CustomerSubscriber),
	}
}

// Get loads the session for sessionID; nil means signed out.
func (s *CustomerStore) Get(ctx context.Context, sessionID string) (*Login, error) {
	data, err := s.port.Load(ctx, customerKey(sessionID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var login Login
	if err := json.Unmarshal(data, &login); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", sessionID, err)
	}
	return &login, nil
}

// SignIn stores the token and customer snapshot for sessionID.
func (s *CustomerStore) SignIn(ctx context.Context, sessionID, token string, customer *catalog.Customer) error {
	login := Login{Token: token, Customer: customer}

	data, err := json.Marshal(login)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sessionID, err)
	}
	if err := s.port.Save(ctx, customerKey(sessionID), data); err != nil {
		return err
	}

	s.notify(sessionID, &login)
	return nil
}

// SignOut clears the session.
func (s *CustomerStore) SignOut(ctx context.Context, sessionID string) error {
	if err := s.port.Clear(ctx, customerKey(sessionID)); err != nil {
		return err
	}
	s.notify(sessionID, nil)
	return nil
}

// Refresh re-fetches the customer profile with the stored token and updates
// the snapshot. An authentication failure from the upstream signs the
// session out; other failures leave the stored snapshot untouched.
func (s *CustomerStore) Refresh(ctx context.Context, sessionID string) (*Login, error) {
	login, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if login == nil {
		return nil, nil
	}

	customer, err := s.profile.Profile(ctx, login.Token)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) || errors.Is(err, apperrors.ErrForbidden) {
			s.logger.InfoContext(ctx, "session token rejected by upstream, signing out",
				slog.String("session_id", sessionID),
			)
			if signOutErr := s.SignOut(ctx, sessionID); signOutErr != nil {
				return nil, signOutErr
			}
			return nil, nil
		}
		return login, err
	}

	login.Customer = customer
	if err := s.SignIn(ctx, sessionID, login.Token, customer); err != nil {
		return nil, err
	}
	return login, nil
}

// Subscribe registers fn for session change notifications and returns an
// unsubscribe function.
func (s *CustomerStore) Subscribe(fn CustomerSubscriber) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *CustomerStore) notify(sessionID string, login *Login) {
	s.mu.Lock()
	subs := make([]CustomerSubscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(sessionID, login)
	}
}

func customerKey(sessionID string) string {
	return "customer:" + sessionID
}
