package service

import (
	"context"
	"testing"

	"ai-studybuddy-be/internal/entity"
	"ai-studybuddy-be/internal/repository/memory"
	"ai-studybuddy-be/pkg/cardgen"
	"ai-studybuddy-be/pkg/database"
	"ai-studybuddy-be/pkg/payment"
	"ai-studybuddy-be/pkg/store"

	"gorm.io/gorm"
)

// --- Shared test doubles ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeTierLookup struct {
	tier string
	err  error
}

func (f *fakeTierLookup) GetTier(ctx context.Context, identity string) (string, error) {
	return f.tier, f.err
}

type fakeProvider struct {
	items []cardgen.Item
	err   error

	// When set, GenerateCards signals started and blocks until release is
	// closed, to exercise the in-flight gate.
	started chan struct{}
	release chan struct{}
}

func (f *fakeProvider) GenerateCards(ctx context.Context, req *cardgen.Request) ([]cardgen.Item, error) {
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	return f.items, f.err
}

type fakeGateway struct {
	checkoutURL string
	createErr   error
	status      payment.Status
	statusErr   error
}

func (f *fakeGateway) CreateIntent(ctx context.Context, intentId, identity, planName string, amount int64) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.checkoutURL, nil
}

func (f *fakeGateway) CheckStatus(ctx context.Context, intentId string) (payment.Status, error) {
	return f.status, f.statusErr
}

// --- Shared helpers ---

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewLocalStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	return db
}

func testCards(n int) []entity.Flashcard {
	cards := make([]entity.Flashcard, n)
	for i := range cards {
		cards[i] = entity.Flashcard{
			Id:         i + 1,
			Question:   "What is concept " + string(rune('A'+i)) + "?",
			Answer:     "It is the definition of concept " + string(rune('A'+i)) + " in the notes.",
			Difficulty: entity.DifficultyMedium,
			Type:       entity.CardTypeGeneral,
		}
	}
	return cards
}

func seedSession(sessions *memory.SessionRepository, identity string, n int) *store.Session {
	session := store.NewSession(identity, testCards(n), 0, "The source notes behind these cards.")
	sessions.Save(session)
	return session
}
